package classroom

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/trezcool/lessonhub/core"
)

func TestPayloadValidation(t *testing.T) {
	tests := []struct {
		name     string
		validate func() error
		wantErr  bool
	}{
		{name: "valid class", validate: func() error {
			nc := NewClass{Name: " Maths "}
			return nc.Validate()
		}},
		{name: "class without name", validate: func() error {
			nc := NewClass{Description: "no name"}
			return nc.Validate()
		}, wantErr: true},
		{name: "valid lesson", validate: func() error {
			nl := NewLesson{Title: "Algebra", ClassID: "c1"}
			return nl.Validate()
		}},
		{name: "lesson without class", validate: func() error {
			nl := NewLesson{Title: "Algebra"}
			return nl.Validate()
		}, wantErr: true},
		{name: "message without recipient", validate: func() error {
			nm := NewMessage{Body: "hi"}
			return nm.Validate()
		}, wantErr: true},
		{name: "whitespace-only body", validate: func() error {
			nm := NewMessage{Body: "   ", RecipientID: "u2"}
			return nm.Validate()
		}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.validate()
			if tt.wantErr {
				var vErr *core.ValidationError
				if !errors.As(err, &vErr) {
					t.Errorf("Validate() error = %v, want *core.ValidationError", err)
				} else if len(vErr.Fields) == 0 {
					t.Error("Validate() should report the offending field")
				}
			} else if err != nil {
				t.Errorf("Validate() error = %v", err)
			}
		})
	}
}
