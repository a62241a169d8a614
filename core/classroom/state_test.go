package classroom

import (
	"testing"

	"github.com/trezcool/lessonhub/core/drive"
	"github.com/trezcool/lessonhub/core/session"
)

func authedState() (*State, int64) {
	s := NewState()
	epoch := s.BeginSession(session.Session{Token: "tok", User: session.User{ID: "t-1", Role: session.RoleTeacher}})
	return s, epoch
}

func TestStateEpochGuard(t *testing.T) {
	s, epoch := authedState()
	if !s.SetClasses(epoch, []Class{{ID: "c1"}}) {
		t.Fatal("apply at current epoch should succeed")
	}

	stale := epoch
	s.BeginSession(session.Session{Token: "tok2"}) // re-login advances the epoch

	tests := []struct {
		name  string
		apply func() bool
	}{
		{"SetClasses", func() bool { return s.SetClasses(stale, []Class{{ID: "cX"}}) }},
		{"SetLessons", func() bool { return s.SetLessons(stale, []Lesson{{ID: "lX"}}) }},
		{"SetNotifications", func() bool { return s.SetNotifications(stale, []Notification{{ID: "nX"}}) }},
		{"SetMessages", func() bool { return s.SetMessages(stale, []Message{{ID: "mX"}}) }},
		{"AppendClass", func() bool { return s.AppendClass(stale, Class{ID: "cX"}) }},
		{"PrependLesson", func() bool { return s.PrependLesson(stale, Lesson{ID: "lX"}) }},
		{"PrependMessage", func() bool { return s.PrependMessage(stale, Message{ID: "mX"}) }},
		{"SetSlides", func() bool { return s.SetSlides(stale, []drive.Resource{{ID: "sX"}}) }},
		{"SetDocs", func() bool { return s.SetDocs(stale, []drive.Resource{{ID: "dX"}}) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.apply() {
				t.Error("stale apply should be discarded")
			}
		})
	}
}

func TestStateOrdering(t *testing.T) {
	s, epoch := authedState()

	s.AppendClass(epoch, Class{ID: "c1"})
	s.AppendClass(epoch, Class{ID: "c2"})
	if got := s.Classes(); got[0].ID != "c1" || got[1].ID != "c2" {
		t.Errorf("classes = %v, want creation order", got)
	}

	s.SetLessons(epoch, []Lesson{{ID: "l1"}, {ID: "l2"}})
	s.PrependLesson(epoch, Lesson{ID: "l3"})
	got := s.Lessons()
	if len(got) != 3 || got[0].ID != "l3" || got[1].ID != "l1" || got[2].ID != "l2" {
		t.Errorf("lessons = %v, want [l3 l1 l2]", got)
	}

	s.PrependMessage(epoch, Message{ID: "m1"})
	s.PrependMessage(epoch, Message{ID: "m2"})
	if msgs := s.Messages(); msgs[0].ID != "m2" {
		t.Errorf("messages = %v, want newest-first", msgs)
	}
}

func TestStateSnapshotIsolation(t *testing.T) {
	s, epoch := authedState()
	s.SetClasses(epoch, []Class{{ID: "c1", Name: "Maths"}})

	snap := s.Classes()
	snap[0].Name = "tampered"

	if got := s.Classes()[0].Name; got != "Maths" {
		t.Errorf("state mutated through a snapshot: %q", got)
	}
}

func TestStateUnreadCount(t *testing.T) {
	s, epoch := authedState()
	s.SetNotifications(epoch, []Notification{
		{ID: "n1", Read: false},
		{ID: "n2", Read: true},
		{ID: "n3", Read: false},
	})
	if got := s.UnreadCount(); got != 2 {
		t.Errorf("UnreadCount() = %d, want 2", got)
	}

	if !s.MarkNotificationRead(epoch, "n1") {
		t.Fatal("MarkNotificationRead() = false")
	}
	if got := s.UnreadCount(); got != 1 {
		t.Errorf("UnreadCount() = %d, want 1", got)
	}

	if s.MarkNotificationRead(epoch, "missing") {
		t.Error("unknown id should report false")
	}
}

func TestStateEndSessionClearsEverything(t *testing.T) {
	s, epoch := authedState()
	s.SetClasses(epoch, []Class{{ID: "c1"}})
	s.SetLessons(epoch, []Lesson{{ID: "l1"}})
	s.SetNotifications(epoch, []Notification{{ID: "n1"}})
	s.SetMessages(epoch, []Message{{ID: "m1"}})
	s.SetSlides(epoch, []drive.Resource{{ID: "s1"}})
	s.SetDocs(epoch, []drive.Resource{{ID: "d1"}})

	s.EndSession()

	if s.Session() != nil || s.Token() != "" {
		t.Error("session should be cleared")
	}
	if n := len(s.Classes()) + len(s.Lessons()) + len(s.Notifications()) + len(s.Messages()); n != 0 {
		t.Errorf("primary collections should be cleared, %d entries left", n)
	}
	if s.DriveConnected() || len(s.Slides()) != 0 || len(s.Docs()) != 0 {
		t.Error("drive listings should be cleared")
	}
}

func TestStateDriveConnected(t *testing.T) {
	s, epoch := authedState()
	if s.DriveConnected() {
		t.Fatal("fresh state should not be connected")
	}

	s.SetDocs(epoch, []drive.Resource{{ID: "d1"}})
	if s.DriveConnected() {
		t.Error("a doc listing alone must not flip connected")
	}

	s.SetSlides(epoch, []drive.Resource{{ID: "s1"}})
	if !s.DriveConnected() {
		t.Error("a successful slide listing must flip connected")
	}
}
