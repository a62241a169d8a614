package classroom

import (
	"time"

	"github.com/trezcool/lessonhub/core"
)

type (
	Class struct {
		ID          string    `json:"id"`
		Name        string    `json:"name"`
		Description string    `json:"description"`
		TeacherID   string    `json:"teacher_id"`
		Students    []string  `json:"students"`
		CreatedAt   time.Time `json:"created_at"`
	}

	Lesson struct {
		ID             string    `json:"id"`
		Title          string    `json:"title"`
		Description    string    `json:"description"`
		ClassID        string    `json:"class_id"`
		TeacherID      string    `json:"teacher_id"`
		SlidesURL      string    `json:"slides_url,omitempty"`
		GoogleSlidesID string    `json:"google_slides_id,omitempty"`
		GoogleDocsID   string    `json:"google_docs_id,omitempty"`
		AudioURL       string    `json:"audio_url,omitempty"`
		VideoURL       string    `json:"video_url,omitempty"`
		CreatedAt      time.Time `json:"created_at"`
		UpdatedAt      time.Time `json:"updated_at"`
	}

	Notification struct {
		ID        string    `json:"id"`
		UserID    string    `json:"user_id"`
		Title     string    `json:"title"`
		Message   string    `json:"message"`
		Type      string    `json:"type"` // lesson, message, assignment
		Read      bool      `json:"read"`
		CreatedAt time.Time `json:"created_at"`
	}

	Message struct {
		ID          string    `json:"id"`
		SenderID    string    `json:"sender_id"`
		RecipientID string    `json:"recipient_id"`
		ClassID     string    `json:"class_id,omitempty"`
		Body        string    `json:"message"`
		CreatedAt   time.Time `json:"created_at"`
	}
)

// NewClass contains information needed to create a new Class.
type NewClass struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

func (nc *NewClass) Validate() error {
	nc.Name = core.CleanString(nc.Name)
	nc.Description = core.CleanString(nc.Description)
	return core.TranslateValidationError(core.Validate.Struct(nc))
}

// NewLesson contains information needed to create a new Lesson.
type NewLesson struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	ClassID     string `json:"class_id" validate:"required"`
}

func (nl *NewLesson) Validate() error {
	nl.Title = core.CleanString(nl.Title)
	nl.Description = core.CleanString(nl.Description)
	nl.ClassID = core.CleanString(nl.ClassID)
	return core.TranslateValidationError(core.Validate.Struct(nl))
}

// NewMessage contains information needed to send a Message.
type NewMessage struct {
	Body        string `json:"message" validate:"required"`
	RecipientID string `json:"recipient_id" validate:"required"`
	ClassID     string `json:"class_id,omitempty"`
}

func (nm *NewMessage) Validate() error {
	nm.Body = core.CleanString(nm.Body)
	nm.RecipientID = core.CleanString(nm.RecipientID)
	return core.TranslateValidationError(core.Validate.Struct(nm))
}

// Collections is a partial batch result: a nil field means that collection's
// fetch failed on this pass and the previously held data must be kept.
type Collections struct {
	Classes       *[]Class
	Lessons       *[]Lesson
	Notifications *[]Notification
	Messages      *[]Message
}
