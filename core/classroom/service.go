package classroom

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/lessonhub/core"
)

type (
	// Backend is the slice of the LessonHub API this service talks to.
	// Dashboard returns a partial result and never fails as a whole.
	Backend interface {
		Dashboard(ctx context.Context) Collections
		CreateClass(ctx context.Context, nc NewClass) (Class, error)
		CreateLesson(ctx context.Context, nl NewLesson) (Lesson, error)
		SendMessage(ctx context.Context, nm NewMessage) (Message, error)
		GetClass(ctx context.Context, id string) (Class, error)
		LessonsForClass(ctx context.Context, classID string) ([]Lesson, error)
		Conversation(ctx context.Context, userID string) ([]Message, error)
		MarkNotificationRead(ctx context.Context, id string) error
	}

	// Prober is the opportunistic secondary-channel check run after each
	// dashboard load. Its failures never touch the primary collections.
	Prober interface {
		Probe(ctx context.Context, epoch int64) bool
	}

	// Store is the slice of the application state this service owns.
	Store interface {
		Epoch() int64
		SetClasses(epoch int64, cls []Class) bool
		SetLessons(epoch int64, lsn []Lesson) bool
		SetNotifications(epoch int64, notifs []Notification) bool
		SetMessages(epoch int64, msgs []Message) bool
		AppendClass(epoch int64, cls Class) bool
		PrependLesson(epoch int64, lsn Lesson) bool
		PrependMessage(epoch int64, msg Message) bool
		MarkNotificationRead(epoch int64, id string) bool
	}

	Service struct {
		backend Backend
		store   Store
		prober  Prober
		log     core.Logger
	}
)

func NewService(backend Backend, store Store, prober Prober, logger core.Logger) *Service {
	return &Service{
		backend: backend,
		store:   store,
		prober:  prober,
		log:     logger,
	}
}

// LoadAll fetches the four primary collections in one concurrent batch and
// applies whatever came back; a collection whose fetch failed keeps its
// previous value. Invoked once per successful authentication. The drive
// probe runs afterward regardless of the batch outcome.
func (svc *Service) LoadAll(ctx context.Context) {
	epoch := svc.store.Epoch()
	cols := svc.backend.Dashboard(ctx)

	if cols.Classes != nil {
		svc.store.SetClasses(epoch, *cols.Classes)
	} else {
		svc.log.Warn("classroom: classes fetch failed, keeping previous data")
	}
	if cols.Lessons != nil {
		svc.store.SetLessons(epoch, *cols.Lessons)
	} else {
		svc.log.Warn("classroom: lessons fetch failed, keeping previous data")
	}
	if cols.Notifications != nil {
		svc.store.SetNotifications(epoch, *cols.Notifications)
	} else {
		svc.log.Warn("classroom: notifications fetch failed, keeping previous data")
	}
	if cols.Messages != nil {
		svc.store.SetMessages(epoch, *cols.Messages)
	} else {
		svc.log.Warn("classroom: messages fetch failed, keeping previous data")
	}

	if svc.prober != nil {
		svc.prober.Probe(ctx, epoch)
	}
}

// CreateClass sends the payload and appends the server-confirmed Class in
// creation order. Nothing is inserted before the round trip completes.
func (svc *Service) CreateClass(ctx context.Context, nc NewClass) (Class, error) {
	if err := nc.Validate(); err != nil {
		return Class{}, err
	}
	epoch := svc.store.Epoch()
	cls, err := svc.backend.CreateClass(ctx, nc)
	if err != nil {
		svc.log.Error("classroom: creating class", err)
		return Class{}, errors.Wrap(err, "creating class")
	}
	svc.store.AppendClass(epoch, cls)
	return cls, nil
}

// CreateLesson sends the payload and prepends the server-confirmed Lesson
// (newest-first).
func (svc *Service) CreateLesson(ctx context.Context, nl NewLesson) (Lesson, error) {
	if err := nl.Validate(); err != nil {
		return Lesson{}, err
	}
	epoch := svc.store.Epoch()
	lsn, err := svc.backend.CreateLesson(ctx, nl)
	if err != nil {
		svc.log.Error("classroom: creating lesson", err)
		return Lesson{}, errors.Wrap(err, "creating lesson")
	}
	svc.store.PrependLesson(epoch, lsn)
	return lsn, nil
}

// SendMessage sends the payload and prepends the server-confirmed Message
// (newest-first).
func (svc *Service) SendMessage(ctx context.Context, nm NewMessage) (Message, error) {
	if err := nm.Validate(); err != nil {
		return Message{}, err
	}
	epoch := svc.store.Epoch()
	msg, err := svc.backend.SendMessage(ctx, nm)
	if err != nil {
		svc.log.Error("classroom: sending message", err)
		return Message{}, errors.Wrap(err, "sending message")
	}
	svc.store.PrependMessage(epoch, msg)
	return msg, nil
}

// MarkNotificationRead acks a notification server-side, then flips the local
// copy once confirmed.
func (svc *Service) MarkNotificationRead(ctx context.Context, id string) error {
	epoch := svc.store.Epoch()
	if err := svc.backend.MarkNotificationRead(ctx, id); err != nil {
		svc.log.Error("classroom: marking notification read", err)
		return errors.Wrap(err, "marking notification read")
	}
	svc.store.MarkNotificationRead(epoch, id)
	return nil
}

// GetClass is a read-through; it does not touch the shared state.
func (svc *Service) GetClass(ctx context.Context, id string) (Class, error) {
	return svc.backend.GetClass(ctx, id)
}

// LessonsForClass is a read-through; it does not touch the shared state.
func (svc *Service) LessonsForClass(ctx context.Context, classID string) ([]Lesson, error) {
	return svc.backend.LessonsForClass(ctx, classID)
}

// Conversation returns the message thread with the given user; read-through.
func (svc *Service) Conversation(ctx context.Context, userID string) ([]Message, error) {
	return svc.backend.Conversation(ctx, userID)
}
