package classroom

import (
	"sync"

	"github.com/trezcool/lessonhub/core/drive"
	"github.com/trezcool/lessonhub/core/session"
)

// State is the single container for everything the client holds on behalf of
// the server: the session, the four primary collections and the external
// drive listings. Reads hand out copies; writes go through the session
// Manager, the classroom Service and the drive Connector only.
//
// Every write issued from an asynchronous fetch carries the epoch it was
// started under. Login and logout advance the epoch, so a result that lands
// after the session changed is discarded instead of resurrecting stale data.
type State struct {
	mu    sync.RWMutex
	epoch int64

	sess *session.Session

	classes       []Class
	lessons       []Lesson
	notifications []Notification
	messages      []Message

	driveConnected bool
	slides         []drive.Resource
	docs           []drive.Resource
}

func NewState() *State {
	return &State{}
}

func (s *State) Epoch() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.epoch
}

// BeginSession installs the session and advances the epoch. It returns the
// new epoch for the fetches issued under this session.
func (s *State) BeginSession(sess session.Session) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++
	s.sess = &sess
	return s.epoch
}

// EndSession clears the session, the primary collections and the drive
// listings in a single transition, and advances the epoch so in-flight
// results cannot repopulate them.
func (s *State) EndSession() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++
	s.sess = nil
	s.classes = nil
	s.lessons = nil
	s.notifications = nil
	s.messages = nil
	s.driveConnected = false
	s.slides = nil
	s.docs = nil
	return s.epoch
}

func (s *State) Session() *session.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.sess == nil {
		return nil
	}
	sess := *s.sess
	return &sess
}

// Token returns the current session credential, "" when unauthenticated.
func (s *State) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.sess == nil {
		return ""
	}
	return s.sess.Token
}

func (s *State) Classes() []Class {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.classes)
}

func (s *State) Lessons() []Lesson {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.lessons)
}

func (s *State) Notifications() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.notifications)
}

func (s *State) Messages() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.messages)
}

// UnreadCount is derived, never stored.
func (s *State) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int
	for _, notif := range s.notifications {
		if !notif.Read {
			n++
		}
	}
	return n
}

func (s *State) SetClasses(epoch int64, cls []Class) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return false
	}
	s.classes = copySlice(cls)
	return true
}

func (s *State) SetLessons(epoch int64, lsn []Lesson) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return false
	}
	s.lessons = copySlice(lsn)
	return true
}

func (s *State) SetNotifications(epoch int64, notifs []Notification) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return false
	}
	s.notifications = copySlice(notifs)
	return true
}

func (s *State) SetMessages(epoch int64, msgs []Message) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return false
	}
	s.messages = copySlice(msgs)
	return true
}

// AppendClass adds a server-confirmed Class in creation order.
func (s *State) AppendClass(epoch int64, cls Class) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return false
	}
	s.classes = append(s.classes, cls)
	return true
}

// PrependLesson adds a server-confirmed Lesson newest-first.
func (s *State) PrependLesson(epoch int64, lsn Lesson) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return false
	}
	s.lessons = append([]Lesson{lsn}, s.lessons...)
	return true
}

// PrependMessage adds a server-confirmed Message newest-first.
func (s *State) PrependMessage(epoch int64, msg Message) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return false
	}
	s.messages = append([]Message{msg}, s.messages...)
	return true
}

func (s *State) MarkNotificationRead(epoch int64, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return false
	}
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications[i].Read = true
			return true
		}
	}
	return false
}

func (s *State) DriveConnected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.driveConnected
}

func (s *State) Slides() []drive.Resource {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.slides)
}

func (s *State) Docs() []drive.Resource {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.docs)
}

// SetSlides stores a successful slide listing; a listing having succeeded is
// the only thing that ever flips the connected flag on.
func (s *State) SetSlides(epoch int64, rs []drive.Resource) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return false
	}
	s.slides = copySlice(rs)
	s.driveConnected = true
	return true
}

func (s *State) SetDocs(epoch int64, rs []drive.Resource) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return false
	}
	s.docs = copySlice(rs)
	return true
}

func copySlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
