package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/trezcool/lessonhub/core/classroom"
)

const (
	classesPath       = "/api/classes"
	lessonsPath       = "/api/lessons"
	notificationsPath = "/api/notifications"
	messagesPath      = "/api/messages"
)

var _ classroom.Backend = (*Client)(nil)

// Dashboard fetches the four primary collections in one concurrent batch and
// returns whatever subset succeeded.
func (c *Client) Dashboard(ctx context.Context) classroom.Collections {
	raws := c.BatchGet(ctx, map[string]string{
		"classes":       classesPath,
		"lessons":       lessonsPath,
		"notifications": notificationsPath,
		"messages":      messagesPath,
	})
	return classroom.Collections{
		Classes:       decodeList[classroom.Class](c.log, raws, "classes"),
		Lessons:       decodeList[classroom.Lesson](c.log, raws, "lessons"),
		Notifications: decodeList[classroom.Notification](c.log, raws, "notifications"),
		Messages:      decodeList[classroom.Message](c.log, raws, "messages"),
	}
}

func (c *Client) CreateClass(ctx context.Context, nc classroom.NewClass) (classroom.Class, error) {
	var cls classroom.Class
	if err := c.do(ctx, http.MethodPost, classesPath, "", nc, &cls); err != nil {
		return classroom.Class{}, err
	}
	return cls, nil
}

func (c *Client) CreateLesson(ctx context.Context, nl classroom.NewLesson) (classroom.Lesson, error) {
	var lsn classroom.Lesson
	if err := c.do(ctx, http.MethodPost, lessonsPath, "", nl, &lsn); err != nil {
		return classroom.Lesson{}, err
	}
	return lsn, nil
}

func (c *Client) SendMessage(ctx context.Context, nm classroom.NewMessage) (classroom.Message, error) {
	var msg classroom.Message
	if err := c.do(ctx, http.MethodPost, messagesPath, "", nm, &msg); err != nil {
		return classroom.Message{}, err
	}
	return msg, nil
}

func (c *Client) GetClass(ctx context.Context, id string) (classroom.Class, error) {
	var cls classroom.Class
	if err := c.do(ctx, http.MethodGet, classesPath+"/"+url.PathEscape(id), "", nil, &cls); err != nil {
		return classroom.Class{}, err
	}
	return cls, nil
}

func (c *Client) LessonsForClass(ctx context.Context, classID string) ([]classroom.Lesson, error) {
	var lsns []classroom.Lesson
	path := lessonsPath + "?class_id=" + url.QueryEscape(classID)
	if err := c.do(ctx, http.MethodGet, path, "", nil, &lsns); err != nil {
		return nil, err
	}
	return lsns, nil
}

func (c *Client) Conversation(ctx context.Context, userID string) ([]classroom.Message, error) {
	var msgs []classroom.Message
	path := messagesPath + "?recipient_id=" + url.QueryEscape(userID)
	if err := c.do(ctx, http.MethodGet, path, "", nil, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	path := notificationsPath + "/" + url.PathEscape(id) + "/read"
	return c.do(ctx, http.MethodPut, path, "", nil, nil)
}
