// Package fixtures imports streams, users and messages described in JSON
// into the archive store.
package fixtures

import (
	"encoding/json"
	"fmt"
	"html"
	"io"
	"strings"
	"time"
	"topic-archive/domain"
	"topic-archive/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

var validate = validator.New()

// messageNamespace scopes the ids derived for messages imported without one.
var messageNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("topic-archive/fixtures/messages"))

type Fixture struct {
	Streams  []Stream  `json:"streams" validate:"dive"`
	Users    []User    `json:"users" validate:"dive"`
	Messages []Message `json:"messages" validate:"dive"`
}

type Stream struct {
	ID          int64  `json:"id" validate:"required,gt=0"`
	Name        string `json:"name" validate:"required"`
	IsWebPublic bool   `json:"is_web_public"`
}

type User struct {
	ID       int64  `json:"id" validate:"required,gt=0"`
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

type Message struct {
	ID              *uuid.UUID `json:"id,omitempty"`
	StreamID        int64      `json:"stream_id" validate:"required,gt=0"`
	Topic           string     `json:"topic" validate:"required,max=60"`
	SenderID        int64      `json:"sender_id" validate:"required,gt=0"`
	PubDate         time.Time  `json:"pub_date"`
	LastEditTime    *time.Time `json:"last_edit_time,omitempty"`
	Content         string     `json:"content" validate:"required"`
	RenderedContent string     `json:"rendered_content,omitempty"`
}

type Summary struct {
	Streams  int
	Users    int
	Messages int
}

func Load(r io.Reader) (Fixture, error) {
	var fixture Fixture
	if err := json.NewDecoder(r).Decode(&fixture); err != nil {
		return Fixture{}, fmt.Errorf("decoding fixture: %w", err)
	}
	if err := validate.Struct(fixture); err != nil {
		return Fixture{}, fmt.Errorf("invalid fixture: %w", err)
	}
	for i, m := range fixture.Messages {
		if m.PubDate.IsZero() {
			return Fixture{}, fmt.Errorf("invalid fixture: message %d has no pub_date", i)
		}
	}
	return fixture, nil
}

// Import stores streams and users before messages so that every message
// sender can be resolved once the import is done.
func Import(fixture Fixture,
	streams repositories.IStreamRepository,
	users repositories.IUserRepository,
	messages repositories.IMessageRepository,
) (Summary, error) {
	for _, s := range fixture.Streams {
		stream := domain.Stream{ID: domain.StreamID(s.ID), Name: s.Name, IsWebPublic: s.IsWebPublic}
		if err := streams.StoreStream(stream); err != nil {
			return Summary{}, fmt.Errorf("storing stream %d: %w", s.ID, err)
		}
	}
	for _, u := range fixture.Users {
		user := domain.User{ID: domain.UserID(u.ID), FullName: u.FullName, Email: u.Email}
		if err := users.StoreUser(user); err != nil {
			return Summary{}, fmt.Errorf("storing user %d: %w", u.ID, err)
		}
	}
	for i, m := range fixture.Messages {
		if err := messages.StoreMessage(toDiskMessage(m)); err != nil {
			return Summary{}, fmt.Errorf("storing message %d: %w", i, err)
		}
	}
	return Summary{
		Streams:  len(fixture.Streams),
		Users:    len(fixture.Users),
		Messages: len(fixture.Messages),
	}, nil
}

func toDiskMessage(m Message) repositories.DiskMessage {
	rendered := m.RenderedContent
	if rendered == "" {
		rendered = RenderPlain(m.Content)
	}
	return repositories.DiskMessage{
		ID:              lo.FromPtrOr(m.ID, messageID(m)),
		StreamID:        domain.StreamID(m.StreamID),
		Topic:           m.Topic,
		SenderID:        domain.UserID(m.SenderID),
		PubDate:         m.PubDate.UTC(),
		LastEditTime:    toUTC(m.LastEditTime),
		Content:         m.Content,
		RenderedContent: rendered,
	}
}

// messageID is stable across imports of the same fixture so that seeding
// twice overwrites messages instead of duplicating them.
func messageID(m Message) uuid.UUID {
	name := fmt.Sprintf("%d|%s|%d|%d|%s", m.StreamID, m.Topic, m.SenderID, m.PubDate.UnixNano(), m.Content)
	return uuid.NewSHA1(messageNamespace, []byte(name))
}

func toUTC(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	return lo.ToPtr(t.UTC())
}

// RenderPlain is the fallback renderer of messages imported without HTML:
// one escaped paragraph, line breaks kept.
func RenderPlain(content string) string {
	escaped := html.EscapeString(content)
	return "<p>" + strings.ReplaceAll(escaped, "\n", "<br>\n") + "</p>"
}
