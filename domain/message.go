package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Message is a single chat message inside a stream topic.
// RenderedContent is the HTML produced by the markup renderer when the
// message was posted, Content the raw source typed by the sender.
type Message struct {
	ID              uuid.UUID
	StreamID        StreamID
	Topic           string
	Sender          User
	PubDate         time.Time
	LastEditTime    *time.Time
	Content         string
	RenderedContent string
}

// DisplayTime is the last edit time when the message was edited, its
// publication time otherwise.
func (m Message) DisplayTime() time.Time {
	return lo.FromPtrOr(m.LastEditTime, m.PubDate)
}

// DatetimeToTimestamp converts a time to epoch seconds.
func DatetimeToTimestamp(t time.Time) int64 {
	return t.Unix()
}
