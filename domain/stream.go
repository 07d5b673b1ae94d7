// Package domain contains core concepts of the archive.
// Streams, users and messages are read-only projections of the chat store.
package domain

type StreamID int64

// Stream is a named channel of conversation.
// Only web-public streams expose their topics in the archive.
type Stream struct {
	ID          StreamID
	Name        string
	IsWebPublic bool
}
