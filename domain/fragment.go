package domain

import "html/template"

// Fragment holds everything the per-message template needs.
// StatusMessage is only set when IsStatusMessage is true.
type Fragment struct {
	SenderFullName  string
	Timestamp       int64
	MessageContent  template.HTML
	AvatarURL       string
	IncludeSender   bool
	IsStatusMessage bool
	StatusMessage   template.HTML
}

// Document is the data of the archive page itself.
type Document struct {
	IsWebPublic bool
	MessageList []template.HTML
	Stream      string
	Topic       string
}
