package services

import (
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"topic-archive/avatar"
	"topic-archive/domain"
	"topic-archive/rendering"
	"topic-archive/repositories"
	"topic-archive/templates"
)

// AvatarVersion is the version sent to gravatar for every sender.
const AvatarVersion = 1

type IArchiveService interface {
	RenderArchive(streamID domain.StreamID, topic string) (domain.Document, error)
	RenderPage(w io.Writer, document domain.Document) error
}

type ArchiveService struct {
	streamRepository  repositories.IStreamRepository
	messageRepository repositories.IMessageRepository
	renderer          *templates.Renderer
	log               *slog.Logger
}

func NewArchiveService(
	streamRepository repositories.IStreamRepository,
	messageRepository repositories.IMessageRepository,
	renderer *templates.Renderer,
	log *slog.Logger,
) *ArchiveService {
	return &ArchiveService{
		streamRepository:  streamRepository,
		messageRepository: messageRepository,
		renderer:          renderer,
		log:               log,
	}
}

// RenderArchive builds the archive page data of one topic.
// A missing stream is the only error of the happy path: private streams and
// empty topics give a document without messages.
func (s *ArchiveService) RenderArchive(streamID domain.StreamID, topic string) (domain.Document, error) {
	// 1. Resolve the stream, errors.ErrStreamNotFound goes up untouched
	stream, err := s.streamRepository.GetStreamByID(streamID)
	if err != nil {
		return domain.Document{}, err
	}
	document := domain.Document{Stream: stream.Name, Topic: topic}

	// 2. Nothing is read from a stream that is not web-public
	if !stream.IsWebPublic {
		s.log.Debug("Archive requested for a non web-public stream", "stream_id", streamID)
		return document, nil
	}
	document.IsWebPublic = true

	// 3. Ordered fetch
	messages, err := s.messageRepository.GetTopicMessages(streamID, topic)
	if err != nil {
		return domain.Document{}, fmt.Errorf("fetching topic messages: %w", err)
	}
	if len(messages) == 0 {
		return document, nil
	}

	// 4. Per-message rendering
	for _, fragment := range BuildFragments(messages) {
		rendered, err := s.renderer.RenderToString(templates.SingleMessageTemplate, fragment)
		if err != nil {
			return domain.Document{}, fmt.Errorf("rendering message: %w", err)
		}
		document.MessageList = append(document.MessageList, rendered)
	}
	return document, nil
}

// RenderPage writes the full HTML page of a document.
func (s *ArchiveService) RenderPage(w io.Writer, document domain.Document) error {
	return s.renderer.Render(w, templates.IndexTemplate, document)
}

// BuildFragments walks messages in order and decides, for each of them,
// whether the sender header is shown. A header is shown when the sender
// changes and around every status message, which also forgets the previous
// sender.
func BuildFragments(messages []domain.Message) []domain.Fragment {
	fragments := make([]domain.Fragment, 0, len(messages))
	var prevSender *domain.UserID
	for _, msg := range messages {
		isStatus := rendering.IsStatusMessage(msg.Content, msg.RenderedContent)
		includeSender := prevSender == nil || *prevSender != msg.Sender.ID || isStatus
		if includeSender {
			if isStatus {
				prevSender = nil
			} else {
				senderID := msg.Sender.ID
				prevSender = &senderID
			}
		}

		fragment := domain.Fragment{
			SenderFullName:  msg.Sender.FullName,
			Timestamp:       domain.DatetimeToTimestamp(msg.DisplayTime()),
			MessageContent:  template.HTML(msg.RenderedContent),
			AvatarURL:       avatar.GravatarURL(msg.Sender.Email, AvatarVersion),
			IncludeSender:   includeSender,
			IsStatusMessage: isStatus,
		}
		if isStatus {
			fragment.StatusMessage = template.HTML(rendering.StatusMessageText(msg.RenderedContent))
		}
		fragments = append(fragments, fragment)
	}
	return fragments
}
