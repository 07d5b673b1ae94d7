//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"fmt"
	"log/slog"
	"time"
	"topic-archive/domain"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

type IMessageRepository interface {
	StoreMessage(message DiskMessage) error
	GetTopicMessages(streamID domain.StreamID, topic string) ([]domain.Message, error)
}

type MessageRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewMessageRepository(db *badger.DB, log *slog.Logger) *MessageRepository {
	return &MessageRepository{db: db, log: log}
}

// DiskMessage is a message as persisted: the sender is referenced by id.
type DiskMessage struct {
	ID              uuid.UUID
	StreamID        domain.StreamID
	Topic           string
	SenderID        domain.UserID
	PubDate         time.Time
	LastEditTime    *time.Time
	Content         string
	RenderedContent string
}

// StoreMessage persists a message under its topic prefix.
// See messageKey for the ordering guarantees of the key.
func (m MessageRepository) StoreMessage(message DiskMessage) error {
	return m.db.Update(func(txn *badger.Txn) error {
		return txn.Set(messageKey(message), MarshalDiskMessage(message))
	})
}

// GetTopicMessages returns every message of a stream topic, oldest first,
// with senders resolved from the same read transaction.
// The topic must match exactly, case included.
func (m MessageRepository) GetTopicMessages(streamID domain.StreamID, topic string) ([]domain.Message, error) {
	var messages []domain.Message
	err := m.db.View(func(txn *badger.Txn) error {
		prefix := topicPrefix(streamID, topic)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		senders := make(map[domain.UserID]domain.User)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var diskMessage DiskMessage
			err := it.Item().Value(func(val []byte) error {
				var err error
				diskMessage, err = UnmarshalDiskMessage(val)
				return err
			})
			if err != nil {
				return fmt.Errorf("key %s: %w", it.Item().Key(), err)
			}

			sender, ok := senders[diskMessage.SenderID]
			if !ok {
				if sender, err = getUser(txn, diskMessage.SenderID); err != nil {
					return err
				}
				senders[diskMessage.SenderID] = sender
			}
			messages = append(messages, toMessage(diskMessage, sender))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	m.log.Debug("Topic messages fetched", "stream_id", streamID, "topic", topic, "count", len(messages))
	return messages, nil
}

func toMessage(message DiskMessage, sender domain.User) domain.Message {
	return domain.Message{
		ID:              message.ID,
		StreamID:        message.StreamID,
		Topic:           message.Topic,
		Sender:          sender,
		PubDate:         message.PubDate,
		LastEditTime:    message.LastEditTime,
		Content:         message.Content,
		RenderedContent: message.RenderedContent,
	}
}

// FromMessage is the inverse of toMessage, used when importing messages.
func FromMessage(message domain.Message) DiskMessage {
	return DiskMessage{
		ID:              message.ID,
		StreamID:        message.StreamID,
		Topic:           message.Topic,
		SenderID:        message.Sender.ID,
		PubDate:         message.PubDate,
		LastEditTime:    message.LastEditTime,
		Content:         message.Content,
		RenderedContent: message.RenderedContent,
	}
}
