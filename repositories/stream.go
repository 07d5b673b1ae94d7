//go:generate go run go.uber.org/mock/mockgen -source=stream.go -destination=../mocks/mock_stream_repository.go -package=mocks
package repositories

import (
	goerrors "errors"
	"topic-archive/domain"
	"topic-archive/errors"

	"github.com/dgraph-io/badger/v4"
)

type IStreamRepository interface {
	StoreStream(stream domain.Stream) error
	GetStreamByID(id domain.StreamID) (domain.Stream, error)
}

type StreamRepository struct {
	db *badger.DB
}

func NewStreamRepository(db *badger.DB) *StreamRepository {
	return &StreamRepository{db: db}
}

func (s StreamRepository) StoreStream(stream domain.Stream) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(streamKey(stream.ID), MarshalStream(stream))
	})
}

// GetStreamByID returns errors.ErrStreamNotFound when no stream has this id.
func (s StreamRepository) GetStreamByID(id domain.StreamID) (domain.Stream, error) {
	var stream domain.Stream
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(streamKey(id))
		if goerrors.Is(err, badger.ErrKeyNotFound) {
			return errors.ErrStreamNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			stream, err = UnmarshalStream(val)
			return err
		})
	})
	if err != nil {
		return domain.Stream{}, err
	}
	return stream, nil
}
