//go:generate go run go.uber.org/mock/mockgen -source=user.go -destination=../mocks/mock_user_repository.go -package=mocks
package repositories

import (
	goerrors "errors"
	"fmt"
	"topic-archive/domain"
	"topic-archive/errors"

	"github.com/dgraph-io/badger/v4"
)

type IUserRepository interface {
	StoreUser(user domain.User) error
	GetUserByID(id domain.UserID) (domain.User, error)
}

type UserRepository struct {
	db *badger.DB
}

func NewUserRepository(db *badger.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (u UserRepository) StoreUser(user domain.User) error {
	return u.db.Update(func(txn *badger.Txn) error {
		return txn.Set(userKey(user.ID), MarshalUser(user))
	})
}

func (u UserRepository) GetUserByID(id domain.UserID) (domain.User, error) {
	var user domain.User
	err := u.db.View(func(txn *badger.Txn) error {
		var err error
		user, err = getUser(txn, id)
		return err
	})
	return user, err
}

// getUser reads a user inside an existing transaction so that message
// fetches can resolve senders from the same snapshot.
func getUser(txn *badger.Txn, id domain.UserID) (domain.User, error) {
	item, err := txn.Get(userKey(id))
	if goerrors.Is(err, badger.ErrKeyNotFound) {
		return domain.User{}, fmt.Errorf("%w: %d", errors.ErrUserNotFound, id)
	}
	if err != nil {
		return domain.User{}, err
	}
	var user domain.User
	err = item.Value(func(val []byte) error {
		user, err = UnmarshalUser(val)
		return err
	})
	return user, err
}
