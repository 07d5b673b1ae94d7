package domain

type UserID int64

type User struct {
	ID       UserID
	FullName string
	Email    string
}
