package errors

import "fmt"

var (
	ErrStreamNotFound        = fmt.Errorf("stream not found")
	ErrUserNotFound          = fmt.Errorf("user not found")
	ErrInvalidArchiveRequest = fmt.Errorf("invalid archive request")
	ErrMalformedRecord       = fmt.Errorf("malformed record")
)
