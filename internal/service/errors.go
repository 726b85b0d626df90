package service

import (
	"errors"
	"fmt"
)

// ErrUserNotFound is matched by every UserNotFoundError.
var ErrUserNotFound = errors.New("user not found")

// UserNotFoundError reports an operation that needed an existing user.
type UserNotFoundError struct {
	UserID int64
}

func (e *UserNotFoundError) Error() string {
	return fmt.Sprintf("user not found with id: %d", e.UserID)
}

func (e *UserNotFoundError) Is(target error) bool { return target == ErrUserNotFound }
