package domain

import "errors"

// Match and messaging errors
var (
	ErrMatchNotFound  = errors.New("match not found")
	ErrNotParticipant = errors.New("user is not a participant of this match")
	ErrEmptyContent   = errors.New("message content cannot be empty")
	ErrSelfSwipe      = errors.New("cannot swipe on yourself")
)

// Account errors
var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailExists  = errors.New("email already registered")
	ErrUserLocked   = errors.New("account is locked")
)
