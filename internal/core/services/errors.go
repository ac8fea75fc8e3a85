package services

import "errors"

// Task errors
var (
	ErrTaskNotFound         = errors.New("task: not found")
	ErrTaskInvalidInput     = errors.New("task: invalid input")
	ErrTaskInvalidStartTime = errors.New("task: start time must be HH:MM")
	ErrTaskInvalidDuration  = errors.New("task: duration must not be negative")
	ErrTaskNotPending       = errors.New("task: only pending tasks can be completed")
)

// User errors
var (
	ErrUserNotFound    = errors.New("user: not found")
	ErrUsernameTaken   = errors.New("user: username already taken")
	ErrUsernameInvalid = errors.New("user: username must be 3-30 characters, lowercase letters, digits and underscores")
)

// Follow errors
var (
	ErrFollowSelf     = errors.New("follow: cannot follow yourself")
	ErrFollowNotFound = errors.New("follow: not following this user")
)

// Scanner errors
var (
	ErrScanQueryFailed = errors.New("scanner: pending task query failed")
)
