package util

import "errors"

var (
	ErrNotAssigned               = errors.New("test is not assigned to this student")
	ErrTestNotActive             = errors.New("test is not active")
	ErrTestNotStarted            = errors.New("test has not started yet")
	ErrTestEnded                 = errors.New("test has ended")
	ErrAlreadyAttempted          = errors.New("test already attempted")
	ErrMaxAttemptsReached        = errors.New("maximum attempts reached")
	ErrInvalidOrCompletedAttempt = errors.New("invalid or completed attempt")
	ErrAlreadySubmitted          = errors.New("attempt already submitted")
	ErrNotFound                  = errors.New("not found")
	ErrNotYetSubmitted           = errors.New("attempt not yet submitted")
	ErrSessionCompleted          = errors.New("practice session already completed")
	ErrAlreadyAnswered           = errors.New("question already answered in this session")
	ErrInvalidInput              = errors.New("invalid input")
)
