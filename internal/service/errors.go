package service

import "errors"

// Resource-specific not-found errors. Handlers map each to a 404 with
// the matching error code so callers learn which reference was missing.
var (
	ErrTestNotFound     = errors.New("test not found")
	ErrSectionNotFound  = errors.New("section not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrOptionNotFound   = errors.New("option not found")
	ErrAttemptNotFound  = errors.New("attempt not found")
	ErrResponseNotFound = errors.New("response not found")
)
