package services

import "errors"

var (
	// ErrReadmeUnavailable is returned when acting on a README that was not loaded
	ErrReadmeUnavailable = errors.New("readme unavailable")
	// ErrReadmeNotFound is returned by fetchers for non-success responses
	ErrReadmeNotFound = errors.New("readme not found")
	// ErrProjectNotFound is returned for an out of range project index
	ErrProjectNotFound = errors.New("project not found")
	// ErrViewNotFound is returned for unknown or expired page views
	ErrViewNotFound = errors.New("page view not found")
)
