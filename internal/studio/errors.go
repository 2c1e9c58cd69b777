package studio

import "errors"

var (
	// ErrEmptyInput is returned when a submission is empty or
	// whitespace-only after trimming. No state changes.
	ErrEmptyInput = errors.New("empty input")

	// ErrBusy is returned when a submission arrives while another
	// orchestration is in flight. No state changes.
	ErrBusy = errors.New("generation already in progress")

	// ErrNotFound is returned when opening a history entry whose id
	// does not exist.
	ErrNotFound = errors.New("content not found")
)
