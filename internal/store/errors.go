package store

import "errors"

var (
	// ErrSlotConflict means the requested time overlaps an existing booking.
	ErrSlotConflict        = errors.New("slot conflict")
	ErrNotFound            = errors.New("not found")
	ErrIdempotencyConflict = errors.New("idempotency key conflict")
)
