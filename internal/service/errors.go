package service

import "errors"

var (
	ErrItemNotFound  = errors.New("item not found")
	ErrEntryNotFound = errors.New("ledger entry not found")
	ErrLineNotFound  = errors.New("order line not found")
	ErrBatchNotFound = errors.New("batch not found")

	ErrValidation        = errors.New("validation failed")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotUndoable       = errors.New("entry cannot be undone")

	// ErrPartialBatch means some lines of a dispatch were applied and some failed.
	ErrPartialBatch = errors.New("dispatch partially applied")
	ErrQueueBusy    = errors.New("order queue busy")
)
