package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrMalformedIntent indicates a structured call from the classifier was
// missing required fields or carried fields of the wrong type. The caller
// must never act on partial structured data.
var ErrMalformedIntent = errors.New("malformed intent")

// ErrUnknownIntent indicates the classifier selected a function name the
// dispatcher does not recognise.
var ErrUnknownIntent = errors.New("unknown intent kind")

// ErrUpstream indicates the classifier or summarizer reported a failure.
var ErrUpstream = errors.New("upstream collaborator error")

// ErrUpstreamTimeout indicates an external call exceeded its bounded timeout.
// Kept distinct from ErrUpstream so callers can tell a slow collaborator from
// a failing one.
var ErrUpstreamTimeout = errors.New("upstream collaborator timed out")

// ErrStoreUnavailable indicates the ledger store could not be reached; no
// partial state is assumed persisted.
var ErrStoreUnavailable = errors.New("ledger store unavailable")

// PartialRecordError reports that the cash leg of a ledger pair failed after
// the item leg was already written. The orphaned item entry id is carried for
// later reconciliation and must never be swallowed.
type PartialRecordError struct {
	ItemEntryID string
	Err         error
}

func (e *PartialRecordError) Error() string {
	return fmt.Sprintf("cash leg failed after item entry %s was written: %v", e.ItemEntryID, e.Err)
}

func (e *PartialRecordError) Unwrap() error {
	return e.Err
}
