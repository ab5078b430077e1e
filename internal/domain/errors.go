package domain

import (
	"errors"
	"fmt"
)

var (
	ErrPoolNotFound       = errors.New("pool not found")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrNotConnected       = errors.New("wallet not connected")
	ErrSubmissionRejected = errors.New("submission rejected")
	ErrConfirmationFailed = errors.New("confirmation failed")
	ErrUnknownStake       = errors.New("unknown stake")
	ErrPoolBusy           = errors.New("pool has a transaction in progress")
	ErrInvalidTransition  = errors.New("invalid workflow transition")
	// ErrUnrecorded marks a transaction confirmed by the gateway that the
	// ledger could not apply. It must not be resubmitted.
	ErrUnrecorded = errors.New("confirmed transaction not recorded")
)

type InvalidAmountError struct {
	Amount string
	Reason string
}

func (e *InvalidAmountError) Error() string {
	return e.Reason
}

func (e *InvalidAmountError) Unwrap() error {
	return ErrInvalidAmount
}

// TransactionError is a remote-origin failure. Reason is kept verbatim for
// display; Kind is ErrSubmissionRejected or ErrConfirmationFailed.
type TransactionError struct {
	Kind   error
	Reason string
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

func (e *TransactionError) Unwrap() error {
	return e.Kind
}
