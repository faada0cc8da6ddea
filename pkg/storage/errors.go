package storage

import "errors"

// ErrTransactionNotFound is returned when no transaction exists for a
// (referenceID, source) pair.
var ErrTransactionNotFound = errors.New("transaction not found")

// ErrWalletNotFound is returned when no wallet exists for a user.
var ErrWalletNotFound = errors.New("wallet not found")

// ErrStatusNotPending is returned when a status transition is attempted on
// a transaction that is no longer PENDING. Terminal states are one-shot.
var ErrStatusNotPending = errors.New("transaction status is not pending")

// ErrRefundAlreadyApplied is returned when a refund for a reference has
// already been recorded, making the retried refund a no-op.
var ErrRefundAlreadyApplied = errors.New("refund already applied")
