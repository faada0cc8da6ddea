package storage

import (
	"context"

	"github.com/chris/payout-reconciliation/pkg/models"
)

// TransactionStore defines the interface for reading and transitioning
// payment transactions.
type TransactionStore interface {
	// GetTransaction retrieves a transaction by its reference id and source.
	GetTransaction(ctx context.Context, referenceID, source string) (*models.Transaction, error)

	// UpdateTransactionStatus transitions a transaction out of PENDING into
	// the given terminal status. The write is conditional on the current
	// status still being PENDING; ErrStatusNotPending is returned otherwise.
	UpdateTransactionStatus(ctx context.Context, referenceID, source string, status models.TransactionStatus) error
}
