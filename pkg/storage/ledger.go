package storage

import (
	"context"

	"github.com/chris/payout-reconciliation/pkg/models"
)

// LedgerReader defines the interface for reading reversal ledger data.
// It exists for the operator audit surface; the reconciliation path only
// ever appends.
type LedgerReader interface {
	// ListReversalEntries retrieves the most recent reversal entries.
	ListReversalEntries(ctx context.Context, limit int32) ([]models.ReversalLedgerEntry, error)
}
