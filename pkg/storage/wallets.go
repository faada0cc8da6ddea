package storage

import (
	"context"

	"github.com/chris/payout-reconciliation/pkg/models"
	"github.com/shopspring/decimal"
)

// WalletStore defines the interface for reading wallets and issuing
// compensating refunds.
type WalletStore interface {
	// GetWallet retrieves a user's wallet by their user ID.
	GetWallet(ctx context.Context, userID string) (*models.Wallet, error)

	// RefundWallet credits amount back to the user's wallet and appends the
	// matching reversal ledger entry in one atomic write. Retrying a refund
	// for the same (referenceID, source) returns ErrRefundAlreadyApplied
	// without touching the balance.
	RefundWallet(ctx context.Context, userID, referenceID, source string, amount decimal.Decimal) error
}
