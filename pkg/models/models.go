package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus defines the possible settlement states of a payment.
type TransactionStatus string

const (
	PENDING TransactionStatus = "PENDING"
	SUCCESS TransactionStatus = "SUCCESS"
	FAILED  TransactionStatus = "FAILED"
)

// Terminal reports whether the status is an end state. A transaction that
// reached a terminal status must never transition again.
func (s TransactionStatus) Terminal() bool {
	return s == SUCCESS || s == FAILED
}

// Transaction represents one payment attempt. It is uniquely keyed by
// (ReferenceID, Source): the external payment system's id for the attempt
// and the rail/provider that issued it.
type Transaction struct {
	ReferenceID string            `json:"reference_id"`
	Source      string            `json:"source"`
	Status      TransactionStatus `json:"status"`
	Email       string            `json:"email"`
	Amount      decimal.Decimal   `json:"amount"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// Wallet represents the internal domain model for a user's balance.
type Wallet struct {
	UserID    string          `json:"user_id"`
	Balance   decimal.Decimal `json:"balance"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ReversalActivity is the fixed activity tag carried by every reversal
// ledger entry.
const ReversalActivity = "SYSTEM_CREDIT_REVERSAL"

// ReversalLedgerEntry is an append-only audit record created alongside each
// compensating refund. Entries are written for audit and never read back by
// the reconciliation path.
type ReversalLedgerEntry struct {
	EntryID     string          `json:"entry_id"`
	ReferenceID string          `json:"reference_id"`
	Source      string          `json:"source"`
	AccountID   string          `json:"account_id"`
	Credit      decimal.Decimal `json:"credit"`
	Activity    string          `json:"activity"`
	Timestamp   time.Time       `json:"timestamp"`
}
