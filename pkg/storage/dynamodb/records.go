package dynamodb

import (
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/payout-reconciliation/pkg/models"
	"github.com/shopspring/decimal"
)

// dynamoDecimal stores a decimal amount as a DynamoDB Number so that update
// expressions can do arithmetic on it.
type dynamoDecimal struct {
	decimal.Decimal
}

var _ attributevalue.Marshaler = (*dynamoDecimal)(nil)
var _ attributevalue.Unmarshaler = (*dynamoDecimal)(nil)

func (d dynamoDecimal) MarshalDynamoDBAttributeValue() (types.AttributeValue, error) {
	return &types.AttributeValueMemberN{Value: d.String()}, nil
}

func (d *dynamoDecimal) UnmarshalDynamoDBAttributeValue(av types.AttributeValue) error {
	n, ok := av.(*types.AttributeValueMemberN)
	if !ok {
		return fmt.Errorf("expected a number attribute, got %T", av)
	}
	parsed, err := decimal.NewFromString(n.Value)
	if err != nil {
		return fmt.Errorf("failed to parse decimal %q: %w", n.Value, err)
	}
	d.Decimal = parsed
	return nil
}

// transactionRecord is the DynamoDB representation of a payment attempt.
// The table is keyed by (reference_id, source).
type transactionRecord struct {
	ReferenceID string                   `dynamodbav:"reference_id"`
	Source      string                   `dynamodbav:"source"`
	Status      models.TransactionStatus `dynamodbav:"status"`
	Email       string                   `dynamodbav:"email"`
	Amount      dynamoDecimal            `dynamodbav:"amount"`
	CreatedAt   time.Time                `dynamodbav:"created_at"`
	UpdatedAt   time.Time                `dynamodbav:"updated_at"`
}

func (r *transactionRecord) toModel() *models.Transaction {
	return &models.Transaction{
		ReferenceID: r.ReferenceID,
		Source:      r.Source,
		Status:      r.Status,
		Email:       r.Email,
		Amount:      r.Amount.Decimal,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// walletRecord is the DynamoDB representation of a user's wallet.
type walletRecord struct {
	UserID    string        `dynamodbav:"user_id"`
	Balance   dynamoDecimal `dynamodbav:"balance"`
	UpdatedAt time.Time     `dynamodbav:"updated_at"`
}

func (r *walletRecord) toModel() *models.Wallet {
	return &models.Wallet{
		UserID:    r.UserID,
		Balance:   r.Balance.Decimal,
		UpdatedAt: r.UpdatedAt,
	}
}

// reversalEntryRecord is the DynamoDB representation of a reversal ledger
// entry. entry_id is deterministic per (source, reference_id) so a retried
// refund collides with the original write instead of double-crediting.
type reversalEntryRecord struct {
	EntryID     string        `dynamodbav:"entry_id"`
	ReferenceID string        `dynamodbav:"reference_id"`
	Source      string        `dynamodbav:"source"`
	AccountID   string        `dynamodbav:"account_id"`
	Credit      dynamoDecimal `dynamodbav:"credit"`
	Activity    string        `dynamodbav:"activity"`
	Timestamp   time.Time     `dynamodbav:"timestamp"`
	GSI1PK      string        `dynamodbav:"gsi1pk"`
}

func (r *reversalEntryRecord) toModel() models.ReversalLedgerEntry {
	return models.ReversalLedgerEntry{
		EntryID:     r.EntryID,
		ReferenceID: r.ReferenceID,
		Source:      r.Source,
		AccountID:   r.AccountID,
		Credit:      r.Credit.Decimal,
		Activity:    r.Activity,
		Timestamp:   r.Timestamp,
	}
}

// reversalEntryID builds the deterministic ledger key for a refund.
func reversalEntryID(referenceID, source string) string {
	return fmt.Sprintf("reversal#%s#%s", source, referenceID)
}
