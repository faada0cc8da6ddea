package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/payout-reconciliation/pkg/models"
	"github.com/chris/payout-reconciliation/pkg/storage"
	"github.com/shopspring/decimal"
)

// RefundWallet credits amount back to the user's wallet and appends the
// matching reversal ledger entry in a single TransactWriteItems call, so a
// crash can never leave the balance updated without its audit row. The
// ledger put is conditional on the deterministic entry id not existing yet,
// which makes a redelivered refund a safe no-op instead of a double credit.
func (s *Store) RefundWallet(ctx context.Context, userID, referenceID, source string, amount decimal.Decimal) error {
	now := time.Now()

	entry := reversalEntryRecord{
		EntryID:     reversalEntryID(referenceID, source),
		ReferenceID: referenceID,
		Source:      source,
		AccountID:   userID,
		Credit:      dynamoDecimal{amount},
		Activity:    models.ReversalActivity,
		Timestamp:   now,
		GSI1PK:      "REVERSAL_ENTRIES",
	}
	entryAV, err := attributevalue.MarshalMap(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal reversal entry: %w", err)
	}

	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return fmt.Errorf("failed to marshal timestamp for refund: %w", err)
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: Credit the user's wallet.
				Update: &types.Update{
					TableName: aws.String(s.WalletsTableName),
					Key: map[string]types.AttributeValue{
						"user_id": &types.AttributeValueMemberS{Value: userID},
					},
					UpdateExpression:    aws.String("SET balance = balance + :amount, updated_at = :now"),
					ConditionExpression: aws.String("attribute_exists(user_id)"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":amount": &types.AttributeValueMemberN{Value: amount.String()},
						":now":    nowAV,
					},
				},
			},
			{
				// Operation 2: Append the reversal ledger entry.
				Put: &types.Put{
					TableName:           aws.String(s.LedgerTableName),
					Item:                entryAV,
					ConditionExpression: aws.String("attribute_not_exists(entry_id)"),
				},
			},
		},
	}

	_, err = s.Client.TransactWriteItems(ctx, input)
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) && len(tce.CancellationReasons) == 2 {
			if code := tce.CancellationReasons[1].Code; code != nil && *code == "ConditionalCheckFailed" {
				return fmt.Errorf("refund for %s/%s: %w", source, referenceID, storage.ErrRefundAlreadyApplied)
			}
			if code := tce.CancellationReasons[0].Code; code != nil && *code == "ConditionalCheckFailed" {
				return fmt.Errorf("refund for %s/%s: %w", source, referenceID, storage.ErrWalletNotFound)
			}
		}
		return fmt.Errorf("failed to execute refund transaction: %w", err)
	}

	return nil
}
