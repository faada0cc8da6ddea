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
)

// UpdateTransactionStatus transitions a transaction from PENDING to the
// given terminal status. The update is conditional on the persisted status
// still being PENDING, so two racing consumers cannot both move the same
// payment to a terminal state: the loser gets ErrStatusNotPending.
func (s *Store) UpdateTransactionStatus(ctx context.Context, referenceID, source string, status models.TransactionStatus) error {
	if !status.Terminal() {
		return fmt.Errorf("refusing to update %s/%s to non-terminal status %s", source, referenceID, status)
	}

	nowAV, err := attributevalue.Marshal(time.Now())
	if err != nil {
		return fmt.Errorf("failed to marshal timestamp for status update: %w", err)
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.TransactionsTableName),
		Key: map[string]types.AttributeValue{
			"reference_id": &types.AttributeValueMemberS{Value: referenceID},
			"source":       &types.AttributeValueMemberS{Value: source},
		},
		UpdateExpression:    aws.String("SET #status = :new_status, updated_at = :now"),
		ConditionExpression: aws.String("#status = :pending_status"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":new_status":     &types.AttributeValueMemberS{Value: string(status)},
			":pending_status": &types.AttributeValueMemberS{Value: string(models.PENDING)},
			":now":            nowAV,
		},
	}

	_, err = s.Client.UpdateItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return fmt.Errorf("transaction %s/%s: %w", source, referenceID, storage.ErrStatusNotPending)
		}
		return fmt.Errorf("failed to update transaction status: %w", err)
	}

	return nil
}
