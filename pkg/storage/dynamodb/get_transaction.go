package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/chris/payout-reconciliation/pkg/models"
	"github.com/chris/payout-reconciliation/pkg/storage"
)

// GetTransaction retrieves a transaction from DynamoDB by its reference id
// and source.
func (s *Store) GetTransaction(ctx context.Context, referenceID, source string) (*models.Transaction, error) {
	key, err := attributevalue.MarshalMap(map[string]string{
		"reference_id": referenceID,
		"source":       source,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transaction key: %w", err)
	}

	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.TransactionsTableName),
		Key:       key,
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("transaction %s/%s: %w", source, referenceID, storage.ErrTransactionNotFound)
	}

	var record transactionRecord
	if err := attributevalue.UnmarshalMap(result.Item, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transaction: %w", err)
	}

	return record.toModel(), nil
}
