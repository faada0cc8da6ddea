package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/payout-reconciliation/pkg/models"
)

const ledgerGSI = "gsi1pk-timestamp-index"

// ListReversalEntries retrieves the most recent reversal ledger entries.
func (s *Store) ListReversalEntries(ctx context.Context, limit int32) ([]models.ReversalLedgerEntry, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.LedgerTableName),
		IndexName:              aws.String(ledgerGSI),
		KeyConditionExpression: aws.String("gsi1pk = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: "REVERSAL_ENTRIES"},
		},
		ScanIndexForward: aws.Bool(false), // Sort by timestamp in descending order
		Limit:            &limit,
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query for reversal entries: %w", err)
	}

	var records []reversalEntryRecord
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal reversal entries: %w", err)
	}

	entries := make([]models.ReversalLedgerEntry, len(records))
	for i := range records {
		entries[i] = records[i].toModel()
	}

	return entries, nil
}
