package dynamodb

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/payout-reconciliation/pkg/storage"
	"github.com/chris/payout-reconciliation/pkg/storage/dynamodb/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestRefundWallet(t *testing.T) {
	amount := decimal.NewFromInt(100)

	t.Run("Credits Wallet And Appends Ledger Entry Atomically", func(t *testing.T) {
		api := new(mocks.DynamoDBAPI)
		store := newTestStore(api)

		api.On("TransactWriteItems", mock.Anything, mock.MatchedBy(func(in *dynamodb.TransactWriteItemsInput) bool {
			if len(in.TransactItems) != 2 {
				return false
			}
			update := in.TransactItems[0].Update
			put := in.TransactItems[1].Put
			if update == nil || put == nil {
				return false
			}
			creditAmount, ok := update.ExpressionAttributeValues[":amount"].(*types.AttributeValueMemberN)
			entryID, idOK := put.Item["entry_id"].(*types.AttributeValueMemberS)
			return *update.TableName == "wallets-table" &&
				*update.ConditionExpression == "attribute_exists(user_id)" &&
				ok && creditAmount.Value == "100" &&
				*put.TableName == "ledger-table" &&
				*put.ConditionExpression == "attribute_not_exists(entry_id)" &&
				idOK && entryID.Value == "reversal#stripe#ref-1"
		})).Return(&dynamodb.TransactWriteItemsOutput{}, nil)

		err := store.RefundWallet(context.Background(), "user@example.com", "ref-1", "stripe", amount)

		assert.NoError(t, err)
		api.AssertExpectations(t)
	})

	t.Run("Existing Ledger Entry Means Refund Already Applied", func(t *testing.T) {
		api := new(mocks.DynamoDBAPI)
		store := newTestStore(api)

		api.On("TransactWriteItems", mock.Anything, mock.Anything).
			Return(nil, &types.TransactionCanceledException{
				CancellationReasons: []types.CancellationReason{
					{Code: aws.String("None")},
					{Code: aws.String("ConditionalCheckFailed")},
				},
			})

		err := store.RefundWallet(context.Background(), "user@example.com", "ref-1", "stripe", amount)

		assert.ErrorIs(t, err, storage.ErrRefundAlreadyApplied)
		api.AssertExpectations(t)
	})

	t.Run("Missing Wallet", func(t *testing.T) {
		api := new(mocks.DynamoDBAPI)
		store := newTestStore(api)

		api.On("TransactWriteItems", mock.Anything, mock.Anything).
			Return(nil, &types.TransactionCanceledException{
				CancellationReasons: []types.CancellationReason{
					{Code: aws.String("ConditionalCheckFailed")},
					{Code: aws.String("None")},
				},
			})

		err := store.RefundWallet(context.Background(), "ghost@example.com", "ref-1", "stripe", amount)

		assert.ErrorIs(t, err, storage.ErrWalletNotFound)
		api.AssertExpectations(t)
	})

	t.Run("Client Error", func(t *testing.T) {
		api := new(mocks.DynamoDBAPI)
		store := newTestStore(api)

		api.On("TransactWriteItems", mock.Anything, mock.Anything).
			Return(nil, errors.New("transaction conflict"))

		err := store.RefundWallet(context.Background(), "user@example.com", "ref-1", "stripe", amount)

		assert.Error(t, err)
		assert.NotErrorIs(t, err, storage.ErrRefundAlreadyApplied)
		api.AssertExpectations(t)
	})
}
