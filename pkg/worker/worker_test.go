package worker

import (
	"context"
	"errors"
	"testing"

	gatewaymocks "github.com/chris/payout-reconciliation/pkg/gateway/mocks"
	"github.com/chris/payout-reconciliation/pkg/models"
	notifymocks "github.com/chris/payout-reconciliation/pkg/notify/mocks"
	"github.com/chris/payout-reconciliation/pkg/queue"
	queuemocks "github.com/chris/payout-reconciliation/pkg/queue/mocks"
	"github.com/chris/payout-reconciliation/pkg/storage"
	storagemocks "github.com/chris/payout-reconciliation/pkg/storage/mocks"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const testBody = `{"reference_id":"ref-1","email":"user@example.com","source":"stripe","amount":100}`

type testMocks struct {
	queue     *queuemocks.Queue
	publisher *queuemocks.Publisher
	gateway   *gatewaymocks.StatusChecker
	store     *storagemocks.Storage
	notifier  *notifymocks.Notifier
}

func (m *testMocks) assertExpectations(t *testing.T) {
	m.queue.AssertExpectations(t)
	m.publisher.AssertExpectations(t)
	m.gateway.AssertExpectations(t)
	m.store.AssertExpectations(t)
	m.notifier.AssertExpectations(t)
}

func newTestWorker(policy MissingTxPolicy) (*Worker, *testMocks) {
	m := &testMocks{
		queue:     new(queuemocks.Queue),
		publisher: new(queuemocks.Publisher),
		gateway:   new(gatewaymocks.StatusChecker),
		store:     new(storagemocks.Storage),
		notifier:  new(notifymocks.Notifier),
	}
	w := New(Config{
		Queue:           m.queue,
		Publisher:       m.publisher,
		Gateway:         m.gateway,
		Store:           m.store,
		Notifier:        m.notifier,
		Classifier:      NewClassifier([]string{"settlementcompleted"}, []string{"failed"}),
		MaxRetries:      3,
		MissingTxPolicy: policy,
		Logger:          zerolog.Nop(),
	})
	return w, m
}

func pendingTransaction() *models.Transaction {
	return &models.Transaction{
		ReferenceID: "ref-1",
		Source:      "stripe",
		Status:      models.PENDING,
		Email:       "user@example.com",
		Amount:      decimal.NewFromInt(100),
	}
}

func amountOf(n int64) interface{} {
	return mock.MatchedBy(func(a decimal.Decimal) bool {
		return a.Equal(decimal.NewFromInt(n))
	})
}

func TestProcessBatch(t *testing.T) {
	msg := queue.Message{ID: "msg-1", Body: testBody, ReceiptHandle: "rh-1"}

	t.Run("Settlement Completed", func(t *testing.T) {
		w, m := newTestWorker(MissingTxRedeliver)

		m.store.On("GetTransaction", mock.Anything, "ref-1", "stripe").Return(pendingTransaction(), nil)
		m.gateway.On("CheckStatus", mock.Anything, "ref-1").Return("settlementcompleted", nil)
		m.store.On("UpdateTransactionStatus", mock.Anything, "ref-1", "stripe", models.SUCCESS).Return(nil)
		m.queue.On("Delete", mock.Anything, "rh-1").Return(nil)
		m.notifier.On("Send", mock.Anything, "user@example.com", mock.Anything, mock.Anything).Return(nil)

		result := w.ProcessBatch(context.Background(), []queue.Message{msg})

		assert.True(t, result.OK())
		assert.Equal(t, 1, result.Processed)
		// No refund on success.
		m.store.AssertNotCalled(t, "RefundWallet", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		m.assertExpectations(t)
	})

	t.Run("Settlement Failed Issues Refund", func(t *testing.T) {
		w, m := newTestWorker(MissingTxRedeliver)

		m.store.On("GetTransaction", mock.Anything, "ref-1", "stripe").Return(pendingTransaction(), nil)
		m.gateway.On("CheckStatus", mock.Anything, "ref-1").Return("failed", nil)
		m.store.On("UpdateTransactionStatus", mock.Anything, "ref-1", "stripe", models.FAILED).Return(nil)
		m.queue.On("Delete", mock.Anything, "rh-1").Return(nil)
		m.notifier.On("Send", mock.Anything, "user@example.com", mock.Anything, mock.Anything).Return(nil)
		m.store.On("RefundWallet", mock.Anything, "user@example.com", "ref-1", "stripe", amountOf(100)).Return(nil)

		result := w.ProcessBatch(context.Background(), []queue.Message{msg})

		assert.True(t, result.OK())
		m.assertExpectations(t)
	})

	t.Run("Pending Without Retry Attribute Requeues With Count 2", func(t *testing.T) {
		w, m := newTestWorker(MissingTxRedeliver)

		m.store.On("GetTransaction", mock.Anything, "ref-1", "stripe").Return(pendingTransaction(), nil)
		m.gateway.On("CheckStatus", mock.Anything, "ref-1").Return("settlementinprocess", nil)
		m.publisher.On("Send", mock.Anything, testBody, map[string]string{queue.RetryCountAttribute: "2"}, "ref-1").Return(nil)
		m.queue.On("Delete", mock.Anything, "rh-1").Return(nil)

		result := w.ProcessBatch(context.Background(), []queue.Message{msg})

		assert.True(t, result.OK())
		m.assertExpectations(t)
	})

	t.Run("Already Terminal Skips Gateway", func(t *testing.T) {
		w, m := newTestWorker(MissingTxRedeliver)

		failedTx := pendingTransaction()
		failedTx.Status = models.FAILED
		m.store.On("GetTransaction", mock.Anything, "ref-1", "stripe").Return(failedTx, nil)
		m.queue.On("Delete", mock.Anything, "rh-1").Return(nil)

		result := w.ProcessBatch(context.Background(), []queue.Message{msg})

		assert.True(t, result.OK())
		// No duplicate side effects on redelivery.
		m.gateway.AssertNotCalled(t, "CheckStatus", mock.Anything, mock.Anything)
		m.store.AssertNotCalled(t, "UpdateTransactionStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		m.store.AssertNotCalled(t, "RefundWallet", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		m.notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		m.assertExpectations(t)
	})

	t.Run("Gateway Error Leaves Message And Continues Batch", func(t *testing.T) {
		w, m := newTestWorker(MissingTxRedeliver)

		second := queue.Message{
			ID:            "msg-2",
			Body:          `{"reference_id":"ref-2","email":"other@example.com","source":"stripe","amount":50}`,
			ReceiptHandle: "rh-2",
		}

		m.store.On("GetTransaction", mock.Anything, "ref-1", "stripe").Return(pendingTransaction(), nil)
		m.gateway.On("CheckStatus", mock.Anything, "ref-1").Return("", errors.New("gateway unavailable"))

		secondTx := &models.Transaction{
			ReferenceID: "ref-2",
			Source:      "stripe",
			Status:      models.PENDING,
			Email:       "other@example.com",
			Amount:      decimal.NewFromInt(50),
		}
		m.store.On("GetTransaction", mock.Anything, "ref-2", "stripe").Return(secondTx, nil)
		m.gateway.On("CheckStatus", mock.Anything, "ref-2").Return("settlementcompleted", nil)
		m.store.On("UpdateTransactionStatus", mock.Anything, "ref-2", "stripe", models.SUCCESS).Return(nil)
		m.queue.On("Delete", mock.Anything, "rh-2").Return(nil)
		m.notifier.On("Send", mock.Anything, "other@example.com", mock.Anything, mock.Anything).Return(nil)

		result := w.ProcessBatch(context.Background(), []queue.Message{msg, second})

		assert.False(t, result.OK())
		assert.Equal(t, 1, result.Processed)
		assert.Equal(t, []string{"msg-1"}, result.Failed)
		// The failed message must not be acknowledged.
		m.queue.AssertNotCalled(t, "Delete", mock.Anything, "rh-1")
		m.assertExpectations(t)
	})

	t.Run("Malformed Body Is Fatal For The Message", func(t *testing.T) {
		w, m := newTestWorker(MissingTxRedeliver)

		badMsg := queue.Message{ID: "msg-bad", Body: "not-json", ReceiptHandle: "rh-bad"}

		result := w.ProcessBatch(context.Background(), []queue.Message{badMsg})

		assert.Equal(t, []string{"msg-bad"}, result.Failed)
		m.store.AssertNotCalled(t, "GetTransaction", mock.Anything, mock.Anything, mock.Anything)
		m.queue.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		m.assertExpectations(t)
	})
}

func TestRetryScheduling(t *testing.T) {
	t.Run("Retry Count Below Bound Requeues", func(t *testing.T) {
		w, m := newTestWorker(MissingTxRedeliver)

		msg := queue.Message{
			ID:            "msg-1",
			Body:          testBody,
			ReceiptHandle: "rh-1",
			Attributes:    map[string]string{queue.RetryCountAttribute: "2"},
		}

		m.store.On("GetTransaction", mock.Anything, "ref-1", "stripe").Return(pendingTransaction(), nil)
		m.gateway.On("CheckStatus", mock.Anything, "ref-1").Return("settlementinprocess", nil)
		m.publisher.On("Send", mock.Anything, testBody, map[string]string{queue.RetryCountAttribute: "3"}, "ref-1").Return(nil)
		m.queue.On("Delete", mock.Anything, "rh-1").Return(nil)

		result := w.ProcessBatch(context.Background(), []queue.Message{msg})

		assert.True(t, result.OK())
		m.assertExpectations(t)
	})

	t.Run("Retry Count At Bound Routes To Failed Handler", func(t *testing.T) {
		w, m := newTestWorker(MissingTxRedeliver)

		msg := queue.Message{
			ID:            "msg-1",
			Body:          testBody,
			ReceiptHandle: "rh-1",
			Attributes:    map[string]string{queue.RetryCountAttribute: "3"},
		}

		m.store.On("GetTransaction", mock.Anything, "ref-1", "stripe").Return(pendingTransaction(), nil)
		m.gateway.On("CheckStatus", mock.Anything, "ref-1").Return("settlementinprocess", nil)
		m.store.On("UpdateTransactionStatus", mock.Anything, "ref-1", "stripe", models.FAILED).Return(nil)
		m.queue.On("Delete", mock.Anything, "rh-1").Return(nil)
		m.notifier.On("Send", mock.Anything, "user@example.com", mock.Anything, mock.Anything).Return(nil)
		m.store.On("RefundWallet", mock.Anything, "user@example.com", "ref-1", "stripe", amountOf(100)).Return(nil)

		result := w.ProcessBatch(context.Background(), []queue.Message{msg})

		assert.True(t, result.OK())
		// Exhaustion must not requeue again.
		m.publisher.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		m.assertExpectations(t)
	})

	t.Run("Unparsable Retry Count Defaults To One", func(t *testing.T) {
		w, m := newTestWorker(MissingTxRedeliver)

		msg := queue.Message{
			ID:            "msg-1",
			Body:          testBody,
			ReceiptHandle: "rh-1",
			Attributes:    map[string]string{queue.RetryCountAttribute: "garbage"},
		}

		m.store.On("GetTransaction", mock.Anything, "ref-1", "stripe").Return(pendingTransaction(), nil)
		m.gateway.On("CheckStatus", mock.Anything, "ref-1").Return("settlementinprocess", nil)
		m.publisher.On("Send", mock.Anything, testBody, map[string]string{queue.RetryCountAttribute: "2"}, "ref-1").Return(nil)
		m.queue.On("Delete", mock.Anything, "rh-1").Return(nil)

		result := w.ProcessBatch(context.Background(), []queue.Message{msg})

		assert.True(t, result.OK())
		m.assertExpectations(t)
	})
}

func TestMissingTransactionPolicy(t *testing.T) {
	msg := queue.Message{ID: "msg-1", Body: testBody, ReceiptHandle: "rh-1"}

	t.Run("Redeliver Leaves Message", func(t *testing.T) {
		w, m := newTestWorker(MissingTxRedeliver)

		m.store.On("GetTransaction", mock.Anything, "ref-1", "stripe").Return(nil, storage.ErrTransactionNotFound)

		result := w.ProcessBatch(context.Background(), []queue.Message{msg})

		assert.Equal(t, []string{"msg-1"}, result.Failed)
		m.queue.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		m.assertExpectations(t)
	})

	t.Run("Drop Deletes Message", func(t *testing.T) {
		w, m := newTestWorker(MissingTxDrop)

		m.store.On("GetTransaction", mock.Anything, "ref-1", "stripe").Return(nil, storage.ErrTransactionNotFound)
		m.queue.On("Delete", mock.Anything, "rh-1").Return(nil)

		result := w.ProcessBatch(context.Background(), []queue.Message{msg})

		assert.True(t, result.OK())
		m.assertExpectations(t)
	})
}

func TestHandlerEdgeCases(t *testing.T) {
	msg := queue.Message{ID: "msg-1", Body: testBody, ReceiptHandle: "rh-1"}

	t.Run("Notification Failure Does Not Fail The Message", func(t *testing.T) {
		w, m := newTestWorker(MissingTxRedeliver)

		m.store.On("GetTransaction", mock.Anything, "ref-1", "stripe").Return(pendingTransaction(), nil)
		m.gateway.On("CheckStatus", mock.Anything, "ref-1").Return("settlementcompleted", nil)
		m.store.On("UpdateTransactionStatus", mock.Anything, "ref-1", "stripe", models.SUCCESS).Return(nil)
		m.queue.On("Delete", mock.Anything, "rh-1").Return(nil)
		m.notifier.On("Send", mock.Anything, "user@example.com", mock.Anything, mock.Anything).Return(errors.New("smtp down"))

		result := w.ProcessBatch(context.Background(), []queue.Message{msg})

		assert.True(t, result.OK())
		m.assertExpectations(t)
	})

	t.Run("Lost Status Transition Race Acknowledges Message", func(t *testing.T) {
		// Two deliveries can both read PENDING before either writes. The
		// conditional store write resolves the race: the loser just acks.
		w, m := newTestWorker(MissingTxRedeliver)

		m.store.On("GetTransaction", mock.Anything, "ref-1", "stripe").Return(pendingTransaction(), nil)
		m.gateway.On("CheckStatus", mock.Anything, "ref-1").Return("failed", nil)
		m.store.On("UpdateTransactionStatus", mock.Anything, "ref-1", "stripe", models.FAILED).Return(storage.ErrStatusNotPending)
		m.queue.On("Delete", mock.Anything, "rh-1").Return(nil)

		result := w.ProcessBatch(context.Background(), []queue.Message{msg})

		assert.True(t, result.OK())
		// The winner owns the refund; the loser must not double-credit.
		m.store.AssertNotCalled(t, "RefundWallet", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		m.assertExpectations(t)
	})

	t.Run("Refund Already Applied Is A No-Op", func(t *testing.T) {
		w, m := newTestWorker(MissingTxRedeliver)

		m.store.On("GetTransaction", mock.Anything, "ref-1", "stripe").Return(pendingTransaction(), nil)
		m.gateway.On("CheckStatus", mock.Anything, "ref-1").Return("failed", nil)
		m.store.On("UpdateTransactionStatus", mock.Anything, "ref-1", "stripe", models.FAILED).Return(nil)
		m.queue.On("Delete", mock.Anything, "rh-1").Return(nil)
		m.notifier.On("Send", mock.Anything, "user@example.com", mock.Anything, mock.Anything).Return(nil)
		m.store.On("RefundWallet", mock.Anything, "user@example.com", "ref-1", "stripe", amountOf(100)).Return(storage.ErrRefundAlreadyApplied)

		result := w.ProcessBatch(context.Background(), []queue.Message{msg})

		assert.True(t, result.OK())
		m.assertExpectations(t)
	})
}

func TestMarkPaymentAsPending(t *testing.T) {
	w, m := newTestWorker(MissingTxRedeliver)

	m.queue.On("ChangeVisibility", mock.Anything, "rh-1", mock.Anything).Return(nil)

	err := w.MarkPaymentAsPending(context.Background(), "rh-1")

	assert.NoError(t, err)
	m.assertExpectations(t)
}
