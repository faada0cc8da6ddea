package worker

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/chris/payout-reconciliation/pkg/models"
	"github.com/chris/payout-reconciliation/pkg/queue"
	"github.com/chris/payout-reconciliation/pkg/storage"
	"github.com/rs/zerolog"
)

const (
	successSubject = "Your payout has been settled"
	failureSubject = "Your payout could not be completed"
)

// handlePassed marks the transaction as settled. The status is persisted
// before the message is deleted: if the worker crashes in between, the
// redelivered message hits the idempotency guard and no-ops.
func (w *Worker) handlePassed(ctx context.Context, logger zerolog.Logger, tx *models.Transaction, receiptHandle string) error {
	if err := w.store.UpdateTransactionStatus(ctx, tx.ReferenceID, tx.Source, models.SUCCESS); err != nil {
		if errors.Is(err, storage.ErrStatusNotPending) {
			// A concurrent delivery won the transition; its handler owns the
			// side effects, so just release this message.
			logger.Warn().Msg("lost status transition race, acknowledging message")
			return w.queue.Delete(ctx, receiptHandle)
		}
		return err
	}

	if err := w.queue.Delete(ctx, receiptHandle); err != nil {
		return err
	}

	logger.Info().Msg("payment settled successfully")

	body := fmt.Sprintf("Your payout of %s (reference %s) has settled successfully.",
		tx.Amount.String(), tx.ReferenceID)
	w.notifyUser(ctx, logger, tx, successSubject, body)

	return nil
}

// handleFailed marks the transaction as failed and issues the compensating
// refund. It is also the terminal path for retry exhaustion, so it must be
// safe to invoke from both entry points with identical semantics.
func (w *Worker) handleFailed(ctx context.Context, logger zerolog.Logger, tx *models.Transaction, receiptHandle string) error {
	if err := w.store.UpdateTransactionStatus(ctx, tx.ReferenceID, tx.Source, models.FAILED); err != nil {
		if errors.Is(err, storage.ErrStatusNotPending) {
			logger.Warn().Msg("lost status transition race, acknowledging message")
			return w.queue.Delete(ctx, receiptHandle)
		}
		return err
	}

	if err := w.queue.Delete(ctx, receiptHandle); err != nil {
		return err
	}

	logger.Info().Msg("payment failed, issuing compensating refund")

	body := fmt.Sprintf("Your payout of %s (reference %s) failed. The amount has been returned to your wallet.",
		tx.Amount.String(), tx.ReferenceID)
	w.notifyUser(ctx, logger, tx, failureSubject, body)

	if err := w.store.RefundWallet(ctx, tx.Email, tx.ReferenceID, tx.Source, tx.Amount); err != nil {
		if errors.Is(err, storage.ErrRefundAlreadyApplied) {
			logger.Info().Msg("refund already applied, nothing to do")
			return nil
		}
		return err
	}

	logger.Info().Str("amount", tx.Amount.String()).Msg("wallet refunded")
	return nil
}

// handlePending either requeues the check with an incremented retry counter
// or, once the retry bound is reached, routes the payment to the failed
// handler. Exhaustion is a deterministic business outcome, not an error.
func (w *Worker) handlePending(ctx context.Context, logger zerolog.Logger, tx *models.Transaction, msg queue.Message) error {
	retryCount := msg.RetryCount()

	if retryCount < w.maxRetries {
		next := retryCount + 1
		attributes := map[string]string{
			queue.RetryCountAttribute: strconv.Itoa(next),
		}
		// Requeue before deleting: a crash in between yields a duplicate
		// check, which the idempotency guard absorbs, whereas the opposite
		// order could lose the payment entirely.
		if err := w.publisher.Send(ctx, msg.Body, attributes, tx.ReferenceID); err != nil {
			return err
		}
		if err := w.queue.Delete(ctx, msg.ReceiptHandle); err != nil {
			return err
		}
		logger.Info().Int("retry_count", next).Msg("payment still pending, requeued for another check")
		return nil
	}

	logger.Info().Int("retry_count", retryCount).Msg("retries exhausted, treating payment as failed")
	return w.handleFailed(ctx, logger, tx, msg.ReceiptHandle)
}
