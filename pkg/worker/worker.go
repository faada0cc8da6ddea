package worker

import (
	"context"
	"errors"
	"time"

	"github.com/chris/payout-reconciliation/pkg/gateway"
	"github.com/chris/payout-reconciliation/pkg/models"
	"github.com/chris/payout-reconciliation/pkg/notify"
	"github.com/chris/payout-reconciliation/pkg/queue"
	"github.com/chris/payout-reconciliation/pkg/storage"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// MissingTxPolicy controls how the idempotency guard reacts when no
// persisted transaction exists for a message. Whether that situation is a
// submission-path race (retryable) or data corruption (operator problem)
// was never pinned down, so the behavior is configurable instead of guessed.
type MissingTxPolicy string

const (
	// MissingTxRedeliver leaves the message for the queue to redeliver.
	MissingTxRedeliver MissingTxPolicy = "redeliver"
	// MissingTxDrop deletes the message and moves on.
	MissingTxDrop MissingTxPolicy = "drop"
)

// Config holds the dependencies and settings for a Worker. All clients are
// injected so tests can substitute fakes without global mutation.
type Config struct {
	Queue             queue.Queue
	Publisher         queue.Publisher
	Gateway           gateway.StatusChecker
	Store             storage.Storage
	Notifier          notify.Notifier
	Classifier        *Classifier
	MaxRetries        int
	PendingVisibility time.Duration
	MissingTxPolicy   MissingTxPolicy
	Logger            zerolog.Logger
}

// Worker drives queued payment checks to a terminal state: it guards
// against redelivered work, queries the gateway, classifies the result and
// dispatches to the passed/failed/pending handlers.
type Worker struct {
	queue             queue.Queue
	publisher         queue.Publisher
	gateway           gateway.StatusChecker
	store             storage.Storage
	notifier          notify.Notifier
	classifier        *Classifier
	maxRetries        int
	pendingVisibility time.Duration
	missingTxPolicy   MissingTxPolicy
	logger            zerolog.Logger
}

// New creates a new Worker.
func New(cfg Config) *Worker {
	policy := cfg.MissingTxPolicy
	if policy == "" {
		policy = MissingTxRedeliver
	}
	return &Worker{
		queue:             cfg.Queue,
		publisher:         cfg.Publisher,
		gateway:           cfg.Gateway,
		store:             cfg.Store,
		notifier:          cfg.Notifier,
		classifier:        cfg.Classifier,
		maxRetries:        cfg.MaxRetries,
		pendingVisibility: cfg.PendingVisibility,
		missingTxPolicy:   policy,
		logger:            cfg.Logger,
	}
}

// BatchResult summarizes one batch run. Failed holds the ids of messages
// that were left un-deleted and will come back through queue redelivery.
type BatchResult struct {
	Processed int
	Failed    []string
}

// OK reports whether every message in the batch completed.
func (r BatchResult) OK() bool {
	return len(r.Failed) == 0
}

// ProcessBatch processes each message independently: an error on one
// message is logged and recorded without aborting the rest of the batch.
func (w *Worker) ProcessBatch(ctx context.Context, messages []queue.Message) BatchResult {
	batchLogger := w.logger.With().Str("batch_id", uuid.New().String()).Logger()

	var result BatchResult
	for _, msg := range messages {
		if err := w.processMessage(ctx, batchLogger, msg); err != nil {
			batchLogger.Error().Err(err).Str("message_id", msg.ID).
				Msg("message processing failed, leaving for redelivery")
			result.Failed = append(result.Failed, msg.ID)
			continue
		}
		result.Processed++
	}

	return result
}

// processMessage runs the per-message protocol: parse, idempotency guard,
// gateway check, classification, dispatch. Any returned error leaves the
// message un-deleted so the queue's lease expiry redelivers it.
func (w *Worker) processMessage(ctx context.Context, logger zerolog.Logger, msg queue.Message) error {
	draft, err := parseDraft(msg.Body)
	if err != nil {
		return err
	}

	msgLogger := logger.With().
		Str("reference_id", draft.ReferenceID).
		Str("source", draft.Source).
		Logger()

	// Idempotency guard: a transaction already in a terminal state has been
	// fully handled by an earlier delivery of this check.
	tx, err := w.store.GetTransaction(ctx, draft.ReferenceID, draft.Source)
	if err != nil {
		if errors.Is(err, storage.ErrTransactionNotFound) && w.missingTxPolicy == MissingTxDrop {
			msgLogger.Warn().Msg("no persisted transaction for message, dropping per policy")
			return w.queue.Delete(ctx, msg.ReceiptHandle)
		}
		return err
	}

	if tx.Status.Terminal() {
		msgLogger.Info().Str("status", string(tx.Status)).
			Msg("transaction already terminal, acknowledging redelivered message")
		return w.queue.Delete(ctx, msg.ReceiptHandle)
	}

	raw, err := w.gateway.CheckStatus(ctx, draft.ReferenceID)
	if err != nil {
		return err
	}

	switch w.classifier.Classify(raw) {
	case OutcomePassed:
		return w.handlePassed(ctx, msgLogger, tx, msg.ReceiptHandle)
	case OutcomeFailed:
		return w.handleFailed(ctx, msgLogger, tx, msg.ReceiptHandle)
	default:
		return w.handlePending(ctx, msgLogger, tx, msg)
	}
}

// MarkPaymentAsPending extends the visibility of a message by the
// configured duration without consuming one of its retries. This is a
// one-shot utility and is not on the main retry path.
func (w *Worker) MarkPaymentAsPending(ctx context.Context, receiptHandle string) error {
	return w.queue.ChangeVisibility(ctx, receiptHandle, w.pendingVisibility)
}

// notifyUser sends a best-effort notification. Failures are logged and
// never abort the handler that triggered them.
func (w *Worker) notifyUser(ctx context.Context, logger zerolog.Logger, tx *models.Transaction, subject, body string) {
	if err := w.notifier.Send(ctx, tx.Email, subject, body); err != nil {
		logger.Error().Err(err).Str("email", tx.Email).Msg("failed to notify user")
	}
}
