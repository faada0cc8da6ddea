package queue

import (
	"context"
	"strconv"
	"time"
)

// RetryCountAttribute is the message attribute carrying the number of
// pending-classification attempts already made for a payment check.
const RetryCountAttribute = "RetryCount"

// DefaultRetryCount is assumed when the attribute is absent or unparsable.
const DefaultRetryCount = 1

// Message is one leased queue message. The receipt handle is the opaque
// lease token required to delete the message or extend its visibility; it
// becomes invalid once the message is deleted or the lease expires.
type Message struct {
	ID            string
	Body          string
	ReceiptHandle string
	Attributes    map[string]string
}

// RetryCount parses the RetryCount attribute, defaulting to
// DefaultRetryCount when the attribute is missing or not an integer.
func (m Message) RetryCount() int {
	raw, ok := m.Attributes[RetryCountAttribute]
	if !ok {
		return DefaultRetryCount
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return DefaultRetryCount
	}
	return n
}

// Publisher defines the send-only capability of the queue. The worker holds
// a Publisher rather than embedding one so that tests can substitute it
// independently of the consuming side.
type Publisher interface {
	// Send enqueues a message. groupID keeps messages for the same payment
	// in relative delivery order on queues that support grouped ordering.
	Send(ctx context.Context, body string, attributes map[string]string, groupID string) error
}

// Queue defines the consuming capabilities: receive a batch of leased
// messages, acknowledge one permanently, or extend one lease.
type Queue interface {
	// ReceiveBatch long-polls the queue for a batch of messages.
	ReceiveBatch(ctx context.Context) ([]Message, error)

	// Delete acknowledges a message permanently, releasing its lease.
	Delete(ctx context.Context, receiptHandle string) error

	// ChangeVisibility extends the lease of a message by the given duration.
	ChangeVisibility(ctx context.Context, receiptHandle string, timeout time.Duration) error
}
