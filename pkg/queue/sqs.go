package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/google/uuid"
)

// SQSAPI defines the subset of the SQS client used by this package.
type SQSAPI interface {
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
	ChangeMessageVisibility(ctx context.Context, params *sqs.ChangeMessageVisibilityInput, optFns ...func(*sqs.Options)) (*sqs.ChangeMessageVisibilityOutput, error)
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// Client implements the Publisher and Queue interfaces using AWS SQS.
type Client struct {
	Client    SQSAPI
	QueueURL  string
	WaitTime  time.Duration
	BatchSize int
}

// NewClient creates a new SQS-backed queue client.
func NewClient(client SQSAPI, queueURL string, waitTime time.Duration, batchSize int) *Client {
	return &Client{
		Client:    client,
		QueueURL:  queueURL,
		WaitTime:  waitTime,
		BatchSize: batchSize,
	}
}

// Make sure we conform to the interfaces
var _ Publisher = (*Client)(nil)
var _ Queue = (*Client)(nil)

// ReceiveBatch long-polls SQS for a batch of messages, requesting all
// message attributes so the retry counter survives the round trip.
func (c *Client) ReceiveBatch(ctx context.Context) ([]Message, error) {
	out, err := c.Client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
		QueueUrl:              aws.String(c.QueueURL),
		MaxNumberOfMessages:   int32(c.BatchSize),
		WaitTimeSeconds:       int32(c.WaitTime / time.Second),
		MessageAttributeNames: []string{"All"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to receive messages from SQS: %w", err)
	}

	messages := make([]Message, 0, len(out.Messages))
	for _, m := range out.Messages {
		msg := Message{
			Attributes: make(map[string]string, len(m.MessageAttributes)),
		}
		if m.MessageId != nil {
			msg.ID = *m.MessageId
		}
		if m.Body != nil {
			msg.Body = *m.Body
		}
		if m.ReceiptHandle != nil {
			msg.ReceiptHandle = *m.ReceiptHandle
		}
		for name, av := range m.MessageAttributes {
			if av.StringValue != nil {
				msg.Attributes[name] = *av.StringValue
			}
		}
		messages = append(messages, msg)
	}

	return messages, nil
}

// Delete acknowledges a message permanently.
func (c *Client) Delete(ctx context.Context, receiptHandle string) error {
	_, err := c.Client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(c.QueueURL),
		ReceiptHandle: aws.String(receiptHandle),
	})
	if err != nil {
		return fmt.Errorf("failed to delete message from SQS: %w", err)
	}
	return nil
}

// ChangeVisibility extends the lease of a message by the given duration.
func (c *Client) ChangeVisibility(ctx context.Context, receiptHandle string, timeout time.Duration) error {
	_, err := c.Client.ChangeMessageVisibility(ctx, &sqs.ChangeMessageVisibilityInput{
		QueueUrl:          aws.String(c.QueueURL),
		ReceiptHandle:     aws.String(receiptHandle),
		VisibilityTimeout: int32(timeout / time.Second),
	})
	if err != nil {
		return fmt.Errorf("failed to change message visibility: %w", err)
	}
	return nil
}

// Send enqueues a message with string-typed attributes. When groupID is
// set, the message is grouped for FIFO-per-group delivery and given a
// unique deduplication id, since each requeue is a distinct check attempt.
func (c *Client) Send(ctx context.Context, body string, attributes map[string]string, groupID string) error {
	input := &sqs.SendMessageInput{
		QueueUrl:    aws.String(c.QueueURL),
		MessageBody: aws.String(body),
	}

	if len(attributes) > 0 {
		input.MessageAttributes = make(map[string]types.MessageAttributeValue, len(attributes))
		for name, value := range attributes {
			input.MessageAttributes[name] = types.MessageAttributeValue{
				DataType:    aws.String("String"),
				StringValue: aws.String(value),
			}
		}
	}

	if groupID != "" {
		input.MessageGroupId = aws.String(groupID)
		input.MessageDeduplicationId = aws.String(uuid.New().String())
	}

	_, err := c.Client.SendMessage(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send message to SQS: %w", err)
	}

	return nil
}
