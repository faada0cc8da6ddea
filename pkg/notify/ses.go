package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// SESAPI defines the subset of the SES client used by this package.
type SESAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// SESNotifier implements the Notifier interface using AWS SES.
type SESNotifier struct {
	Client SESAPI
	Sender string
}

// NewSESNotifier creates a new SESNotifier.
func NewSESNotifier(client SESAPI, sender string) *SESNotifier {
	return &SESNotifier{
		Client: client,
		Sender: sender,
	}
}

// Make sure we conform to the interface
var _ Notifier = (*SESNotifier)(nil)

// Send delivers a plain-text email to a single recipient.
func (n *SESNotifier) Send(ctx context.Context, email, subject, body string) error {
	_, err := n.Client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(n.Sender),
		Destination: &types.Destination{
			ToAddresses: []string{email},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(body)},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", email, err)
	}

	return nil
}
