package worker

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// ErrMalformedMessage is returned when a message body does not parse into
// the expected payment-check shape. It is fatal for that message.
var ErrMalformedMessage = errors.New("malformed message body")

// paymentDraft is the parsed body of a payment-check message.
type paymentDraft struct {
	ReferenceID string          `json:"reference_id"`
	Email       string          `json:"email"`
	Source      string          `json:"source"`
	Amount      decimal.Decimal `json:"amount"`
}

// parseDraft decodes a message body into a payment draft and validates the
// fields needed to key the persisted transaction.
func parseDraft(body string) (*paymentDraft, error) {
	var draft paymentDraft
	if err := json.Unmarshal([]byte(body), &draft); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	if draft.ReferenceID == "" || draft.Source == "" || draft.Email == "" {
		return nil, fmt.Errorf("%w: missing reference_id, source or email", ErrMalformedMessage)
	}
	return &draft, nil
}
