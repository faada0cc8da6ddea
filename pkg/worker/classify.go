package worker

import "strings"

// Outcome is the three-way classification of a raw gateway status.
type Outcome string

const (
	// OutcomePassed means the payment settled successfully.
	OutcomePassed Outcome = "passed"
	// OutcomeFailed means the payment definitively failed.
	OutcomeFailed Outcome = "failed"
	// OutcomePending means the payment is still in flight.
	OutcomePending Outcome = "pending"
)

// Classifier maps raw gateway status strings onto outcomes. Gateway
// vocabularies vary between providers, so the acceptable and unacceptable
// sets are supplied through configuration rather than hard-coded.
type Classifier struct {
	acceptable   map[string]struct{}
	unacceptable map[string]struct{}
}

// NewClassifier builds a classifier from the configured status sets.
// Comparison is case-insensitive.
func NewClassifier(acceptable, unacceptable []string) *Classifier {
	c := &Classifier{
		acceptable:   make(map[string]struct{}, len(acceptable)),
		unacceptable: make(map[string]struct{}, len(unacceptable)),
	}
	for _, s := range acceptable {
		c.acceptable[strings.ToLower(s)] = struct{}{}
	}
	for _, s := range unacceptable {
		c.unacceptable[strings.ToLower(s)] = struct{}{}
	}
	return c
}

// Classify returns the outcome for a raw gateway status. Any status found
// in neither set, including the empty string, defaults to pending.
func (c *Classifier) Classify(raw string) Outcome {
	status := strings.ToLower(raw)
	if _, ok := c.acceptable[status]; ok {
		return OutcomePassed
	}
	if _, ok := c.unacceptable[status]; ok {
		return OutcomeFailed
	}
	return OutcomePending
}
