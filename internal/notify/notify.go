// Package notify carries best-effort calls to external sinks (automation webhook,
// ad conversion API). Every call produces a Result; the Dispatcher logs and counts
// it and nothing else looks at it.
package notify

import (
	"context"
	"time"
)

type Outcome string

const (
	OutcomeSent    Outcome = "sent"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

type Result struct {
	Sink    string
	Outcome Outcome
	Err     error
	// Reason explains a skip, e.g. a missing env variable.
	Reason string
}

func Sent(sink string) Result { return Result{Sink: sink, Outcome: OutcomeSent} }

func Skipped(sink, reason string) Result {
	return Result{Sink: sink, Outcome: OutcomeSkipped, Reason: reason}
}

func Failed(sink string, err error) Result {
	return Result{Sink: sink, Outcome: OutcomeFailed, Err: err}
}

func (r Result) OK() bool { return r.Outcome == OutcomeSent }

// SubmissionReceived is posted to the automation webhook after intake.
type SubmissionReceived struct {
	ID         string
	Name       string
	Email      string
	Phone      string
	ImageURL   string
	ApproveURL string
	CreatedAt  time.Time
}

// MethodBankTransfer is the payment method reported for approved uplatnica purchases.
const MethodBankTransfer = "bank-transfer"

// PurchaseCompleted is posted to the automation webhook after approval.
type PurchaseCompleted struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Price     float64
	Currency  string
	Method    string
	AccessURL string
}

// Lead is a quiz/discount opt-in forwarded to the lead webhook.
type Lead struct {
	Name         string
	Email        string
	Phone        string
	DiscountCode string
	Answers      map[string]string
	Source       string
}

// Purchase is one firing of the ad-platform Purchase event. EventID is the
// deduplication key and must be identical across the server and browser firings.
type Purchase struct {
	EventID   string
	EventTime time.Time
	Email     string
	Phone     string
	Value     float64
	Currency  string
	SourceURL string
	ClientIP  string
	UserAgent string
	FBP       string
	FBC       string
}

type Webhook interface {
	SubmissionReceived(ctx context.Context, ev SubmissionReceived) Result
	PurchaseCompleted(ctx context.Context, ev PurchaseCompleted) Result
}

type LeadSink interface {
	Lead(ctx context.Context, ev Lead) Result
}

type Conversions interface {
	Purchase(ctx context.Context, ev Purchase) Result
}
