// Package notifymock holds function-backed sinks that record every call.
package notifymock

import (
	"context"
	"sync"

	"realreselling/internal/notify"
)

var (
	_ notify.Webhook     = (*Webhook)(nil)
	_ notify.Conversions = (*Conversions)(nil)
	_ notify.LeadSink    = (*LeadSink)(nil)
)

// Webhook records events; unset funcs answer Sent.
type Webhook struct {
	SubmissionReceivedFn func(ctx context.Context, ev notify.SubmissionReceived) notify.Result
	PurchaseCompletedFn  func(ctx context.Context, ev notify.PurchaseCompleted) notify.Result

	mu        sync.Mutex
	Received  []notify.SubmissionReceived
	Completed []notify.PurchaseCompleted
}

func (m *Webhook) SubmissionReceived(ctx context.Context, ev notify.SubmissionReceived) notify.Result {
	m.mu.Lock()
	m.Received = append(m.Received, ev)
	m.mu.Unlock()
	if m.SubmissionReceivedFn != nil {
		return m.SubmissionReceivedFn(ctx, ev)
	}
	return notify.Sent("webhook")
}

func (m *Webhook) PurchaseCompleted(ctx context.Context, ev notify.PurchaseCompleted) notify.Result {
	m.mu.Lock()
	m.Completed = append(m.Completed, ev)
	m.mu.Unlock()
	if m.PurchaseCompletedFn != nil {
		return m.PurchaseCompletedFn(ctx, ev)
	}
	return notify.Sent("webhook")
}

type Conversions struct {
	PurchaseFn func(ctx context.Context, ev notify.Purchase) notify.Result

	mu        sync.Mutex
	Purchases []notify.Purchase
}

func (m *Conversions) Purchase(ctx context.Context, ev notify.Purchase) notify.Result {
	m.mu.Lock()
	m.Purchases = append(m.Purchases, ev)
	m.mu.Unlock()
	if m.PurchaseFn != nil {
		return m.PurchaseFn(ctx, ev)
	}
	return notify.Sent("capi")
}

type LeadSink struct {
	LeadFn func(ctx context.Context, ev notify.Lead) notify.Result

	mu    sync.Mutex
	Leads []notify.Lead
}

func (m *LeadSink) Lead(ctx context.Context, ev notify.Lead) notify.Result {
	m.mu.Lock()
	m.Leads = append(m.Leads, ev)
	m.mu.Unlock()
	if m.LeadFn != nil {
		return m.LeadFn(ctx, ev)
	}
	return notify.Sent("lead-webhook")
}
