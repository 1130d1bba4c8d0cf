package notifymock

import (
	"context"
	"errors"
	"testing"

	"realreselling/internal/notify"
)

func TestWebhook_RecordsAndDefaults(t *testing.T) {
	m := &Webhook{}
	res := m.SubmissionReceived(context.Background(), notify.SubmissionReceived{ID: "a"})
	if !res.OK() {
		t.Fatalf("default result: %+v", res)
	}
	if len(m.Received) != 1 || m.Received[0].ID != "a" {
		t.Fatalf("received = %+v", m.Received)
	}
}

func TestConversions_UsesFn(t *testing.T) {
	boom := errors.New("boom")
	m := &Conversions{PurchaseFn: func(context.Context, notify.Purchase) notify.Result {
		return notify.Failed("capi", boom)
	}}
	res := m.Purchase(context.Background(), notify.Purchase{EventID: "e"})
	if res.Outcome != notify.OutcomeFailed || !errors.Is(res.Err, boom) {
		t.Fatalf("result = %+v", res)
	}
	if len(m.Purchases) != 1 {
		t.Fatalf("purchase not recorded")
	}
}

func TestLeadSink_Records(t *testing.T) {
	m := &LeadSink{}
	m.Lead(context.Background(), notify.Lead{Email: "a@b.co"})
	if len(m.Leads) != 1 || m.Leads[0].Email != "a@b.co" {
		t.Fatalf("leads = %+v", m.Leads)
	}
}
