package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"realreselling/internal/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captured struct {
	body      []byte
	signature string
}

func newCapturingServer(t *testing.T, status int, out *captured) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		out.body, _ = io.ReadAll(r.Body)
		out.signature = r.Header.Get(SignatureHeader)
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestPurchaseCompleted_SignsBody(t *testing.T) {
	var got captured
	srv := newCapturingServer(t, http.StatusOK, &got)
	c := New(srv.URL, "shh", time.Second)

	res := c.PurchaseCompleted(context.Background(), notify.PurchaseCompleted{
		ID: "sub-1", Name: "Ana Anić", Email: "ana@example.com",
		Price: 4990, Currency: "RSD", Method: notify.MethodBankTransfer,
		AccessURL: "https://realreselling.rs/uplatnica/hvala?token=t",
	})
	require.True(t, res.OK(), "result: %+v", res)

	assert.Equal(t, Sign("shh", got.body), got.signature)

	var body map[string]any
	require.NoError(t, json.Unmarshal(got.body, &body))
	assert.Equal(t, EventPurchaseCompleted, body["event"])
	assert.Equal(t, "sub-1", body["orderId"])
	assert.Equal(t, "bank-transfer", body["method"])
	assert.EqualValues(t, 4990, body["price"])
}

func TestSubmissionReceived_NoSecretNoHeader(t *testing.T) {
	var got captured
	srv := newCapturingServer(t, http.StatusAccepted, &got)
	c := New(srv.URL, "", time.Second)

	res := c.SubmissionReceived(context.Background(), notify.SubmissionReceived{
		ID: "sub-2", Name: "Ana", Email: "ana@example.com",
		ImageURL: "https://cdn/x.jpg", ApproveURL: "https://site/api/uplatnica/approve?id=sub-2&secret=s",
	})
	require.True(t, res.OK())
	assert.Empty(t, got.signature)

	var body submissionBody
	require.NoError(t, json.Unmarshal(got.body, &body))
	assert.Equal(t, EventSubmissionReceived, body.Event)
	assert.Equal(t, "https://cdn/x.jpg", body.ImageURL)
	assert.Contains(t, body.ApproveURL, "secret=s")
}

func TestPost_NonSuccessIsFailure(t *testing.T) {
	var got captured
	srv := newCapturingServer(t, http.StatusBadGateway, &got)
	res := New(srv.URL, "", time.Second).Lead(context.Background(), notify.Lead{Email: "a@b.co"})
	assert.Equal(t, notify.OutcomeFailed, res.Outcome)
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "502")
}

func TestPost_UnconfiguredIsSkipped(t *testing.T) {
	res := New("", "", time.Second).Lead(context.Background(), notify.Lead{})
	assert.Equal(t, notify.OutcomeSkipped, res.Outcome)

	var nilClient *Client
	res = nilClient.PurchaseCompleted(context.Background(), notify.PurchaseCompleted{})
	assert.Equal(t, notify.OutcomeSkipped, res.Outcome)
}

func TestPost_TimeoutIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(srv.Close)

	res := New(srv.URL, "", 20*time.Millisecond).WithSink("lead-webhook").Lead(context.Background(), notify.Lead{})
	assert.Equal(t, notify.OutcomeFailed, res.Outcome)
	assert.Equal(t, "lead-webhook", res.Sink)
}
