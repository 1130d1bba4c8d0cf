// Package webhook posts funnel events to the automation webhook.
package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"realreselling/internal/notify"

	"github.com/go-resty/resty/v2"
)

const (
	SignatureHeader = "X-Webhook-Signature"

	EventSubmissionReceived = "submission-received"
	EventPurchaseCompleted  = "purchase-completed"
	EventLead               = "lead"
)

type Client struct {
	http   *resty.Client
	url    string
	secret string
	sink   string
}

// New returns a client for url. An empty url yields a client whose calls are skipped.
func New(url, secret string, timeout time.Duration) *Client {
	return &Client{
		http:   resty.New().SetTimeout(timeout),
		url:    url,
		secret: secret,
		sink:   "webhook",
	}
}

// WithSink renames the sink label used in results and metrics.
func (c *Client) WithSink(name string) *Client {
	c.sink = name
	return c
}

// Sign returns hex(HMAC-SHA256(secret, body)).
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

type submissionBody struct {
	Event      string    `json:"event"`
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	ImageURL   string    `json:"image_url"`
	ApproveURL string    `json:"approve_url"`
	CreatedAt  time.Time `json:"created_at"`
}

type purchaseBody struct {
	Event     string  `json:"event"`
	ID        string  `json:"id"`
	OrderID   string  `json:"orderId"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone,omitempty"`
	Price     float64 `json:"price"`
	Currency  string  `json:"currency"`
	Method    string  `json:"method"`
	AccessURL string  `json:"access_url"`
}

type leadBody struct {
	Event        string            `json:"event"`
	Name         string            `json:"name"`
	Email        string            `json:"email"`
	Phone        string            `json:"phone,omitempty"`
	DiscountCode string            `json:"discount_code,omitempty"`
	Answers      map[string]string `json:"answers,omitempty"`
	Source       string            `json:"source,omitempty"`
}

func (c *Client) SubmissionReceived(ctx context.Context, ev notify.SubmissionReceived) notify.Result {
	return c.post(ctx, submissionBody{
		Event:      EventSubmissionReceived,
		ID:         ev.ID,
		Name:       ev.Name,
		Email:      ev.Email,
		Phone:      ev.Phone,
		ImageURL:   ev.ImageURL,
		ApproveURL: ev.ApproveURL,
		CreatedAt:  ev.CreatedAt,
	})
}

func (c *Client) PurchaseCompleted(ctx context.Context, ev notify.PurchaseCompleted) notify.Result {
	return c.post(ctx, purchaseBody{
		Event:     EventPurchaseCompleted,
		ID:        ev.ID,
		OrderID:   ev.ID,
		Name:      ev.Name,
		Email:     ev.Email,
		Phone:     ev.Phone,
		Price:     ev.Price,
		Currency:  ev.Currency,
		Method:    ev.Method,
		AccessURL: ev.AccessURL,
	})
}

func (c *Client) Lead(ctx context.Context, ev notify.Lead) notify.Result {
	return c.post(ctx, leadBody{
		Event:        EventLead,
		Name:         ev.Name,
		Email:        ev.Email,
		Phone:        ev.Phone,
		DiscountCode: ev.DiscountCode,
		Answers:      ev.Answers,
		Source:       ev.Source,
	})
}

func (c *Client) post(ctx context.Context, body any) notify.Result {
	if c == nil || c.url == "" {
		return notify.Skipped(c.sinkName(), "webhook url not configured")
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return notify.Failed(c.sink, fmt.Errorf("marshal: %w", err))
	}

	req := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload)
	if c.secret != "" {
		req.SetHeader(SignatureHeader, Sign(c.secret, payload))
	}

	resp, err := req.Post(c.url)
	if err != nil {
		return notify.Failed(c.sink, err)
	}
	if !resp.IsSuccess() {
		return notify.Failed(c.sink, fmt.Errorf("webhook responded %d", resp.StatusCode()))
	}
	return notify.Sent(c.sink)
}

func (c *Client) sinkName() string {
	if c == nil {
		return "webhook"
	}
	return c.sink
}
