// Package capi sends server-side conversion events to the ad platform's events endpoint.
package capi

import (
	"context"
	"fmt"
	"strings"
	"time"

	"realreselling/internal/conversion"
	"realreselling/internal/notify"

	"github.com/go-resty/resty/v2"
)

const (
	DefaultBaseURL = "https://graph.facebook.com"

	EventPurchase       = "Purchase"
	ActionSourceWebsite = "website"
)

type Payload struct {
	Data          []Event `json:"data"`
	TestEventCode string  `json:"test_event_code,omitempty"`
}

type Event struct {
	EventName      string     `json:"event_name"`
	EventTime      int64      `json:"event_time"`
	EventID        string     `json:"event_id"`
	ActionSource   string     `json:"action_source"`
	EventSourceURL string     `json:"event_source_url,omitempty"`
	UserData       UserData   `json:"user_data"`
	CustomData     CustomData `json:"custom_data"`
}

type UserData struct {
	Em         []string `json:"em,omitempty"`
	Ph         []string `json:"ph,omitempty"`
	ExternalID []string `json:"external_id,omitempty"`
	ClientIP   string   `json:"client_ip_address,omitempty"`
	UserAgent  string   `json:"client_user_agent,omitempty"`
	FBP        string   `json:"fbp,omitempty"`
	FBC        string   `json:"fbc,omitempty"`
}

type CustomData struct {
	Value    float64 `json:"value"`
	Currency string  `json:"currency"`
}

type Client struct {
	http        *resty.Client
	baseURL     string
	version     string
	pixelID     string
	accessToken string
	testCode    string
	countryCode string
}

type Options struct {
	BaseURL       string
	APIVersion    string
	PixelID       string
	AccessToken   string
	TestEventCode string
	// CountryCode replaces a leading 0 in phone numbers before hashing.
	CountryCode string
	Timeout     time.Duration
}

func New(o Options) *Client {
	base := o.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	return &Client{
		http:        resty.New().SetTimeout(o.Timeout),
		baseURL:     strings.TrimRight(base, "/"),
		version:     o.APIVersion,
		pixelID:     o.PixelID,
		accessToken: o.AccessToken,
		testCode:    o.TestEventCode,
		countryCode: o.CountryCode,
	}
}

// BuildEvent maps a purchase to the wire event. Phones too short to match are left out.
func BuildEvent(p notify.Purchase, countryCode string) Event {
	ud := UserData{
		ClientIP:  p.ClientIP,
		UserAgent: p.UserAgent,
		FBP:       p.FBP,
		FBC:       p.FBC,
	}
	if em := conversion.HashEmail(p.Email); em != "" {
		ud.Em = []string{em}
		ud.ExternalID = []string{em}
	}
	if ph, ok := conversion.HashPhone(p.Phone, countryCode); ok {
		ud.Ph = []string{ph}
	}

	t := p.EventTime
	if t.IsZero() {
		t = time.Now()
	}
	return Event{
		EventName:      EventPurchase,
		EventTime:      t.Unix(),
		EventID:        p.EventID,
		ActionSource:   ActionSourceWebsite,
		EventSourceURL: p.SourceURL,
		UserData:       ud,
		CustomData:     CustomData{Value: p.Value, Currency: p.Currency},
	}
}

func (c *Client) configured() bool {
	return c != nil && c.pixelID != "" && c.accessToken != ""
}

func (c *Client) Purchase(ctx context.Context, p notify.Purchase) notify.Result {
	const sink = "capi"
	if !c.configured() {
		return notify.Skipped(sink, "pixel id or access token not configured")
	}
	if p.EventID == "" {
		return notify.Failed(sink, fmt.Errorf("purchase without event id"))
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("access_token", c.accessToken).
		SetHeader("Content-Type", "application/json").
		SetBody(Payload{
			Data:          []Event{BuildEvent(p, c.countryCode)},
			TestEventCode: c.testCode,
		}).
		Post(c.endpoint())
	if err != nil {
		return notify.Failed(sink, err)
	}
	if !resp.IsSuccess() {
		return notify.Failed(sink, fmt.Errorf("conversion api responded %d: %s", resp.StatusCode(), resp.String()))
	}
	return notify.Sent(sink)
}

func (c *Client) endpoint() string {
	return c.baseURL + "/" + c.version + "/" + c.pixelID + "/events"
}
