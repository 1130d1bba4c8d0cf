package submission

import "time"

type SubmitInput struct {
	Name        string
	Email       string
	Phone       string // optional
	ContentType string // declared by the client, must start with image/
	Image       []byte
}

type SubmitDTO struct {
	ID       string    `json:"id"`
	ImageURL string    `json:"image_url"`
	At       time.Time `json:"created_at"`
}

type ApproveDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	AccessToken string    `json:"-"`
	AccessURL   string    `json:"access_url"`
	ApprovedAt  time.Time `json:"approved_at"`
}

// BrowserSignals are the request details the confirmation page forwards for matching.
type BrowserSignals struct {
	SourceURL string
	ClientIP  string
	UserAgent string
	FBP       string // _fbp cookie
	FBC       string // _fbc cookie
}

// ConfirmationDTO drives the thank-you page. EventID is only set when Unlocked.
type ConfirmationDTO struct {
	Unlocked bool
	Token    string
	EventID  string
	Value    float64
	Currency string
}

// Settings are the fixed product and link parameters.
type Settings struct {
	PublicBaseURL string
	Price         float64
	Currency      string
}
