package submission

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidLink is the class shared by every approval-link failure that must not
	// tell an unknown id apart from a wrong secret.
	ErrInvalidLink    = errors.New("invalid approval link")
	ErrNotFound       = fmt.Errorf("%w: submission not found", ErrInvalidLink)
	ErrSecretMismatch = fmt.Errorf("%w: secret mismatch", ErrInvalidLink)

	ErrMissingLinkParams = errors.New("missing id or secret")

	ErrStorageNotConfigured = errors.New("object storage is not configured")
	ErrImageTooLarge        = errors.New("image exceeds 10 MB")
	ErrImageType            = errors.New("file must be an image")
)

// MaxImageBytes caps the proof-of-payment upload.
const MaxImageBytes = 10 << 20

// AlreadyProcessedError reports the status a submission was found in
// when an approval attempt arrived after it left pending.
type AlreadyProcessedError struct{ Status Status }

func (e *AlreadyProcessedError) Error() string {
	return "submission already processed (status: " + string(e.Status) + ")"
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Table: submissions
type Submission struct {
	ID            string     `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	Name          string     `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Email         string     `gorm:"column:email;type:varchar(320);not null;index" json:"email"`
	Phone         *string    `gorm:"column:phone;type:varchar(64)" json:"phone,omitempty"`
	ImageURL      string     `gorm:"column:image_url;type:text;not null" json:"image_url"`
	Status        Status     `gorm:"column:status;type:varchar(16);not null;default:'pending';index" json:"status"`
	ApproveSecret string     `gorm:"column:approve_secret;type:char(32);not null" json:"-"`
	AccessToken   *string    `gorm:"column:access_token;type:char(32);uniqueIndex:ux_submissions_access_token" json:"-"`
	ApprovedAt    *time.Time `gorm:"column:approved_at" json:"approved_at,omitempty"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Submission) TableName() string { return "submissions" }

// State is the tagged view of a submission: Pending, Approved or Rejected.
type State interface{ isState() }

type Pending struct{ Secret string }

type Approved struct {
	Token string
	At    time.Time
}

type Rejected struct{}

func (Pending) isState()  {}
func (Approved) isState() {}
func (Rejected) isState() {}

// State derives the tagged state from the stored row. An approved row without a
// token is reported as Rejected so the token is never read from a row that cannot carry one.
func (s *Submission) State() State {
	switch s.Status {
	case StatusPending:
		return Pending{Secret: s.ApproveSecret}
	case StatusApproved:
		if s.AccessToken == nil || *s.AccessToken == "" {
			return Rejected{}
		}
		var at time.Time
		if s.ApprovedAt != nil {
			at = *s.ApprovedAt
		}
		return Approved{Token: *s.AccessToken, At: at}
	default:
		return Rejected{}
	}
}

// PhoneValue returns the stored phone or "".
func (s *Submission) PhoneValue() string {
	if s.Phone == nil {
		return ""
	}
	return *s.Phone
}
