package submission

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	domain "realreselling/internal/domain/submission"
	"realreselling/internal/logger"
	"realreselling/internal/metrics"
	"realreselling/internal/notify"
	"realreselling/pkg/id"

	"github.com/sirupsen/logrus"
)

// ImageStore uploads a proof image and returns its public URL.
type ImageStore interface {
	PutImage(ctx context.Context, contentType string, body []byte) (string, error)
}

type Usecase struct {
	repo        domain.Repository
	store       ImageStore
	webhook     notify.Webhook
	conversions notify.Conversions
	dispatch    *notify.Dispatcher
	metrics     *metrics.Metrics
	settings    Settings
	now         func() time.Time
	log         *logrus.Entry
}

// NewUsecase: store may be nil, in which case Submit reports ErrStorageNotConfigured.
func NewUsecase(
	repo domain.Repository,
	store ImageStore,
	webhook notify.Webhook,
	conversions notify.Conversions,
	dispatch *notify.Dispatcher,
	m *metrics.Metrics,
	s Settings,
) *Usecase {
	s.PublicBaseURL = strings.TrimRight(s.PublicBaseURL, "/")
	return &Usecase{
		repo:        repo,
		store:       store,
		webhook:     webhook,
		conversions: conversions,
		dispatch:    dispatch,
		metrics:     m,
		settings:    s,
		now:         time.Now,
		log:         logger.NewSublogger("submission"),
	}
}

func (u *Usecase) ApproveURL(subID, secret string) string {
	q := url.Values{}
	q.Set("id", subID)
	q.Set("secret", secret)
	return u.settings.PublicBaseURL + "/api/uplatnica/approve?" + q.Encode()
}

func (u *Usecase) AccessURL(token string) string {
	return u.settings.PublicBaseURL + "/uplatnica/hvala?token=" + url.QueryEscape(token)
}

func (u *Usecase) Submit(ctx context.Context, in SubmitInput) (*SubmitDTO, error) {
	if !strings.HasPrefix(in.ContentType, "image/") {
		u.metrics.Submission("invalid")
		return nil, domain.ErrImageType
	}
	if len(in.Image) > domain.MaxImageBytes {
		u.metrics.Submission("invalid")
		return nil, domain.ErrImageTooLarge
	}
	if u.store == nil {
		u.metrics.Submission("storage_unconfigured")
		return nil, domain.ErrStorageNotConfigured
	}

	imageURL, err := u.store.PutImage(ctx, in.ContentType, in.Image)
	if err != nil {
		u.metrics.Submission("storage_error")
		return nil, fmt.Errorf("upload image: %w", err)
	}

	s := &domain.Submission{
		ID:            id.NewSubmissionID(),
		Name:          strings.TrimSpace(in.Name),
		Email:         strings.TrimSpace(in.Email),
		ImageURL:      imageURL,
		Status:        domain.StatusPending,
		ApproveSecret: id.NewID32(),
		CreatedAt:     u.now().UTC(),
	}
	if p := strings.TrimSpace(in.Phone); p != "" {
		s.Phone = &p
	}
	if err := u.repo.Create(ctx, s); err != nil {
		u.metrics.Submission("db_error")
		return nil, fmt.Errorf("insert submission: %w", err)
	}
	u.metrics.Submission("ok")
	u.log.WithField("id", s.ID).Info("submission received")

	ev := notify.SubmissionReceived{
		ID:         s.ID,
		Name:       s.Name,
		Email:      s.Email,
		Phone:      s.PhoneValue(),
		ImageURL:   s.ImageURL,
		ApproveURL: u.ApproveURL(s.ID, s.ApproveSecret),
		CreatedAt:  s.CreatedAt,
	}
	u.dispatch.Go(func(ctx context.Context) notify.Result {
		return u.webhook.SubmissionReceived(ctx, ev)
	})

	return &SubmitDTO{ID: s.ID, ImageURL: s.ImageURL, At: s.CreatedAt}, nil
}

// Approve moves a pending submission to approved. The secret check runs before the
// status check so a wrong secret never learns the status.
func (u *Usecase) Approve(ctx context.Context, subID, secret string) (*ApproveDTO, error) {
	if subID == "" || secret == "" {
		u.metrics.Approval("bad_request")
		return nil, domain.ErrMissingLinkParams
	}

	s, err := u.repo.GetByID(ctx, subID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			u.metrics.Approval("not_found")
			return nil, domain.ErrNotFound
		}
		u.metrics.Approval("error")
		return nil, fmt.Errorf("load submission: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(s.ApproveSecret), []byte(secret)) != 1 {
		u.metrics.Approval("forbidden")
		return nil, domain.ErrSecretMismatch
	}

	if s.Status != domain.StatusPending {
		u.metrics.Approval("conflict")
		return nil, &domain.AlreadyProcessedError{Status: s.Status}
	}

	token := id.NewID32()
	at := u.now().UTC()
	ok, err := u.repo.Approve(ctx, s.ID, secret, token, at)
	if err != nil {
		u.metrics.Approval("error")
		return nil, fmt.Errorf("approve submission: %w", err)
	}
	if !ok {
		// lost the race to a concurrent approval
		u.metrics.Approval("conflict")
		return nil, &domain.AlreadyProcessedError{Status: u.currentStatus(ctx, s.ID)}
	}
	u.metrics.Approval("approved")
	u.log.WithField("id", s.ID).Info("submission approved")

	dto := &ApproveDTO{
		ID:          s.ID,
		Name:        s.Name,
		Email:       s.Email,
		AccessToken: token,
		AccessURL:   u.AccessURL(token),
		ApprovedAt:  at,
	}

	completed := notify.PurchaseCompleted{
		ID:        s.ID,
		Name:      s.Name,
		Email:     s.Email,
		Phone:     s.PhoneValue(),
		Price:     u.settings.Price,
		Currency:  u.settings.Currency,
		Method:    notify.MethodBankTransfer,
		AccessURL: dto.AccessURL,
	}
	purchase := notify.Purchase{
		EventID:   s.ID,
		EventTime: at,
		Email:     s.Email,
		Phone:     s.PhoneValue(),
		Value:     u.settings.Price,
		Currency:  u.settings.Currency,
		SourceURL: dto.AccessURL,
	}
	u.dispatch.Go(func(ctx context.Context) notify.Result {
		return u.webhook.PurchaseCompleted(ctx, completed)
	})
	u.dispatch.Go(func(ctx context.Context) notify.Result {
		return u.conversions.Purchase(ctx, purchase)
	})

	return dto, nil
}

func (u *Usecase) currentStatus(ctx context.Context, subID string) domain.Status {
	s, err := u.repo.GetByID(ctx, subID)
	if err != nil {
		return domain.StatusApproved
	}
	return s.Status
}

// ValidateToken never fails: lookup errors are logged and count as invalid.
func (u *Usecase) ValidateToken(ctx context.Context, token string) bool {
	_, ok := u.resolve(ctx, token)
	return ok
}

func (u *Usecase) Confirmation(ctx context.Context, token string) *ConfirmationDTO {
	s, ok := u.resolve(ctx, token)
	if !ok {
		return &ConfirmationDTO{Unlocked: false}
	}
	return &ConfirmationDTO{
		Unlocked: true,
		Token:    token,
		EventID:  s.ID,
		Value:    u.settings.Price,
		Currency: u.settings.Currency,
	}
}

// ReportConversion fires the server-side twin of the browser pixel event, keyed by the
// submission id. It reports false when the token does not unlock anything.
func (u *Usecase) ReportConversion(ctx context.Context, token string, sig BrowserSignals) bool {
	s, ok := u.resolve(ctx, token)
	if !ok {
		return false
	}
	sourceURL := sig.SourceURL
	if sourceURL == "" {
		sourceURL = u.AccessURL(token)
	}
	purchase := notify.Purchase{
		EventID:   s.ID,
		EventTime: u.now().UTC(),
		Email:     s.Email,
		Phone:     s.PhoneValue(),
		Value:     u.settings.Price,
		Currency:  u.settings.Currency,
		SourceURL: sourceURL,
		ClientIP:  sig.ClientIP,
		UserAgent: sig.UserAgent,
		FBP:       sig.FBP,
		FBC:       sig.FBC,
	}
	u.dispatch.Go(func(ctx context.Context) notify.Result {
		return u.conversions.Purchase(ctx, purchase)
	})
	return true
}

func (u *Usecase) resolve(ctx context.Context, token string) (*domain.Submission, bool) {
	if token == "" {
		return nil, false
	}
	s, err := u.repo.GetApprovedByAccessToken(ctx, token)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			u.log.WithError(err).Warn("token lookup failed")
		}
		return nil, false
	}
	if _, ok := s.State().(domain.Approved); !ok {
		return nil, false
	}
	return s, true
}
