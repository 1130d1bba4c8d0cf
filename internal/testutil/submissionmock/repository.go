package submissionmock

import (
	"context"
	"time"

	domain "realreselling/internal/domain/submission"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset lookups return context.Canceled so a forgotten stub fails loudly.
type Repo struct {
	CreateFn                   func(ctx context.Context, s *domain.Submission) error
	GetByIDFn                  func(ctx context.Context, id string) (*domain.Submission, error)
	ApproveFn                  func(ctx context.Context, id, secret, accessToken string, at time.Time) (bool, error)
	GetApprovedByAccessTokenFn func(ctx context.Context, token string) (*domain.Submission, error)
}

func (m *Repo) Create(ctx context.Context, s *domain.Submission) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, s)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id string) (*domain.Submission, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) Approve(ctx context.Context, id, secret, accessToken string, at time.Time) (bool, error) {
	if m.ApproveFn != nil {
		return m.ApproveFn(ctx, id, secret, accessToken, at)
	}
	return false, context.Canceled
}

func (m *Repo) GetApprovedByAccessToken(ctx context.Context, token string) (*domain.Submission, error) {
	if m.GetApprovedByAccessTokenFn != nil {
		return m.GetApprovedByAccessTokenFn(ctx, token)
	}
	return nil, context.Canceled
}

// Store is a function-backed image store.
type Store struct {
	PutImageFn func(ctx context.Context, contentType string, body []byte) (string, error)
}

func (m *Store) PutImage(ctx context.Context, contentType string, body []byte) (string, error) {
	if m.PutImageFn != nil {
		return m.PutImageFn(ctx, contentType, body)
	}
	return "", context.Canceled
}
