package submission

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, s *Submission) error

	GetByID(ctx context.Context, id string) (*Submission, error)

	// Approve flips a pending row to approved with the given token in one conditional
	// update. It returns false when no pending row matched id and secret.
	Approve(ctx context.Context, id, secret, accessToken string, at time.Time) (bool, error)

	// GetApprovedByAccessToken only returns rows whose status is approved.
	GetApprovedByAccessToken(ctx context.Context, token string) (*Submission, error)
}
