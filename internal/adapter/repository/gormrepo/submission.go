package gormrepo

import (
	"context"
	"errors"
	"time"

	"realreselling/internal/domain/submission"

	"gorm.io/gorm"
)

type SubmissionRepository struct{ db *gorm.DB }

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

var _ submission.Repository = (*SubmissionRepository)(nil)

func (r *SubmissionRepository) Create(ctx context.Context, s *submission.Submission) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SubmissionRepository) GetByID(ctx context.Context, id string) (*submission.Submission, error) {
	var out submission.Submission
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, submission.ErrNotFound
	}
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}

// Approve re-checks status inside the UPDATE itself, so of two concurrent calls
// only one can see RowsAffected == 1.
func (r *SubmissionRepository) Approve(ctx context.Context, id, secret, accessToken string, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&submission.Submission{}).
		Where("id = ? AND approve_secret = ? AND status = ?", id, secret, submission.StatusPending).
		Updates(map[string]any{
			"status":       submission.StatusApproved,
			"access_token": accessToken,
			"approved_at":  at.UTC(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *SubmissionRepository) GetApprovedByAccessToken(ctx context.Context, token string) (*submission.Submission, error) {
	var out submission.Submission
	res := r.db.WithContext(ctx).
		Where("access_token = ? AND status = ?", token, submission.StatusApproved).
		First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, submission.ErrNotFound
	}
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}
