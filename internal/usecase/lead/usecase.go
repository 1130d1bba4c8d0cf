// Package lead forwards quiz and discount opt-ins to the lead webhook.
package lead

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"realreselling/internal/notify"
)

var ErrNotConfigured = errors.New("lead webhook is not configured")

type Input struct {
	Name         string
	Email        string
	Phone        string
	DiscountCode string
	Answers      map[string]string
	Source       string
}

type Usecase struct {
	sink     notify.LeadSink
	dispatch *notify.Dispatcher
}

func NewUsecase(sink notify.LeadSink, d *notify.Dispatcher) *Usecase {
	return &Usecase{sink: sink, dispatch: d}
}

// Submit forwards synchronously; unlike the purchase sinks the caller waits for the answer.
func (u *Usecase) Submit(ctx context.Context, in Input) error {
	if u.sink == nil {
		return ErrNotConfigured
	}
	res := u.sink.Lead(ctx, notify.Lead{
		Name:         strings.TrimSpace(in.Name),
		Email:        strings.TrimSpace(in.Email),
		Phone:        strings.TrimSpace(in.Phone),
		DiscountCode: in.DiscountCode,
		Answers:      in.Answers,
		Source:       in.Source,
	})
	if u.dispatch != nil {
		u.dispatch.Record(res)
	}

	switch res.Outcome {
	case notify.OutcomeSent:
		return nil
	case notify.OutcomeSkipped:
		return ErrNotConfigured
	default:
		return fmt.Errorf("forward lead: %w", res.Err)
	}
}
