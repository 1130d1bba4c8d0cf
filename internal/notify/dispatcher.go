package notify

import (
	"context"
	"sync"
	"time"

	"realreselling/internal/logger"
	"realreselling/internal/metrics"

	"github.com/sirupsen/logrus"
)

// Dispatcher runs sink calls off the request path with a bounded timeout and no retries.
type Dispatcher struct {
	timeout time.Duration
	metrics *metrics.Metrics
	log     *logrus.Entry
	wg      sync.WaitGroup
}

func NewDispatcher(timeout time.Duration, m *metrics.Metrics) *Dispatcher {
	return &Dispatcher{
		timeout: timeout,
		metrics: m,
		log:     logger.NewSublogger("notify"),
	}
}

// Go starts call on its own goroutine. The context is detached from the request,
// which has usually been answered by the time the sink responds.
func (d *Dispatcher) Go(call func(ctx context.Context) Result) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()
		d.Record(call(ctx))
	}()
}

// Record logs and counts a result. The result is dropped afterwards.
func (d *Dispatcher) Record(r Result) {
	d.metrics.Notification(r.Sink, string(r.Outcome))
	entry := d.log.WithField("sink", r.Sink)
	switch r.Outcome {
	case OutcomeSent:
		entry.Debug("notification sent")
	case OutcomeSkipped:
		entry.WithField("reason", r.Reason).Info("notification skipped")
	default:
		entry.WithError(r.Err).Warn("notification failed")
	}
}

// Wait blocks until every started call has finished.
func (d *Dispatcher) Wait() { d.wg.Wait() }
