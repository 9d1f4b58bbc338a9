package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/hejijunhao/dailycheckin/internal/config"
	"github.com/hejijunhao/dailycheckin/internal/httpclient"
	"github.com/hejijunhao/dailycheckin/internal/journal"
	"github.com/hejijunhao/dailycheckin/internal/metrics"
	"github.com/hejijunhao/dailycheckin/internal/notify"
	"github.com/hejijunhao/dailycheckin/internal/session"
)

const finalNotifyTimeout = 15 * time.Second

// ErrPanic wraps a panic recovered from a job step.
var ErrPanic = errors.New("runner: job panicked")

// Job is one site's check-in logic.
type Job interface {
	// Name is the registry key, also used as the metrics label.
	Name() string

	// Title is the notification title for the run digest.
	Title() string

	// Accounts returns the descriptors to process, in order.
	Accounts(rc *RunContext) []string

	// CheckIn handles one account. It journals its own progress; the returned
	// error only marks the account as failed.
	CheckIn(ctx context.Context, rc *RunContext, index int, desc string) error

	// Digest reports whether the whole journal is pushed at the end of the run.
	// Jobs that notify per account return false.
	Digest() bool
}

// Preparer is implemented by jobs that validate their accounts before any
// request is made. An error aborts the run without a notification.
type Preparer interface {
	Prepare(rc *RunContext) error
}

// RunContext is the state of one invocation, passed explicitly to every step
// and discarded at exit.
type RunContext struct {
	Config   config.Config
	Journal  *journal.Journal
	Sessions *session.Cache
	Metrics  *metrics.Metrics
	HTTP     *httpclient.Client
	Reporter *notify.Reporter
	Started  time.Time

	// sleep waits before an account; replaced in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewRunContext wires the per-run state.
func NewRunContext(cfg config.Config, j *journal.Journal, client *httpclient.Client, n notify.Notifier) *RunContext {
	return &RunContext{
		Config:   cfg,
		Journal:  j,
		Sessions: session.NewCache(),
		Metrics:  metrics.New(),
		HTTP:     client,
		Reporter: notify.NewReporter(n, j, "txt"),
		Started:  time.Now(),
		sleep:    sleepCtx,
	}
}

// Summary counts per-account results.
type Summary struct {
	Accounts int
	Failed   int
}

// Run processes every account sequentially, then journals the run duration
// and pushes the digest. Per-account failures never stop the run. A panic in
// a step is recovered, journaled, notified, and returned as ErrPanic; a
// cancelled context, including one cancelled during the pre-account delay,
// stops before the next account and is returned as is.
func Run(ctx context.Context, rc *RunContext, job Job) (sum Summary, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, p)
			rc.Journal.Error("run aborted: %v", p)
			finish(ctx, rc, job, true)
		}
	}()

	if p, ok := job.(Preparer); ok {
		if err := p.Prepare(rc); err != nil {
			return sum, err
		}
	}

	accounts := job.Accounts(rc)
	sum.Accounts = len(accounts)
	slog.Debug("run started", "site", job.Name(), "accounts", len(accounts))

	for i, desc := range accounts {
		err := ctx.Err()
		if err == nil {
			err = rc.jitter(ctx)
		}
		if err != nil {
			rc.Journal.Warn("run interrupted before account %d/%d", i+1, len(accounts))
			finish(ctx, rc, job, true)
			return sum, err
		}
		slog.Debug("processing account", "site", job.Name(), "index", i+1, "total", len(accounts))
		if err := job.CheckIn(ctx, rc, i, desc); err != nil {
			sum.Failed++
			slog.Debug("account failed", "site", job.Name(), "index", i+1, "error", err)
		}
	}

	finish(ctx, rc, job, job.Digest())
	return sum, nil
}

// finish journals the duration, sends the digest when asked, and records
// run metrics. It uses a context detached from cancellation so the last
// notification is still attempted after an interrupt.
func finish(ctx context.Context, rc *RunContext, job Job, digest bool) {
	end := time.Now()
	took := end.Sub(rc.Started)
	rc.Journal.Info("run finished in %.3fs", took.Seconds())
	rc.Metrics.RunFinished(job.Name(), end, took)

	if !digest || !rc.Reporter.Enabled() {
		return
	}
	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), finalNotifyTimeout)
	defer cancel()
	rc.Metrics.Notification(job.Name(), rc.Reporter.Digest(nctx, job.Title()))
}

func (rc *RunContext) jitter(ctx context.Context) error {
	if rc.Config.Jitter <= 0 || rc.sleep == nil {
		return nil
	}
	d := time.Duration(rand.Int63n(int64(rc.Config.Jitter)))
	slog.Info("delaying before account", "delay", d.Round(time.Second))
	return rc.sleep(ctx, d)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
