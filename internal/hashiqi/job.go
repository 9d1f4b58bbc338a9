// Package hashiqi checks in to the legacy VIP portal by replaying its
// ASP.NET WebForms postback. Accounts are raw session cookies; there is no
// login and no session caching. Every account gets its own notification.
package hashiqi

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hejijunhao/dailycheckin/internal/runner"
	"github.com/hejijunhao/dailycheckin/internal/site"
)

// Name is the site's registry key.
const Name = "hashiqi"

// sessionCookie must appear in a usable portal cookie.
const sessionCookie = "ASP.NET_SessionId"

var (
	// ErrCheckinFailed marks an account whose check-in did not succeed.
	ErrCheckinFailed = errors.New("hashiqi: check-in failed")

	// ErrNoSession means every configured cookie lacked a session id.
	ErrNoSession = errors.New("hashiqi: no cookie contains " + sessionCookie)
)

func init() {
	site.Register(Name, func() runner.Job { return &Job{} })
}

// Job implements runner.Job for the legacy portal.
type Job struct {
	accounts []string
	now      func() time.Time
}

func (*Job) Name() string  { return Name }
func (*Job) Title() string { return "hashiqi check-in result" }
func (*Job) Digest() bool  { return false }

// Prepare applies the session cookie filter.
func (j *Job) Prepare(rc *runner.RunContext) error {
	cfg := rc.Config.Hashiqi
	if !cfg.RequireSession {
		j.accounts = cfg.Cookies
		return nil
	}
	j.accounts = nil
	for i, c := range cfg.Cookies {
		if strings.Contains(c, sessionCookie) {
			j.accounts = append(j.accounts, c)
			continue
		}
		rc.Journal.Warn("cookie %d skipped: missing %s", i+1, sessionCookie)
	}
	if len(j.accounts) == 0 {
		return ErrNoSession
	}
	return nil
}

func (j *Job) Accounts(rc *runner.RunContext) []string {
	if j.accounts == nil {
		return rc.Config.Hashiqi.Cookies
	}
	return j.accounts
}

// CheckIn posts the form for one cookie and pushes the status block.
func (j *Job) CheckIn(ctx context.Context, rc *runner.RunContext, index int, cookie string) error {
	res := NewClient(rc.HTTP, rc.Config.Hashiqi.URL).CheckIn(ctx, strings.TrimSpace(cookie))
	rc.Metrics.Checkin(Name, res.Outcome.String(), false)

	num := index + 1
	ok := res.Outcome.OK()
	if ok {
		rc.Journal.Info("account %d: check-in succeeded: %s", num, res.Detail)
	} else {
		rc.Journal.Error("account %d: check-in failed: %s", num, res.Detail)
	}

	if rc.Reporter.Enabled() {
		err := rc.Reporter.Single(ctx, title(ok), statusBlock(num, res, j.clock()))
		rc.Metrics.Notification(Name, err)
	}
	if !ok {
		return ErrCheckinFailed
	}
	return nil
}

func (j *Job) clock() time.Time {
	if j.now != nil {
		return j.now()
	}
	return time.Now()
}

func title(ok bool) string {
	if ok {
		return "hashiqi check-in succeeded"
	}
	return "hashiqi check-in failed"
}

func statusBlock(num int, res Result, at time.Time) string {
	status := "success"
	if !res.Outcome.OK() {
		status = "failure"
	}
	detail := res.Detail
	if detail == "" {
		detail = "(empty)"
	}
	return fmt.Sprintf("hashiqi check-in result (account %d)\n├ status: %s\n├ detail: %s\n└ time: %s",
		num, status, detail, at.Format(time.DateTime))
}
