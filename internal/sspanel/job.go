// Package sspanel checks in to SSPANEL-based proxy panels (ikuuu and
// compatible deployments). Accounts are "email#password[#host]" or a raw
// session cookie.
package sspanel

import (
	"context"
	"errors"

	"github.com/hejijunhao/dailycheckin/internal/model"
	"github.com/hejijunhao/dailycheckin/internal/runner"
	"github.com/hejijunhao/dailycheckin/internal/session"
	"github.com/hejijunhao/dailycheckin/internal/site"
)

// Name is the site's registry key.
const Name = "sspanel"

// ErrCheckinFailed marks an account whose check-in was rejected or errored.
var ErrCheckinFailed = errors.New("sspanel: check-in failed")

func init() {
	site.Register(Name, func() runner.Job { return &Job{} })
}

// Job implements runner.Job for SSPANEL panels.
type Job struct{}

func (*Job) Name() string  { return Name }
func (*Job) Title() string { return "SSPANEL check-in result" }
func (*Job) Digest() bool  { return true }

func (*Job) Accounts(rc *runner.RunContext) []string {
	return rc.Config.SSPanel.Accounts
}

// CheckIn resolves the host, obtains a session, and checks in.
func (*Job) CheckIn(ctx context.Context, rc *runner.RunContext, _ int, desc string) error {
	acct := model.ParseAccount(desc)
	client := NewClient(rc.HTTP, rc.Journal, rc.Metrics).ForAccount(acct.Label())

	override := acct.Host
	if override == "" {
		override = rc.Config.SSPanel.Host
	}
	host := client.ResolveHost(ctx, override, rc.Config.SSPanel.MirrorURL)

	resolver := session.NewResolver(rc.Sessions, client, client, rc.Journal)
	cookie, checkedIn, err := resolver.Resolve(ctx, host, acct)
	if err != nil {
		return err
	}
	if checkedIn {
		return nil
	}
	if !client.Checkin(ctx, host, cookie, false) {
		return ErrCheckinFailed
	}
	return nil
}
