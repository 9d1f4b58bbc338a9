package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hejijunhao/dailycheckin/internal/journal"
	"github.com/hejijunhao/dailycheckin/internal/model"
)

// ErrAbandon means no usable session could be obtained; skip the account.
var ErrAbandon = errors.New("session: account abandoned")

// Authenticator logs in with credentials and returns the session cookie and
// the server's message.
type Authenticator interface {
	Login(ctx context.Context, host, email, password string) (cookie, msg string, err error)
}

// Prober performs a check-in with a cookie. probe marks the optimistic
// cache-trust attempt, which only lowers the severity of a failure.
type Prober interface {
	Checkin(ctx context.Context, host, cookie string, probe bool) bool
}

// Resolver picks the cookie for an account: raw, cached, or fresh from login.
type Resolver struct {
	cache   *Cache
	auth    Authenticator
	prober  Prober
	journal *journal.Journal
}

// NewResolver creates a Resolver.
func NewResolver(cache *Cache, auth Authenticator, prober Prober, j *journal.Journal) *Resolver {
	return &Resolver{cache: cache, auth: auth, prober: prober, journal: j}
}

// Resolve returns the cookie to check in with. checkedIn is true when the
// cache-trust probe already completed the check-in and nothing is left to do.
// At most one login is issued per call.
func (r *Resolver) Resolve(ctx context.Context, host string, acct model.Account) (cookie string, checkedIn bool, err error) {
	if !acct.HasCredentials() {
		if acct.Cookie == "" {
			r.journal.Error("empty account descriptor")
			return "", false, ErrAbandon
		}
		return acct.Cookie, false, nil
	}

	if cached, ok := r.cache.Get(host, acct.Email); ok {
		r.journal.Info("%s: trying cached session", acct.Email)
		if r.prober.Checkin(ctx, host, cached, true) {
			return cached, true, nil
		}
		r.cache.Invalidate(host, acct.Email)
	}

	cookie, msg, err := r.auth.Login(ctx, host, acct.Email, acct.Password)
	if err != nil {
		r.journal.Error("%s: login failed: %v", acct.Email, err)
		return "", false, fmt.Errorf("%w: %v", ErrAbandon, err)
	}
	if cookie == "" {
		r.journal.Error("%s: login returned no session cookie", acct.Email)
		return "", false, ErrAbandon
	}
	if strings.TrimSpace(msg) == "" {
		msg = "login succeeded"
	}
	r.journal.Info("%s: %s", acct.Email, msg)
	r.cache.Put(host, acct.Email, cookie)
	return cookie, false, nil
}
