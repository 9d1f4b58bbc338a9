package sspanel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/hejijunhao/dailycheckin/internal/classifier"
	"github.com/hejijunhao/dailycheckin/internal/httpclient"
	"github.com/hejijunhao/dailycheckin/internal/journal"
	"github.com/hejijunhao/dailycheckin/internal/metrics"
	"github.com/hejijunhao/dailycheckin/internal/model"
)

// FallbackHost is used when mirror discovery fails.
const FallbackHost = "https://ikuuu.one"

const (
	loginPath   = "/auth/login"
	checkinPath = "/user/checkin"
)

// Client talks to one SSPANEL deployment on behalf of one account.
type Client struct {
	http       *httpclient.Client
	journal    *journal.Journal
	metrics    *metrics.Metrics
	classifier *classifier.Classifier
	label      string // account label prefixed to journal lines
}

// NewClient creates a Client. m may be nil.
func NewClient(h *httpclient.Client, j *journal.Journal, m *metrics.Metrics) *Client {
	return &Client{
		http:       h,
		journal:    j,
		metrics:    m,
		classifier: classifier.New(classifier.SSPanel),
	}
}

// ForAccount returns a copy that prefixes journal lines with label.
func (c *Client) ForAccount(label string) *Client {
	cp := *c
	cp.label = label
	return &cp
}

// Login posts credentials and returns the joined session cookie.
func (c *Client) Login(ctx context.Context, host, email, password string) (string, string, error) {
	resp, err := c.http.PostJSON(ctx, host+loginPath, "", map[string]string{
		"email":  email,
		"passwd": password,
	})
	if err != nil {
		c.recordLogin(false)
		return "", "", fmt.Errorf("login request: %w", err)
	}
	res, err := decodeResult(resp)
	if err != nil {
		c.recordLogin(false)
		return "", "", fmt.Errorf("login response: %w", err)
	}
	if res.Ret != classifier.VendorSuccess {
		c.recordLogin(false)
		if res.Msg == "" {
			return "", "", errors.New("login rejected")
		}
		return "", "", errors.New(res.Msg)
	}
	c.recordLogin(true)
	return joinCookies(res.SetCookie), res.Msg, nil
}

// Checkin posts to the check-in endpoint with cookie and journals the result.
// It never returns an error: transport and parse failures count as failure.
// A failed probe is journaled at info level, any other failure at error.
func (c *Client) Checkin(ctx context.Context, host, cookie string, probe bool) bool {
	url := host + checkinPath
	slog.Debug("attempting check-in", "url", url, "probe", probe)

	resp, err := c.http.PostJSON(ctx, url, cookie, nil)
	if err != nil {
		c.recordCheckin(model.Failure, probe)
		c.journal.Error("%scheck-in request error: %v", c.prefix(), err)
		return false
	}
	res, err := decodeResult(resp)
	if err != nil {
		c.recordCheckin(model.Failure, probe)
		c.journal.Log(failureLevel(probe), "%scheck-in failed: unexpected response: %v", c.prefix(), err)
		return false
	}

	outcome := c.classifier.Vendor(res)
	c.recordCheckin(outcome, probe)
	if outcome.OK() {
		c.journal.Info("%scheck-in succeeded: %s", c.prefix(), res.Msg)
		return true
	}
	msg := res.Msg
	if msg == "" {
		msg = "unknown error"
	}
	c.journal.Log(failureLevel(probe), "%scheck-in failed: %s", c.prefix(), msg)
	return false
}

// ResolveHost returns override when set. Otherwise it reads the mirror page
// and takes the first https link inside a paragraph, falling back to
// FallbackHost. The result never ends in a slash.
func (c *Client) ResolveHost(ctx context.Context, override, mirrorURL string) string {
	if override = strings.TrimSpace(override); override != "" {
		return strings.TrimRight(override, "/")
	}

	host := FallbackHost
	page, err := c.http.GetText(ctx, mirrorURL, "")
	if err != nil {
		c.journal.Error("resolve host via %s failed: %v", mirrorURL, err)
		return host
	}
	if found := findHost(page); found != "" {
		host = found
	} else {
		slog.Warn("no host link on mirror page, using fallback", "mirror", mirrorURL, "host", host)
	}
	return strings.TrimRight(host, "/")
}

func findHost(page string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return ""
	}
	var host string
	doc.Find("p > a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		if strings.HasPrefix(href, "https://") && len(href) > len("https://") {
			host = href
			return false
		}
		return true
	})
	return host
}

func (c *Client) prefix() string {
	if c.label == "" {
		return ""
	}
	return c.label + ": "
}

func (c *Client) recordLogin(ok bool) {
	if c.metrics != nil {
		c.metrics.Login(Name, ok)
	}
}

func (c *Client) recordCheckin(o model.Outcome, probe bool) {
	if c.metrics != nil {
		c.metrics.Checkin(Name, o.String(), probe)
	}
}

func failureLevel(probe bool) model.Level {
	if probe {
		return model.LevelInfo
	}
	return model.LevelError
}
