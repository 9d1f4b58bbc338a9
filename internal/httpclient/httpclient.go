package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultTimeout = 10 * time.Second
	maxErrorBody   = 512
)

// Client issues browser-like requests with an optional per-request Cookie
// header. It never retries: a failed call is reported once to the caller.
// There is no cookie jar; sessions are passed explicitly per request.
type Client struct {
	rc *resty.Client
}

// Response is the raw outcome of a request that reached the server.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// APIError represents a non-2xx HTTP response.
type APIError struct {
	StatusCode int
	Body       string // first 512 bytes
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// Option configures Client behavior.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.rc.SetTimeout(d)
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.rc.SetHeader("User-Agent", ua)
		}
	}
}

// New creates a Client.
func New(opts ...Option) *Client {
	c := &Client{
		rc: resty.New().
			SetCookieJar(nil).
			SetTimeout(defaultTimeout).
			SetHeader("Accept", "application/json, text/html;q=0.9, */*;q=0.8"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetText sends a GET and returns the body as a string.
// Returns *APIError for non-2xx responses.
func (c *Client) GetText(ctx context.Context, url, cookie string) (string, error) {
	resp, err := c.request(ctx, cookie).Get(url)
	if err != nil {
		return "", err
	}
	if err := checkStatus(resp); err != nil {
		return "", err
	}
	return resp.String(), nil
}

// PostForm sends a form-encoded POST and returns the body as a string.
// Returns *APIError for non-2xx responses.
func (c *Client) PostForm(ctx context.Context, url, cookie string, form map[string]string) (string, error) {
	resp, err := c.request(ctx, cookie).
		SetFormData(form).
		Post(url)
	if err != nil {
		return "", err
	}
	if err := checkStatus(resp); err != nil {
		return "", err
	}
	return resp.String(), nil
}

// PostJSON sends body as JSON. Non-2xx responses are returned, not treated as
// errors, because JSON APIs commonly explain a rejection in the body. body may
// be nil for an empty POST.
func (c *Client) PostJSON(ctx context.Context, url, cookie string, body any) (*Response, error) {
	req := c.request(ctx, cookie).SetHeader("Content-Type", "application/json")
	if body != nil {
		req.SetBody(body)
	}
	resp, err := req.Post(url)
	if err != nil {
		return nil, err
	}
	return &Response{
		StatusCode: resp.StatusCode(),
		Header:     resp.Header(),
		Body:       resp.Body(),
	}, nil
}

// DecodeJSON unmarshals the response body into dest. A non-2xx response whose
// body is not JSON yields *APIError.
func (r *Response) DecodeJSON(dest any) error {
	err := json.Unmarshal(r.Body, dest)
	if err == nil {
		return nil
	}
	if r.StatusCode < 200 || r.StatusCode >= 300 {
		return &APIError{StatusCode: r.StatusCode, Body: truncate(string(r.Body))}
	}
	return fmt.Errorf("httpclient: decode: %w", err)
}

func (c *Client) request(ctx context.Context, cookie string) *resty.Request {
	req := c.rc.R().SetContext(ctx)
	if cookie != "" {
		req.SetHeader("Cookie", cookie)
	}
	return req
}

func checkStatus(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}
	return &APIError{StatusCode: resp.StatusCode(), Body: truncate(resp.String())}
}

func truncate(s string) string {
	if len(s) > maxErrorBody {
		return s[:maxErrorBody]
	}
	return s
}
