package pushplus

import (
	"context"
	"fmt"

	"github.com/hejijunhao/dailycheckin/internal/httpclient"
	"github.com/hejijunhao/dailycheckin/internal/model"
)

const defaultURL = "http://www.pushplus.plus/send"

// Option configures a PushPlus Notifier.
type Option func(*Notifier)

// WithURL overrides the send endpoint.
func WithURL(url string) Option {
	return func(n *Notifier) {
		if url != "" {
			n.url = url
		}
	}
}

// WithClient sets the HTTP client. Default: httpclient.New().
func WithClient(c *httpclient.Client) Option {
	return func(n *Notifier) { n.client = c }
}

// Notifier POSTs {token, title, content, template} to the PushPlus API.
type Notifier struct {
	client *httpclient.Client
	url    string
	token  string
}

type payload struct {
	Token    string `json:"token"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Template string `json:"template,omitempty"`
}

type result struct {
	Code *int   `json:"code"`
	Msg  string `json:"msg"`
}

// New creates a PushPlus notifier for the given token.
func New(token string, opts ...Option) *Notifier {
	n := &Notifier{url: defaultURL, token: token}
	for _, opt := range opts {
		opt(n)
	}
	if n.client == nil {
		n.client = httpclient.New()
	}
	return n
}

func (n *Notifier) Name() string { return "pushplus" }

// Send delivers the notification. A response carrying a code other than 200
// is reported as an error; a 2xx response without a JSON body is accepted.
func (n *Notifier) Send(ctx context.Context, msg model.Notification) error {
	resp, err := n.client.PostJSON(ctx, n.url, "", payload{
		Token:    n.token,
		Title:    msg.Title,
		Content:  msg.Content,
		Template: msg.Template,
	})
	if err != nil {
		return fmt.Errorf("pushplus: %w", err)
	}

	var res result
	if err := resp.DecodeJSON(&res); err != nil {
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return nil
		}
		return fmt.Errorf("pushplus: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("pushplus: HTTP %d: %s", resp.StatusCode, res.Msg)
	}
	if res.Code != nil && *res.Code != 200 {
		return fmt.Errorf("pushplus: code %d: %s", *res.Code, res.Msg)
	}
	return nil
}
