package hashiqi

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/hejijunhao/dailycheckin/internal/classifier"
	"github.com/hejijunhao/dailycheckin/internal/httpclient"
	"github.com/hejijunhao/dailycheckin/internal/model"
)

// Postback fields of the check-in form.
const (
	fieldViewState     = "__VIEWSTATE"
	fieldViewStateGen  = "__VIEWSTATEGENERATOR"
	fieldEventTarget   = "__EVENTTARGET"
	fieldEventArgument = "__EVENTARGUMENT"

	checkinTarget = "_lbtqd"
	resultElement = "#lblprice"
)

// ErrNoResult means the postback page carried no result element.
var ErrNoResult = errors.New("result element not found")

// Result is the classified outcome of one postback.
type Result struct {
	Outcome model.Outcome
	Detail  string // result text, or the error description
}

// Client replays the portal's WebForms check-in postback.
type Client struct {
	http       *httpclient.Client
	url        string
	classifier *classifier.Classifier
}

// NewClient creates a Client for the check-in page at url.
func NewClient(h *httpclient.Client, url string) *Client {
	return &Client{http: h, url: url, classifier: classifier.New(classifier.Portal)}
}

// CheckIn loads the form with cookie, posts it back with the check-in event
// target, and classifies the result text. Errors are folded into a Failure
// result.
func (c *Client) CheckIn(ctx context.Context, cookie string) Result {
	page, err := c.http.GetText(ctx, c.url, cookie)
	if err != nil {
		return failure(fmt.Errorf("load form: %w", err))
	}
	form, err := formState(page)
	if err != nil {
		return failure(fmt.Errorf("parse form: %w", err))
	}
	form[fieldEventTarget] = checkinTarget
	form[fieldEventArgument] = ""

	body, err := c.http.PostForm(ctx, c.url, cookie, form)
	if err != nil {
		return failure(fmt.Errorf("submit: %w", err))
	}
	text, err := resultText(body)
	if err != nil {
		return failure(err)
	}
	return Result{Outcome: c.classifier.Text(text), Detail: text}
}

// formState extracts the hidden WebForms state fields. Missing fields are
// sent empty, as a browser would.
func formState(page string) (map[string]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, err
	}
	return map[string]string{
		fieldViewState:    doc.Find("#"+fieldViewState).AttrOr("value", ""),
		fieldViewStateGen: doc.Find("#"+fieldViewStateGen).AttrOr("value", ""),
	}, nil
}

func resultText(page string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", err
	}
	sel := doc.Find(resultElement)
	if sel.Length() == 0 {
		return "", ErrNoResult
	}
	return strings.TrimSpace(sel.First().Text()), nil
}

func failure(err error) Result {
	return Result{Outcome: model.Failure, Detail: err.Error()}
}
