package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/mamadbah2/messledger/internal/config"
)

// DateLayout is the date format expected by every date query parameter.
const DateLayout = "2006-01-02"

// APIError describes a failed backend call: either the request never completed
// (Status is zero and Err is set) or the backend answered with an error status.
type APIError struct {
	Op     string
	Status int
	Body   string
	Err    error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: backend returned %d: %s", e.Op, e.Status, truncate(e.Body, 200))
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// Client is a resty-backed client for the POS REST backend.
type Client struct {
	httpClient *resty.Client
	pageSize   int
	logger     *zap.Logger
}

// NewClient builds a backend client. Every request is authorised with a token
// obtained from tokens just before it is sent.
func NewClient(cfg config.BackendConfig, tokens TokenSource, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)

	if tokens != nil {
		restyClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			token, err := tokens.Token(req.Context())
			if err != nil {
				return fmt.Errorf("obtain access token: %w", err)
			}
			if token != "" {
				req.SetAuthToken(token)
			}
			return nil
		})
	}

	return &Client{
		httpClient: restyClient,
		pageSize:   cfg.PageSize,
		logger:     logger,
	}
}

// Query is a small builder for the backend's optional filters; blank values are
// skipped.
type Query map[string]string

// DateRange adds from_date/to_date for the non-zero bounds.
func (q Query) DateRange(from, to time.Time) Query {
	if !from.IsZero() {
		q["from_date"] = from.Format(DateLayout)
	}
	if !to.IsZero() {
		q["to_date"] = to.Format(DateLayout)
	}
	return q
}

func (q Query) values() url.Values {
	values := url.Values{}
	for k, v := range q {
		if v != "" {
			values.Set(k, v)
		}
	}
	return values
}

func (c *Client) get(ctx context.Context, op, path string, query Query) ([]byte, error) {
	req := c.httpClient.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParamsFromValues(query.values())
	}
	resp, err := req.Get(path)
	return c.check(op, resp, err)
}

func (c *Client) send(ctx context.Context, op, method, path string, body any) ([]byte, error) {
	req := c.httpClient.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}
	resp, err := req.Execute(method, path)
	return c.check(op, resp, err)
}

// check converts transport failures and error statuses into *APIError.
func (c *Client) check(op string, resp *resty.Response, err error) ([]byte, error) {
	if err != nil {
		c.logger.Warn("backend request failed", zap.String("op", op), zap.Error(err))
		return nil, &APIError{Op: op, Err: err}
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		c.logger.Warn("backend returned error status",
			zap.String("op", op),
			zap.Int("status", resp.StatusCode()),
			zap.String("url", resp.Request.URL),
		)
		return nil, &APIError{Op: op, Status: resp.StatusCode(), Body: string(resp.Body())}
	}
	return resp.Body(), nil
}

func idPath(format string, id int) string {
	return fmt.Sprintf(format, strconv.Itoa(id))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
