package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// ErrNoRefreshToken is returned when the access token expired and there is no
// refresh token to renew it with.
var ErrNoRefreshToken = errors.New("access token expired and no refresh token is configured")

// TokenSource supplies the bearer token for backend requests.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticTokenSource always returns the same token.
type StaticTokenSource string

func (s StaticTokenSource) Token(context.Context) (string, error) {
	return string(s), nil
}

// RefreshingTokenSource keeps an access token fresh. It reads the JWT exp
// claim (without verifying the signature, which is the backend's job) and
// exchanges the refresh token shortly before expiry.
type RefreshingTokenSource struct {
	mu      sync.Mutex
	access  string
	refresh string

	httpClient  *resty.Client
	refreshPath string
	leeway      time.Duration
	now         func() time.Time
	logger      *zap.Logger
}

// NewRefreshingTokenSource uses its own resty client so that refresh calls do
// not go through the token hook.
func NewRefreshingTokenSource(baseURL, refreshPath, access, refresh string, logger *zap.Logger) *RefreshingTokenSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	httpClient := resty.New().
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(10 * time.Second)

	return &RefreshingTokenSource{
		access:      access,
		refresh:     refresh,
		httpClient:  httpClient,
		refreshPath: refreshPath,
		leeway:      30 * time.Second,
		now:         time.Now,
		logger:      logger,
	}
}

type refreshResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

func (s *RefreshingTokenSource) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.expiring(s.access) {
		return s.access, nil
	}
	if s.refresh == "" {
		return "", ErrNoRefreshToken
	}

	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetBody(map[string]string{"refresh": s.refresh}).
		Post(s.refreshPath)
	if err != nil {
		return "", fmt.Errorf("refresh access token: %w", err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return "", &APIError{Op: "refresh access token", Status: resp.StatusCode(), Body: string(resp.Body())}
	}
	result, err := decodeObject[refreshResponse]("refresh access token", resp.Body())
	if err != nil {
		return "", err
	}
	if result.Access == "" {
		return "", errors.New("refresh access token: response carried no access token")
	}

	s.access = result.Access
	if result.Refresh != "" {
		s.refresh = result.Refresh
	}
	s.logger.Info("access token refreshed")
	return s.access, nil
}

// expiring reports whether the token is missing, unreadable or within the
// leeway of its exp claim. Tokens without an exp claim never expire.
func (s *RefreshingTokenSource) expiring(token string) bool {
	if token == "" {
		return true
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return true
	}
	if exp == nil {
		return false
	}
	return !s.now().Add(s.leeway).Before(exp.Time)
}
