// Package linkapi is the HTTP client of the LinkUDP REST backend. It owns the
// wire contract: bearer-token transport, error normalization and a bounded
// retry policy for idempotent reads. It holds no session state; tokens are
// passed in by the caller.
package linkapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/linkudp/linkudp-cli/core"
	"github.com/linkudp/linkudp-cli/core/tutoring"
	"github.com/linkudp/linkudp-cli/core/user"
)

// maxResponseSize bounds response bodies; profile and listing payloads are
// small, anything larger is a broken backend.
const maxResponseSize = 2 * 1024 * 1024

type Client struct {
	conf       core.APIConfig
	httpClient *http.Client
	logger     core.Logger
}

type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURL overrides the configured base URL (tests point it at httptest).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.conf.BaseURL = u }
}

func NewClient(conf core.APIConfig, logger core.Logger, opts ...Option) *Client {
	c := &Client{
		conf:       conf,
		httpClient: &http.Client{Timeout: conf.Timeout},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// tokenResponse is the POST /auth/login and /auth/register success body.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, creds user.Credentials) (string, error) {
	var res tokenResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", creds, &res, false); err != nil {
		return "", err
	}
	if res.AccessToken == "" {
		return "", errors.New("login response is missing access_token")
	}
	return res.AccessToken, nil
}

// Register creates an account and returns its bearer token.
func (c *Client) Register(ctx context.Context, data user.RegisterData) (string, error) {
	var res tokenResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", "", data, &res, false); err != nil {
		return "", err
	}
	if res.AccessToken == "" {
		return "", errors.New("register response is missing access_token")
	}
	return res.AccessToken, nil
}

// Me fetches the current user with the sub-profiles its role permits.
func (c *Client) Me(ctx context.Context, token string) (*user.Profile, error) {
	var profile user.Profile
	if err := c.do(ctx, http.MethodGet, "/profile/me", token, nil, &profile, true); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateStudentProfile patches the caller's student profile fields.
func (c *Client) UpdateStudentProfile(ctx context.Context, token string, data user.UpdateStudentProfile) (*user.Profile, error) {
	return c.patchMe(ctx, token, data)
}

// UpdateGeneralProfile patches the caller's base user fields.
func (c *Client) UpdateGeneralProfile(ctx context.Context, token string, data user.UpdateGeneralProfile) (*user.Profile, error) {
	return c.patchMe(ctx, token, data)
}

func (c *Client) patchMe(ctx context.Context, token string, payload interface{}) (*user.Profile, error) {
	var profile user.Profile
	if err := c.do(ctx, http.MethodPatch, "/profile/me", token, payload, &profile, false); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateTutorProfile patches the caller's tutor-specific profile fields.
func (c *Client) UpdateTutorProfile(ctx context.Context, token string, data user.UpdateTutorProfile) (*user.Profile, error) {
	var profile user.Profile
	if err := c.do(ctx, http.MethodPatch, "/profile/me/tutor", token, data, &profile, false); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Tutorings lists the published tutoring sessions. Public route.
func (c *Client) Tutorings(ctx context.Context) ([]tutoring.Tutoring, error) {
	var list []tutoring.Tutoring
	if err := c.do(ctx, http.MethodGet, "/tutorias", "", nil, &list, true); err != nil {
		return nil, err
	}
	return list, nil
}

// GetTutoring fetches one tutoring session. Public route; ErrNotFound when
// the id does not exist.
func (c *Client) GetTutoring(ctx context.Context, id int) (*tutoring.Tutoring, error) {
	var tut tutoring.Tutoring
	path := fmt.Sprintf("/tutorias/%d", id)
	if err := c.do(ctx, http.MethodGet, path, "", nil, &tut, true); err != nil {
		return nil, err
	}
	return &tut, nil
}

// CreateTutoring publishes a new tutoring session for the calling tutor.
func (c *Client) CreateTutoring(ctx context.Context, token string, data tutoring.NewTutoring) (*tutoring.Tutoring, error) {
	var tut tutoring.Tutoring
	if err := c.do(ctx, http.MethodPost, "/tutorias", token, data, &tut, false); err != nil {
		return nil, err
	}
	return &tut, nil
}

// do runs one call against the backend. Idempotent requests are retried on
// transport errors and 5xx responses with exponential backoff; writes are
// attempted exactly once.
func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}, idempotent bool) error {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return errors.Wrap(err, "encoding request body")
		}
	}

	attempts := 1
	if idempotent {
		attempts += c.conf.RetryMax
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			backoff := c.calculateBackoff(attempt)
			c.logger.Debug("retrying request", "method", method, "path", path, "attempt", attempt, "backoff", backoff)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		retryable, err := c.doOnce(ctx, method, path, token, payload, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retryable {
			return err
		}
	}
	return lastErr
}

// doOnce reports whether a failure may be retried.
func (c *Client) doOnce(ctx context.Context, method, path, token string, payload []byte, out interface{}) (bool, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.conf.BaseURL+path, reqBody)
	if err != nil {
		return false, errors.Wrap(err, "building request")
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("X-Request-ID", uuid.New().String())

	res, err := c.httpClient.Do(req)
	if err != nil {
		return true, errors.Wrapf(err, "%s %s", method, path)
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(io.LimitReader(res.Body, maxResponseSize))
	if err != nil {
		return true, errors.Wrapf(err, "reading %s %s response", method, path)
	}
	c.logger.Debug("api call", "method", method, "path", path, "status", res.StatusCode)

	switch {
	case res.StatusCode >= 200 && res.StatusCode < 300:
		if out == nil || len(resBody) == 0 {
			return false, nil
		}
		if err := json.Unmarshal(resBody, out); err != nil {
			return false, errors.Wrapf(err, "decoding %s %s response", method, path)
		}
		return false, nil
	case res.StatusCode == http.StatusUnauthorized, res.StatusCode == http.StatusForbidden:
		return false, ErrUnauthenticated
	case res.StatusCode == http.StatusNotFound:
		return false, ErrNotFound
	case res.StatusCode >= 500:
		return true, &APIError{
			StatusCode: res.StatusCode,
			Message:    parseErrorBody(resBody, "error de servidor"),
		}
	default:
		return false, &APIError{
			StatusCode: res.StatusCode,
			Message:    parseErrorBody(resBody, "error de servidor"),
		}
	}
}

// calculateBackoff computes exponential backoff duration with jitter.
func (c *Client) calculateBackoff(attempt int) time.Duration {
	backoff := c.conf.BackoffBase << (attempt - 1)
	if backoff > c.conf.BackoffMax {
		backoff = c.conf.BackoffMax
	}
	jitter := float64(backoff) * 0.25 * (rand.Float64()*2 - 1)
	return backoff + time.Duration(jitter)
}
