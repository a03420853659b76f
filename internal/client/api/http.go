package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/dmitrijs2005/caffetrack/internal/client/models"
	"github.com/dmitrijs2005/caffetrack/internal/common"
	"github.com/dmitrijs2005/caffetrack/internal/logging"
)

// maxResponseBody bounds how much of a response we buffer; auth payloads
// are tiny, anything bigger is a misbehaving server.
const maxResponseBody = 1 << 20

// HTTPClient is the Client implementation backed by net/http. The embedded
// cookie jar persists for the lifetime of the client and carries the
// httpOnly refresh cookie the server sets on login and refresh.
type HTTPClient struct {
	baseURL string
	hc      *http.Client
	log     logging.Logger
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) (*HTTPClient, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Jar: jar, Timeout: timeout},
		log:     log,
	}, nil
}

// Call performs a single HTTP operation. Transport failures are wrapped in
// common.ErrNetwork; any server answer, whatever its status, comes back as
// a Response.
func (c *HTTPClient) Call(ctx context.Context, r Request) (*Response, error) {
	var body io.Reader
	if r.Body != nil {
		body = bytes.NewReader(r.Body)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, c.baseURL+r.Path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if r.Token != "" {
		req.Header.Set("Authorization", "Bearer "+r.Token)
	}

	c.log.Debug(ctx, "api request", "method", r.Method, "path", r.Path, "authorized", r.Token != "")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrNetwork, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", common.ErrNetwork, err)
	}

	c.log.Debug(ctx, "api response", "path", r.Path, "status", resp.StatusCode)

	return &Response{Status: resp.StatusCode, Body: data}, nil
}

func (c *HTTPClient) Register(ctx context.Context, req RegisterRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to encode register request: %w", err)
	}

	resp, err := c.Call(ctx, Request{Method: http.MethodPost, Path: PathRegister, Body: body})
	if err != nil {
		return err
	}

	switch resp.Status {
	case http.StatusOK:
		return nil
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", common.ErrValidation, serverMessage(resp))
	case http.StatusConflict:
		return common.ErrEmailTaken
	default:
		return fmt.Errorf("%w: register failed with status %d", common.ErrorInternal, resp.Status)
	}
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, *models.UserProfile, error) {
	body, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return "", nil, fmt.Errorf("failed to encode login request: %w", err)
	}

	resp, err := c.Call(ctx, Request{Method: http.MethodPost, Path: PathLogin, Body: body})
	if err != nil {
		return "", nil, err
	}

	switch resp.Status {
	case http.StatusOK:
		var lr LoginResponse
		if err := resp.DecodeJSON(&lr); err != nil {
			return "", nil, fmt.Errorf("%w: decoding login response: %v", common.ErrorInternal, err)
		}
		if lr.Token == "" {
			return "", nil, fmt.Errorf("%w: login response carries no token", common.ErrorInternal)
		}
		return lr.Token, lr.User, nil
	case http.StatusUnauthorized:
		return "", nil, fmt.Errorf("%w: invalid email or password", common.ErrUnauthorized)
	default:
		return "", nil, fmt.Errorf("%w: login failed with status %d", common.ErrorInternal, resp.Status)
	}
}

func (c *HTTPClient) Refresh(ctx context.Context) (string, error) {
	// No token: the refresh credential rides in on the cookie jar alone.
	resp, err := c.Call(ctx, Request{Method: http.MethodPost, Path: PathRefresh})
	if err != nil {
		return "", err
	}

	switch resp.Status {
	case http.StatusOK:
		var rr RefreshResponse
		if err := resp.DecodeJSON(&rr); err != nil {
			return "", fmt.Errorf("%w: decoding refresh response: %v", common.ErrorInternal, err)
		}
		if rr.NewToken == "" {
			return "", fmt.Errorf("%w: refresh response carries no token", common.ErrorInternal)
		}
		return rr.NewToken, nil
	case http.StatusUnauthorized:
		return "", common.ErrRefreshExpired
	case http.StatusForbidden:
		return "", common.ErrRefreshInvalid
	default:
		return "", fmt.Errorf("%w: refresh failed with status %d", common.ErrorInternal, resp.Status)
	}
}

func (c *HTTPClient) Logout(ctx context.Context, token string) error {
	resp, err := c.Call(ctx, Request{Method: http.MethodPost, Path: PathLogout, Token: token})
	if err != nil {
		return err
	}

	switch resp.Status {
	case http.StatusOK, http.StatusUnauthorized, http.StatusForbidden:
		// 401/403 means the session is already gone server-side.
		return nil
	default:
		return fmt.Errorf("%w: logout failed with status %d", common.ErrorInternal, resp.Status)
	}
}

func serverMessage(resp *Response) string {
	var env Envelope
	if err := resp.DecodeJSON(&env); err != nil || env.Message == "" {
		return fmt.Sprintf("status %d", resp.Status)
	}
	return env.Message
}
