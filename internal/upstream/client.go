package upstream

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"seatapp-web/config"
	"seatapp-web/internal/logging"
	"seatapp-web/internal/metrics"
)

// Client talks to the upstream seating API. It holds no per-user state; the
// caller's cookie header is passed into every authenticated call.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates an upstream client from the given configuration.
func NewClient(cfg config.UpstreamConfig) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.HTTPProxy != "" {
		proxyURL, err := url.Parse(cfg.HTTPProxy)
		if err != nil {
			logging.Warn().Err(err).Str("proxy", cfg.HTTPProxy).Msg("invalid upstream proxy URL, connecting directly")
		} else {
			transport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	return &Client{
		baseURL: cfg.BaseURL,
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
	}
}

// BaseURL returns the upstream address the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Login posts the credentials to the upstream and returns the session
// cookies it issued, each rewritten to Path=/.
func (c *Client) Login(ctx context.Context, username, password string) ([]*http.Cookie, error) {
	resp, err := c.do(ctx, "login", http.MethodPost, "/api/login", "", credentials{Username: username, Password: password})
	if err != nil {
		return nil, err
	}
	return RelayCookies(resp.header), nil
}

// Logout asks the upstream to end the session carried by cookie.
func (c *Client) Logout(ctx context.Context, cookie string) error {
	_, err := c.do(ctx, "logout", http.MethodPost, "/api/logout", cookie, nil)
	return err
}

// Me returns the user owning the session. A *StatusError means the session
// is not valid.
func (c *Client) Me(ctx context.Context, cookie string) (*User, error) {
	var u User
	if err := c.getJSON(ctx, "me", "/api/me", cookie, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Floors lists floors in upstream order.
func (c *Client) Floors(ctx context.Context, cookie string) ([]Floor, error) {
	var floors []Floor
	if err := c.getJSON(ctx, "floors", "/api/floors", cookie, &floors); err != nil {
		return nil, err
	}
	return floors, nil
}

// Seats lists the seats of one floor in upstream order.
func (c *Client) Seats(ctx context.Context, cookie string, floorID int64) ([]Seat, error) {
	path := "/api/seats?floorId=" + strconv.FormatInt(floorID, 10)
	var seats []Seat
	if err := c.getJSON(ctx, "seats", path, cookie, &seats); err != nil {
		return nil, err
	}
	return seats, nil
}

// Report fetches one attendance report. The payload is returned untouched
// after checking that it is valid JSON.
func (c *Client) Report(ctx context.Context, cookie string, period Period) (json.RawMessage, error) {
	if !period.Valid() {
		return nil, fmt.Errorf("unknown report period %q", period)
	}
	var raw json.RawMessage
	if err := c.getJSON(ctx, "report_"+string(period), "/api/reports/"+string(period), cookie, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type response struct {
	header http.Header
	body   []byte
}

func (c *Client) getJSON(ctx context.Context, op, path, cookie string, out any) error {
	resp, err := c.do(ctx, op, http.MethodGet, path, cookie, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(resp.body, out); err != nil {
		return fmt.Errorf("failed to decode upstream %s response: %w", path, err)
	}
	return nil
}

// do performs one upstream call. Non-2xx responses come back as *StatusError
// with the raw body attached.
func (c *Client) do(ctx context.Context, op, method, path, cookie string, payload any) (*response, error) {
	start := time.Now()
	resp, err := c.roundTrip(ctx, method, path, cookie, payload)

	outcome := "ok"
	var statusErr *StatusError
	switch {
	case errors.As(err, &statusErr):
		outcome = "status"
	case err != nil:
		outcome = "transport"
	}
	metrics.RecordUpstreamCall(op, outcome, time.Since(start))

	if err != nil {
		logging.Ctx(ctx).Debug().Err(err).Str("op", op).Str("outcome", outcome).Msg("upstream call failed")
		return nil, err
	}
	return resp, nil
}

func (c *Client) roundTrip(ctx context.Context, method, path, cookie string, payload any) (*response, error) {
	var body io.Reader
	if payload != nil {
		jsonBody, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request payload: %w", err)
		}
		body = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read upstream %s response: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: string(raw)}
	}

	return &response{header: resp.Header, body: raw}, nil
}
