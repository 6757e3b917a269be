// Package biprws is a thin client for the SAP BusinessObjects RESTful
// web services (BIPRWS). It covers the session endpoints, the raylight
// Web Intelligence document API and the infostore folder listing — just
// enough surface to scan reports, nothing more.
package biprws

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"time"
)

// TokenHeader is the header carrying the session token on every
// authenticated call.
const TokenHeader = "X-SAP-Logontoken"

const defaultTimeout = 30 * time.Second

type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

type Option func(*Client)

// WithHTTPClient replaces the default HTTP client, e.g. to set a custom
// timeout or transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New creates a client for a BIPRWS base URL, e.g.
// "http://host:6405/biprws". A trailing slash is trimmed.
func New(baseURL string, opts ...Option) *Client {
	for len(baseURL) > 0 && baseURL[len(baseURL)-1] == '/' {
		baseURL = baseURL[:len(baseURL)-1]
	}
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the normalized base URL the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// getJSON issues an authenticated GET and decodes a JSON response body.
func (c *Client) getJSON(ctx context.Context, token, url string, result any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, token, func(body io.Reader) error {
		return json.NewDecoder(body).Decode(result)
	})
}

// getXML issues an authenticated GET and decodes an XML response body.
// Used only by the data-provider specification endpoint, which never
// speaks JSON.
func (c *Client) getXML(ctx context.Context, token, url string, result any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "text/xml")
	req.Header.Set("Content-Type", "text/xml")
	return c.do(req, token, func(body io.Reader) error {
		return xml.NewDecoder(body).Decode(result)
	})
}

// postJSON issues an authenticated POST with an optional JSON payload.
func (c *Client) postJSON(ctx context.Context, token, url string, payload, result any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshalling payload: %w", err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, "POST", url, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	var decode func(io.Reader) error
	if result != nil {
		decode = func(body io.Reader) error {
			return json.NewDecoder(body).Decode(result)
		}
	}
	return c.do(req, token, decode)
}

// do sends a prepared request. Headers are built per request; nothing is
// shared between calls, so concurrent use of one Client is safe.
func (c *Client) do(req *http.Request, token string, decode func(io.Reader) error) error {
	if token != "" {
		req.Header.Set(TokenHeader, token)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{URL: req.URL.String(), Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 400 {
		return errorFromResponse(resp)
	}

	if decode != nil {
		if err := decode(resp.Body); err != nil {
			return &ParseError{URL: req.URL.String(), Err: err}
		}
	}
	return nil
}

func errorFromResponse(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &AuthError{StatusCode: resp.StatusCode, Message: excerpt(body)}
	case http.StatusNotFound:
		return &NotFoundError{URL: resp.Request.URL.String()}
	default:
		return &APIError{StatusCode: resp.StatusCode, Message: excerpt(body)}
	}
}

func excerpt(body []byte) string {
	const maxLen = 200
	s := string(bytes.TrimSpace(body))
	if len(s) > maxLen {
		return s[:maxLen-3] + "..."
	}
	return s
}
