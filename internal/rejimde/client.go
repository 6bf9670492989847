// Package rejimde wraps the Rejimde WordPress REST backend: auth header
// injection, envelope normalization, and the per-resource endpoint
// families under /wp/v2/* and /rejimde/v1/*.
package rejimde

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	routePrefix = "/rejimde/v1"
	wpPrefix    = "/wp/v2"
)

// MsgServerError is the generic user-facing message for transport-level
// failures; callers surface it instead of the raw error text.
const MsgServerError = "Sunucu hatası. Lütfen daha sonra tekrar deneyin."

// APIError carries a backend business-rule rejection (already localized).
// Transport and decode failures are returned as ordinary wrapped errors.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string { return e.Message }

// localizedMessages re-localizes known backend business-rule strings; the
// backend answers in English, the product speaks Turkish.
var localizedMessages = map[string]string{
	"content must be started first": "Önce planı başlatmalısın.",
	"reward already claimed":        "Ödül zaten alınmış.",
	"login required":                "Bu işlem için giriş yapmalısın.",
	"slot not available":            "Seçtiğin saat dolu. Başka bir saat dene.",
}

func localizeMessage(msg string) string {
	if tr, ok := localizedMessages[strings.ToLower(strings.TrimSpace(msg))]; ok {
		return tr
	}
	if msg == "" {
		return MsgServerError
	}
	return msg
}

// Client is the base HTTP client for the Rejimde backend. A bearer token
// is attached whenever the TokenSource yields one; anonymous calls go out
// without an Authorization header.
type Client struct {
	BaseURL string
	Tokens  TokenSource
	HTTP    *http.Client
}

func NewClient(baseURL string, tokens TokenSource) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Tokens:  tokens,
		HTTP: &http.Client{
			Timeout: 25 * time.Second,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   10 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
	}
}

// Result is the normalized outcome of one backend call. Business-rule
// rejections are soft: Success=false with a localized Message, no error.
type Result struct {
	Success bool
	Message string
	Data    json.RawMessage
}

// Err converts a failed Result into an *APIError for callers that prefer
// error returns over inspecting the struct.
func (r *Result) Err() error {
	if r.Success {
		return nil
	}
	return &APIError{Message: r.Message}
}

type envelope struct {
	Success *bool           `json:"success"`
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}) (*Result, error) {
	u, err := url.Parse(c.BaseURL + path)
	if err != nil {
		return nil, fmt.Errorf("build url %s: %w", path, err)
	}
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if err := c.authorize(req); err != nil {
		return nil, err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("read response %s: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// error statuses are soft: parse a JSON body when present,
		// otherwise degrade to the generic failure
		var env envelope
		if jsonErr := json.Unmarshal(raw, &env); jsonErr == nil && env.Message != "" {
			return &Result{Success: false, Message: localizeMessage(env.Message)}, nil
		}
		return &Result{Success: false, Message: MsgServerError}, nil
	}

	res := &Result{Success: true, Data: raw}

	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil {
		if env.Success != nil && !*env.Success || env.Status == "error" {
			res.Success = false
			res.Message = localizeMessage(env.Message)
			res.Data = nil
			return res, nil
		}
		if len(env.Data) > 0 {
			res.Data = env.Data
			res.Message = env.Message
		}
	}

	return res, nil
}

func (c *Client) authorize(req *http.Request) error {
	if c.Tokens == nil {
		return nil
	}
	token, err := c.Tokens.Token()
	if err != nil {
		return fmt.Errorf("resolve token: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return nil
}

// decodeList tolerates the three envelope shapes backend list endpoints
// have shipped: {"status":"success","data":[...]}, a bare [...], and
// {"data":[...]}. All three yield the same array.
func decodeList(raw json.RawMessage) ([]json.RawMessage, error) {
	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err == nil {
		return arr, nil
	}

	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err == nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &arr); err == nil {
			return arr, nil
		}
	}

	snippet := raw
	if len(snippet) > 120 {
		snippet = snippet[:120]
	}
	return nil, fmt.Errorf("unrecognized list envelope: %s", snippet)
}

// parseTS accepts the timestamp layouts the backend mixes freely.
func parseTS(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
