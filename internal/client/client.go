// Package client is a typed HTTP client for the kanji API.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cocacoran-1/kanji/internal/domain/kanji"
	"github.com/cocacoran-1/kanji/internal/http/response"
	pkgerrors "github.com/cocacoran-1/kanji/internal/pkg/errors"
	"github.com/cocacoran-1/kanji/internal/platform/apierr"
)

const (
	DefaultBaseURL = "http://localhost:3001"
	defaultTimeout = 10 * time.Second
	maxErrorBody   = 64 << 10
)

// ErrNotFound is returned by GetKanji for a 404.
var ErrNotFound = pkgerrors.ErrNotFound

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func New(baseURL string, opts ...Option) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
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

func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) ListKanji(ctx context.Context) ([]kanji.Kanji, error) {
	out := []kanji.Kanji{}
	if err := c.getJSON(ctx, "/api/kanji", &out); err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Normalize()
	}
	return out, nil
}

func (c *Client) GetKanji(ctx context.Context, character string) (*kanji.Kanji, error) {
	if strings.TrimSpace(character) == "" {
		return nil, ErrNotFound
	}
	var out kanji.Kanji
	if err := c.getJSON(ctx, "/api/kanji/"+url.PathEscape(character), &out); err != nil {
		return nil, err
	}
	out.Normalize()
	return &out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// decodeError maps a non-2xx response onto *apierr.Error. A 404 also
// matches ErrNotFound through errors.Is.
func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var env response.ErrorEnvelope
	msg := ""
	code := ""
	if json.Unmarshal(raw, &env) == nil {
		msg = env.Error.Message
		code = env.Error.Code
	}
	if msg == "" {
		msg = strings.TrimSpace(string(raw))
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}

	cause := errors.New(msg)
	if resp.StatusCode == http.StatusNotFound {
		cause = fmt.Errorf("%s: %w", msg, ErrNotFound)
	}
	return apierr.New(resp.StatusCode, code, cause)
}
