package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"lineagehub/internal/models"
)

// TokenSource provides the bearer token for outgoing requests. Satisfied by
// *session.Session; an empty token sends the request unauthenticated.
type TokenSource interface {
	Token() string
}

// Client is the typed gateway to the LineageHub REST backend. It shapes
// requests and responses and surfaces structured errors; business rules live
// in the domain packages.
type Client struct {
	baseURL        string
	http           *http.Client
	tokens         TokenSource
	log            *logrus.Logger
	onUnauthorized func()
}

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the client's logger
func WithLogger(log *logrus.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithUnauthorizedHook registers a callback fired on every 401 response,
// used to force a logout when the token has been rejected
func WithUnauthorizedHook(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// NewClient creates a gateway client rooted at baseURL
func NewClient(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		tokens:  tokens,
		log:     logrus.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get performs a GET with one transparent retry on transport failure; reads
// are idempotent so a retry is safe
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	err := c.do(ctx, http.MethodGet, path, query, nil, out)
	var apiErr *Error
	if err != nil && errors.As(err, &apiErr) && apiErr.Kind == KindNetwork && ctx.Err() == nil {
		c.log.WithField("path", path).Debug("retrying read after transport failure")
		return c.do(ctx, http.MethodGet, path, query, nil, out)
	}
	return err
}

// do performs one request. Mutations are never retried here: a duplicate
// submission could double a side effect.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

// upload performs a multipart file upload under the form field "file"
func (c *Client) upload(ctx context.Context, path, filename string, file io.Reader, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("failed to read upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("failed to finish multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	log := c.log.WithFields(logrus.Fields{
		"method":     req.Method,
		"path":       req.URL.Path,
		"request_id": requestID,
	})
	log.Debug("sending request")

	resp, err := c.http.Do(req)
	if err != nil {
		log.WithError(err).Debug("transport failure")
		return networkError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			io.Copy(io.Discard, resp.Body)
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return networkError(fmt.Errorf("failed to decode response: %w", err))
		}
		return nil
	}

	apiErr := c.decodeError(resp)
	log.WithFields(logrus.Fields{"status": resp.StatusCode, "kind": apiErr.Kind.String()}).Debug("request failed")
	if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
		c.onUnauthorized()
	}
	return apiErr
}

func (c *Client) decodeError(resp *http.Response) *Error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	var env models.ErrorEnvelope
	if err := json.Unmarshal(raw, &env); err == nil && (env.Message != "" || env.Error != "") {
		return fromEnvelope(resp.StatusCode, env)
	}
	return &Error{Kind: kindForStatus(resp.StatusCode), Status: resp.StatusCode}
}
