// Package download fetches remote resources over HTTP: catalog API documents
// and mod package bytes.
package download

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/glorpus-work/hymod/internal/logger"
	"github.com/glorpus-work/hymod/pkg/auth"
	pkgerrors "github.com/glorpus-work/hymod/pkg/errors"
)

// Manager downloads remote resources. There is no retry and no resumption:
// a failed transfer is reported and the caller decides what to do.
type Manager interface {
	// Get returns the full response body of url.
	Get(ctx context.Context, url string, a auth.Authenticator) ([]byte, error)
	// GetJSON decodes the JSON response body of url into v.
	GetJSON(ctx context.Context, url string, a auth.Authenticator, v any) error
}

// DefaultUserAgent is sent when no user agent is configured.
const DefaultUserAgent = "HytaleModManager/1.0"

// MaxBodySize caps how much of a response is read into memory.
const MaxBodySize = 512 << 20

// ManagerImpl is a simple HTTP-based download manager. Timeouts are applied
// per request through the context and cover reading the body.
type ManagerImpl struct {
	client     *http.Client
	userAgent  string
	apiTimeout time.Duration
	getTimeout time.Duration
}

// Option configures a ManagerImpl.
type Option func(*ManagerImpl)

// WithDownloadTimeout gives Get its own deadline, so package downloads can
// run longer than API calls.
func WithDownloadTimeout(d time.Duration) Option {
	return func(m *ManagerImpl) {
		m.getTimeout = d
	}
}

// NewManager creates a new download manager. timeout bounds API requests
// (GetJSON) and, unless WithDownloadTimeout is given, Get as well. A zero
// timeout means no timeout.
func NewManager(timeout time.Duration, userAgent string, opts ...Option) *ManagerImpl {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	m := &ManagerImpl{
		client:     &http.Client{},
		userAgent:  userAgent,
		apiTimeout: timeout,
		getTimeout: timeout,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}

// Get downloads url into memory.
func (m *ManagerImpl) Get(ctx context.Context, rawURL string, a auth.Authenticator) ([]byte, error) {
	ctx, cancel := withTimeout(ctx, m.getTimeout)
	defer cancel()

	resp, err := m.doRequest(ctx, rawURL, a, "*/*")
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		return nil, pkgerrors.Kind(pkgerrors.ErrTransport, fmt.Errorf("failed to read response body: %w", err))
	}
	if len(data) > MaxBodySize {
		return nil, pkgerrors.Kind(pkgerrors.ErrTransport, fmt.Errorf("response from %s exceeds %d bytes", rawURL, MaxBodySize))
	}
	logger.Debug("downloaded", logger.Fields{"url": rawURL, "bytes": len(data)})
	return data, nil
}

// GetJSON downloads url and decodes it into v.
func (m *ManagerImpl) GetJSON(ctx context.Context, rawURL string, a auth.Authenticator, v any) error {
	ctx, cancel := withTimeout(ctx, m.apiTimeout)
	defer cancel()

	resp, err := m.doRequest(ctx, rawURL, a, "application/json")
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := json.NewDecoder(io.LimitReader(resp.Body, MaxBodySize)).Decode(v); err != nil {
		return pkgerrors.Kind(pkgerrors.ErrParse, fmt.Errorf("failed to decode %s: %w", rawURL, err))
	}
	return nil
}

func (m *ManagerImpl) doRequest(ctx context.Context, rawURL string, a auth.Authenticator, accept string) (*http.Response, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, pkgerrors.ErrNoDownloadURL
	}
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, pkgerrors.Kind(pkgerrors.ErrTransport, fmt.Errorf("invalid url %q", rawURL))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return nil, pkgerrors.Kind(pkgerrors.ErrTransport, pkgerrors.Wrap(err, "failed to create request"))
	}
	req.Header.Set("User-Agent", m.userAgent)
	req.Header.Set("Accept", accept)
	if err := auth.Apply(a, req); err != nil {
		return nil, pkgerrors.Kind(pkgerrors.ErrConfig, pkgerrors.Wrap(err, "failed to apply credentials"))
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, pkgerrors.Kind(pkgerrors.ErrTransport, pkgerrors.Wrap(err, "request failed"))
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_ = resp.Body.Close()
		return nil, &pkgerrors.StatusError{StatusCode: resp.StatusCode, URL: rawURL}
	}
	return resp, nil
}
