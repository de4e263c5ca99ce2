package clients

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"adventure-us/logger"
	"adventure-us/utils/errors"
)

const (
	// DefaultTimeout bounds every upstream call.
	DefaultTimeout = 10 * time.Second

	// DefaultRateLimit is requests per second per client.
	DefaultRateLimit = 5

	maxBodySize = 4 << 20
)

// Option configures a client.
type Option func(*base)

// WithBaseURL points the client at a different endpoint.
func WithBaseURL(baseURL string) Option {
	return func(b *base) {
		b.baseURL = baseURL
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(b *base) {
		b.httpClient = httpClient
	}
}

// WithLogger sets a logger.
func WithLogger(l *logger.Logger) Option {
	return func(b *base) {
		b.logger = l
	}
}

// WithRateLimit sets a custom rate limit.
func WithRateLimit(requestsPerSecond int) Option {
	return func(b *base) {
		b.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// base carries what both upstream clients share.
type base struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *logger.Logger
	limiter    *rate.Limiter
}

func newBase(baseURL, token string, opts []Option) base {
	b := base{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     logger.L(),
		limiter:    rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// do executes req and returns the status code and body. Transport failures
// and rate limiter cancellation map to ErrServiceUnavailable.
func (b *base) do(ctx context.Context, req *http.Request, service string) (int, []byte, error) {
	if err := b.limiter.Wait(ctx); err != nil {
		return 0, nil, errors.ErrServiceUnavailable.WithDetails("%s: rate limiter: %v", service, err)
	}

	start := time.Now()
	resp, err := b.httpClient.Do(req)
	if err != nil {
		// url.Error embeds the full URL, which may carry the access token.
		var uerr *url.Error
		if stderrors.As(err, &uerr) {
			err = uerr.Err
		}
		b.logger.WithContext(ctx).Warn("upstream request failed",
			zap.String("service", service),
			zap.Error(err),
		)
		return 0, nil, errors.ErrServiceUnavailable.WithDetails("%s: %v", service, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return resp.StatusCode, nil, errors.ErrServiceUnavailable.WithDetails("%s: reading response: %v", service, err)
	}

	b.logger.WithContext(ctx).Debug("upstream request",
		zap.String("service", service),
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)),
	)
	return resp.StatusCode, body, nil
}

func statusError(service string, status int, body []byte) error {
	const snippet = 200
	if len(body) > snippet {
		body = body[:snippet]
	}
	return errors.ErrServiceUnavailable.WithDetails("%s returned status %d: %s", service, status, fmt.Sprintf("%q", body))
}
