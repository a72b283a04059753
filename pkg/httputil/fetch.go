package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	errs "github.com/matzehuels/techdd/pkg/errors"
	"github.com/matzehuels/techdd/pkg/observability"
)

// maxBodySize caps how much of a response is read. Full npm packuments for
// large packages run to tens of megabytes.
const maxBodySize = 64 << 20

// ErrInvalidJSON is the cause recorded when a 2xx body is not valid JSON.
var ErrInvalidJSON = errors.New("response body is not valid JSON")

// Doer sends one HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// Request describes one outbound call.
// A request with a body is sent as application/json.
type Request struct {
	Method string
	URL    string
	// Body is encoded with encoding/json. RawBody takes precedence and is
	// sent as is, for callers that encode JSON themselves.
	Body    any
	RawBody []byte
	Headers map[string]string
}

// StatusError records an unexpected HTTP status.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// FetchError is the terminal failure of a fetch: the last allowed attempt
// failed with something other than a rate limit.
type FetchError struct {
	URL      string
	Attempts int
	Cause    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s failed after %d attempts: %v", e.URL, e.Attempts, e.Cause)
}

func (e *FetchError) Unwrap() error { return e.Cause }

// Code returns the error code for this error type.
func (e *FetchError) Code() errs.Code { return errs.ErrCodeFetchFailed }

// Fetcher performs requests under a [Policy], distinguishing rate limiting
// (exponential wait) from other failures (flat wait). It is safe for
// concurrent use.
type Fetcher struct {
	client  Doer
	policy  Policy
	limiter *rate.Limiter
	headers map[string]string
	logger  *log.Logger
	hooks   observability.HTTPHooks
	sleep   SleepFunc
}

// Option configures a [Fetcher].
type Option func(*Fetcher)

// WithPolicy sets the retry policy. Zero fields keep their defaults.
func WithPolicy(p Policy) Option {
	return func(f *Fetcher) { f.policy = p.WithDefaults() }
}

// WithLimiter makes every attempt wait for a token from l first.
func WithLimiter(l *rate.Limiter) Option {
	return func(f *Fetcher) { f.limiter = l }
}

// WithHeader adds a header sent on every request.
func WithHeader(key, value string) Option {
	return func(f *Fetcher) { f.headers[key] = value }
}

// WithLogger sets the logger used for retry and failure messages.
func WithLogger(l *log.Logger) Option {
	return func(f *Fetcher) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithHooks sets the HTTP observability hooks.
func WithHooks(h observability.HTTPHooks) Option {
	return func(f *Fetcher) {
		if h != nil {
			f.hooks = h
		}
	}
}

// WithSleep replaces the function used to wait between attempts.
func WithSleep(s SleepFunc) Option {
	return func(f *Fetcher) {
		if s != nil {
			f.sleep = s
		}
	}
}

// NewFetcher creates a Fetcher sending requests through client.
func NewFetcher(client Doer, opts ...Option) *Fetcher {
	f := &Fetcher{
		client:  client,
		policy:  DefaultPolicy(),
		headers: map[string]string{},
		logger:  log.New(io.Discard),
		hooks:   observability.NoopHTTPHooks{},
		sleep:   Sleep,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Policy returns the fetcher's retry policy.
func (f *Fetcher) Policy() Policy { return f.policy }

// Fetch sends req until it succeeds or the attempts run out.
//
// It returns the body and true on a 2xx response carrying valid JSON.
// It returns a *FetchError when the last attempt fails with a transport
// error, an unexpected status, or an invalid body. When every attempt was
// rate limited it returns (nil, false, nil): nothing usable, but no terminal
// error either. Cancelling ctx aborts with ctx.Err().
func (f *Fetcher) Fetch(ctx context.Context, req Request) ([]byte, bool, error) {
	body := req.RawBody
	if body == nil && req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return nil, false, errs.Wrap(errs.ErrCodeInvalidInput, err, "encode request body for %s", req.URL)
		}
		body = b
	}
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	for attempt := range f.policy.MaxAttempts {
		last := attempt == f.policy.MaxAttempts-1

		if f.limiter != nil {
			if err := f.limiter.Wait(ctx); err != nil {
				return nil, false, waitErr(ctx, err)
			}
		}

		data, status, err := f.do(ctx, method, req, body)
		if ctx.Err() != nil {
			return nil, false, ctx.Err()
		}

		if err == nil && status == http.StatusTooManyRequests {
			delay := f.policy.RateLimitDelay(attempt)
			f.logger.Warn("rate limited", "url", req.URL, "attempt", attempt+1, "delay", delay)
			f.hooks.OnRetry(ctx, hostOf(req.URL), status, delay)
			if err := f.sleep(ctx, delay); err != nil {
				return nil, false, err
			}
			continue
		}

		if err == nil {
			switch {
			case status < 200 || status > 299:
				err = &StatusError{StatusCode: status}
			case !gjson.ValidBytes(data):
				err = ErrInvalidJSON
			default:
				return data, true, nil
			}
		}

		f.logger.Error("fetch failed", "url", req.URL, "attempt", attempt+1, "err", err)
		if last {
			return nil, false, &FetchError{URL: req.URL, Attempts: attempt + 1, Cause: err}
		}
		f.hooks.OnRetry(ctx, hostOf(req.URL), status, f.policy.ErrorDelay())
		if err := f.sleep(ctx, f.policy.ErrorDelay()); err != nil {
			return nil, false, err
		}
	}

	f.logger.Warn("giving up while rate limited", "url", req.URL,
		"err", &errs.RateLimitedError{URL: req.URL, Attempts: f.policy.MaxAttempts})
	return nil, false, nil
}

func (f *Fetcher) do(ctx context.Context, method string, req Request, body []byte) ([]byte, int, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL, reader)
	if err != nil {
		return nil, 0, err
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for k, v := range f.headers {
		httpReq.Header.Set(k, v)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	host, path := httpReq.URL.Host, httpReq.URL.Path
	f.hooks.OnRequest(ctx, method, host, path)
	start := time.Now()
	resp, err := f.client.Do(httpReq)
	if err != nil {
		f.hooks.OnError(ctx, method, host, path, err)
		return nil, 0, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	f.hooks.OnResponse(ctx, method, host, path, resp.StatusCode, time.Now().Sub(start))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read body: %w", err)
	}
	return data, resp.StatusCode, nil
}

// waitErr prefers the context's error over the limiter's wording.
func waitErr(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Host
}
