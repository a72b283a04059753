// Package httputil provides the backoff fetcher used by every registry client.
//
// # Overview
//
// [Fetcher] sends one request and retries it under a [Policy]:
//
//   - HTTP 429: wait BaseDelay * 2^attempt, then retry
//   - any other failure (transport error, non-2xx status, invalid JSON):
//     log it, wait BaseDelay, then retry; on the last attempt return a
//     [*FetchError]
//   - when every attempt was rate limited, return (nil, false, nil)
//
// The defaults are 5 attempts and a 1 second base delay, so a fetch that is
// rate limited on every attempt sleeps 1+2+4+8+16 = 31 seconds in total.
//
// An optional token-bucket limiter (golang.org/x/time/rate) spaces attempts
// out across all goroutines sharing the fetcher.
//
// Usage:
//
//	f := httputil.NewFetcher(&http.Client{Timeout: 10 * time.Second},
//	    httputil.WithLogger(logger),
//	    httputil.WithHeader("User-Agent", "techdd"))
//	body, ok, err := f.Fetch(ctx, httputil.Request{URL: "https://pypi.org/pypi/requests/json"})
//	switch {
//	case err != nil: // terminal failure
//	case !ok:        // rate limited throughout
//	default:         // body is valid JSON
//	}
package httputil
