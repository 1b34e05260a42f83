package pipeline

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/meescheck/meescheck/internal/model"
	"github.com/meescheck/meescheck/internal/util"
	"github.com/meescheck/meescheck/internal/worker"
)

// Fetcher downloads certificate pages from the public EPC register. It is
// polite by default: robots.txt is honoured and requests are rate limited
// per host.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	robots     *util.RobotsChecker
	limiter    *worker.Limiter
}

// NewFetcher creates a Fetcher from the HTTP configuration.
func NewFetcher(cfg model.HTTPConfig) *Fetcher {
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 1
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 2_000_000
	}
	f := &Fetcher{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.ProxyHTTP, cfg.ProxyHTTPS),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
		limiter:   worker.NewLimiter(cfg.RequestsPerSecond, 2),
	}
	if cfg.RespectRobots {
		f.robots = util.NewRobotsChecker(cfg.UserAgent, cfg.Timeout)
	}
	return f
}

// FetchResult contains the downloaded certificate document.
type FetchResult struct {
	Data        []byte
	ContentType string
	FinalURL    string
	Subject     string
}

// Fetch retrieves one certificate page.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*FetchResult, error) {
	if f.robots != nil {
		allowed, _, err := f.robots.CanFetch(ctx, rawURL)
		if err == nil && !allowed {
			return nil, fmt.Errorf("robots.txt disallows fetching %s", rawURL)
		}
	}

	if err := f.limiter.Wait(ctx, rawURL); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,text/plain;q=0.8")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	finalURL := resp.Request.URL.String()
	return &FetchResult{
		Data:        body,
		ContentType: resp.Header.Get("Content-Type"),
		FinalURL:    finalURL,
		Subject:     subjectFromURL(finalURL),
	}, nil
}

// fetchSleepFunc is replaceable in tests to skip backoff delays.
var fetchSleepFunc = time.Sleep

const fetchAttempts = 3

// FetchWithRetry retries transient failures (5xx, 429, connection drops)
// with backoff. Client errors fail immediately.
func (f *Fetcher) FetchWithRetry(ctx context.Context, rawURL string) (*FetchResult, error) {
	var lastErr error
	for attempt := 1; attempt <= fetchAttempts; attempt++ {
		result, err := f.Fetch(ctx, rawURL)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !isRetryableFetchError(err) {
			return nil, err
		}
		if attempt < fetchAttempts {
			fetchSleepFunc(time.Duration(attempt) * time.Second)
		}
	}
	return nil, lastErr
}

// isRetryableFetchError reports whether a fetch error is worth retrying.
func isRetryableFetchError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()

	for _, status := range []string{"429", "500", "502", "503", "504"} {
		if strings.Contains(msg, "unexpected status: "+status) {
			return true
		}
	}
	if strings.HasPrefix(msg, "fetch: ") {
		// Transport-level failure (refused, reset, timeout)
		return true
	}
	return false
}

// subjectFromURL derives a readable report subject from the certificate
// URL (typically the certificate number path segment).
func subjectFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	path := strings.Trim(parsed.Path, "/")
	if path == "" {
		return parsed.Host
	}

	segments := strings.Split(path, "/")
	last := segments[len(segments)-1]
	last = strings.ReplaceAll(last, "_", " ")
	last = strings.ReplaceAll(last, "-", " ")
	if idx := strings.LastIndex(last, "."); idx > 0 {
		last = last[:idx]
	}
	return last
}
