package engine

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// maxRawBytes caps a single raw file download.
const maxRawBytes = 8 * 1024 * 1024

// FetchRaw downloads a plain-text resource (e.g. a raw.githubusercontent.com
// file) with the configured client. Transient statuses are retried with
// exponential backoff up to Cfg.MaxRetries times.
func FetchRaw(ctx context.Context, rawURL string, headers map[string]string) ([]byte, error) {
	metrics.FetchRequests.Add(1)
	resp, err := fetchWithRetry(ctx, rawURL, headers)
	if err != nil {
		metrics.FetchErrors.Add(1)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := readResponseBody(resp)
	if err != nil {
		metrics.FetchErrors.Add(1)
		return nil, fmt.Errorf("read %s: %w", rawURL, err)
	}
	return body, nil
}

// fetchWithRetry performs an HTTP GET with retry logic using exponential backoff.
func fetchWithRetry(ctx context.Context, fetchURL string, headers map[string]string) (*http.Response, error) {
	operation := func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchURL, nil)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		req.Header.Set("User-Agent", UserAgentBot)
		req.Header.Set("Accept", "text/plain,*/*;q=0.9")
		req.Header.Set("Accept-Encoding", "gzip")
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := cfg.HTTPClient.Do(req)
		if err != nil {
			return nil, backoff.Permanent(err)
		}

		if IsRetryableStatus(resp.StatusCode) {
			resp.Body.Close()
			return nil, fmt.Errorf("status %d", resp.StatusCode)
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, backoff.Permanent(fmt.Errorf("status %d", resp.StatusCode))
		}

		return resp, nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 1 * time.Second
	bo.MaxInterval = 10 * time.Second

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(uint(cfg.MaxRetries+1)),
		backoff.WithMaxElapsedTime(30*time.Second),
	)
}

// readResponseBody reads the response body, handling gzip decompression if needed.
func readResponseBody(resp *http.Response) ([]byte, error) {
	body := io.LimitReader(resp.Body, maxRawBytes)
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(body)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		return io.ReadAll(io.LimitReader(gz, maxRawBytes))
	}
	return io.ReadAll(body)
}
