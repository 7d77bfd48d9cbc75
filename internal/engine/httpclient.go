package engine

import (
	"log/slog"
	"net/http"
	"time"

	stealth "github.com/anatolykoptev/go-stealth"
	"github.com/anatolykoptev/go-stealth/proxypool"
)

// NewHTTPClient returns the shared client for YouTube and GitHub calls.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        20,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     60 * time.Second,
		},
	}
}

func newLLMHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// NewBrowserClient builds a Chrome-fingerprinted client for the watch page scrape.
// An empty proxyAPIKey runs without a proxy pool. Returns nil when the client
// cannot be built; callers fall back to the plain HTTP client.
func NewBrowserClient(proxyAPIKey string) *BrowserClient {
	var opts []stealth.ClientOption
	opts = append(opts, stealth.WithTimeout(15))

	if proxyAPIKey != "" {
		pool, err := proxypool.NewWebshare(proxyAPIKey)
		if err != nil {
			slog.Warn("proxy pool init failed, running without proxy", slog.Any("error", err))
		} else {
			opts = append(opts, stealth.WithProxyPool(pool))
			slog.Info("proxy pool initialized", slog.Int("proxies", pool.Len()))
		}
	}

	bc, err := stealth.NewClient(opts...)
	if err != nil {
		slog.Warn("stealth client init failed", slog.Any("error", err))
		return nil
	}
	return bc
}
