package engine

import "log/slog"

// Setup validates c, builds the HTTP, browser and LLM clients that are not
// already set, installs the configuration and initializes the run cache.
// proxyAPIKey enables the Webshare proxy pool for the browser client.
func Setup(c Config, proxyAPIKey string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.HTTPClient == nil {
		c.HTTPClient = NewHTTPClient(c.FetchTimeout)
	}
	if c.BrowserClient == nil {
		if c.BrowserClient = NewBrowserClient(proxyAPIKey); c.BrowserClient != nil {
			slog.Info("stealth browser client initialized")
		}
	}
	if c.LLMClient == nil {
		c.LLMClient = NewLLMClient(c)
	}
	Init(c)
	InitCache(c.RedisURL, c.RunTTL, c.CacheMaxEntries, c.CacheCleanupInterval)
	return nil
}
