package engine

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-kit/llm"
)

// Required credential variable names.
const (
	EnvLLMAPIKey   = "GOOGLE_API_KEY"
	EnvGithubToken = "GITHUB_TOKEN"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	LLMAPIKey            string
	LLMAPIKeyFallbacks   []string
	LLMAPIBase           string
	LLMModel             string
	LLMTemperature       float64
	LLMMaxTokens         int
	LLMTimeout           time.Duration
	GithubToken          string
	GithubAPIBase        string
	GithubRPS            float64
	CodeExtensions       []string
	TranscriptLangs      []string
	FetchTimeout         time.Duration
	MaxRetries           int // transport-level retries of transient statuses; 0 = none
	OutputDir            string
	ArchiveDSN           string
	RedisURL             string
	RunTTL               time.Duration
	CacheMaxEntries      int
	CacheCleanupInterval time.Duration
	HTTPClient           *http.Client
	BrowserClient        *BrowserClient // nil = watch page fetched with HTTPClient
	LLMClient            *llm.Client
}

// DefaultCodeExtensions is the recognized source/notebook extension set.
var DefaultCodeExtensions = []string{".py", ".ipynb"}

// ConfigFromEnv reads the configuration from the process environment.
// Clients (HTTP, LLM, browser) are not built here; see main.
func ConfigFromEnv() Config {
	return Config{
		LLMAPIKey:            env.Str(EnvLLMAPIKey, ""),
		LLMAPIKeyFallbacks:   env.List("GOOGLE_API_KEY_FALLBACKS", ""),
		LLMAPIBase:           env.Str("LLM_API_BASE", "https://generativelanguage.googleapis.com/v1beta/openai"),
		LLMModel:             env.Str("LLM_MODEL", "gemini-2.5-flash"),
		LLMTemperature:       env.Float("LLM_TEMPERATURE", 0.3),
		LLMMaxTokens:         env.Int("LLM_MAX_TOKENS", 16384),
		LLMTimeout:           env.Duration("LLM_TIMEOUT", 180*time.Second),
		GithubToken:          env.Str(EnvGithubToken, ""),
		GithubAPIBase:        env.Str("GITHUB_API_BASE", "https://api.github.com"),
		GithubRPS:            env.Float("GITHUB_RPS", 5),
		CodeExtensions:       normExtensions(env.List("CODE_EXTENSIONS", strings.Join(DefaultCodeExtensions, ","))),
		TranscriptLangs:      env.List("TRANSCRIPT_LANGS", "en"),
		FetchTimeout:         env.Duration("FETCH_TIMEOUT", 30*time.Second),
		MaxRetries:           env.Int("HTTP_MAX_RETRIES", 0),
		OutputDir:            env.Str("OUTPUT_DIR", "generated_blogs"),
		ArchiveDSN:           env.Str("ARCHIVE_DSN", ""),
		RedisURL:             env.Str("REDIS_URL", ""),
		RunTTL:               env.Duration("RUN_TTL", time.Hour),
		CacheMaxEntries:      env.Int("CACHE_MAX_ENTRIES", 500),
		CacheCleanupInterval: env.Duration("CACHE_CLEANUP_INTERVAL", 5*time.Minute),
	}
}

// Validate reports every missing required credential in one error.
func (c Config) Validate() error {
	var missing []string
	if c.LLMAPIKey == "" {
		missing = append(missing, EnvLLMAPIKey)
	}
	if c.GithubToken == "" {
		missing = append(missing, EnvGithubToken)
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// normExtensions trims entries and adds a leading dot where it is missing.
func normExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	if len(out) == 0 {
		return DefaultCodeExtensions
	}
	return out
}

var cfg Config

// Cfg exposes the engine configuration for sub-packages (sources, blog).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: c.FetchTimeout}
	}
	cfg = c
	Cfg = &cfg
}
