package engine

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_MissingCredentials(t *testing.T) {
	prev := cfg
	t.Cleanup(func() { Init(prev) })

	err := Setup(Config{LLMModel: "untouched"}, "")
	require.EqualError(t, err, "missing required environment variables: GOOGLE_API_KEY, GITHUB_TOKEN")
	assert.NotEqual(t, "untouched", Cfg.LLMModel, "config not installed on error")
}

func TestSetup_InstallsConfig(t *testing.T) {
	prev := cfg
	t.Cleanup(func() { Init(prev) })

	hc := &http.Client{Timeout: 3 * time.Second}
	c := Config{
		LLMAPIKey:   "key",
		GithubToken: "tok",
		LLMModel:    "gemini-2.5-flash",
		LLMAPIBase:  "http://127.0.0.1:1",
		HTTPClient:  hc,
		RunTTL:      time.Minute,
	}
	require.NoError(t, Setup(c, ""))

	assert.Same(t, hc, Cfg.HTTPClient)
	assert.NotNil(t, Cfg.LLMClient)
	assert.Equal(t, "tok", Cfg.GithubToken)
}
