package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	PipelineRuns       atomic.Int64
	StageErrors        atomic.Int64
	TranscriptRequests atomic.Int64
	TranscriptErrors   atomic.Int64
	GithubRequests     atomic.Int64
	GithubErrors       atomic.Int64
	LLMCalls           atomic.Int64
	LLMErrors          atomic.Int64
	FetchRequests      atomic.Int64
	FetchErrors        atomic.Int64
	ArticlesSaved      atomic.Int64
}

var metricKeys = []string{
	"pipeline_runs", "stage_errors",
	"transcript_requests", "transcript_errors",
	"github_requests", "github_errors",
	"llm_calls", "llm_errors",
	"fetch_requests", "fetch_errors",
	"articles_saved",
	"cache_hits", "cache_misses",
}

// GetMetrics returns a snapshot of all metrics including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := CacheStats()
	return map[string]int64{
		"pipeline_runs":       metrics.PipelineRuns.Load(),
		"stage_errors":        metrics.StageErrors.Load(),
		"transcript_requests": metrics.TranscriptRequests.Load(),
		"transcript_errors":   metrics.TranscriptErrors.Load(),
		"github_requests":     metrics.GithubRequests.Load(),
		"github_errors":       metrics.GithubErrors.Load(),
		"llm_calls":           metrics.LLMCalls.Load(),
		"llm_errors":          metrics.LLMErrors.Load(),
		"fetch_requests":      metrics.FetchRequests.Load(),
		"fetch_errors":        metrics.FetchErrors.Load(),
		"articles_saved":      metrics.ArticlesSaved.Load(),
		"cache_hits":          hits,
		"cache_misses":        misses,
	}
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	for _, k := range metricKeys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for sub-packages.
func IncrPipelineRuns()       { metrics.PipelineRuns.Add(1) }
func IncrStageErrors()        { metrics.StageErrors.Add(1) }
func IncrTranscriptRequests() { metrics.TranscriptRequests.Add(1) }
func IncrTranscriptErrors()   { metrics.TranscriptErrors.Add(1) }
func IncrGithubRequests()     { metrics.GithubRequests.Add(1) }
func IncrGithubErrors()       { metrics.GithubErrors.Add(1) }
func IncrArticlesSaved()      { metrics.ArticlesSaved.Add(1) }

// TrackOperation logs a warning if an operation takes longer than threshold.
func TrackOperation(ctx context.Context, name string, threshold time.Duration, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	if elapsed > threshold {
		slog.Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return err
}
