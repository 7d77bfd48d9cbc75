package blog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/anatolykoptev/go_blog/internal/engine"
	"github.com/anatolykoptev/go_blog/internal/engine/sources"
)

// slowStage is the elapsed time above which a stage is logged as slow.
const slowStage = 60 * time.Second

// Stage is one named step over the state.
type Stage struct {
	Name string
	Run  func(ctx context.Context, s State) State
}

// Pipeline runs transcript, code, summary and format stages in order.
type Pipeline struct {
	transcripts TranscriptSource
	repos       RepoSource
	llm         Generator
	extensions  []string
	stages      []Stage
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithExtensions sets the recognized code file suffixes.
func WithExtensions(exts []string) Option {
	return func(p *Pipeline) {
		if len(exts) > 0 {
			p.extensions = exts
		}
	}
}

// New builds a pipeline over the given collaborators.
func New(transcripts TranscriptSource, repos RepoSource, llm Generator, opts ...Option) *Pipeline {
	p := &Pipeline{
		transcripts: transcripts,
		repos:       repos,
		llm:         llm,
		extensions:  engine.DefaultCodeExtensions,
	}
	for _, o := range opts {
		o(p)
	}
	p.stages = []Stage{
		{Name: StageTranscript, Run: p.fetchTranscript},
		{Name: StageCode, Run: p.fetchCode},
		{Name: StageSummary, Run: p.summarize},
		{Name: StageFormat, Run: p.format},
	}
	return p
}

// NewFromConfig wires the YouTube, GitHub and LLM clients configured in engine.Cfg.
func NewFromConfig() *Pipeline {
	c := engine.Cfg
	return New(
		sources.YouTube{Langs: c.TranscriptLangs},
		sources.NewGitHubFromConfig(),
		engine.LLM{},
		WithExtensions(c.CodeExtensions),
	)
}

// Stages returns the stages in execution order.
func (p *Pipeline) Stages() []Stage {
	return append([]Stage(nil), p.stages...)
}

// Run executes every stage once, in order, and returns the final state.
// Stage failures are recorded in the state and never stop the run.
func (p *Pipeline) Run(ctx context.Context, s State) State {
	engine.IncrPipelineRuns()
	for _, st := range p.stages {
		s = p.runStage(ctx, st, s)
	}
	return s
}

func (p *Pipeline) runStage(ctx context.Context, st Stage, s State) State {
	start := time.Now()
	var next State
	_ = engine.TrackOperation(ctx, "stage:"+st.Name, slowStage, func(ctx context.Context) error {
		next = grow(s, st.Run(ctx, s))
		return nil
	})
	attrs := []any{
		slog.String("stage", st.Name),
		slog.String("video_id", s.VideoID),
		slog.String("repo", s.Repo),
		slog.Duration("elapsed", time.Since(start)),
	}
	if reason, failed := next.Failures()[st.Name]; failed {
		engine.IncrStageErrors()
		slog.Warn("stage failed", append(attrs, slog.String("error", engine.Preview(reason, 200)))...)
	} else {
		slog.Info("stage done", attrs...)
	}
	return next
}

// Generate validates the inputs, then runs the pipeline for one video and repository.
// Only input errors are returned; stage failures are in the state.
func (p *Pipeline) Generate(ctx context.Context, videoURL, repo string) (State, error) {
	repo = strings.TrimSpace(repo)
	if strings.TrimSpace(videoURL) == "" || repo == "" {
		return State{}, fmt.Errorf("%w: video URL and repository are required", ErrMissingInput)
	}
	id, err := sources.ExtractVideoID(videoURL)
	if err != nil {
		return State{}, err
	}
	return p.Run(ctx, State{VideoID: id, Repo: repo}), nil
}
