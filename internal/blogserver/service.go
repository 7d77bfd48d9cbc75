package blogserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/anatolykoptev/go_blog/internal/archive"
	"github.com/anatolykoptev/go_blog/internal/blog"
	"github.com/anatolykoptev/go_blog/internal/engine"
	"github.com/anatolykoptev/go_blog/internal/toolutil"
)

// Runner validates inputs and runs one pipeline.
type Runner interface {
	Generate(ctx context.Context, videoURL, repo string) (blog.State, error)
}

// Service backs the blog_* MCP tools.
type Service struct {
	Runner    Runner
	Archive   archive.Store // nil disables blog_history and archiving on save
	OutputDir string
	Now       func() time.Time
}

// ErrRunNotFound is returned when a run ID is unknown or its cache entry expired.
var ErrRunNotFound = errors.New("run not found or expired")

// ErrArchiveDisabled is returned by History when no archive is configured.
var ErrArchiveDisabled = errors.New("archive disabled: set ARCHIVE_DSN")

// GenerateInput is the input for blog_generate.
type GenerateInput struct {
	VideoURL string `json:"video_url" jsonschema:"YouTube video URL (watch, youtu.be, shorts or embed form)"`
	Repo     string `json:"repo" jsonschema:"GitHub repository as owner/name or github.com URL"`
	HTML     bool   `json:"html,omitempty" jsonschema:"Also return an HTML preview of the article"`
}

// StageStatus reports one stage outcome.
type StageStatus struct {
	Name  string `json:"name"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// GenerateOutput is the result of blog_generate.
type GenerateOutput struct {
	RunID   string        `json:"run_id"`
	VideoID string        `json:"video_id"`
	Repo    string        `json:"repo"`
	Title   string        `json:"title,omitempty"`
	Stages  []StageStatus `json:"stages"`
	Content string        `json:"content"`
	HTML    string        `json:"html,omitempty"`
}

// SaveInput is the input for blog_save.
type SaveInput struct {
	RunID string `json:"run_id" jsonschema:"Run ID returned by blog_generate"`
}

// SaveOutput is the result of blog_save.
type SaveOutput struct {
	Path      string `json:"path"`
	ArticleID int64  `json:"article_id,omitempty"`
	Message   string `json:"message"`
}

// HistoryInput is the input for blog_history.
type HistoryInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max articles to return (default 20)"`
}

// HistoryEntry is one archived article, without its body.
type HistoryEntry struct {
	ID        int64  `json:"id"`
	RunID     string `json:"run_id"`
	VideoID   string `json:"video_id"`
	Repo      string `json:"repo"`
	Title     string `json:"title,omitempty"`
	Path      string `json:"path"`
	CreatedAt string `json:"created_at"`
}

// HistoryOutput is the result of blog_history.
type HistoryOutput struct {
	Articles []HistoryEntry `json:"articles"`
	Total    int            `json:"total"`
}

func runKey(id string) string {
	return engine.CacheKey("run", id)
}

// Generate runs the pipeline and caches the final state under a new run ID.
func (s *Service) Generate(ctx context.Context, input GenerateInput) (*GenerateOutput, error) {
	if err := toolutil.Required(
		toolutil.Field{Name: "video_url", Value: input.VideoURL},
		toolutil.Field{Name: "repo", Value: input.Repo},
	); err != nil {
		return nil, err
	}
	state, err := s.Runner.Generate(ctx, input.VideoURL, input.Repo)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	if err := engine.CacheStoreJSON(ctx, runKey(runID), state); err != nil {
		slog.Warn("run not cached", slog.String("run_id", runID), slog.Any("error", err))
	}

	out := &GenerateOutput{
		RunID:   runID,
		VideoID: state.VideoID,
		Repo:    state.Repo,
		Stages:  stageStatuses(state),
		Content: state.ContentText(),
	}
	if state.Content.OK() {
		md := blog.Unwrap(state.Content.Value)
		out.Title = blog.Title(md)
		if input.HTML {
			html, err := blog.RenderHTML(md)
			if err != nil {
				return nil, err
			}
			out.HTML = html
		}
	}
	slog.Info("blog generated",
		slog.String("run_id", runID),
		slog.String("video_id", state.VideoID),
		slog.String("repo", state.Repo),
		slog.Int("failed_stages", len(state.Failures())),
	)
	return out, nil
}

func stageStatuses(s blog.State) []StageStatus {
	failures := s.Failures()
	names := []string{blog.StageTranscript, blog.StageCode, blog.StageSummary, blog.StageFormat}
	out := make([]StageStatus, 0, len(names))
	for _, n := range names {
		reason, failed := failures[n]
		out = append(out, StageStatus{Name: n, OK: !failed, Error: reason})
	}
	return out
}

// Save writes the article of a cached run to OutputDir and archives it.
func (s *Service) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if err := toolutil.Required(toolutil.Field{Name: "run_id", Value: input.RunID}); err != nil {
		return nil, err
	}
	state, ok := engine.CacheLoadJSON[blog.State](ctx, runKey(input.RunID))
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, input.RunID)
	}
	if !state.Content.OK() {
		return nil, fmt.Errorf("run %s has no article: %s", input.RunID, state.ContentText())
	}

	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	path, err := blog.Save(s.OutputDir, state.Content.Value, now)
	if err != nil {
		return nil, err
	}
	out := &SaveOutput{Path: path, Message: "Blog saved to " + path}

	if s.Archive != nil {
		md := blog.Unwrap(state.Content.Value)
		id, err := s.Archive.Add(ctx, archive.Article{
			RunID:     input.RunID,
			VideoID:   state.VideoID,
			Repo:      state.Repo,
			Title:     blog.Title(md),
			Path:      path,
			Body:      md,
			CreatedAt: now,
		})
		if err != nil {
			slog.Warn("article not archived", slog.String("path", path), slog.Any("error", err))
			out.Message += " (archive failed)"
		} else {
			out.ArticleID = id
		}
	}
	return out, nil
}

// History lists archived articles, newest first.
func (s *Service) History(ctx context.Context, input HistoryInput) (*HistoryOutput, error) {
	if s.Archive == nil {
		return nil, ErrArchiveDisabled
	}
	articles, err := s.Archive.List(ctx, input.Limit)
	if err != nil {
		return nil, err
	}
	out := &HistoryOutput{Articles: make([]HistoryEntry, 0, len(articles))}
	for _, a := range articles {
		out.Articles = append(out.Articles, HistoryEntry{
			ID:        a.ID,
			RunID:     a.RunID,
			VideoID:   a.VideoID,
			Repo:      a.Repo,
			Title:     a.Title,
			Path:      a.Path,
			CreatedAt: a.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	out.Total = len(out.Articles)
	return out, nil
}
