package blog

import (
	"context"
	"fmt"
	"strings"

	"github.com/anatolykoptev/go_blog/internal/engine"
)

// Stage names, in execution order.
const (
	StageTranscript = "transcript"
	StageCode       = "code_analysis"
	StageSummary    = "summary"
	StageFormat     = "format"
)

// TranscriptSource returns the timed caption segments of a video.
type TranscriptSource interface {
	Segments(ctx context.Context, videoID string) ([]engine.TranscriptSegment, error)
}

// RepoSource lists and reads files at a repository root.
type RepoSource interface {
	ListRoot(ctx context.Context, repo string) ([]engine.RepoEntry, error)
	ReadFile(ctx context.Context, repo string, entry engine.RepoEntry) (string, error)
}

// Generator is one synchronous language model completion.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// fetchTranscript joins all segment texts with single spaces.
func (p *Pipeline) fetchTranscript(ctx context.Context, s State) State {
	segs, err := p.transcripts.Segments(ctx, s.VideoID)
	if err != nil {
		s.Transcript = Failed[string](TranscriptErrPrefix, err)
		return s
	}
	texts := make([]string, len(segs))
	for i, seg := range segs {
		texts[i] = seg.Text
	}
	s.Transcript = Succeeded(strings.Join(texts, " "))
	return s
}

// fetchCode collects recognized files from the repository root.
// One failing file fails the whole stage.
func (p *Pipeline) fetchCode(ctx context.Context, s State) State {
	files, err := p.collectCode(ctx, s.Repo)
	if err != nil {
		s.CodeAnalysis = Failed[[]CodeFile](CodeErrPrefix, err)
		return s
	}
	s.CodeAnalysis = Succeeded(files)
	return s
}

func (p *Pipeline) collectCode(ctx context.Context, repo string) ([]CodeFile, error) {
	entries, err := p.repos.ListRoot(ctx, repo)
	if err != nil {
		return nil, err
	}
	files := make([]CodeFile, 0, len(entries))
	for _, e := range entries {
		if e.Type != "" && e.Type != "file" {
			continue
		}
		if !p.recognized(e.Path) {
			continue
		}
		content, err := p.repos.ReadFile(ctx, repo, e)
		if err != nil {
			return nil, err
		}
		files = append(files, CodeFile{Path: e.Path, Content: content})
	}
	return files, nil
}

// recognized reports whether path ends in one of the configured extensions.
func (p *Pipeline) recognized(path string) bool {
	for _, ext := range p.extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// summarize asks the model for a technical summary of transcript and code.
func (p *Pipeline) summarize(ctx context.Context, s State) State {
	prompt := fmt.Sprintf(summaryPrompt, s.TranscriptText(), s.CodeAnalysisText())
	out, err := p.llm.Generate(ctx, prompt)
	if err != nil {
		s.Summary = Failed[string](SummaryErrPrefix, err)
		return s
	}
	s.Summary = Succeeded(out)
	return s
}

// format asks the model for the article and wraps it for presentation.
func (p *Pipeline) format(ctx context.Context, s State) State {
	prompt := fmt.Sprintf(articlePrompt, s.SummaryText())
	out, err := p.llm.Generate(ctx, prompt)
	if err != nil {
		s.Content = Failed[string](FormatErrPrefix, err)
		return s
	}
	s.Content = Succeeded(Wrap(out))
	return s
}
