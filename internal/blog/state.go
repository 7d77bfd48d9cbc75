package blog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/anatolykoptev/go_blog/internal/engine"
)

// CodeFile is one retrieved source file.
type CodeFile = engine.CodeFile

// Outcome is a stage result: a value on success, a reason on failure.
// Reason carries the full error text (e.g. "Error getting transcript: ...")
// so readers that treat the field as plain text see the same string either way.
type Outcome[T any] struct {
	Value  T      `json:"value,omitempty"`
	Reason string `json:"error,omitempty"`
}

// Succeeded wraps a successful stage value.
func Succeeded[T any](v T) *Outcome[T] {
	return &Outcome[T]{Value: v}
}

// Failed records a stage failure as prefix + cause.
func Failed[T any](prefix string, err error) *Outcome[T] {
	return &Outcome[T]{Reason: prefix + err.Error()}
}

// OK reports whether the stage ran and succeeded.
func (o *Outcome[T]) OK() bool {
	return o != nil && o.Reason == ""
}

// Stage error prefixes. Callers may match on these to detect a failed stage.
const (
	TranscriptErrPrefix = "Error getting transcript: "
	CodeErrPrefix       = "Error analyzing code: "
	SummaryErrPrefix    = "Error creating summary: "
	FormatErrPrefix     = "Error formatting blog: "
)

// State is the record threaded through the pipeline. Inputs are set by the
// caller; each stage sets exactly one outcome field. A nil outcome means the
// stage has not run yet. Fields are never cleared once set.
type State struct {
	VideoID      string               `json:"video_id"`
	Repo         string               `json:"github_repo"`
	Transcript   *Outcome[string]     `json:"transcript,omitempty"`
	CodeAnalysis *Outcome[[]CodeFile] `json:"code_analysis,omitempty"`
	Summary      *Outcome[string]     `json:"summary,omitempty"`
	Content      *Outcome[string]     `json:"content,omitempty"`
}

// Complete reports whether every stage has produced an outcome.
func (s State) Complete() bool {
	return s.Transcript != nil && s.CodeAnalysis != nil && s.Summary != nil && s.Content != nil
}

// Failures maps stage name to failure text for every failed stage.
func (s State) Failures() map[string]string {
	out := make(map[string]string)
	if s.Transcript != nil && !s.Transcript.OK() {
		out[StageTranscript] = s.Transcript.Reason
	}
	if s.CodeAnalysis != nil && !s.CodeAnalysis.OK() {
		out[StageCode] = s.CodeAnalysis.Reason
	}
	if s.Summary != nil && !s.Summary.OK() {
		out[StageSummary] = s.Summary.Reason
	}
	if s.Content != nil && !s.Content.OK() {
		out[StageFormat] = s.Content.Reason
	}
	return out
}

func textOf(o *Outcome[string], fallback string) string {
	switch {
	case o == nil:
		return fallback
	case o.OK():
		return o.Value
	default:
		return o.Reason
	}
}

// TranscriptText returns the transcript, its error text, or a placeholder.
func (s State) TranscriptText() string {
	return textOf(s.Transcript, "No transcript available")
}

// SummaryText returns the summary, its error text, or a placeholder.
func (s State) SummaryText() string {
	return textOf(s.Summary, "No summary available")
}

// ContentText returns the wrapped article or its error text.
func (s State) ContentText() string {
	return textOf(s.Content, "")
}

// CodeAnalysisText renders the retrieved files for a prompt.
func (s State) CodeAnalysisText() string {
	o := s.CodeAnalysis
	switch {
	case o == nil:
		return "No code analysis available"
	case !o.OK():
		return o.Reason
	case len(o.Value) == 0:
		return "No matching code files in the repository root."
	}
	var sb strings.Builder
	for i, f := range o.Value {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "File: %s\n```%s\n%s\n```", f.Path, fenceLang(f.Path), strings.TrimRight(f.Content, "\n"))
	}
	return sb.String()
}

// fenceLang picks a fence info string from the file extension.
func fenceLang(path string) string {
	switch {
	case strings.HasSuffix(path, ".py"):
		return "python"
	case strings.HasSuffix(path, ".ipynb"):
		return "json"
	case strings.HasSuffix(path, ".go"):
		return "go"
	case strings.HasSuffix(path, ".js"):
		return "javascript"
	case strings.HasSuffix(path, ".ts"):
		return "typescript"
	}
	return ""
}

// grow returns next with every outcome that was already set in prev restored,
// so a stage can only add to the state.
func grow(prev, next State) State {
	next.VideoID, next.Repo = prev.VideoID, prev.Repo
	if prev.Transcript != nil {
		next.Transcript = prev.Transcript
	}
	if prev.CodeAnalysis != nil {
		next.CodeAnalysis = prev.CodeAnalysis
	}
	if prev.Summary != nil {
		next.Summary = prev.Summary
	}
	if prev.Content != nil {
		next.Content = prev.Content
	}
	return next
}

// ErrMissingInput is returned when a run is requested without a video or repository.
var ErrMissingInput = errors.New("missing input")
