package blog

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/anatolykoptev/go_blog/internal/engine"
)

type fakeTranscripts struct {
	segs []engine.TranscriptSegment
	err  error
}

func (f fakeTranscripts) Segments(context.Context, string) ([]engine.TranscriptSegment, error) {
	return f.segs, f.err
}

type fakeRepo struct {
	entries []engine.RepoEntry
	files   map[string]string
	listErr error
	readErr map[string]error

	mu   sync.Mutex
	read []string
}

func (f *fakeRepo) ListRoot(context.Context, string) ([]engine.RepoEntry, error) {
	return f.entries, f.listErr
}

func (f *fakeRepo) ReadFile(_ context.Context, _ string, e engine.RepoEntry) (string, error) {
	f.mu.Lock()
	f.read = append(f.read, e.Path)
	f.mu.Unlock()
	if err := f.readErr[e.Path]; err != nil {
		return "", err
	}
	content, ok := f.files[e.Path]
	if !ok {
		return "", errors.New("404 Not Found")
	}
	return content, nil
}

// stubLLM answers deterministically: a summary for the summary prompt,
// a fixed article for the article prompt.
type stubLLM struct {
	summaryErr error
	articleErr error

	mu      sync.Mutex
	prompts []string
}

const (
	stubSummary = "SUMMARY: transcript and code covered"
	stubArticle = "# Building a Pipeline\n\nIntro.\n\n```python\nprint('hi')\n```\n"
)

func (s *stubLLM) Generate(_ context.Context, prompt string) (string, error) {
	s.mu.Lock()
	s.prompts = append(s.prompts, prompt)
	s.mu.Unlock()
	if strings.HasPrefix(prompt, "Analyze the following") {
		if s.summaryErr != nil {
			return "", s.summaryErr
		}
		return stubSummary, nil
	}
	if s.articleErr != nil {
		return "", s.articleErr
	}
	return stubArticle, nil
}

func defaultRepo() *fakeRepo {
	return &fakeRepo{
		entries: []engine.RepoEntry{
			{Name: "main.py", Path: "main.py", Type: "file"},
			{Name: "readme.md", Path: "readme.md", Type: "file"},
			{Name: "nb.ipynb", Path: "nb.ipynb", Type: "file"},
		},
		files: map[string]string{
			"main.py":   "print('hi')\n",
			"readme.md": "# readme\n",
			"nb.ipynb":  `{"cells": []}`,
		},
	}
}

func defaultTranscripts() fakeTranscripts {
	return fakeTranscripts{segs: []engine.TranscriptSegment{
		{Text: "hello", Start: 0, Duration: 1},
		{Text: "world", Start: 1, Duration: 1},
	}}
}
