package sources

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/time/rate"

	"github.com/anatolykoptev/go_blog/internal/engine"
)

// RepoMeta holds GitHub repository metadata from the REST API.
type RepoMeta struct {
	FullName      string `json:"full_name"`
	Description   string `json:"description"`
	Language      string `json:"language"`
	DefaultBranch string `json:"default_branch"`
	Private       bool   `json:"private"`
	HTMLURL       string `json:"html_url"`
}

// ErrInvalidRepo is returned for a locator that is neither owner/name nor a github.com URL.
var ErrInvalidRepo = errors.New("invalid repository locator")

// ownerRepoRe matches github.com/:owner/:repo (with optional trailing path).
var ownerRepoRe = regexp.MustCompile(`(?i)github\.com/([A-Za-z0-9._-]+)/([A-Za-z0-9._-]+)`)

// plainRepoRe matches the bare owner/name form.
var plainRepoRe = regexp.MustCompile(`^([A-Za-z0-9._-]+)/([A-Za-z0-9._-]+)$`)

// ParseRepo accepts "owner/name" or any github.com URL.
func ParseRepo(locator string) (owner, repo string, err error) {
	s := strings.TrimSuffix(strings.TrimSpace(locator), "/")
	m := plainRepoRe.FindStringSubmatch(s)
	if m == nil {
		m = ownerRepoRe.FindStringSubmatch(s)
	}
	if m == nil {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidRepo, locator)
	}
	return m[1], strings.TrimSuffix(m[2], ".git"), nil
}

// GitHub is a minimal REST v3 client for repository metadata and contents.
type GitHub struct {
	baseURL string
	token   string
	client  *http.Client
	limiter *rate.Limiter
}

// NewGitHub creates a client. baseURL is used for testing; pass empty string
// to use the real GitHub API. rps <= 0 disables pacing.
func NewGitHub(baseURL, token string, rps float64, client *http.Client) *GitHub {
	if baseURL == "" {
		baseURL = "https://api.github.com"
	}
	if client == nil {
		client = http.DefaultClient
	}
	lim := rate.NewLimiter(rate.Inf, 1)
	if rps > 0 {
		lim = rate.NewLimiter(rate.Limit(rps), 1)
	}
	return &GitHub{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		client:  client,
		limiter: lim,
	}
}

// NewGitHubFromConfig builds a client from engine.Cfg.
func NewGitHubFromConfig() *GitHub {
	c := engine.Cfg
	return NewGitHub(c.GithubAPIBase, c.GithubToken, c.GithubRPS, c.HTTPClient)
}

func (g *GitHub) authHeaders() map[string]string {
	h := map[string]string{
		"Accept":               "application/vnd.github.v3+json",
		"X-GitHub-Api-Version": "2022-11-28",
	}
	if g.token != "" {
		h["Authorization"] = "Bearer " + g.token
	}
	return h
}

// get performs one paced GET and decodes the JSON body into target.
func (g *GitHub) get(ctx context.Context, apiURL string, target any) error {
	if err := g.limiter.Wait(ctx); err != nil {
		return err
	}
	engine.IncrGithubRequests()

	resp, err := engine.RetryHTTP(ctx, engine.Retry(), func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
		if err != nil {
			return nil, err
		}
		for k, v := range g.authHeaders() {
			req.Header.Set(k, v)
		}
		req.Header.Set("User-Agent", engine.UserAgentBot)
		return g.client.Do(req)
	})
	if err != nil {
		engine.IncrGithubErrors()
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		engine.IncrGithubErrors()
		var apiErr struct {
			Message string `json:"message"`
		}
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("github API status %d: %s", resp.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("github API status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(target)
}

// Repo fetches repository metadata.
func (g *GitHub) Repo(ctx context.Context, locator string) (*RepoMeta, error) {
	owner, repo, err := ParseRepo(locator)
	if err != nil {
		return nil, err
	}
	var meta RepoMeta
	if err := g.get(ctx, fmt.Sprintf("%s/repos/%s/%s", g.baseURL, owner, repo), &meta); err != nil {
		return nil, fmt.Errorf("repo %s/%s: %w", owner, repo, err)
	}
	return &meta, nil
}

// ListRoot resolves the repository and lists the entries at its root.
// The listing is not recursive.
func (g *GitHub) ListRoot(ctx context.Context, locator string) ([]engine.RepoEntry, error) {
	meta, err := g.Repo(ctx, locator)
	if err != nil {
		return nil, err
	}
	var entries []engine.RepoEntry
	if err := g.get(ctx, fmt.Sprintf("%s/repos/%s/contents/", g.baseURL, meta.FullName), &entries); err != nil {
		return nil, fmt.Errorf("contents %s: %w", meta.FullName, err)
	}
	return entries, nil
}

// contentResp is a single-file contents response.
type contentResp struct {
	Type        string `json:"type"`
	Encoding    string `json:"encoding"`
	Content     string `json:"content"`
	DownloadURL string `json:"download_url"`
}

// ReadFile fetches and decodes one file. Files over the contents API size
// limit come back with encoding "none" and are downloaded from download_url.
func (g *GitHub) ReadFile(ctx context.Context, locator string, entry engine.RepoEntry) (string, error) {
	owner, repo, err := ParseRepo(locator)
	if err != nil {
		return "", err
	}
	apiURL := fmt.Sprintf("%s/repos/%s/%s/contents/%s", g.baseURL, owner, repo, escapePath(entry.Path))

	var c contentResp
	if err := g.get(ctx, apiURL, &c); err != nil {
		return "", fmt.Errorf("file %s: %w", entry.Path, err)
	}
	text, err := decodeContent(c)
	if err == nil {
		return text, nil
	}
	if !errors.Is(err, errNeedsDownload) {
		return "", fmt.Errorf("file %s: %w", entry.Path, err)
	}

	dl := c.DownloadURL
	if dl == "" {
		dl = entry.DownloadURL
	}
	if dl == "" {
		return "", fmt.Errorf("file %s: no content and no download URL", entry.Path)
	}
	if err := g.limiter.Wait(ctx); err != nil {
		return "", err
	}
	var headers map[string]string
	if g.token != "" {
		headers = map[string]string{"Authorization": "Bearer " + g.token}
	}
	raw, err := engine.FetchRaw(ctx, dl, headers)
	if err != nil {
		return "", fmt.Errorf("file %s: download: %w", entry.Path, err)
	}
	return string(raw), nil
}

var errNeedsDownload = errors.New("content not inlined")

// decodeContent decodes the inline contents payload.
func decodeContent(c contentResp) (string, error) {
	switch c.Encoding {
	case "base64":
		// GitHub wraps base64 at 60 columns.
		clean := strings.NewReplacer("\n", "", "\r", "").Replace(c.Content)
		b, err := base64.StdEncoding.DecodeString(clean)
		if err != nil {
			return "", fmt.Errorf("decode base64: %w", err)
		}
		return string(b), nil
	case "", "none":
		if c.Content == "" {
			return "", errNeedsDownload
		}
		return c.Content, nil
	default:
		return "", fmt.Errorf("unsupported encoding %q", c.Encoding)
	}
}

// escapePath escapes each path segment but keeps the separators.
func escapePath(p string) string {
	parts := strings.Split(p, "/")
	for i, s := range parts {
		parts[i] = url.PathEscape(s)
	}
	return strings.Join(parts, "/")
}
