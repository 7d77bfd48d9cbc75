package sources

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anatolykoptev/go_blog/internal/engine"
)

func TestParseRepo(t *testing.T) {
	tests := []struct {
		in          string
		owner, repo string
		wantErr     bool
	}{
		{"owner/repo", "owner", "repo", false},
		{" owner/repo ", "owner", "repo", false},
		{"https://github.com/owner/repo", "owner", "repo", false},
		{"https://github.com/owner/repo.git", "owner", "repo", false},
		{"https://github.com/owner/repo/tree/main/src", "owner", "repo", false},
		{"github.com/owner/repo/", "owner", "repo", false},
		{"just-a-name", "", "", true},
		{"", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			owner, repo, err := ParseRepo(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRepo)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.owner, owner)
			assert.Equal(t, tt.repo, repo)
		})
	}
}

func b64(s string) string {
	enc := base64.StdEncoding.EncodeToString([]byte(s))
	// GitHub wraps at 60 columns.
	var sb strings.Builder
	for len(enc) > 60 {
		sb.WriteString(enc[:60])
		sb.WriteByte('\n')
		enc = enc[60:]
	}
	sb.WriteString(enc)
	return sb.String()
}

func newFakeGitHub(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	writeJSON := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(v)
	}
	mux.HandleFunc("/repos/owner/repo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			writeJSON(w, map[string]string{"message": "Bad credentials"})
			return
		}
		writeJSON(w, map[string]any{"full_name": "owner/repo", "default_branch": "main"})
	})
	mux.HandleFunc("/repos/owner/repo/contents/", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/owner/repo/contents/":
			writeJSON(w, []map[string]any{
				{"name": "main.py", "path": "main.py", "type": "file"},
				{"name": "readme.md", "path": "readme.md", "type": "file"},
				{"name": "src", "path": "src", "type": "dir"},
			})
		case "/repos/owner/repo/contents/main.py":
			writeJSON(w, map[string]any{"type": "file", "encoding": "base64", "content": b64(strings.Repeat("print('hello world')\n", 5))})
		case "/repos/owner/repo/contents/big.ipynb":
			writeJSON(w, map[string]any{"type": "file", "encoding": "none", "content": "", "download_url": "http://" + r.Host + "/raw/big.ipynb"})
		default:
			w.WriteHeader(http.StatusNotFound)
			writeJSON(w, map[string]string{"message": "Not Found"})
		}
	})
	mux.HandleFunc("/raw/big.ipynb", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"cells":[]}`))
	})
	return httptest.NewServer(mux)
}

func testGitHub(t *testing.T, srv *httptest.Server, token string) *GitHub {
	t.Helper()
	saved := *engine.Cfg
	t.Cleanup(func() { engine.Init(saved) })
	client := engine.NewHTTPClient(5 * time.Second)
	engine.Init(engine.Config{HTTPClient: client})
	return NewGitHub(srv.URL, token, 0, client)
}

func TestGitHubListRoot(t *testing.T) {
	srv := newFakeGitHub(t)
	defer srv.Close()
	gh := testGitHub(t, srv, "test-token")

	entries, err := gh.ListRoot(context.Background(), "owner/repo")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "main.py", entries[0].Path)
	assert.Equal(t, "dir", entries[2].Type)
}

func TestGitHubListRootBadCredentials(t *testing.T) {
	srv := newFakeGitHub(t)
	defer srv.Close()
	gh := testGitHub(t, srv, "wrong")

	_, err := gh.ListRoot(context.Background(), "https://github.com/owner/repo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401: Bad credentials")
}

func TestGitHubReadFileBase64(t *testing.T) {
	srv := newFakeGitHub(t)
	defer srv.Close()
	gh := testGitHub(t, srv, "test-token")

	text, err := gh.ReadFile(context.Background(), "owner/repo", engine.RepoEntry{Path: "main.py"})
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("print('hello world')\n", 5), text)
}

func TestGitHubReadFileDownloadFallback(t *testing.T) {
	srv := newFakeGitHub(t)
	defer srv.Close()
	gh := testGitHub(t, srv, "test-token")

	text, err := gh.ReadFile(context.Background(), "owner/repo", engine.RepoEntry{Path: "big.ipynb"})
	require.NoError(t, err)
	assert.Equal(t, `{"cells":[]}`, text)
}

func TestGitHubReadFileNotFound(t *testing.T) {
	srv := newFakeGitHub(t)
	defer srv.Close()
	gh := testGitHub(t, srv, "test-token")

	_, err := gh.ReadFile(context.Background(), "owner/repo", engine.RepoEntry{Path: "gone.py"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gone.py")
}

func TestDecodeContent(t *testing.T) {
	got, err := decodeContent(contentResp{Encoding: "base64", Content: b64("x = 1")})
	require.NoError(t, err)
	assert.Equal(t, "x = 1", got)

	_, err = decodeContent(contentResp{Encoding: "none"})
	assert.True(t, errors.Is(err, errNeedsDownload))

	_, err = decodeContent(contentResp{Encoding: "base64", Content: "!!!"})
	assert.Error(t, err)

	_, err = decodeContent(contentResp{Encoding: "utf-16"})
	assert.Error(t, err)
}

func TestEscapePath(t *testing.T) {
	assert.Equal(t, "dir/my%20file.py", escapePath("dir/my file.py"))
}
