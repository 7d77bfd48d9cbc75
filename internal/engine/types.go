package engine

// --- Transcript types ---

// TranscriptSegment is one timed caption line. Start and Duration are seconds.
type TranscriptSegment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// --- Repository types ---

// RepoEntry is one item of a GitHub contents listing.
type RepoEntry struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Type        string `json:"type"` // "file", "dir", "symlink", "submodule"
	Size        int64  `json:"size"`
	SHA         string `json:"sha"`
	DownloadURL string `json:"download_url"`
}

// CodeFile is a retrieved source file: path relative to the repo root and decoded text.
type CodeFile struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}
