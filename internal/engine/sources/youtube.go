package sources

// YouTube implementation is split across three files by responsibility:
//   youtube.go            : video URL parsing
//   youtube_innertube.go  : Innertube API types, constants, and low-level HTTP primitives
//   youtube_transcript.go : transcript fetching (page scrape, engagement panel, ANDROID player)

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidVideoURL is returned for input that is not a recognizable YouTube video URL.
var ErrInvalidVideoURL = errors.New("invalid YouTube URL")

// ExtractVideoID returns the video ID from a YouTube URL:
// youtube.com/watch?v=ID, youtube.com/shorts/ID, youtube.com/embed/ID, youtu.be/ID.
func ExtractVideoID(rawURL string) (string, error) {
	s := strings.TrimSpace(rawURL)
	if s == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidVideoURL)
	}
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidVideoURL, rawURL)
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")
	path := strings.Trim(u.Path, "/")

	var id string
	switch host {
	case "youtu.be":
		id = path
		if i := strings.LastIndex(id, "/"); i >= 0 {
			id = id[i+1:]
		}
	case "youtube.com", "music.youtube.com":
		switch {
		case path == "watch":
			id = u.Query().Get("v")
		case strings.HasPrefix(path, "shorts/"), strings.HasPrefix(path, "embed/"), strings.HasPrefix(path, "live/"):
			id = path[strings.Index(path, "/")+1:]
			if i := strings.Index(id, "/"); i >= 0 {
				id = id[:i]
			}
		}
	}
	if id == "" || strings.ContainsAny(id, " /?&#") {
		return "", fmt.Errorf("%w: %q", ErrInvalidVideoURL, rawURL)
	}
	return id, nil
}
