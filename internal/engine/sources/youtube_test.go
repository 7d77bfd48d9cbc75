package sources

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anatolykoptev/go_blog/internal/engine"
)

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		url     string
		want    string
		wantErr bool
	}{
		{"https://youtu.be/abc123", "abc123", false},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ", false},
		{"https://m.youtube.com/watch?feature=share&v=xyz", "xyz", false},
		{"youtube.com/shorts/short1", "short1", false},
		{"https://www.youtube.com/embed/emb1?start=3", "emb1", false},
		{"https://youtu.be/abc123?si=track", "abc123", false},
		{"https://vimeo.com/12345", "", true},
		{"https://www.youtube.com/channel/UC123", "", true},
		{"https://www.youtube.com/watch", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, err := ExtractVideoID(tt.url)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidVideoURL) {
					t.Fatalf("ExtractVideoID(%q) error = %v, want ErrInvalidVideoURL", tt.url, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractVideoID(%q) error = %v", tt.url, err)
			}
			if got != tt.want {
				t.Errorf("ExtractVideoID(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestCleanCaption(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"it&#39;s fine", "it's fine"},
		{"<font color=\"#E5E5E5\">hello</font> world", "hello world"},
		{"line one\nline two", "line one line two"},
		{"  ", ""},
		{"a &amp; b", "a & b"},
	}
	for _, tt := range tests {
		if got := cleanCaption(tt.in); got != tt.want {
			t.Errorf("cleanCaption(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseTimedText(t *testing.T) {
	doc := `<?xml version="1.0" encoding="utf-8" ?><transcript>
<text start="0.5" dur="2.1">welcome to the &amp;#39;tutorial&amp;#39;</text>
<text start="2.6" dur="1">  </text>
<text start="3.6" dur="4.25">let&amp;#39;s write code</text>
</transcript>`

	segs, err := parseTimedText([]byte(doc))
	if err != nil {
		t.Fatalf("parseTimedText() error = %v", err)
	}
	if len(segs) != 2 {
		t.Fatalf("got %d segments, want 2 (blank line dropped)", len(segs))
	}
	if segs[0].Text != "welcome to the 'tutorial'" {
		t.Errorf("segs[0].Text = %q", segs[0].Text)
	}
	if segs[1].Start != 3.6 || segs[1].Duration != 4.25 {
		t.Errorf("segs[1] timing = %v/%v", segs[1].Start, segs[1].Duration)
	}
}

func TestPickBestTrack(t *testing.T) {
	tracks := []captionTrack{
		{BaseURL: "u1&exp=xpe", LanguageCode: "en"},
		{BaseURL: "u2", LanguageCode: "de"},
		{BaseURL: "u3", LanguageCode: "en", Kind: "asr"},
		{BaseURL: "u4", LanguageCode: "en"},
	}

	got, ok := pickBestTrack(tracks, []string{"en"})
	if !ok || got.BaseURL != "u4" {
		t.Errorf("manual en: got %+v ok=%v", got, ok)
	}

	got, ok = pickBestTrack(tracks[:3], []string{"en"})
	if !ok || got.BaseURL != "u3" {
		t.Errorf("asr en: got %+v ok=%v", got, ok)
	}

	got, ok = pickBestTrack(tracks[:2], []string{"fr"})
	if !ok || got.BaseURL != "u2" {
		t.Errorf("fallback first usable: got %+v ok=%v", got, ok)
	}

	if _, ok := pickBestTrack(tracks[:1], []string{"en"}); ok {
		t.Error("expected no usable track when all need PoToken")
	}
}

func TestParseTranscriptSegments(t *testing.T) {
	var resp ytGetTranscriptResp
	raw := `{"actions":[{"updateEngagementPanelAction":{"content":{"transcriptRenderer":{"content":{"transcriptSearchPanelRenderer":{"body":{"transcriptSegmentListRenderer":{"initialSegments":[
		{"transcriptSegmentRenderer":{"startMs":"0","endMs":"1500","snippet":{"runs":[{"text":"first"}]}}},
		{"transcriptSectionHeaderRenderer":{}},
		{"transcriptSegmentRenderer":{"startMs":"1500","endMs":"4000","snippet":{"runs":[{"text":"second"},{"text":"part"}]}}}
	]}}}}}}}}]}`
	if err := jsonUnmarshal(raw, &resp); err != nil {
		t.Fatal(err)
	}
	segs := parseTranscriptSegments(resp)
	if len(segs) != 2 {
		t.Fatalf("got %d segments, want 2", len(segs))
	}
	if segs[1].Text != "second part" || segs[1].Start != 1.5 || segs[1].Duration != 2.5 {
		t.Errorf("segs[1] = %+v", segs[1])
	}
}

func TestPlayerResponseFromPage(t *testing.T) {
	page := []byte(`<html><script>var ytInitialPlayerResponse = {"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[{"baseUrl":"https://x/tt","languageCode":"en"}]}}};var other = 1;</script></html>`)
	p, err := playerResponseFromPage(page)
	if err != nil {
		t.Fatalf("playerResponseFromPage() error = %v", err)
	}
	tracks, err := tracksFromPlayer(p)
	if err != nil || len(tracks) != 1 {
		t.Fatalf("tracks = %v, err = %v", tracks, err)
	}

	if _, err := playerResponseFromPage([]byte("<html></html>")); err == nil {
		t.Error("expected error when marker is missing")
	}
}

func TestTracksFromPlayerReason(t *testing.T) {
	var p innertubePlayerResp
	if err := jsonUnmarshal(`{"playabilityStatus":{"status":"ERROR","reason":"Video unavailable"}}`, &p); err != nil {
		t.Fatal(err)
	}
	_, err := tracksFromPlayer(p)
	if err == nil || err.Error() != "captions unavailable: Video unavailable" {
		t.Errorf("tracksFromPlayer() error = %v", err)
	}

	_, err = tracksFromPlayer(innertubePlayerResp{})
	if !errors.Is(err, ErrNoTranscript) {
		t.Errorf("tracksFromPlayer(empty) error = %v, want ErrNoTranscript", err)
	}
}

func TestFetchYouTubeTranscriptPageScrape(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("v") != "abc123" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprintf(w, `<script>var ytInitialPlayerResponse = {"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[{"baseUrl":"http://%s/tt?lang=en","languageCode":"en"}]}}};</script>`, r.Host)
	})
	mux.HandleFunc("/tt", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<transcript><text start="0" dur="1">hello</text><text start="1" dur="1">world</text></transcript>`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	useTestEndpoints(t, srv.URL)

	segs, err := YouTube{Langs: []string{"en"}}.Segments(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("Segments() error = %v", err)
	}
	if len(segs) != 2 || segs[0].Text != "hello" || segs[1].Text != "world" {
		t.Errorf("segments = %+v", segs)
	}
}

func TestFetchYouTubeTranscriptAllFail(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	useTestEndpoints(t, srv.URL)

	if _, err := FetchYouTubeTranscript(context.Background(), "missing", nil); err == nil {
		t.Fatal("expected error when every strategy fails")
	}
}

func useTestEndpoints(t *testing.T, base string) {
	t.Helper()
	saved := *engine.Cfg
	p, n, g, w := innertubePlayerURL, innertubeNextURL, innertubeGetTrURL, watchPageURL
	t.Cleanup(func() {
		engine.Init(saved)
		innertubePlayerURL, innertubeNextURL, innertubeGetTrURL, watchPageURL = p, n, g, w
	})
	engine.Init(engine.Config{HTTPClient: engine.NewHTTPClient(5 * time.Second)})
	innertubePlayerURL = base + "/player"
	innertubeNextURL = base + "/next"
	innertubeGetTrURL = base + "/get_transcript"
	watchPageURL = base + "/watch?v="
}
