package sources

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/anatolykoptev/go_blog/internal/engine"
)

// YouTube transcript fetching.
// Primary:  watch page ytInitialPlayerResponse → caption XML (works from any IP)
// Fallback: /next → engagement panel → /get_transcript  (works from datacenter IPs)
// Fallback: ANDROID Innertube /player → captionTracks   (works from non-blocked IPs)

// ErrNoTranscript reports a video that has no usable captions.
var ErrNoTranscript = errors.New("no transcript available")

// getTranscriptRE extracts the continuation token from a raw /next JSON response.
var getTranscriptRE = regexp.MustCompile(`"getTranscriptEndpoint":\{"params":"([^"]+)"`)

func extractTranscriptToken(data []byte) (string, error) {
	if m := getTranscriptRE.FindSubmatch(data); len(m) >= 2 {
		// The params value in the /next JSON response is URL-encoded.
		// /get_transcript expects the decoded (raw base64) form.
		decoded, err := url.QueryUnescape(string(m[1]))
		if err != nil {
			return string(m[1]), nil
		}
		return decoded, nil
	}
	return "", errors.New("getTranscriptEndpoint not found in engagement panels")
}

// cleanCaption decodes HTML entities and drops inline markup (<font>, <i>)
// from one caption line, collapsing whitespace.
func cleanCaption(s string) string {
	ctx := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(s), ctx)
	if err != nil {
		return strings.Join(strings.Fields(engine.CleanHTML(html.UnescapeString(s))), " ")
	}
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range nodes {
		walk(n)
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

func parseSeconds(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

// parseTranscriptSegments extracts timed segments from a /get_transcript JSON response.
func parseTranscriptSegments(resp ytGetTranscriptResp) []engine.TranscriptSegment {
	var segs []engine.TranscriptSegment
	for _, action := range resp.Actions {
		if action.UpdateEngagementPanelAction == nil {
			continue
		}
		initial := action.UpdateEngagementPanelAction.Content.
			TranscriptRenderer.Content.
			TranscriptSearchPanelRenderer.Body.
			TranscriptSegmentListRenderer.InitialSegments
		for _, seg := range initial {
			r := seg.TranscriptSegmentRenderer
			if r == nil {
				continue
			}
			var parts []string
			for _, run := range r.Snippet.Runs {
				if run.Text != "" {
					parts = append(parts, run.Text)
				}
			}
			text := cleanCaption(strings.Join(parts, " "))
			if text == "" {
				continue
			}
			start := parseSeconds(r.StartMs) / 1000
			end := parseSeconds(r.EndMs) / 1000
			segs = append(segs, engine.TranscriptSegment{
				Text:     text,
				Start:    start,
				Duration: max(end-start, 0),
			})
		}
	}
	return segs
}

// parseTimedText parses a timedtext XML document into segments.
func parseTimedText(body []byte) ([]engine.TranscriptSegment, error) {
	var tt ytTimedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return nil, fmt.Errorf("parse timedtext XML: %w", err)
	}
	segs := make([]engine.TranscriptSegment, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		text := cleanCaption(line.Text)
		if text == "" {
			continue
		}
		segs = append(segs, engine.TranscriptSegment{
			Text:     text,
			Start:    parseSeconds(line.Start),
			Duration: parseSeconds(line.Dur),
		})
	}
	return segs, nil
}

// fetchTranscriptViaEngagementPanel fetches a transcript via:
//  1. POST /next → get engagementPanels containing transcript continuation token
//  2. POST /get_transcript with the token → JSON segments
//
// This approach works from datacenter IPs where /player returns LOGIN_REQUIRED.
func fetchTranscriptViaEngagementPanel(ctx context.Context, videoID string) ([]engine.TranscriptSegment, error) {
	visitorData := generateVisitorData()

	nextData, err := postInnerTubeWEB(ctx, innertubeNextURL, map[string]any{
		"videoId": videoID,
		"context": ytWebContext(visitorData),
	}, visitorData)
	if err != nil {
		return nil, fmt.Errorf("/next: %w", err)
	}

	token, err := extractTranscriptToken(nextData)
	if err != nil {
		return nil, fmt.Errorf("token: %w", err)
	}

	transcriptData, err := postInnerTubeWEB(ctx, innertubeGetTrURL, map[string]any{
		"params": token,
		"context": map[string]any{
			"client": ytWebClientCtx{
				ClientName:    "WEB",
				ClientVersion: ytWebVersion,
				VisitorData:   visitorData,
				Hl:            "en",
				Gl:            "US",
			},
		},
	}, visitorData)
	if err != nil {
		return nil, fmt.Errorf("/get_transcript: %w", err)
	}

	var transcriptResp ytGetTranscriptResp
	if err := json.Unmarshal(transcriptData, &transcriptResp); err != nil {
		return nil, fmt.Errorf("decode transcript: %w", err)
	}

	segs := parseTranscriptSegments(transcriptResp)
	if len(segs) == 0 {
		return nil, errors.New("empty transcript segments")
	}
	return segs, nil
}

// needsPoToken reports whether a caption track URL requires a PoToken (browser-only).
// Tracks with &exp=xpe cannot be fetched server-side.
func needsPoToken(baseURL string) bool {
	return strings.Contains(baseURL, "&exp=xpe")
}

// pickBestTrack selects the best usable caption track for the given language preferences.
// Skips tracks that require PoToken; those only work in a browser.
func pickBestTrack(tracks []captionTrack, langs []string) (captionTrack, bool) {
	usable := make([]captionTrack, 0, len(tracks))
	for _, t := range tracks {
		if !needsPoToken(t.BaseURL) {
			usable = append(usable, t)
		}
	}
	if len(usable) == 0 {
		return captionTrack{}, false
	}
	// 1. Manual track in preferred language
	for _, lang := range langs {
		for _, t := range usable {
			if t.LanguageCode == lang && t.Kind != "asr" {
				return t, true
			}
		}
	}
	// 2. Auto-generated track in preferred language
	for _, lang := range langs {
		for _, t := range usable {
			if t.LanguageCode == lang {
				return t, true
			}
		}
	}
	// 3. Any English track
	for _, t := range usable {
		if strings.HasPrefix(t.LanguageCode, "en") {
			return t, true
		}
	}
	return usable[0], true
}

// fetchTimedText fetches and parses a YouTube timedtext XML caption URL.
func fetchTimedText(ctx context.Context, baseURL string) ([]engine.TranscriptSegment, error) {
	resp, err := engine.RetryHTTP(ctx, engine.Retry(), func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", engine.UserAgentBot)
		return engine.Cfg.HTTPClient.Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch timedtext: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch timedtext: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2*1024*1024))
	if err != nil {
		return nil, err
	}
	segs, err := parseTimedText(body)
	if err != nil {
		return nil, err
	}
	if len(segs) == 0 {
		return nil, errors.New("empty timedtext document")
	}
	return segs, nil
}

// tracksFromPlayer returns caption tracks or a reason why there are none.
func tracksFromPlayer(p innertubePlayerResp) ([]captionTrack, error) {
	if p.Captions == nil {
		if p.PlayabilityStatus != nil && p.PlayabilityStatus.Reason != "" {
			return nil, fmt.Errorf("captions unavailable: %s", p.PlayabilityStatus.Reason)
		}
		return nil, ErrNoTranscript
	}
	tracks := p.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return nil, ErrNoTranscript
	}
	return tracks, nil
}

// fetchTranscriptViaPlayer uses the ANDROID Innertube /player endpoint.
// Works from non-blocked (residential/cloud) IP addresses.
func fetchTranscriptViaPlayer(ctx context.Context, videoID string, langs []string) ([]engine.TranscriptSegment, error) {
	reqBody, err := json.Marshal(innertubeReq{
		VideoID: videoID,
		Context: innertubeCtx{
			Client: innertubeClient{
				ClientName:        "ANDROID",
				ClientVersion:     ytAndroidVersion,
				AndroidSdkVersion: 30,
				Hl:                "en",
				Gl:                "US",
			},
		},
		RacyCheckOk:    true,
		ContentCheckOk: true,
	})
	if err != nil {
		return nil, err
	}

	resp, err := engine.RetryHTTP(ctx, engine.Retry(), func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, innertubePlayerURL+"?prettyPrint=false", strings.NewReader(string(reqBody)))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", ytAndroidUA)
		req.Header.Set("X-Youtube-Client-Name", "3")
		req.Header.Set("X-Youtube-Client-Version", ytAndroidVersion)
		return engine.Cfg.HTTPClient.Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("android innertube: %w", err)
	}
	defer resp.Body.Close()

	var playerResp innertubePlayerResp
	if err := json.NewDecoder(resp.Body).Decode(&playerResp); err != nil {
		return nil, fmt.Errorf("decode player: %w", err)
	}
	tracks, err := tracksFromPlayer(playerResp)
	if err != nil {
		return nil, err
	}
	track, ok := pickBestTrack(tracks, langs)
	if !ok {
		return nil, errors.New("all caption tracks require PoToken")
	}
	return fetchTimedText(ctx, track.BaseURL)
}

// ytInitialPlayerResponseMarker marks the start of the player response JSON in watch page HTML.
const ytInitialPlayerResponseMarker = "ytInitialPlayerResponse = "

// fetchWatchPage returns the watch page HTML, through the stealth browser
// client when one is configured.
func fetchWatchPage(ctx context.Context, videoID string) ([]byte, error) {
	watchURL := watchPageURL + url.QueryEscape(videoID)

	if bc := engine.Cfg.BrowserClient; bc != nil {
		headers := engine.ChromeHeaders()
		headers["accept-language"] = "en-US,en;q=0.9"
		data, _, status, err := bc.Do(http.MethodGet, watchURL, headers, nil)
		if err != nil {
			return nil, fmt.Errorf("watch page: %w", err)
		}
		if status != http.StatusOK {
			return nil, fmt.Errorf("watch page: status %d", status)
		}
		return data, nil
	}

	resp, err := engine.RetryHTTP(ctx, engine.Retry(), func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, watchURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", engine.RandomUserAgent())
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		return engine.Cfg.HTTPClient.Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("watch page: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("watch page: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 6*1024*1024))
	if err != nil {
		return nil, fmt.Errorf("read watch page: %w", err)
	}
	return body, nil
}

// playerResponseFromPage extracts ytInitialPlayerResponse from watch page HTML.
func playerResponseFromPage(body []byte) (innertubePlayerResp, error) {
	var playerResp innertubePlayerResp
	idx := strings.Index(string(body), ytInitialPlayerResponseMarker)
	if idx < 0 {
		return playerResp, errors.New("ytInitialPlayerResponse not found in watch page")
	}
	jsonData := extractJSON(body[idx+len(ytInitialPlayerResponseMarker):])
	if jsonData == nil {
		return playerResp, errors.New("failed to extract ytInitialPlayerResponse JSON")
	}
	if err := json.Unmarshal(jsonData, &playerResp); err != nil {
		return playerResp, fmt.Errorf("decode ytInitialPlayerResponse: %w", err)
	}
	return playerResp, nil
}

// fetchTranscriptViaPageScrape scrapes the YouTube watch page HTML and extracts
// the caption track XML URL from ytInitialPlayerResponse. Works from any IP.
func fetchTranscriptViaPageScrape(ctx context.Context, videoID string, langs []string) ([]engine.TranscriptSegment, error) {
	body, err := fetchWatchPage(ctx, videoID)
	if err != nil {
		return nil, err
	}
	playerResp, err := playerResponseFromPage(body)
	if err != nil {
		return nil, err
	}
	tracks, err := tracksFromPlayer(playerResp)
	if err != nil {
		return nil, err
	}
	track, ok := pickBestTrack(tracks, langs)
	if !ok {
		return nil, errors.New("all tracks require PoToken")
	}
	return fetchTimedText(ctx, track.BaseURL)
}

// FetchYouTubeTranscript fetches the timed transcript segments for a YouTube video.
// Primary:  scrape watch page ytInitialPlayerResponse → caption XML
// Fallback: engagement panel /next → /get_transcript
// Fallback: ANDROID Innertube /player → captionTracks
func FetchYouTubeTranscript(ctx context.Context, videoID string, langs []string) ([]engine.TranscriptSegment, error) {
	engine.IncrTranscriptRequests()
	if len(langs) == 0 {
		langs = []string{"en"}
	}

	segs, err := fetchTranscriptViaPageScrape(ctx, videoID, langs)
	if err == nil {
		return segs, nil
	}
	slog.Warn("youtube: page scrape failed, trying engagement panel",
		slog.String("id", videoID), slog.Any("error", err))

	if segs, err = fetchTranscriptViaEngagementPanel(ctx, videoID); err == nil {
		return segs, nil
	}
	slog.Warn("youtube: engagement panel failed, trying player",
		slog.String("id", videoID), slog.Any("error", err))

	segs, err = fetchTranscriptViaPlayer(ctx, videoID, langs)
	if err != nil {
		engine.IncrTranscriptErrors()
		return nil, fmt.Errorf("youtube transcript %s: %w", videoID, err)
	}
	return segs, nil
}

// YouTube adapts FetchYouTubeTranscript to blog.TranscriptSource.
type YouTube struct {
	Langs []string
}

// Segments implements blog.TranscriptSource.
func (y YouTube) Segments(ctx context.Context, videoID string) ([]engine.TranscriptSegment, error) {
	return FetchYouTubeTranscript(ctx, videoID, y.Langs)
}
