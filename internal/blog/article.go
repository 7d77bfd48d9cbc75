package blog

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/anatolykoptev/go_blog/internal/engine"
)

const contentOpen = `<div class="blog-content">`

const styleBlock = `<style>
.blog-content {
    max-width: 800px;
    margin: 0 auto;
    padding: 20px;
    font-family: 'Arial', sans-serif;
}
.blog-content h1 {
    color: #2c3e50;
    border-bottom: 2px solid #3498db;
    padding-bottom: 10px;
}
.blog-content h2 {
    color: #34495e;
    margin-top: 30px;
}
.blog-content pre {
    background-color: #f8f9fa;
    padding: 15px;
    border-radius: 5px;
    overflow-x: auto;
}
.blog-content code {
    font-family: 'Consolas', monospace;
}
.blog-content p {
    line-height: 1.6;
    color: #2c3e50;
}
.blog-content ul {
    padding-left: 20px;
}
.blog-content li {
    margin: 10px 0;
}
</style>
`

// The blank lines around the body let Markdown renderers treat it as
// Markdown rather than as part of the HTML block.
const (
	wrapPrefix = styleBlock + contentOpen + "\n\n"
	wrapSuffix = "\n\n</div>"
)

// Wrap places markdown inside the styled blog-content container.
func Wrap(markdown string) string {
	return wrapPrefix + markdown + wrapSuffix
}

// Unwrap returns the markdown inside a blog-content container.
// It is the exact inverse of Wrap. For other input it returns the text
// after the last container opening tag up to the first closing </div>,
// or the input unchanged when there is no container.
func Unwrap(content string) string {
	if strings.HasPrefix(content, wrapPrefix) && strings.HasSuffix(content, wrapSuffix) &&
		len(content) >= len(wrapPrefix)+len(wrapSuffix) {
		return content[len(wrapPrefix) : len(content)-len(wrapSuffix)]
	}
	i := strings.LastIndex(content, contentOpen)
	if i < 0 {
		return content
	}
	body := content[i+len(contentOpen):]
	if j := strings.Index(body, "</div>"); j >= 0 {
		body = body[:j]
	}
	return body
}

// FileName returns the article file name for a save at now.
func FileName(now time.Time) string {
	return "blog_" + now.Format("20060102_150405") + ".md"
}

// Save writes the unwrapped article to dir/blog_<YYYYMMDD_HHMMSS>.md,
// creating dir if needed, and returns the file path.
func Save(dir, content string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, FileName(now))
	if err := os.WriteFile(path, []byte(Unwrap(content)), 0o644); err != nil { //nolint:gosec // article output is world-readable
		return "", fmt.Errorf("write article: %w", err)
	}
	engine.IncrArticlesSaved()
	return path, nil
}

var renderer = goldmark.New(goldmark.WithExtensions(extension.GFM))

// RenderHTML renders Markdown (GFM) to an HTML fragment inside the styled
// container. Raw HTML in the input is not passed through.
func RenderHTML(md string) (string, error) {
	var buf bytes.Buffer
	buf.WriteString(styleBlock)
	buf.WriteString(contentOpen + "\n")
	if err := renderer.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	buf.WriteString("</div>\n")
	return buf.String(), nil
}

// Title returns the text of the first level-1 heading, or "" if there is none.
func Title(md string) string {
	source := []byte(md)
	doc := renderer.Parser().Parse(text.NewReader(source))

	var title string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		h, ok := n.(*ast.Heading)
		if !entering || !ok || h.Level != 1 {
			return ast.WalkContinue, nil
		}
		var sb strings.Builder
		_ = ast.Walk(h, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
			if t, ok := c.(*ast.Text); ok && entering {
				sb.Write(t.Segment.Value(source))
				if t.SoftLineBreak() {
					sb.WriteByte(' ')
				}
			}
			return ast.WalkContinue, nil
		})
		title = strings.TrimSpace(sb.String())
		return ast.WalkStop, nil
	})
	return title
}
