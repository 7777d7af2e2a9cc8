package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/jadenpxrk/promptpack/internal/classify"
)

const maxPageBytes = 8 << 20

// pageFetcher turns documentation pages into in-memory Markdown entries
// that go through the same classification and redaction as project files.
type pageFetcher struct {
	client   *http.Client
	maxDepth int
	logger   *zap.Logger
	visited  map[string]bool
}

func newPageFetcher(maxDepth int, logger *zap.Logger) *pageFetcher {
	return &pageFetcher{
		client:   &http.Client{Timeout: 30 * time.Second},
		maxDepth: maxDepth,
		logger:   logger,
		visited:  map[string]bool{},
	}
}

// fetchAll fetches every start URL, following same-host links up to
// maxDepth. Pages that fail are logged and skipped.
func (f *pageFetcher) fetchAll(ctx context.Context, urls []string) []classify.Entry {
	var entries []classify.Entry
	for _, u := range urls {
		entries = append(entries, f.fetch(ctx, u, 0)...)
	}
	return entries
}

func (f *pageFetcher) fetch(ctx context.Context, rawURL string, depth int) []classify.Entry {
	pageURL, err := url.Parse(rawURL)
	if err != nil || (pageURL.Scheme != "http" && pageURL.Scheme != "https") {
		f.logger.Warn("Skipping invalid URL", zap.String("url", rawURL))
		return nil
	}
	pageURL.Fragment = ""
	clean := pageURL.String()
	if depth > f.maxDepth || f.visited[clean] {
		return nil
	}
	f.visited[clean] = true

	body, err := f.get(ctx, clean)
	if err != nil {
		f.logger.Warn("Failed to fetch page", zap.String("url", clean), zap.Error(err))
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		f.logger.Warn("Failed to parse HTML", zap.String("url", clean), zap.Error(err))
		return nil
	}
	doc.Find("script, style, noscript").Remove()

	var entries []classify.Entry
	html, err := doc.Find("body").Html()
	if err == nil {
		var markdown string
		markdown, err = md.NewConverter("", true, nil).ConvertString(html)
		if err == nil {
			entries = append(entries, pageEntry(pageURL, doc, markdown))
			f.logger.Debug("Fetched page", zap.String("url", clean), zap.Int("depth", depth), zap.Int("bytes", len(markdown)))
		}
	}
	if err != nil {
		f.logger.Warn("Failed to convert HTML to Markdown", zap.String("url", clean), zap.Error(err))
	}

	if depth < f.maxDepth {
		doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
			href, _ := s.Attr("href")
			lower := strings.ToLower(href)
			if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(lower, "mailto:") || strings.HasPrefix(lower, "javascript:") {
				return
			}
			link, err := pageURL.Parse(href)
			if err != nil || link.Host != pageURL.Host {
				return
			}
			entries = append(entries, f.fetch(ctx, link.String(), depth+1)...)
		})
	}
	return entries
}

func (f *pageFetcher) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	res, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("status code %d", res.StatusCode)
	}
	if ct := res.Header.Get("Content-Type"); !strings.Contains(strings.ToLower(ct), "text/html") {
		return nil, fmt.Errorf("unsupported content type %q", ct)
	}
	return io.ReadAll(io.LimitReader(res.Body, maxPageBytes))
}

// pageEntry builds the entry for a converted page. The relative path lives
// under web/ so it cannot collide with project files.
func pageEntry(u *url.URL, doc *goquery.Document, markdown string) classify.Entry {
	p := strings.TrimSuffix(u.EscapedPath(), "/")
	if p == "" {
		p = "/index"
	}
	p = strings.TrimSuffix(p, path.Ext(p)) + ".md"

	content := markdown
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" && !strings.HasPrefix(markdown, "# ") {
		content = "# " + title + "\n\n" + markdown
	}
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return classify.Entry{
		Path:    u.String(),
		RelPath: "web/" + u.Host + p,
		Size:    int64(len(content)),
		MIME:    "text/markdown",
		Content: []byte(content),
	}
}
