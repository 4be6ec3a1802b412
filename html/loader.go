// Package html fetches documents from the web for use as prompt context.
//
// Hacker News item pages are parsed with golang.org/x/net/html; Wikipedia
// articles come from the REST page summary endpoint. Every fetch is a single
// GET with no caching or retry.
package html

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/fwojciec/quill"
	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	defaultHackerNewsURL = "https://news.ycombinator.com"
	defaultWikipediaURL  = "https://en.wikipedia.org"
	userAgent            = "quill/0.1 (+https://github.com/fwojciec/quill)"
	maxBodyBytes         = 8 << 20
)

// Loader fetches documents over HTTP.
type Loader struct {
	client        *http.Client
	hackerNewsURL string
	wikipediaURL  string
}

// Option configures a [Loader].
type Option func(*Loader)

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(l *Loader) { l.client = hc }
}

// WithHackerNewsURL sets the Hacker News base URL.
func WithHackerNewsURL(u string) Option {
	return func(l *Loader) { l.hackerNewsURL = strings.TrimRight(u, "/") }
}

// WithWikipediaURL sets the Wikipedia base URL, e.g. https://ko.wikipedia.org.
func WithWikipediaURL(u string) Option {
	return func(l *Loader) { l.wikipediaURL = strings.TrimRight(u, "/") }
}

// NewLoader returns a Loader for the public sites.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		client:        http.DefaultClient,
		hackerNewsURL: defaultHackerNewsURL,
		wikipediaURL:  defaultWikipediaURL,
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// HackerNews fetches an item page and returns its title as Title and the
// post text followed by every comment as Content, separated by blank lines.
// A page with no text yields [quill.ErrNoContent].
func (l *Loader) HackerNews(ctx context.Context, id string) (quill.Document, error) {
	if strings.TrimSpace(id) == "" {
		return quill.Document{}, fmt.Errorf("html: empty item id: %w", quill.ErrValidation)
	}
	src := l.hackerNewsURL + "/item?id=" + url.QueryEscape(id)
	body, err := l.get(ctx, src)
	if err != nil {
		return quill.Document{}, err
	}
	defer body.Close()

	root, err := xhtml.Parse(body)
	if err != nil {
		return quill.Document{}, fmt.Errorf("html: parse %s: %w", src, err)
	}
	doc := quill.Document{Source: src}
	var parts []string
	walk(root, func(n *xhtml.Node) bool {
		switch {
		case hasClass(n, "titleline"):
			if doc.Title == "" {
				if a := firstChild(n, atom.A); a != nil {
					doc.Title = textOf(a)
				}
			}
			return false
		case hasClass(n, "toptext"), hasClass(n, "commtext"):
			if t := textOf(n); t != "" {
				parts = append(parts, t)
			}
			return false
		}
		return true
	})
	doc.Content = strings.Join(parts, "\n\n")
	if doc.Content == "" {
		return quill.Document{}, fmt.Errorf("html: item %s: %w", id, quill.ErrNoContent)
	}
	return doc, nil
}

type wikiSummary struct {
	Title       string `json:"title"`
	Extract     string `json:"extract"`
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}

// Wikipedia fetches the lead section of the article named title. An article
// with an empty extract yields [quill.ErrNoContent].
func (l *Loader) Wikipedia(ctx context.Context, title string) (quill.Document, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return quill.Document{}, fmt.Errorf("html: empty article title: %w", quill.ErrValidation)
	}
	src := l.wikipediaURL + "/api/rest_v1/page/summary/" + url.PathEscape(strings.ReplaceAll(title, " ", "_"))
	body, err := l.get(ctx, src)
	if err != nil {
		return quill.Document{}, err
	}
	defer body.Close()

	var s wikiSummary
	if err := json.NewDecoder(body).Decode(&s); err != nil {
		return quill.Document{}, fmt.Errorf("html: decode %s: %w", src, err)
	}
	content := strings.TrimSpace(s.Extract)
	if content == "" {
		return quill.Document{}, fmt.Errorf("html: article %q: %w", title, quill.ErrNoContent)
	}
	doc := quill.Document{Source: src, Title: s.Title, Content: content}
	if page := s.ContentURLs.Desktop.Page; page != "" {
		doc.Source = page
	}
	return doc, nil
}

func (l *Loader) get(ctx context.Context, src string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("html: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("html: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("html: GET %s: HTTP %d", src, resp.StatusCode)
	}
	return readCloser{io.LimitReader(resp.Body, maxBodyBytes), resp.Body}, nil
}

type readCloser struct {
	io.Reader
	io.Closer
}
