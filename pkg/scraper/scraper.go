// Package scraper provides functionality to fetch match reports from URLs and download files
package scraper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Fetcher downloads documents over HTTP
type Fetcher struct {
	client *http.Client
	logger *slog.Logger
}

// NewFetcher creates a Fetcher whose requests time out after timeout
func NewFetcher(timeout time.Duration, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Fetch downloads the content at url
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	f.logger.Debug("fetching URL", "url", url)

	// Create the request
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	// Send the HTTP request
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching URL: %w", err)
	}
	defer resp.Body.Close()

	// Check the response status code
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("non-200 status code: %d %s", resp.StatusCode, resp.Status)
	}

	// Read the response body
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	f.logger.Debug("fetched URL",
		"url", url,
		"content_type", resp.Header.Get("Content-Type"),
		"bytes", len(body))
	return body, nil
}

// Download fetches url and writes it to localPath
func (f *Fetcher) Download(ctx context.Context, url, localPath string) error {
	body, err := f.Fetch(ctx, url)
	if err != nil {
		return err
	}
	if err := SaveContentToFile(localPath, body); err != nil {
		return fmt.Errorf("error saving %s: %w", localPath, err)
	}
	f.logger.Info("downloaded document", "url", url, "path", localPath)
	return nil
}

// SaveContentToFile saves content to a file
func SaveContentToFile(filename string, content []byte) error {
	return os.WriteFile(filename, content, 0644)
}

// ExtractReportLinks returns the href of every link on an index page that
// points to a report document (PDF) and contains filter, if filter is set.
func ExtractReportLinks(htmlContent []byte, filter string) ([]string, error) {
	// Parse the HTML content
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("error parsing HTML content: %w", err)
	}

	var links []string
	seen := make(map[string]bool)
	// Find all links to report documents
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if href == "" || seen[href] {
			return
		}
		if !IsReportLink(href) {
			return
		}
		if filter != "" && !strings.Contains(href, filter) {
			return
		}
		seen[href] = true
		links = append(links, href)
	})
	return links, nil
}

// IsReportLink reports whether href points to a PDF document
func IsReportLink(href string) bool {
	if u, err := url.Parse(href); err == nil {
		href = u.Path
	}
	return strings.EqualFold(path.Ext(href), ".pdf")
}

// ResolveRelativeURL resolves a link found on baseURL to an absolute URL
func ResolveRelativeURL(baseURL, ref string) (string, error) {
	if !strings.Contains(baseURL, "://") {
		baseURL = "https://" + baseURL
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	r, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("invalid link %q: %w", ref, err)
	}
	return base.ResolveReference(r).String(), nil
}

// FileNameFromURL returns the last path element of a URL, for saving downloads
func FileNameFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || path.Base(u.Path) == "/" || path.Base(u.Path) == "." {
		return "report.pdf"
	}
	name, err := url.PathUnescape(path.Base(u.Path))
	if err != nil {
		return path.Base(u.Path)
	}
	return name
}
