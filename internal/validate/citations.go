// Package validate probes citation URLs so enriched posts don't ship
// references that are dead, blocked, or years out of date.
package validate

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/html"

	"statgraft/internal/model"
)

const (
	checkMaxRetries = 3
	staleAfter      = 365 * 24 * time.Hour
	maxTitleBody    = 64 * 1024
)

// checkSleepFunc is swapped in tests to avoid real backoff waits
var checkSleepFunc = time.Sleep

// Checker probes citation URLs concurrently
type Checker struct {
	httpClient *http.Client
	robots     *RobotsChecker
	userAgent  string
	maxWorkers int
}

// NewChecker creates a citation checker
func NewChecker(cfg model.CitationsConfig) *Checker {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 10
	}

	return &Checker{
		httpClient: &http.Client{Timeout: timeout},
		robots:     NewRobotsChecker(cfg.UserAgent, timeout),
		userAgent:  cfg.UserAgent,
		maxWorkers: workers,
	}
}

// Check probes every URL and returns one report per URL, in input order
func (c *Checker) Check(ctx context.Context, urls []string) []model.CitationCheck {
	if len(urls) == 0 {
		return []model.CitationCheck{}
	}

	results := make([]model.CitationCheck, len(urls))
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, c.maxWorkers)

	for i, u := range urls {
		wg.Add(1)
		go func(idx int, rawURL string) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				results[idx] = model.CitationCheck{URL: rawURL, Error: "context cancelled"}
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			results[idx] = c.checkWithRetry(ctx, rawURL)
		}(i, u)
	}

	wg.Wait()
	return results
}

// checkWithRetry retries transient failures with exponential backoff
func (c *Checker) checkWithRetry(ctx context.Context, rawURL string) model.CitationCheck {
	var result model.CitationCheck
	for attempt := 0; attempt < checkMaxRetries; attempt++ {
		result = c.checkSingle(ctx, rawURL)
		if !isRetryable(result) {
			return result
		}
		if attempt < checkMaxRetries-1 {
			checkSleepFunc(time.Duration(1<<uint(attempt)) * time.Second)
		}
	}
	return result
}

func (c *Checker) checkSingle(ctx context.Context, rawURL string) model.CitationCheck {
	result := model.CitationCheck{
		URL:           rawURL,
		RobotsAllowed: c.robots.Allowed(ctx, rawURL),
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		result.Error = fmt.Sprintf("create request: %v", err)
		return result
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		result.Error = fmt.Sprintf("request failed: %v", err)
		return result
	}
	defer func() { _ = resp.Body.Close() }()

	result.StatusCode = resp.StatusCode
	result.Accessible = resp.StatusCode >= 200 && resp.StatusCode < 400

	if lastModified := resp.Header.Get("Last-Modified"); lastModified != "" {
		if t, err := time.Parse(time.RFC1123, lastModified); err == nil {
			result.LastModified = &t
			result.Stale = time.Since(t) > staleAfter
		}
	}

	if result.Accessible && result.RobotsAllowed {
		result.Title = c.fetchTitle(ctx, rawURL)
	}

	return result
}

// fetchTitle pulls the page title from the first chunk of the document.
// Failures here never fail the check; the title is informational.
func (c *Checker) fetchTitle(ctx context.Context, rawURL string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ""
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ""
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, maxTitleBody))
	if err != nil {
		return ""
	}

	return findTitle(doc)
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
			return strings.TrimSpace(n.FirstChild.Data)
		}
		return ""
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if title := findTitle(child); title != "" {
			return title
		}
	}
	return ""
}

// isRetryable returns true for transient failures worth another attempt
func isRetryable(result model.CitationCheck) bool {
	if result.StatusCode >= 500 && result.StatusCode < 600 {
		return true
	}
	if result.StatusCode == 429 {
		return true
	}
	if result.Error != "" {
		s := strings.ToLower(result.Error)
		return strings.Contains(s, "timeout") ||
			strings.Contains(s, "connection refused") ||
			strings.Contains(s, "connection reset")
	}
	return false
}
