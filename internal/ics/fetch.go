package ics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	appLog "niedziele/internal/log"
)

const (
	defaultFetchTimeout = 15 * time.Second
	maxBodyBytes        = 1 << 20
)

// Fetcher downloads published calendars, e.g. to check a deployed /calendar.
type Fetcher struct {
	client *http.Client
}

// NewFetcher returns a Fetcher using client, or a client with a 15s timeout
// when client is nil.
func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: defaultFetchTimeout}
	}
	return &Fetcher{client: client}
}

// Fetch returns the body of url. Non-200 responses are errors.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, errors.New("calendar URL is empty")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/calendar")

	appLog.Info("ics fetch start", "url", redactURL(url))

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", redactURL(url), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: %s", redactURL(url), resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", redactURL(url), err)
	}

	ct := resp.Header.Get("Content-Type")
	if ct != "" && !strings.HasPrefix(ct, "text/calendar") {
		appLog.Warn("unexpected content type", "url", redactURL(url), "content_type", ct)
	}

	appLog.Info("ics fetch success", "url", redactURL(url), "status", resp.StatusCode, "bytes", len(body))
	return body, nil
}

// redactURL keeps scheme and host only, e.g.
// https://example.com/cal.ics?token=abcd -> https://example.com/...(redacted)
func redactURL(u string) string {
	const redactedSuffix = "/...(redacted)"

	i := strings.Index(u, "://")
	if i == -1 {
		return "ics://...(redacted)"
	}
	rest := u[i+3:]
	if j := strings.IndexByte(rest, '/'); j >= 0 {
		rest = rest[:j]
	} else if j := strings.IndexByte(rest, '?'); j >= 0 {
		rest = rest[:j]
	}
	return u[:i+3] + rest + redactedSuffix
}
