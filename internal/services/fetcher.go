package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const fetchUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

var whitespaceRE = regexp.MustCompile(`\s+`)

// FetchedDocument is a URL-ingested resource wrapped so it can flow through
// the same ingestion path as a locally uploaded file.
type FetchedDocument struct {
	Filename  string
	Data      []byte
	SourceURL string
}

// Fetcher downloads resume or job-description documents from URLs. One
// partner profile host is special-cased: its profile ID is first resolved
// through a lookup endpoint before the actual document URL is fetched.
type Fetcher interface {
	FetchDocument(ctx context.Context, rawURL string) (*FetchedDocument, error)
}

type fetcher struct {
	client      *http.Client
	partnerHost string
	lookupURL   string
}

func NewFetcher(partnerHost, lookupURL string) Fetcher {
	return &fetcher{
		client:      &http.Client{Timeout: 30 * time.Second},
		partnerHost: partnerHost,
		lookupURL:   lookupURL,
	}
}

// FetchDocument implements Fetcher.
func (f *fetcher) FetchDocument(ctx context.Context, rawURL string) (*FetchedDocument, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}

	if strings.EqualFold(u.Hostname(), f.partnerHost) {
		resolved, err := f.resolvePartnerDocument(ctx, u)
		if err != nil {
			return nil, err
		}
		rawURL = resolved
	}

	data, contentType, err := f.get(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	filename := filenameFromURL(rawURL)

	// HTML pages (typically job postings) are reduced to plain text here so
	// downstream extraction sees an ordinary text document.
	if strings.Contains(contentType, "text/html") {
		text, err := htmlToText(data)
		if err != nil {
			return nil, fmt.Errorf("failed to extract text from HTML page %s: %w", rawURL, err)
		}
		data = []byte(text)
		filename = strings.TrimSuffix(filename, path.Ext(filename)) + ".txt"
	}

	return &FetchedDocument{
		Filename:  filename,
		Data:      data,
		SourceURL: rawURL,
	}, nil
}

// resolvePartnerDocument turns a partner profile-page URL into the actual
// document URL via the fixed lookup endpoint.
func (f *fetcher) resolvePartnerDocument(ctx context.Context, profileURL *url.URL) (string, error) {
	profileID := path.Base(profileURL.Path)
	if profileID == "" || profileID == "/" || profileID == "." {
		return "", fmt.Errorf("partner lookup failed: no profile ID in URL %s", profileURL)
	}

	lookupURL := strings.TrimRight(f.lookupURL, "/") + "/" + profileID

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return "", fmt.Errorf("partner lookup failed: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("partner lookup failed for profile %s: %w", profileID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("partner lookup failed: profile %s not found", profileID)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("partner lookup failed for profile %s: HTTP %d", profileID, resp.StatusCode)
	}

	var payload struct {
		ResumeURL string `json:"resumeUrl"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("partner lookup failed: invalid response: %w", err)
	}
	if payload.ResumeURL == "" {
		return "", fmt.Errorf("partner lookup failed: profile %s has no resume URL", profileID)
	}

	return payload.ResumeURL, nil
}

func (f *fetcher) get(ctx context.Context, rawURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", fetchUserAgent)
	req.Header.Set("Accept", "application/pdf,text/plain,text/html,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch %s: %v (the host may be unreachable, or access may be blocked by a cross-origin policy)", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", fmt.Errorf("failed to fetch %s: unexpected status HTTP %d", rawURL, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read response from %s: %w", rawURL, err)
	}

	return data, resp.Header.Get("Content-Type"), nil
}

// filenameFromURL derives a filename from the URL path, falling back to a
// generic name when the path has none.
func filenameFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "document.txt"
	}

	name := path.Base(u.Path)
	if name == "" || name == "/" || name == "." {
		return "document.txt"
	}
	if path.Ext(name) == "" {
		name += ".txt"
	}
	return name
}

// htmlToText strips non-content markup and collapses whitespace, the same way
// a job posting page would be scraped.
func htmlToText(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(data)))
	if err != nil {
		return "", err
	}

	doc.Find("script, style, nav, header, footer, form").Remove()

	var sb strings.Builder
	doc.Find("body").Each(func(i int, s *goquery.Selection) {
		sb.WriteString(s.Text())
	})

	text := whitespaceRE.ReplaceAllString(sb.String(), " ")
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("no text content found in HTML page")
	}

	return text, nil
}
