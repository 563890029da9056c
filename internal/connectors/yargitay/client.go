// Package yargitay implements the DecisionFetcher port against the
// public Yargıtay decision-search API.
//
// The API is built for a browser frontend: the search endpoint takes a
// POST with the query nested under "data" and answers with the result
// list nested two levels deep, and the document endpoint returns the
// decision wrapped in markup. Both oddities stay inside this package.
package yargitay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/emsal-labs/emsal-cli/internal/core/domain"
	"github.com/emsal-labs/emsal-cli/internal/core/ports/driven"
	"github.com/emsal-labs/emsal-cli/internal/logger"
)

const (
	// DefaultBaseURL is the production API endpoint.
	DefaultBaseURL = "https://karararama.yargitay.gov.tr"

	// DefaultTimeout is the HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// searchRate paces page requests, roughly one page per two seconds.
	searchRate = rate.Limit(0.5)

	// documentRate paces full-text requests.
	documentRate = rate.Limit(3)
)

// Ensure Client implements the interface.
var _ driven.DecisionFetcher = (*Client)(nil)

// Client calls the search and document endpoints with the pacing the
// upstream tolerates. The delays are politeness only, not correctness.
type Client struct {
	baseURL         string
	httpClient      *http.Client
	searchLimiter   *rate.Limiter
	documentLimiter *rate.Limiter
}

// NewClient creates a client. An empty baseURL selects production.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:         baseURL,
		httpClient:      &http.Client{Timeout: DefaultTimeout},
		searchLimiter:   rate.NewLimiter(searchRate, 1),
		documentLimiter: rate.NewLimiter(documentRate, 1),
	}
}

// searchPayload is the request body the frontend sends.
type searchPayload struct {
	Data searchData `json:"data"`
}

type searchData struct {
	ArananKelime       string `json:"arananKelime"`
	BirimYrgKurulDaire string `json:"birimYrgKurulDaire"`
	KararYil           string `json:"kararYil"`
	BaslangicTarihi    string `json:"baslangicTarihi"`
	BitisTarihi        string `json:"bitisTarihi"`
	PageSize           int    `json:"pageSize"`
	PageNumber         int    `json:"pageNumber"`
	EsasYil            string `json:"esasYil"`
	EsasIlkSiraNo      string `json:"esasIlkSiraNo"`
	EsasSonSiraNo      string `json:"esasSonSiraNo"`
	KararIlkSiraNo     string `json:"kararIlkSiraNo"`
	KararSonSiraNo     string `json:"kararSonSiraNo"`
}

// searchResponse mirrors the doubly nested result shape. Either level
// may be absent; that means "no results", not an error.
type searchResponse struct {
	Data *struct {
		Data []domain.RawRecord `json:"data"`
	} `json:"data"`
}

// Search fetches one page of results.
func (c *Client) Search(ctx context.Context, q domain.FetchQuery) ([]domain.RawRecord, error) {
	if err := c.searchLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	keyword := q.Keyword
	year := q.Year
	// A bare four-digit query is a year search, not a keyword.
	if len(keyword) == 4 && isDigits(keyword) {
		year = keyword
		keyword = ""
	}

	daire := q.Daire
	if daire == "ALL" {
		daire = ""
	}

	payload := searchPayload{Data: searchData{
		ArananKelime:       keyword,
		BirimYrgKurulDaire: daire,
		KararYil:           year,
		BaslangicTarihi:    q.StartDate,
		BitisTarihi:        q.EndDate,
		PageSize:           q.PageSize,
		PageNumber:         q.Page,
	}}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding search payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/aramadetaylist", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building search request: %w", err)
	}
	setBrowserHeaders(req)
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("searching decisions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("searching decisions: API returned %d", resp.StatusCode)
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}
	if decoded.Data == nil {
		logger.Debug("Search response missing result nesting, treating as empty")
		return nil, nil
	}
	return decoded.Data.Data, nil
}

// FullText fetches one decision document and returns the plain text,
// markup stripped and whitespace collapsed.
func (c *Client) FullText(ctx context.Context, id int64) (string, error) {
	if err := c.documentLimiter.Wait(ctx); err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/getDokuman?id=%d", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("building document request: %w", err)
	}
	setBrowserHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching document %d: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching document %d: API returned %d", id, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading document %d: %w", id, err)
	}

	// The endpoint wraps the document in {"data": "<markup>"}. Some
	// error pages skip the envelope, so fall back to the raw body.
	var envelope struct {
		Data string `json:"data"`
	}
	body := string(raw)
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Data != "" {
		body = envelope.Data
	}

	return CleanDocument(body), nil
}

var markupTags = regexp.MustCompile(`<[^>]+>`)

// CleanDocument strips the markup wrapper the document endpoint ships
// and collapses all whitespace runs to single spaces.
func CleanDocument(raw string) string {
	text := markupTags.ReplaceAllString(raw, " ")
	text = html.UnescapeString(text)
	return strings.Join(strings.Fields(text), " ")
}

// setBrowserHeaders makes the request look like the web frontend.
// The API answers differently to unrecognised clients.
func setBrowserHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	req.Header.Set("Referer", DefaultBaseURL+"/")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
