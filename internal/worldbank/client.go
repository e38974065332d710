package worldbank

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// Client talks to the World Bank v2 API over HTTP.
type Client struct {
	baseURL    string
	perPage    int
	maxRetries int
	retryDelay time.Duration
	httpClient *http.Client
	logger     *zap.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithPerPage sets the page size requested from the API.
func WithPerPage(n int) Option {
	return func(c *Client) { c.perPage = n }
}

// WithMaxRetries bounds retries of transient transport errors. Zero disables
// retrying; API-level errors are never retried.
func WithMaxRetries(n int) Option {
	return func(c *Client) { c.maxRetries = n }
}

// NewClient returns a Client for the given API base URL, e.g.
// "https://api.worldbank.org/v2".
func NewClient(baseURL string, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		perPage:    20000,
		retryDelay: 2 * time.Second,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// pageMeta is the first element of every World Bank response envelope.
type pageMeta struct {
	Page  int `json:"page"`
	Pages int `json:"pages"`
	Total int `json:"total"`
}

type apiRow struct {
	CountryISO3 string `json:"countryiso3code"`
	Country     struct {
		ID    string `json:"id"`
		Value string `json:"value"`
	} `json:"country"`
	Date  string   `json:"date"`
	Value *float64 `json:"value"`
}

type apiError struct {
	Message []struct {
		ID    string `json:"id"`
		Key   string `json:"key"`
		Value string `json:"value"`
	} `json:"message"`
}

// Fetch retrieves the full series for one indicator, following the pages
// reported by the response envelope so no observations are truncated.
func (c *Client) Fetch(ctx context.Context, indicator string) ([]Observation, error) {
	var observations []Observation

	page := 1
	for {
		rows, meta, err := c.fetchPage(ctx, indicator, page)
		if err != nil {
			return nil, fmt.Errorf("indicator %s page %d: %w", indicator, page, err)
		}
		for _, row := range rows {
			year, err := strconv.Atoi(row.Date)
			if err != nil {
				// Non-annual rows (e.g. quarters) are not part of these series.
				continue
			}
			observations = append(observations, Observation{
				CountryCode: row.CountryISO3,
				CountryName: row.Country.Value,
				Year:        year,
				Value:       row.Value,
			})
		}
		if page >= meta.Pages {
			break
		}
		page++
	}

	c.logger.Info("indicator fetched",
		zap.String("indicator", indicator),
		zap.Int("observations", len(observations)))
	return observations, nil
}

func (c *Client) fetchPage(ctx context.Context, indicator string, page int) ([]apiRow, pageMeta, error) {
	reqURL := fmt.Sprintf("%s/country/all/indicator/%s?%s", c.baseURL, url.PathEscape(indicator),
		url.Values{
			"format":   {"json"},
			"per_page": {strconv.Itoa(c.perPage)},
			"page":     {strconv.Itoa(page)},
		}.Encode())

	var body []byte
	err := withBackoff(ctx, c.maxRetries, c.retryDelay, c.logger, "worldbank fetch", func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return &permanentError{err: err}
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			err := fmt.Errorf("unexpected status %s", resp.Status)
			if !retryableStatus(resp.StatusCode) {
				return &permanentError{err: err}
			}
			return err
		}
		body, err = io.ReadAll(resp.Body)
		return err
	})
	if err != nil {
		return nil, pageMeta{}, err
	}

	var envelope []json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, pageMeta{}, fmt.Errorf("decoding envelope: %w", err)
	}
	if len(envelope) < 2 {
		// Error payloads come back as a single-element array with a message list.
		var apiErr apiError
		if len(envelope) == 1 && json.Unmarshal(envelope[0], &apiErr) == nil && len(apiErr.Message) > 0 {
			return nil, pageMeta{}, fmt.Errorf("api error: %s (%s)",
				apiErr.Message[0].Value, apiErr.Message[0].Key)
		}
		return nil, pageMeta{}, fmt.Errorf("malformed response: %d envelope elements", len(envelope))
	}

	var meta pageMeta
	if err := json.Unmarshal(envelope[0], &meta); err != nil {
		return nil, pageMeta{}, fmt.Errorf("decoding page metadata: %w", err)
	}
	var rows []apiRow
	if err := json.Unmarshal(envelope[1], &rows); err != nil {
		return nil, pageMeta{}, fmt.Errorf("decoding observations: %w", err)
	}
	return rows, meta, nil
}

// retryableStatus reports whether a response status indicates a transient
// condition worth retrying. Other 4xx statuses will fail the same way again.
func retryableStatus(code int) bool {
	return code >= 500 || code == http.StatusTooManyRequests
}
