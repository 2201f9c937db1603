package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cartwise/backend/internal/domain"
	"golang.org/x/time/rate"
)

// Client fetches normalized product catalogs from the upstream acquisition
// service (the scraping/feed layer). The decision engine never calls this
// directly; the HTTP host resolves catalogs through it before invoking the
// engine.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new catalog service client. requestsPerMinute bounds
// calls to the upstream service.
func NewClient(apiKey, baseURL string, requestsPerMinute int) *Client {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 60
	}
	limiter := rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), 5)

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		rateLimiter: limiter,
	}
}

// SetDebug enables verbose request logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// doRequest executes an HTTP GET request with proper headers and error handling
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "CartWise/1.0")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogAPIFailure, err)
	}

	return resp, nil
}

// FetchCatalog retrieves the normalized catalog slice for one store, scoped
// to the requested item names. A 404 (store unknown upstream) maps to
// ErrIncompleteCatalog so callers can degrade instead of aborting.
func (c *Client) FetchCatalog(ctx context.Context, store string, items []string) ([]domain.ProductRecord, error) {
	endpoint := fmt.Sprintf("%s/v1/catalog", c.baseURL)
	params := url.Values{}
	params.Add("store", store)
	params.Add("items", strings.Join(items, ","))

	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	// Retry up to 3 times for transient failures
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := c.doRequest(ctx, reqURL)
		if err != nil {
			if c.debug {
				log.Printf("[CATALOG] request error (attempt %d): %v", attempt, err)
			}
			lastErr = err
			if sleepErr := sleepCtx(ctx, time.Duration(attempt*500)*time.Millisecond); sleepErr != nil {
				return nil, sleepErr
			}
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: store %q not indexed upstream", domain.ErrIncompleteCatalog, store)
		}
		if resp.StatusCode != http.StatusOK {
			if c.debug {
				log.Printf("[CATALOG] API error (attempt %d) - status: %d, body: %s", attempt, resp.StatusCode, string(body))
			}
			lastErr = fmt.Errorf("%w: status %d", domain.ErrCatalogAPIFailure, resp.StatusCode)
			if sleepErr := sleepCtx(ctx, time.Duration(attempt*500)*time.Millisecond); sleepErr != nil {
				return nil, sleepErr
			}
			continue
		}

		var catalogResp catalogResponse
		if err := json.Unmarshal(body, &catalogResp); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}

		if c.debug {
			log.Printf("[CATALOG] store=%q returned %d record(s)", store, len(catalogResp.Products))
		}
		return mapToProductRecords(store, catalogResp.Products), nil
	}

	return nil, lastErr
}

// sleepCtx waits for the duration unless the context is cancelled first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
