package scanner

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/sueun-dev/polymarket-alpha-lab-sub001/pkg/types"
)

// DefaultGammaURL is the production Gamma API endpoint.
const DefaultGammaURL = "https://gamma-api.polymarket.com"

// MaxBatchSize is the maximum number of markets the Gamma API returns per
// request.
const MaxBatchSize = 100

// Client is an HTTP client for the Polymarket Gamma API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new Gamma API client.
func NewClient(baseURL string, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultGammaURL
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// FetchActiveMarkets fetches active markets with automatic pagination.
// limit == 0 fetches all available markets. orderBy is a Gamma sort field
// such as "volume24hr", "createdAt" or "endDate".
func (c *Client) FetchActiveMarkets(ctx context.Context, limit, offset int, orderBy string) ([]types.Market, error) {
	if limit > MaxBatchSize || limit == 0 {
		return c.fetchWithPagination(ctx, limit, offset, orderBy)
	}
	return c.fetchSinglePage(ctx, limit, offset, orderBy)
}

func (c *Client) fetchSinglePage(ctx context.Context, limit, offset int, orderBy string) ([]types.Market, error) {
	if limit == 0 {
		limit = MaxBatchSize
	}

	params := url.Values{}
	params.Add("closed", "false")
	params.Add("active", "true")
	params.Add("limit", strconv.Itoa(limit))
	params.Add("offset", strconv.Itoa(offset))
	params.Add("order", orderBy)

	// endDate sorts ascending to surface markets expiring soonest; volume
	// and creation time sort descending.
	if orderBy == "endDate" {
		params.Add("ascending", "true")
	} else {
		params.Add("ascending", "false")
	}

	requestURL := fmt.Sprintf("%s/markets?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "alpha-lab/1.0")

	c.logger.Debug("fetching-markets",
		zap.String("url", requestURL),
		zap.Int("limit", limit),
		zap.Int("offset", offset))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	// The Gamma API returns a direct array, not a wrapped object.
	var markets []types.Market
	if err := json.Unmarshal(body, &markets); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	MarketsFetchedTotal.Add(float64(len(markets)))

	c.logger.Debug("fetched-markets", zap.Int("count", len(markets)))
	return markets, nil
}

func (c *Client) fetchWithPagination(ctx context.Context, limit, offset int, orderBy string) ([]types.Market, error) {
	var (
		allMarkets   []types.Market
		currentPage  = 0
		totalFetched = 0
		fetchAll     = limit == 0
	)

	c.logger.Debug("starting-paginated-fetch",
		zap.Int("requested-limit", limit),
		zap.Int("offset", offset),
		zap.Bool("fetch-all", fetchAll))

	for {
		pageBatchSize := MaxBatchSize
		if !fetchAll {
			remaining := limit - totalFetched
			if remaining <= 0 {
				break
			}
			if remaining < MaxBatchSize {
				pageBatchSize = remaining
			}
		}

		pageOffset := offset + currentPage*MaxBatchSize

		page, err := c.fetchSinglePage(ctx, pageBatchSize, pageOffset, orderBy)
		if err != nil {
			return nil, fmt.Errorf("fetch page %d: %w", currentPage, err)
		}

		allMarkets = append(allMarkets, page...)
		totalFetched += len(page)

		c.logger.Debug("fetched-page",
			zap.Int("page", currentPage),
			zap.Int("markets", len(page)),
			zap.Int("total", totalFetched))

		// A short page means there is no more data.
		if len(page) < pageBatchSize {
			break
		}
		if !fetchAll && totalFetched >= limit {
			break
		}

		currentPage++
	}

	return allMarkets, nil
}
