package stooq

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sectorlab/sectorpulse/pkg/httputil"
	"github.com/sectorlab/sectorpulse/pkg/logger"
)

const defaultBaseURL = "https://stooq.com"

// Client fetches daily OHLCV history from Stooq's CSV endpoint.
// All Stooq access goes through this client.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a new Stooq client. baseURL may be empty, in which
// case the public endpoint is used.
func NewClient(httpClient *httputil.Client, log *logger.Logger, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Bar is one daily OHLCV record
type Bar struct {
	Ticker string
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// FetchDaily fetches daily bars for a US-listed symbol within the date
// range, oldest first. Stooq keys US listings with a ".us" suffix.
func (c *Client) FetchDaily(ctx context.Context, ticker string, from, to time.Time) ([]Bar, error) {
	fullURL := fmt.Sprintf(
		"%s/q/d/l/?s=%s.us&i=d&d1=%s&d2=%s",
		c.baseURL,
		strings.ToLower(ticker),
		from.Format("20060102"),
		to.Format("20060102"),
	)

	resp, err := c.httpClient.Get(ctx, fullURL)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body failed: %w", err)
	}

	bars, err := parseDailyCSV(ticker, string(body))
	if err != nil {
		return nil, fmt.Errorf("parse response failed: %w", err)
	}

	c.logger.WithFields(map[string]interface{}{
		"ticker": ticker,
		"count":  len(bars),
	}).Debug("Fetched daily bars")
	return bars, nil
}
