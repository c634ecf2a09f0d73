// Package adapter provides HTTP clients for the upstream APIs the screener
// depends on: Alpha Vantage for market data and Telegram for notifications.
package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/manapixels/stock-screener/internal/errors"
)

const defaultAlphaVantageBaseURL = "https://www.alphavantage.co/query"

// AlphaVantageClient handles API calls to Alpha Vantage for quotes,
// fundamentals, technical indicators and news sentiment
type AlphaVantageClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewAlphaVantageClient creates a new Alpha Vantage API client. An empty
// baseURL selects the public endpoint.
func NewAlphaVantageClient(apiKey, baseURL string) *AlphaVantageClient {
	if baseURL == "" {
		baseURL = defaultAlphaVantageBaseURL
	}
	return &AlphaVantageClient{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// StockDetail bundles every dataset the stock detail view needs for one
// symbol. Payloads are passed through from Alpha Vantage verbatim.
type StockDetail struct {
	Overview      json.RawMessage `json:"overview"`
	Earnings      json.RawMessage `json:"earnings"`
	DailyData     json.RawMessage `json:"daily_data"`
	RSI           json.RawMessage `json:"rsi"`
	BBands        json.RawMessage `json:"bbands"`
	NewsSentiment json.RawMessage `json:"news_sentiment"`
}

// query performs one GET against the query endpoint and returns the response
// body verbatim. Every Alpha Vantage function rides the same URL; calls only
// differ in params.
func (c *AlphaVantageClient) query(ctx context.Context, params url.Values) (json.RawMessage, error) {
	if c.apiKey == "" {
		return nil, errors.NewConfigurationError("ALPHA_VANTAGE_API_KEY environment variable not set.")
	}

	params.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch from Alpha Vantage: %w", err)
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Alpha Vantage API error: status=%d, body=%s", resp.StatusCode, string(body))
	}

	var payload json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return payload, nil
}

// SearchSymbol looks up ticker matches for a keyword query
func (c *AlphaVantageClient) SearchSymbol(ctx context.Context, keywords string) (json.RawMessage, error) {
	return c.query(ctx, url.Values{
		"function": {"SYMBOL_SEARCH"},
		"keywords": {keywords},
	})
}

// CompanyOverview fetches company fundamentals for a symbol
func (c *AlphaVantageClient) CompanyOverview(ctx context.Context, symbol string) (json.RawMessage, error) {
	return c.query(ctx, url.Values{
		"function": {"OVERVIEW"},
		"symbol":   {symbol},
	})
}

// Earnings fetches annual and quarterly earnings for a symbol
func (c *AlphaVantageClient) Earnings(ctx context.Context, symbol string) (json.RawMessage, error) {
	return c.query(ctx, url.Values{
		"function": {"EARNINGS"},
		"symbol":   {symbol},
	})
}

// DailyTimeSeries fetches the compact daily price series for a symbol
func (c *AlphaVantageClient) DailyTimeSeries(ctx context.Context, symbol string) (json.RawMessage, error) {
	return c.query(ctx, url.Values{
		"function":   {"TIME_SERIES_DAILY"},
		"symbol":     {symbol},
		"outputsize": {"compact"},
	})
}

// RSI fetches the relative strength index series for a symbol. Zero values
// select the screener defaults (daily interval, 14 period).
func (c *AlphaVantageClient) RSI(ctx context.Context, symbol, interval string, timePeriod int) (json.RawMessage, error) {
	if interval == "" {
		interval = "daily"
	}
	if timePeriod <= 0 {
		timePeriod = 14
	}
	return c.query(ctx, url.Values{
		"function":    {"RSI"},
		"symbol":      {symbol},
		"interval":    {interval},
		"time_period": {strconv.Itoa(timePeriod)},
		"series_type": {"close"},
	})
}

// BollingerBands fetches the Bollinger Bands series for a symbol. Zero
// values select the screener defaults (daily interval, 20 period).
func (c *AlphaVantageClient) BollingerBands(ctx context.Context, symbol, interval string, timePeriod int) (json.RawMessage, error) {
	if interval == "" {
		interval = "daily"
	}
	if timePeriod <= 0 {
		timePeriod = 20
	}
	return c.query(ctx, url.Values{
		"function":    {"BBANDS"},
		"symbol":      {symbol},
		"interval":    {interval},
		"time_period": {strconv.Itoa(timePeriod)},
		"series_type": {"close"},
	})
}

// NewsSentiment fetches news and sentiment articles for a symbol
func (c *AlphaVantageClient) NewsSentiment(ctx context.Context, symbol string) (json.RawMessage, error) {
	return c.query(ctx, url.Values{
		"function": {"NEWS_SENTIMENT"},
		"tickers":  {symbol},
	})
}

// StockDetail fetches the six symbol-scoped datasets concurrently and
// assembles them into one response. The aggregate is all-or-nothing: if any
// call fails the whole fetch fails.
func (c *AlphaVantageClient) StockDetail(ctx context.Context, symbol string) (*StockDetail, error) {
	var detail StockDetail

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		detail.Overview, err = c.CompanyOverview(ctx, symbol)
		return err
	})
	g.Go(func() error {
		var err error
		detail.Earnings, err = c.Earnings(ctx, symbol)
		return err
	})
	g.Go(func() error {
		var err error
		detail.DailyData, err = c.DailyTimeSeries(ctx, symbol)
		return err
	})
	g.Go(func() error {
		var err error
		detail.RSI, err = c.RSI(ctx, symbol, "", 0)
		return err
	})
	g.Go(func() error {
		var err error
		detail.BBands, err = c.BollingerBands(ctx, symbol, "", 0)
		return err
	})
	g.Go(func() error {
		var err error
		detail.NewsSentiment, err = c.NewsSentiment(ctx, symbol)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &detail, nil
}
