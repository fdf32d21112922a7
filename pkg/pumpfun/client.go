package pumpfun

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"
)

const defaultBaseURL = "https://frontend-api.pump.fun"

// Client represents a pump.fun frontend API client
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new pump.fun API client. The base URL can be
// overridden with the PUMPFUN_API_URL environment variable.
func NewClient() *Client {
	baseURL := os.Getenv("PUMPFUN_API_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return NewClientWithBaseURL(baseURL)
}

// NewClientWithBaseURL creates a client against a specific endpoint.
func NewClientWithBaseURL(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				IdleConnTimeout:       10 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ResponseHeaderTimeout: 10 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
	}
}

// CoinData represents one token as returned by the pump.fun API
type CoinData struct {
	Mint                    string  `json:"mint"`
	Name                    string  `json:"name"`
	Symbol                  string  `json:"symbol"`
	Description             string  `json:"description"`
	Image                   string  `json:"image"`
	Website                 string  `json:"website"`
	Telegram                string  `json:"telegram"`
	Twitter                 string  `json:"twitter"`
	MarketCap               float64 `json:"market_cap"`
	UsdMarketCap            float64 `json:"usd_market_cap"`
	Price                   float64 `json:"price"`
	VirtualSolReserves      float64 `json:"virtual_sol_reserves"`
	VirtualTokenReserves    float64 `json:"virtual_token_reserves"`
	TotalSupply             float64 `json:"total_supply"`
	Creator                 string  `json:"creator"`
	CreatedTimestamp        int64   `json:"created_timestamp"`
	LastTradeTimestamp      int64   `json:"last_trade_timestamp"`
	KingOfTheHillTimestamp  int64   `json:"king_of_the_hill_timestamp"`
	RaydiumPool             string  `json:"raydium_pool"`
}

// apiResponse is the JSON envelope returned by the list endpoints
type apiResponse struct {
	Success bool       `json:"success"`
	Data    []CoinData `json:"data"`
}

// GetNewCoins retrieves the most recently created tokens
func (c *Client) GetNewCoins(limit int) ([]CoinData, error) {
	return c.getCoins("/coins/new", limit, "created_timestamp")
}

// GetHotCoins retrieves tokens sorted by 24h volume
func (c *Client) GetHotCoins(limit int) ([]CoinData, error) {
	return c.getCoins("/coins/hot", limit, "volume_24h")
}

func (c *Client) getCoins(path string, limit int, sortField string) ([]CoinData, error) {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	q := u.Query()
	q.Add("limit", fmt.Sprintf("%d", limit))
	q.Add("sort", sortField)
	q.Add("order", "desc")
	u.RawQuery = q.Encode()

	req, err := http.NewRequest("GET", u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status code: %d", resp.StatusCode)
	}

	var envelope apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if !envelope.Success {
		return nil, fmt.Errorf("API reported failure for %s", path)
	}

	return envelope.Data, nil
}

// GetCoin retrieves a single token by mint
func (c *Client) GetCoin(mint string) (*CoinData, error) {
	req, err := http.NewRequest("GET", fmt.Sprintf("%s/coins/%s", c.baseURL, mint), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status code: %d", resp.StatusCode)
	}

	var coin CoinData
	if err := json.NewDecoder(resp.Body).Decode(&coin); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &coin, nil
}
