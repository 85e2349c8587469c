package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"CryptoBoard/internal/model"
)

// DefaultBaseURL is the public CoinGecko v3 API.
const DefaultBaseURL = "https://api.coingecko.com/api/v3"

// CoinGeckoFetcher implements Fetcher using the CoinGecko /coins/markets endpoint.
type CoinGeckoFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
	limiter *rate.Limiter
}

// CoinGeckoOptions tunes the HTTP client and request pacing.
type CoinGeckoOptions struct {
	APIKey          string
	ProxyURL        string
	Timeout         time.Duration
	RateLimitPerSec float64
	RateLimitBurst  int
}

// NewCoinGeckoFetcher creates a new fetcher with optional proxy support.
func NewCoinGeckoFetcher(baseURL string, opts CoinGeckoOptions) *CoinGeckoFetcher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	transport := &http.Transport{}
	if opts.ProxyURL != "" {
		if u, err := url.Parse(opts.ProxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	limit := rate.Inf
	if opts.RateLimitPerSec > 0 {
		limit = rate.Limit(opts.RateLimitPerSec)
	}
	if opts.RateLimitBurst <= 0 {
		opts.RateLimitBurst = 1
	}
	return &CoinGeckoFetcher{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  opts.APIKey,
		Client: &http.Client{
			Timeout:   opts.Timeout,
			Transport: transport,
		},
		limiter: rate.NewLimiter(limit, opts.RateLimitBurst),
	}
}

func (f *CoinGeckoFetcher) Name() string { return "coingecko" }

// cgMarket is the subset of the /coins/markets item we consume.
type cgMarket struct {
	ID                       string   `json:"id"`
	Symbol                   string   `json:"symbol"`
	Name                     string   `json:"name"`
	CurrentPrice             *float64 `json:"current_price"`
	PriceChangePercentage24h *float64 `json:"price_change_percentage_24h"`
	SparklineIn7d            *struct {
		Price []float64 `json:"price"`
	} `json:"sparkline_in_7d"`
}

// FetchTopAssets fetches one market snapshot. It does not retry: the caller's
// refresh schedule is the retry policy.
func (f *CoinGeckoFetcher) FetchTopAssets(ctx context.Context, limit int, vsCurrency string, days int) (*model.Snapshot, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}
	if vsCurrency == "" {
		return nil, errors.New("vs currency is required")
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return nil, &NetworkError{Op: "rate limiter", Err: err}
	}

	q := url.Values{}
	q.Set("vs_currency", strings.ToLower(vsCurrency))
	q.Set("order", "market_cap_desc")
	q.Set("per_page", strconv.Itoa(limit))
	q.Set("page", "1")
	q.Set("sparkline", "true")
	if days > 0 {
		q.Set("days", strconv.Itoa(days))
	}
	endpoint := f.BaseURL + "/coins/markets?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if f.APIKey != "" {
		req.Header.Set("x-cg-pro-api-key", f.APIKey)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: "fetch markets", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Op: "read markets body", Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &NetworkError{
			Op:         "fetch markets",
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("body: %s", truncate(string(body), 200)),
		}
	}

	var markets []cgMarket
	if err := json.Unmarshal(body, &markets); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return normalize(markets)
}

// normalize converts the payload into a Snapshot. Assets without sparkline
// data are dropped; if nothing survives the payload is rejected.
func normalize(markets []cgMarket) (*model.Snapshot, error) {
	snap := &model.Snapshot{
		Assets:    make([]model.Asset, 0, len(markets)),
		FetchedAt: time.Now(),
	}
	seen := make(map[string]bool, len(markets))
	for i, m := range markets {
		if m.ID == "" {
			return nil, &DecodeError{Err: fmt.Errorf("item %d: missing id", i)}
		}
		if seen[m.ID] {
			return nil, &DecodeError{Err: fmt.Errorf("item %d: duplicate id %q", i, m.ID)}
		}
		seen[m.ID] = true
		if m.CurrentPrice == nil {
			return nil, &DecodeError{Err: fmt.Errorf("item %q: missing current_price", m.ID)}
		}
		if m.SparklineIn7d == nil || len(m.SparklineIn7d.Price) == 0 {
			log.Printf("[WARN] %s has no sparkline data, skipping", m.ID)
			continue
		}
		var change float64
		if m.PriceChangePercentage24h != nil {
			change = *m.PriceChangePercentage24h
		}
		prices := make([]float64, len(m.SparklineIn7d.Price))
		copy(prices, m.SparklineIn7d.Price)
		snap.Assets = append(snap.Assets, model.Asset{
			ID:        m.ID,
			Symbol:    m.Symbol,
			Name:      m.Name,
			Price:     *m.CurrentPrice,
			Change24h: change,
			Sparkline: prices,
		})
	}
	if len(markets) > 0 && len(snap.Assets) == 0 {
		return nil, &DecodeError{Err: errors.New("no asset carries sparkline data")}
	}
	return snap, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
