// Package exchange implements the RateSource against an
// exchangerate-api-style HTTP endpoint, with a cached-snapshot fallback so a
// provider outage degrades to yesterday's rates instead of failing the run.
package exchange

import (
	"context"
	"fmt"
	"time"

	"github.com/Dotan-Peleh/currency-convertor/internal/domain/models"
	drepo "github.com/Dotan-Peleh/currency-convertor/internal/domain/repository"
	"github.com/Dotan-Peleh/currency-convertor/pkg/cache"
	xhttp "github.com/Dotan-Peleh/currency-convertor/pkg/http"
	applogger "github.com/Dotan-Peleh/currency-convertor/pkg/logger"
	"github.com/Dotan-Peleh/currency-convertor/pkg/util"
)

const (
	latestKey = "rates:latest"
	cacheTTL  = 48 * time.Hour
)

// Client fetches USD-base rate snapshots.
type Client struct {
	http    *xhttp.Client
	baseURL string
	apiKey  string
	cache   cache.Service // nil disables the fallback
	logger  *applogger.Logger
}

// New creates a rate source. cache may be nil.
func New(httpClient *xhttp.Client, baseURL, apiKey string, c cache.Service, logger *applogger.Logger) drepo.RateSource {
	return &Client{
		http:    httpClient,
		baseURL: baseURL,
		apiKey:  apiKey,
		cache:   c,
		logger:  logger,
	}
}

// providerResponse is the wire shape of the latest-rates endpoint.
type providerResponse struct {
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

// Latest fetches today's snapshot from the provider. On failure it falls
// back to the most recently cached snapshot; only when both are unavailable
// does it return an error.
func (c *Client) Latest(ctx context.Context) (models.RateSnapshot, error) {
	opts := &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL,
	}
	if c.apiKey != "" {
		opts.QueryParams = map[string][]string{"api_key": {c.apiKey}}
	}

	var payload providerResponse
	if err := c.http.SendAndParse(ctx, opts, &payload); err != nil {
		c.logger.Error("rate fetch failed", applogger.Error(err))
		if snap, ok := c.cached(ctx); ok {
			c.logger.Warn("using cached rate snapshot", applogger.String("date", snap.Date))
			return snap, nil
		}
		return models.RateSnapshot{}, fmt.Errorf("fetch rates: %w", err)
	}
	if len(payload.Rates) == 0 {
		return models.RateSnapshot{}, fmt.Errorf("rate provider returned no rates")
	}

	snap := models.RateSnapshot{
		Date:  payload.Date,
		Rates: make(map[string]float64, len(payload.Rates)+1),
	}
	for cur, r := range payload.Rates {
		snap.Rates[cur] = r
	}
	// The base currency is implicit in the endpoint; pin it explicitly.
	snap.Rates["USD"] = 1.0
	if _, ok := util.ParseDate(snap.Date); !ok {
		snap.Date = time.Now().UTC().Format(util.DateLayout)
	}

	c.store(ctx, snap)
	c.logger.Info("rate snapshot fetched",
		applogger.String("date", snap.Date),
		applogger.Int("currencies", len(snap.Rates)))
	return snap, nil
}

func (c *Client) cached(ctx context.Context) (models.RateSnapshot, bool) {
	if c.cache == nil {
		return models.RateSnapshot{}, false
	}
	var snap models.RateSnapshot
	if err := c.cache.Get(ctx, latestKey, &snap); err != nil {
		return models.RateSnapshot{}, false
	}
	return snap, len(snap.Rates) > 0
}

func (c *Client) store(ctx context.Context, snap models.RateSnapshot) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Set(ctx, latestKey, snap, cacheTTL); err != nil {
		c.logger.Warn("rate snapshot cache write failed", applogger.Error(err))
	}
	// Day-stamped copy for debugging rate drift between runs.
	_ = c.cache.Set(ctx, cache.GenerateKey("rates", snap.Date), snap, cacheTTL)
}
