// Package food looks up product calorie data in the OpenFoodFacts database.
package food

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fitbot/core/config"
	"fitbot/core/logger"
	"fitbot/core/telegram/netutil"

	"log/slog"
)

// ErrNotFound means the database has no product matching the query.
var ErrNotFound = errors.New("product not found")

// Product is the first search hit for a query.
type Product struct {
	Name           string
	CaloriesPer100 float64
}

// Client queries the OpenFoodFacts search endpoint.
type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a client from the food section of the configuration.
func New(cfg config.FoodConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
			Transport: &netutil.RetryTransport{
				Base:       http.DefaultTransport,
				MaxRetries: 2,
				Backoff:    500 * time.Millisecond,
			},
		},
	}
}

type searchResponse struct {
	Products []struct {
		ProductName string `json:"product_name"`
		Nutriments  struct {
			EnergyKcal100g float64 `json:"energy-kcal_100g"`
		} `json:"nutriments"`
	} `json:"products"`
}

// Search returns the first product matching the query, or ErrNotFound.
func (c *Client) Search(ctx context.Context, query string) (Product, error) {
	start := time.Now()

	q := url.Values{}
	q.Set("action", "process")
	q.Set("search_terms", query)
	q.Set("json", "true")
	q.Set("page_size", "1")
	endpoint := c.baseURL + "/cgi/search.pl?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Product{}, fmt.Errorf("food: build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Food.LogAttrs(ctx, slog.LevelWarn, "request failed",
			slog.String("event", "food.fail"),
			slog.String("product", logger.SanitizeLimit(query, 64)),
			slog.String("err", err.Error()),
		)
		return Product{}, fmt.Errorf("food request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Food.LogAttrs(ctx, slog.LevelWarn, "api error",
			slog.String("event", "food.fail"),
			slog.String("product", logger.SanitizeLimit(query, 64)),
			slog.Int("http_code", resp.StatusCode),
		)
		return Product{}, fmt.Errorf("food: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return Product{}, fmt.Errorf("food: read response: %w", err)
	}

	var sr searchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return Product{}, fmt.Errorf("food: decode response: %w", err)
	}
	if len(sr.Products) == 0 {
		return Product{}, ErrNotFound
	}

	hit := sr.Products[0]
	name := strings.TrimSpace(hit.ProductName)
	if name == "" {
		name = query
	}

	logger.Food.LogAttrs(ctx, slog.LevelDebug, "product found",
		slog.String("event", "food.ok"),
		slog.String("product", logger.SanitizeLimit(name, 64)),
		slog.Float64("kcal", hit.Nutriments.EnergyKcal100g),
		slog.Duration("duration", logger.RoundMS(time.Since(start))),
	)
	return Product{Name: name, CaloriesPer100: hit.Nutriments.EnergyKcal100g}, nil
}
