// Package weather fetches current conditions from the OpenWeatherMap API.
package weather

import (
	"context"
	"encoding/json"
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

// Client queries the OpenWeatherMap current-weather endpoint.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// New builds a client from the weather section of the configuration.
func New(cfg config.WeatherConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
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

type currentWeather struct {
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Message string `json:"message"`
}

// CurrentTemperature returns the temperature in the given city in °C.
func (c *Client) CurrentTemperature(ctx context.Context, city string) (float64, error) {
	start := time.Now()

	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")
	endpoint := c.baseURL + "/data/2.5/weather?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("weather: build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logger.WX.LogAttrs(ctx, slog.LevelWarn, "request failed",
			slog.String("event", "weather.fail"),
			slog.String("city", logger.Sanitize(city)),
			slog.String("err", err.Error()),
		)
		return 0, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, fmt.Errorf("weather: read response: %w", err)
	}

	var cw currentWeather
	if jsonErr := json.Unmarshal(body, &cw); jsonErr != nil && resp.StatusCode == http.StatusOK {
		return 0, fmt.Errorf("weather: decode response: %w", jsonErr)
	}

	if resp.StatusCode != http.StatusOK {
		msg := strings.TrimSpace(cw.Message)
		if msg == "" {
			msg = resp.Status
		}
		logger.WX.LogAttrs(ctx, slog.LevelWarn, "api error",
			slog.String("event", "weather.fail"),
			slog.String("city", logger.Sanitize(city)),
			slog.Int("http_code", resp.StatusCode),
			slog.String("err", msg),
		)
		return 0, fmt.Errorf("weather: %s", msg)
	}

	logger.WX.LogAttrs(ctx, slog.LevelDebug, "temperature fetched",
		slog.String("event", "weather.ok"),
		slog.String("city", logger.Sanitize(city)),
		slog.Float64("temp_c", cw.Main.Temp),
		slog.Duration("duration", logger.RoundMS(time.Since(start))),
	)
	return cw.Main.Temp, nil
}
