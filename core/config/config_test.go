package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	return &Config{
		Telegram: TelegramConfig{Token: "123:abc", RunMode: "longpoll"},
		Weather:  WeatherConfig{APIKey: "wx-key"},
	}
}

func TestNormalizeDefaults(t *testing.T) {
	cfg := validConfig()
	if err := Normalize(cfg); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if cfg.Weather.BaseURL != "https://api.openweathermap.org" {
		t.Errorf("weather base URL = %q", cfg.Weather.BaseURL)
	}
	if cfg.Food.BaseURL != "https://world.openfoodfacts.org" {
		t.Errorf("food base URL = %q", cfg.Food.BaseURL)
	}
	if cfg.Weather.TimeoutSeconds <= 0 || cfg.Food.TimeoutSeconds <= 0 {
		t.Error("timeouts must default to a finite positive value")
	}
}

func TestNormalizeRequiresToken(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.Token = ""
	if err := Normalize(cfg); err == nil {
		t.Fatal("missing token must be rejected")
	}
}

func TestNormalizeRequiresWeatherKey(t *testing.T) {
	cfg := validConfig()
	cfg.Weather.APIKey = ""
	if err := Normalize(cfg); err == nil {
		t.Fatal("missing weather api key must be rejected")
	}
}

func TestNormalizeRunModes(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.RunMode = "Webhook"
	cfg.Webhook = WebhookConfig{URL: "https://bot.example.com/hook", Listen: "0.0.0.0", Port: 8443}
	if err := Normalize(cfg); err != nil {
		t.Fatalf("Normalize webhook: %v", err)
	}
	if cfg.Telegram.RunMode != RunModeWebhook {
		t.Errorf("run mode = %q, want normalized %q", cfg.Telegram.RunMode, RunModeWebhook)
	}

	cfg = validConfig()
	cfg.Telegram.RunMode = "carrier-pigeon"
	err := Normalize(cfg)
	if err == nil || !strings.Contains(err.Error(), "run_mode") {
		t.Fatalf("err = %v, want run_mode rejection", err)
	}
}

func TestNormalizeWebhookNeedsURL(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.RunMode = "webhook"
	if err := Normalize(cfg); err == nil {
		t.Fatal("webhook mode without URL must be rejected")
	}
}
