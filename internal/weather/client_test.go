package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fitbot/core/config"
	"fitbot/core/logger"
)

func TestMain(m *testing.M) {
	_ = logger.InitLogger(nil)
	m.Run()
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := New(config.WeatherConfig{
		APIKey:         "test-key",
		BaseURL:        srv.URL,
		TimeoutSeconds: 2,
	})
	return c, srv
}

func TestCurrentTemperature(t *testing.T) {
	var gotQuery string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		if r.URL.Path != "/data/2.5/weather" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"main":{"temp":21.4}}`))
	})

	temp, err := c.CurrentTemperature(context.Background(), "Berlin")
	if err != nil {
		t.Fatalf("CurrentTemperature: %v", err)
	}
	if temp != 21.4 {
		t.Fatalf("temp = %v, want 21.4", temp)
	}
	for _, part := range []string{"q=Berlin", "appid=test-key", "units=metric"} {
		if !strings.Contains(gotQuery, part) {
			t.Errorf("query %q missing %q", gotQuery, part)
		}
	}
}

func TestCurrentTemperatureCityNotFound(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"cod":"404","message":"city not found"}`))
	})

	_, err := c.CurrentTemperature(context.Background(), "Atlantis")
	if err == nil {
		t.Fatal("expected error for unknown city")
	}
	if !strings.Contains(err.Error(), "city not found") {
		t.Fatalf("err = %v, want provider message surfaced", err)
	}
}

func TestCurrentTemperatureServerDown(t *testing.T) {
	c, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	if _, err := c.CurrentTemperature(context.Background(), "Berlin"); err == nil {
		t.Fatal("expected error when server is unreachable")
	}
}
