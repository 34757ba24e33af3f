package ratesapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ChiminhTT/currency-list-converter/internal/model"
)

// TestNewClient tests client construction with various options.
func TestNewClient(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		c := NewClient("https://api.example.com", "test-key")

		if c.baseURL != "https://api.example.com" {
			t.Errorf("baseURL = %q, want %q", c.baseURL, "https://api.example.com")
		}
		if c.apiKey != "test-key" {
			t.Errorf("apiKey = %q, want %q", c.apiKey, "test-key")
		}
		if c.httpClient.Timeout != 10*time.Second {
			t.Errorf("Timeout = %v, want %v", c.httpClient.Timeout, 10*time.Second)
		}
		if c.maxRetries != 3 {
			t.Errorf("maxRetries = %d, want %d", c.maxRetries, 3)
		}
		if c.retryBackoff != time.Second {
			t.Errorf("retryBackoff = %v, want %v", c.retryBackoff, time.Second)
		}
		if c.logger == nil {
			t.Error("logger should not be nil")
		}
		if c.limiter == nil {
			t.Error("limiter should not be nil")
		}
	})

	t.Run("with timeout option", func(t *testing.T) {
		c := NewClient("https://api.example.com", "", WithTimeout(5*time.Second))
		if c.httpClient.Timeout != 5*time.Second {
			t.Errorf("Timeout = %v, want %v", c.httpClient.Timeout, 5*time.Second)
		}
	})

	t.Run("with retries option", func(t *testing.T) {
		c := NewClient("https://api.example.com", "", WithRetries(5, 2*time.Second))
		if c.maxRetries != 5 {
			t.Errorf("maxRetries = %d, want %d", c.maxRetries, 5)
		}
		if c.retryBackoff != 2*time.Second {
			t.Errorf("retryBackoff = %v, want %v", c.retryBackoff, 2*time.Second)
		}
	})

	t.Run("with rate limit option", func(t *testing.T) {
		c := NewClient("https://api.example.com", "", WithRateLimit(4))
		if c.limiter.Limit() != 4 {
			t.Errorf("limiter.Limit() = %v, want 4", c.limiter.Limit())
		}
	})

	t.Run("zero rate limit disables the cap", func(t *testing.T) {
		c := NewClient("https://api.example.com", "", WithRateLimit(0))
		if !c.limiter.Allow() {
			t.Error("limiter should allow requests when the cap is disabled")
		}
	})
}

// TestAPIError tests the APIError type.
func TestAPIError(t *testing.T) {
	t.Run("Error method", func(t *testing.T) {
		err := &APIError{
			StatusCode: 404,
			Message:    "Not Found",
			Body:       []byte(`{"message": "not found"}`),
		}
		expected := "rates api error 404: Not Found"
		if err.Error() != expected {
			t.Errorf("Error() = %q, want %q", err.Error(), expected)
		}
	})

	t.Run("IsRetryable", func(t *testing.T) {
		tests := []struct {
			code     int
			expected bool
		}{
			{500, true},
			{502, true},
			{503, true},
			{429, true},
			{400, false},
			{404, false},
			{499, false},
		}

		for _, tt := range tests {
			err := &APIError{StatusCode: tt.code}
			if got := err.IsRetryable(); got != tt.expected {
				t.Errorf("IsRetryable() for status %d = %v, want %v", tt.code, got, tt.expected)
			}
		}
	})
}

func TestGetCurrencies(t *testing.T) {
	t.Run("decodes the reference table", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/currencies" {
				t.Errorf("path = %q, want /currencies", r.URL.Path)
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{
				"USD": "US Dollar",
				"EUR": "Euro",
			})
		}))
		defer server.Close()

		c := NewClient(server.URL, "")
		table, err := c.GetCurrencies(context.Background())
		if err != nil {
			t.Fatalf("GetCurrencies() error = %v", err)
		}

		if len(table) != 2 {
			t.Fatalf("len(table) = %d, want 2", len(table))
		}
		usd := table["USD"]
		if usd.Code != "USD" || usd.Name != "US Dollar" {
			t.Errorf("table[USD] = %+v, want {USD US Dollar}", usd)
		}
	})

	t.Run("maps HTTP errors to APIError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		c := NewClient(server.URL, "")
		_, err := c.GetCurrencies(context.Background())
		if err == nil {
			t.Fatal("expected error, got nil")
		}

		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("error = %v, want *APIError", err)
		}
		if apiErr.StatusCode != http.StatusNotFound {
			t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, http.StatusNotFound)
		}
	})
}

func TestGetLatest(t *testing.T) {
	t.Run("sends the base and decodes rates", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/latest" {
				t.Errorf("path = %q, want /latest", r.URL.Path)
			}
			if got := r.URL.Query().Get("base"); got != "USD" {
				t.Errorf("base = %q, want USD", got)
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(LatestResponse{
				Amount: 1,
				Base:   "USD",
				Date:   "2026-08-28",
				Rates:  map[string]float64{"EUR": 0.92, "GBP": 0.79},
			})
		}))
		defer server.Close()

		c := NewClient(server.URL, "")
		rates, err := c.GetLatest(context.Background(), "USD")
		if err != nil {
			t.Fatalf("GetLatest() error = %v", err)
		}

		if len(rates) != 2 {
			t.Fatalf("len(rates) = %d, want 2", len(rates))
		}
		if rates[model.Currency("EUR")] != 0.92 {
			t.Errorf("rates[EUR] = %v, want 0.92", rates["EUR"])
		}
	})

	t.Run("sends the Authorization header when an API key is set", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
				t.Errorf("Authorization = %q, want %q", got, "Bearer test-key")
			}
			json.NewEncoder(w).Encode(LatestResponse{Base: "USD", Rates: map[string]float64{}})
		}))
		defer server.Close()

		c := NewClient(server.URL, "test-key")
		if _, err := c.GetLatest(context.Background(), "USD"); err != nil {
			t.Fatalf("GetLatest() error = %v", err)
		}
	})
}

func TestDoWithRetry(t *testing.T) {
	t.Run("retries on 5xx and succeeds", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) <= 2 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			json.NewEncoder(w).Encode(map[string]string{"USD": "US Dollar"})
		}))
		defer server.Close()

		c := NewClient(server.URL, "", WithRetries(3, time.Millisecond))
		table, err := c.GetCurrencies(context.Background())
		if err != nil {
			t.Fatalf("GetCurrencies() error = %v", err)
		}
		if len(table) != 1 {
			t.Errorf("len(table) = %d, want 1", len(table))
		}
		if got := calls.Load(); got != 3 {
			t.Errorf("calls = %d, want 3", got)
		}
	})

	t.Run("does not retry on 4xx", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer server.Close()

		c := NewClient(server.URL, "", WithRetries(3, time.Millisecond))
		if _, err := c.GetCurrencies(context.Background()); err == nil {
			t.Fatal("expected error, got nil")
		}
		if got := calls.Load(); got != 1 {
			t.Errorf("calls = %d, want 1", got)
		}
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		c := NewClient(server.URL, "", WithRetries(2, time.Millisecond))
		_, err := c.GetCurrencies(context.Background())
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if got := calls.Load(); got != 3 {
			t.Errorf("calls = %d, want 3 (initial + 2 retries)", got)
		}
	})
}
