package omniapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// go test -v --run TestClientTickers
func TestClientTickers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/tickers" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Method != http.MethodGet {
			t.Errorf("method = %s", r.Method)
		}
		w.Write([]byte(`[{"symbol": "AAPL", "price": 228.5}, {"symbol": "TSLA", "price": 240.1}]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)

	tickers, err := client.Tickers(context.Background())
	if err != nil {
		t.Fatalf("tickers: %v", err)
	}
	if len(tickers) != 2 || tickers[0].Symbol != "AAPL" || tickers[0].Price != 228.5 {
		t.Errorf("unexpected tickers: %v", tickers)
	}
}

// go test -v --run TestClientKlinesQuery
func TestClientKlinesQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("symbol") != "BTC/USDT" || q.Get("interval") != "1h" || q.Get("limit") != "100" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		w.Write([]byte(`[{"open": 1, "high": 2, "low": 0.5, "close": 1.5, "volume": 10}]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)

	klines, err := client.Klines(context.Background(), "BTC/USDT", "1h", 100)
	if err != nil {
		t.Fatalf("klines: %v", err)
	}
	if len(klines) != 1 || klines[0].Close != 1.5 {
		t.Errorf("unexpected klines: %v", klines)
	}
}

// go test -v --run TestClientNon2xxIsAPIError
func TestClientNon2xxIsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)

	_, err := client.Profile(context.Background())
	if err == nil {
		t.Fatal("expected error for 403")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusForbidden {
		t.Errorf("statusCode = %d, want 403", apiErr.StatusCode)
	}
}

// go test -v --run TestClientCreateAlertSendsJSON
func TestClientCreateAlertSendsJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/alerts" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content-type = %q", ct)
		}

		body, _ := io.ReadAll(r.Body)
		var sent Alert
		if err := json.Unmarshal(body, &sent); err != nil {
			t.Errorf("request body not JSON: %v", err)
		}
		if sent.Symbol != "AAPL" {
			t.Errorf("sent symbol = %q", sent.Symbol)
		}

		sent.ID = "srv-1"
		json.NewEncoder(w).Encode(sent)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)

	created, err := client.CreateAlert(context.Background(), Alert{Symbol: "AAPL", Threshold: 250})
	if err != nil {
		t.Fatalf("create alert: %v", err)
	}
	if created.ID != "srv-1" {
		t.Errorf("created id = %q, want srv-1", created.ID)
	}
}

// go test -v --run TestClientWatchlistSymbols
func TestClientWatchlistSymbols(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/user/watchlist" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`["BTC/USDT", "AAPL", "USD/CNY"]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)

	symbols, err := client.WatchlistSymbols(context.Background())
	if err != nil {
		t.Fatalf("watchlist: %v", err)
	}
	if len(symbols) != 3 || symbols[0] != "BTC/USDT" {
		t.Errorf("unexpected symbols: %v", symbols)
	}
}

// go test -v --run TestClientAutoTradingEndpoints
func TestClientAutoTradingEndpoints(t *testing.T) {
	var gotPaths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPaths = append(gotPaths, r.URL.Path)

		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["account"] != "acc-1" {
			t.Errorf("account = %q", body["account"])
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)

	if err := client.StartAutoTrading(context.Background(), "acc-1"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := client.StopAutoTrading(context.Background(), "acc-1"); err != nil {
		t.Fatalf("stop: %v", err)
	}

	want := []string{"/api/v1/autotrading/start", "/api/v1/autotrading/stop"}
	for i, path := range want {
		if gotPaths[i] != path {
			t.Errorf("call %d hit %s, want %s", i, gotPaths[i], path)
		}
	}
}
