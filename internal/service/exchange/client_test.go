package exchange

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Dotan-Peleh/currency-convertor/pkg/cache"
	xhttp "github.com/Dotan-Peleh/currency-convertor/pkg/http"
	applogger "github.com/Dotan-Peleh/currency-convertor/pkg/logger"
)

func testLogger(t *testing.T) *applogger.Logger {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "console", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

func TestLatestPinsUSDAndDate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"date":"2026-08-30","rates":{"EUR":0.92,"GBP":0.79}}`))
	}))
	defer srv.Close()

	c := New(xhttp.NewClient(), srv.URL, "", cache.NewMemoryCache(), testLogger(t))
	snap, err := c.Latest(context.Background())
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap.Rates["USD"] != 1.0 {
		t.Fatalf("USD must be pinned to 1.0, got %v", snap.Rates["USD"])
	}
	if snap.Date != "2026-08-30" {
		t.Fatalf("date %q", snap.Date)
	}
	if snap.Rates["EUR"] != 0.92 {
		t.Fatalf("EUR rate %v", snap.Rates["EUR"])
	}
}

func TestLatestFallsBackToCachedSnapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"date":"2026-08-29","rates":{"EUR":0.93}}`))
	}))

	shared := cache.NewMemoryCache()
	good := New(xhttp.NewClient(), srv.URL, "", shared, testLogger(t))
	if _, err := good.Latest(context.Background()); err != nil {
		t.Fatalf("seed fetch: %v", err)
	}
	srv.Close()

	bad := New(xhttp.NewClient(), "http://127.0.0.1:1", "", shared, testLogger(t))
	snap, err := bad.Latest(context.Background())
	if err != nil {
		t.Fatalf("expected cached fallback, got error: %v", err)
	}
	if snap.Date != "2026-08-29" || snap.Rates["EUR"] != 0.93 {
		t.Fatalf("fallback snapshot wrong: %+v", snap)
	}
}

func TestLatestErrorsWithoutCache(t *testing.T) {
	c := New(xhttp.NewClient(), "http://127.0.0.1:1", "", nil, testLogger(t))
	if _, err := c.Latest(context.Background()); err == nil {
		t.Fatalf("expected error when provider and cache are both unavailable")
	}
}
