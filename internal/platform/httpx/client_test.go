package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/leyuan/sportdesk/internal/platform/resilience"
)

func newTestClient(t *testing.T, handler http.Handler, maxRetries int) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := New(Config{
		Name:       "test",
		BaseURL:    srv.URL,
		Timeout:    2 * time.Second,
		MaxRetries: maxRetries,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 3,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})
	return client, srv
}

func TestGetJSON_DecodesPayload(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") != "abc" {
			t.Errorf("missing query parameter, got %q", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"value":42}`))
	}), 0)

	var target struct {
		Value int `json:"value"`
	}
	query := url.Values{}
	query.Set("q", "abc")
	if _, err := client.GetJSON(context.Background(), "/data", query, &target); err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if target.Value != 42 {
		t.Fatalf("unexpected decoded value: %d", target.Value)
	}
}

func TestGet_RetriesTransientStatus(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`ok`))
	}), 1)

	raw, err := client.Get(context.Background(), "/data", nil)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(raw) != "ok" {
		t.Fatalf("unexpected body: %q", raw)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 calls, got %d", calls.Load())
	}
}

func TestGet_DoesNotRetryClientError(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}), 3)

	if _, err := client.Get(context.Background(), "/data", nil); err == nil {
		t.Fatalf("expected error for 404")
	}
	if calls.Load() != 1 {
		t.Fatalf("expected a single call for non-retryable status, got %d", calls.Load())
	}
}

func TestGet_CircuitOpensAfterConsecutiveFailures(t *testing.T) {
	client, srv := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}), 0)
	defer srv.Close()

	for i := 0; i < 3; i++ {
		if _, err := client.Get(context.Background(), "/data", nil); err == nil {
			t.Fatalf("expected failure on attempt %d", i)
		}
	}

	_, err := client.Get(context.Background(), "/data", nil)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable once circuit is open, got %v", err)
	}
}

func TestGet_SendsConfiguredHeaders(t *testing.T) {
	var gotReferer string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReferer = r.Header.Get("Referer")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := New(Config{
		Name:    "test",
		BaseURL: srv.URL,
		Timeout: time.Second,
		Headers: map[string]string{"Referer": "https://example.com/"},
	})

	if _, err := client.Get(context.Background(), "/", nil); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if gotReferer != "https://example.com/" {
		t.Fatalf("unexpected referer: %q", gotReferer)
	}
}
