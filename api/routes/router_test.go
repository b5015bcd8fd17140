package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	cartsvc "github.com/afuwah/electronics-backend/internal/cart"
	wishlistsvc "github.com/afuwah/electronics-backend/internal/wishlist"
	"github.com/afuwah/electronics-backend/pkg/config"
	"github.com/afuwah/electronics-backend/pkg/logger"
	"github.com/afuwah/electronics-backend/pkg/metrics"
)

type memStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}}
}

func (m *memStore) Read(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	payload, ok := m.data[key]
	return payload, ok, nil
}

func (m *memStore) Write(ctx context.Context, key string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = payload
	return nil
}

func (m *memStore) Ping(ctx context.Context) error {
	return nil
}

func testRouter(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.Env = config.AppEnvDev
	cfg.Session.CookieName = "afua_sid"
	cfg.Snapshot.Namespace = "afua"

	logg := logger.New(logger.Options{ServiceName: "router-test", Level: zerolog.Disabled, Output: io.Discard})
	registry := prometheus.NewRegistry()
	storefront := metrics.NewStorefrontMetrics(registry)
	store := newMemStore()

	cartService, err := cartsvc.NewService(cartsvc.ServiceParams{
		Snapshots: store,
		Namespace: cfg.Snapshot.Namespace,
		Logger:    logg,
		Metrics:   storefront,
	})
	if err != nil {
		t.Fatalf("build cart service: %v", err)
	}

	wishlistService, err := wishlistsvc.NewService(wishlistsvc.ServiceParams{
		Snapshots: store,
		Namespace: cfg.Snapshot.Namespace,
		Logger:    logg,
		Metrics:   storefront,
	})
	if err != nil {
		t.Fatalf("build wishlist service: %v", err)
	}

	return NewRouter(cfg, logg, store, cartService, wishlistService, registry)
}

func TestHealthEndpoints(t *testing.T) {
	router := testRouter(t)

	for _, path := range []string{"/health/live", "/health/ready"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d", path, resp.Code)
		}
	}
}

func TestPublicPing(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/public/ping", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestSessionMinted(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if resp.Header().Get("X-Session-Id") == "" {
		t.Fatalf("expected session id header on minted session")
	}
}

func TestCartRoundTripAcrossRequests(t *testing.T) {
	router := testRouter(t)

	body := `{"productId":"prod-cam-1","name":"Mirrorless Camera","unitPriceCents":219900,"availableForSale":true}`
	addReq := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body))
	addReq.Header.Set("X-Session-Id", "sess-route")
	addResp := httptest.NewRecorder()
	router.ServeHTTP(addResp, addReq)
	if addResp.Code != http.StatusOK {
		t.Fatalf("add: expected 200 got %d: %s", addResp.Code, addResp.Body.String())
	}

	getReq := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	getReq.Header.Set("X-Session-Id", "sess-route")
	getResp := httptest.NewRecorder()
	router.ServeHTTP(getResp, getReq)
	if getResp.Code != http.StatusOK {
		t.Fatalf("fetch: expected 200 got %d", getResp.Code)
	}

	var envelope struct {
		Data cartsvc.ViewDTO `json:"data"`
	}
	if err := json.NewDecoder(getResp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ItemCount != 1 || envelope.Data.SubtotalCents != 219900 {
		t.Fatalf("unexpected cart view: %+v", envelope.Data)
	}

	otherReq := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	otherReq.Header.Set("X-Session-Id", "sess-other")
	otherResp := httptest.NewRecorder()
	router.ServeHTTP(otherResp, otherReq)

	envelope.Data = cartsvc.ViewDTO{}
	if err := json.NewDecoder(otherResp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ItemCount != 0 {
		t.Fatalf("sessions must not share carts, got %+v", envelope.Data)
	}
}

func TestWishlistContainsRoute(t *testing.T) {
	router := testRouter(t)

	body := `{"productId":"prod-hp-1","name":"Headphones","unitPriceCents":29900,"availableForSale":true}`
	addReq := httptest.NewRequest(http.MethodPost, "/api/v1/wishlist/items", strings.NewReader(body))
	addReq.Header.Set("X-Session-Id", "sess-wl")
	addResp := httptest.NewRecorder()
	router.ServeHTTP(addResp, addReq)
	if addResp.Code != http.StatusOK {
		t.Fatalf("add: expected 200 got %d: %s", addResp.Code, addResp.Body.String())
	}

	checkReq := httptest.NewRequest(http.MethodGet, "/api/v1/wishlist/items/prod-hp-1", nil)
	checkReq.Header.Set("X-Session-Id", "sess-wl")
	checkResp := httptest.NewRecorder()
	router.ServeHTTP(checkResp, checkReq)
	if checkResp.Code != http.StatusOK {
		t.Fatalf("contains: expected 200 got %d", checkResp.Code)
	}

	var envelope struct {
		Data struct {
			Saved bool `json:"saved"`
		} `json:"data"`
	}
	if err := json.NewDecoder(checkResp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !envelope.Data.Saved {
		t.Fatalf("expected product to be saved")
	}
}

func TestWishlistDuplicateAddKeepsSingleEntry(t *testing.T) {
	router := testRouter(t)

	body := `{"productId":"prod-hp-1","name":"Headphones","unitPriceCents":29900,"availableForSale":true}`
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/wishlist/items", strings.NewReader(body))
		req.Header.Set("X-Session-Id", "sess-dup")
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("add %d: expected 200 got %d", i, resp.Code)
		}
	}

	getReq := httptest.NewRequest(http.MethodGet, "/api/v1/wishlist", nil)
	getReq.Header.Set("X-Session-Id", "sess-dup")
	getResp := httptest.NewRecorder()
	router.ServeHTTP(getResp, getReq)

	var envelope struct {
		Data wishlistsvc.ViewDTO `json:"data"`
	}
	if err := json.NewDecoder(getResp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Count != 1 {
		t.Fatalf("expected single entry after duplicate add, got %d", envelope.Data.Count)
	}
}

func TestMetricsExposed(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}
