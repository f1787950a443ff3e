package routes

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/shopstate/api/controllers"
	"github.com/angelmondragon/shopstate/internal/catalog"
	"github.com/angelmondragon/shopstate/internal/catalog/mockgateway"
	"github.com/angelmondragon/shopstate/internal/controller"
	"github.com/angelmondragon/shopstate/internal/store"
	"github.com/angelmondragon/shopstate/pkg/config"
	"github.com/angelmondragon/shopstate/pkg/logger"
	"github.com/angelmondragon/shopstate/pkg/metrics"
	"github.com/angelmondragon/shopstate/pkg/timing"
)

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error {
	return s.err
}

type harness struct {
	router http.Handler
	ctrl   *controller.Controller
	store  *store.Store
	clock  *timing.FakeClock
	mock   *mockgateway.Gateway
}

func testConfig() *config.Config {
	return &config.Config{
		App:     config.AppConfig{Env: "dev"},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
}

func newHarness(t *testing.T, ready map[string]controllers.Pinger) *harness {
	t.Helper()
	reg := prometheus.NewRegistry()
	logg := logger.Nop()
	mock := mockgateway.New(mockgateway.Latencies{})
	st := store.New(store.WithLogger(logg), store.WithMetrics(metrics.NewStoreMetrics(reg)))
	clock := timing.NewFakeClock(time.Unix(0, 0))

	ctrl, err := controller.New(controller.Params{
		Store:   st,
		Gateway: catalog.NewInstrumentedGateway(mock, logg, metrics.NewGatewayMetrics(reg)),
		Logger:  logg,
		Clock:   clock,
	})
	if err != nil {
		t.Fatalf("controller: %v", err)
	}
	t.Cleanup(ctrl.Close)

	return &harness{
		router: NewRouter(Params{
			Config:   testConfig(),
			Logger:   logg,
			Engine:   ctrl,
			State:    st,
			Gatherer: reg,
			Ready:    ready,
		}),
		ctrl:  ctrl,
		store: st,
		clock: clock,
		mock:  mock,
	}
}

func (h *harness) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp := httptest.NewRecorder()
	h.router.ServeHTTP(resp, req)
	return resp
}

func decodeData(t *testing.T, resp *httptest.ResponseRecorder, dest any) {
	t.Helper()
	envelope := struct {
		Data json.RawMessage `json:"data"`
	}{}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if err := json.Unmarshal(envelope.Data, dest); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

func decodeErrorCode(t *testing.T, resp *httptest.ResponseRecorder) string {
	t.Helper()
	envelope := struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}{}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	return envelope.Error.Code
}

func TestHealthEndpoints(t *testing.T) {
	h := newHarness(t, map[string]controllers.Pinger{"db": stubPinger{}})

	if resp := h.do(t, http.MethodGet, "/health/live", ""); resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for live got %d", resp.Code)
	}
	resp := h.do(t, http.MethodGet, "/health/ready", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for ready got %d", resp.Code)
	}
	if got := resp.Header().Get("X-Shopstate-Env"); got != "dev" {
		t.Fatalf("expected env header dev got %q", got)
	}
}

func TestReadyReportsFailingDependency(t *testing.T) {
	h := newHarness(t, map[string]controllers.Pinger{"redis": stubPinger{err: errors.New("connection refused")}})

	resp := h.do(t, http.MethodGet, "/health/ready", "")
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
	if code := decodeErrorCode(t, resp); code != "DEPENDENCY_ERROR" {
		t.Fatalf("unexpected code %s", code)
	}
}

func TestMetricsEndpointExposesGatewayMetrics(t *testing.T) {
	h := newHarness(t, nil)
	if resp := h.do(t, http.MethodPost, "/api/v1/catalog/load", ""); resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for load got %d", resp.Code)
	}

	resp := h.do(t, http.MethodGet, "/metrics", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for metrics got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "fetch_all_products") {
		t.Fatalf("expected gateway operation label in metrics output")
	}
}

func TestLoadCatalogAndHome(t *testing.T) {
	h := newHarness(t, nil)

	if resp := h.do(t, http.MethodPost, "/api/v1/catalog/load", ""); resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for load got %d", resp.Code)
	}

	resp := h.do(t, http.MethodGet, "/api/v1/home", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for home got %d", resp.Code)
	}
	var home struct {
		Banners   []catalog.Banner `json:"banners"`
		Carousels []struct {
			Title    string            `json:"title"`
			Products []catalog.Product `json:"products"`
		} `json:"carousels"`
	}
	decodeData(t, resp, &home)
	if len(home.Banners) != 3 {
		t.Fatalf("expected 3 banners got %d", len(home.Banners))
	}
	if len(home.Carousels) == 0 || home.Carousels[len(home.Carousels)-1].Title != "All Products" {
		t.Fatalf("expected All Products carousel last, got %+v", home.Carousels)
	}
}

func TestSearchIsDebouncedBehindHTTP(t *testing.T) {
	h := newHarness(t, nil)

	for _, text := range []string{"u", "us", "usb"} {
		if resp := h.do(t, http.MethodPost, "/api/v1/search", `{"query":"`+text+`"}`); resp.Code != http.StatusAccepted {
			t.Fatalf("expected 202 for search got %d", resp.Code)
		}
	}
	if h.store.Snapshot().Products.Status != store.StatusIdle {
		t.Fatalf("search ran before the debounce window closed")
	}

	h.clock.Advance(300 * time.Millisecond)
	h.ctrl.Wait()

	products := h.store.Snapshot().Products.Value
	if len(products) != 1 || products[0].ID != "6" {
		t.Fatalf("expected only the USB-C hub, got %+v", products)
	}
}

func TestSelectUnknownProductIsNotFound(t *testing.T) {
	h := newHarness(t, nil)

	resp := h.do(t, http.MethodPost, "/api/v1/products/nope/select", "")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
	if !h.store.Snapshot().Selected.NotFound() {
		t.Fatalf("expected selected slice to report not found")
	}
}

func TestCartAndCheckoutFlow(t *testing.T) {
	h := newHarness(t, nil)

	if resp := h.do(t, http.MethodPost, "/api/v1/cart/items", `{"product_id":"3"}`); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unloaded product got %d", resp.Code)
	}
	if resp := h.do(t, http.MethodPost, "/api/v1/products/3/select", ""); resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for select got %d", resp.Code)
	}
	if resp := h.do(t, http.MethodPost, "/api/v1/cart/items", `{"product_id":"3"}`); resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for add got %d", resp.Code)
	}

	resp := h.do(t, http.MethodPost, "/api/v1/cart/items/3/increment", "")
	var adjusted struct {
		Applied  bool `json:"applied"`
		Quantity int  `json:"quantity"`
	}
	decodeData(t, resp, &adjusted)
	if !adjusted.Applied || adjusted.Quantity != 2 {
		t.Fatalf("expected applied increment to 2, got %+v", adjusted)
	}

	resp = h.do(t, http.MethodPost, "/api/v1/cart/items/3/increment", "")
	decodeData(t, resp, &adjusted)
	if adjusted.Applied || adjusted.Quantity != 2 {
		t.Fatalf("expected throttled increment, got %+v", adjusted)
	}

	if resp := h.do(t, http.MethodPost, "/api/v1/checkout", ""); resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without payment method got %d", resp.Code)
	}

	if resp := h.do(t, http.MethodPost, "/api/v1/checkout/payment-methods/load", ""); resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for payment methods got %d", resp.Code)
	}
	if resp := h.do(t, http.MethodPut, "/api/v1/checkout/payment-method", `{"payment_method_id":"9"}`); resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown method got %d", resp.Code)
	}
	if resp := h.do(t, http.MethodPut, "/api/v1/checkout/payment-method", `{"payment_method_id":"2"}`); resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for choose got %d", resp.Code)
	}

	resp = h.do(t, http.MethodPost, "/api/v1/checkout", "")
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for checkout got %d", resp.Code)
	}
	var confirmation catalog.OrderConfirmation
	decodeData(t, resp, &confirmation)
	if !strings.HasPrefix(confirmation.OrderID, "ORD-") {
		t.Fatalf("unexpected order id %q", confirmation.OrderID)
	}

	resp = h.do(t, http.MethodGet, "/api/v1/cart", "")
	var cart struct {
		Lines         []store.CartLine `json:"lines"`
		CartItemCount int              `json:"cart_item_count"`
	}
	decodeData(t, resp, &cart)
	if len(cart.Lines) != 0 || cart.CartItemCount != 0 {
		t.Fatalf("expected empty cart after order, got %+v", cart)
	}

	orders := h.mock.Orders()
	if len(orders) != 1 || orders[0].PaymentMethodID != "2" {
		t.Fatalf("unexpected orders %+v", orders)
	}
}

func TestRemoveAbsentItemIsNotAnError(t *testing.T) {
	h := newHarness(t, nil)
	if resp := h.do(t, http.MethodDelete, "/api/v1/cart/items/42", ""); resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestStateEndpointIncludesSummary(t *testing.T) {
	h := newHarness(t, nil)
	resp := h.do(t, http.MethodGet, "/api/v1/state", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var state map[string]json.RawMessage
	decodeData(t, resp, &state)
	for _, key := range []string{"products", "banners", "cart", "summary", "version"} {
		if _, ok := state[key]; !ok {
			t.Fatalf("expected %q in state payload", key)
		}
	}
}

func TestSearchRejectsUnknownFields(t *testing.T) {
	h := newHarness(t, nil)
	resp := h.do(t, http.MethodPost, "/api/v1/search", `{"q":"mouse"}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestOpenCartReopensThrottleWindow(t *testing.T) {
	h := newHarness(t, nil)
	if resp := h.do(t, http.MethodPost, "/api/v1/products/3/select", ""); resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for select got %d", resp.Code)
	}
	if resp := h.do(t, http.MethodPost, "/api/v1/cart/items", `{"product_id":"3"}`); resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for add got %d", resp.Code)
	}

	var adjusted struct {
		Applied  bool `json:"applied"`
		Quantity int  `json:"quantity"`
	}
	decodeData(t, h.do(t, http.MethodPost, "/api/v1/cart/items/3/increment", ""), &adjusted)
	decodeData(t, h.do(t, http.MethodPost, "/api/v1/cart/items/3/increment", ""), &adjusted)
	if adjusted.Applied {
		t.Fatalf("expected second increment to be throttled")
	}

	if resp := h.do(t, http.MethodPost, "/api/v1/cart/open", ""); resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for open got %d", resp.Code)
	}
	decodeData(t, h.do(t, http.MethodPost, "/api/v1/cart/items/3/increment", ""), &adjusted)
	if !adjusted.Applied || adjusted.Quantity != 3 {
		t.Fatalf("expected applied increment to 3 after opening the cart, got %+v", adjusted)
	}
}
