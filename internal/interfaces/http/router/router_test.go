package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wss/backend/internal/application/transaction"
	"github.com/wss/backend/internal/domain/model"
	"github.com/wss/backend/internal/infrastructure/config"
	"github.com/wss/backend/internal/infrastructure/metrics"
	"github.com/wss/backend/internal/infrastructure/persistence"
	"github.com/wss/backend/internal/interfaces/http/handler"
	"go.uber.org/zap"
)

// testServer wires the full HTTP stack over in-memory stores
type testServer struct {
	engine    *gin.Engine
	stores    *persistence.Stores
	warehouse *model.Warehouse
	district  *model.District
	customer  *model.Customer
	product   *model.Product
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	stores := persistence.NewMemoryStores()
	registry := prometheus.NewRegistry()
	runner := persistence.NewTransactionRunner(5, time.Millisecond, zap.NewNop(),
		metrics.NewTransactionMetrics(registry))

	transactionHandler := handler.NewTransactionHandler(
		transaction.NewNewOrderService(stores, runner, config.StockConfig{ReorderThreshold: 10, ReplenishQuantity: 91}),
		transaction.NewPaymentService(stores, runner, config.CustomerConfig{DataMaxLength: 500}),
		transaction.NewOrderStatusService(stores, runner),
		transaction.NewDeliveryService(stores, runner),
		transaction.NewStockLevelService(stores, runner),
	)
	engine := New(Config{
		Logger:       zap.NewNop(),
		Transactions: transactionHandler,
		Registry:     registry,
	})

	s := &testServer{engine: engine, stores: stores}
	var err error
	s.warehouse, err = stores.Warehouses.Save(&model.Warehouse{
		Name:     "North Warehouse",
		SalesTax: decimal.RequireFromString("0.10"),
	})
	require.NoError(t, err)
	s.district, err = stores.Districts.Save(&model.District{
		WarehouseID:     s.warehouse.ID,
		Name:            "District One",
		SalesTax:        decimal.RequireFromString("0.05"),
		NextOrderNumber: 1,
	})
	require.NoError(t, err)
	s.customer, err = stores.Customers.Save(&model.Customer{
		DistrictID: s.district.ID,
		FirstName:  "Alice",
		LastName:   "Example",
		Email:      "alice@example.com",
		Credit:     model.CreditGood,
		Discount:   decimal.RequireFromString("0.10"),
	})
	require.NoError(t, err)
	s.product, err = stores.Products.Save(&model.Product{
		Name:  "widget",
		Price: decimal.RequireFromString("25.00"),
	})
	require.NoError(t, err)
	_, err = stores.Stocks.Save(&model.Stock{
		ProductID:   s.product.ID,
		WarehouseID: s.warehouse.ID,
		Quantity:    50,
	})
	require.NoError(t, err)
	return s
}

func (s *testServer) postJSON(t *testing.T, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)
	rec := s.get(t, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := s.postJSON(t, "/api/transactions/payments", gin.H{
		"warehouse_id": s.warehouse.ID,
		"district_id":  s.district.ID,
		"customer_id":  s.customer.ID,
		"amount":       10,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.get(t, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "wss_transactions_committed_total")
}

func TestNewOrderEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := s.postJSON(t, "/api/transactions/new-orders", gin.H{
		"warehouse_id": s.warehouse.ID,
		"district_id":  s.district.ID,
		"customer_id":  s.customer.ID,
		"items": []gin.H{
			{"product_id": s.product.ID, "supplying_warehouse_id": s.warehouse.ID, "quantity": 2},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	body := decodeResponse(t, rec)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]any)
	assert.NotEmpty(t, data["order_id"])
	// 2 x 25.00 less 10% discount plus 15% tax
	assert.Equal(t, "51.75", data["total_amount"])
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestNewOrderEndpointRejectsEmptyItems(t *testing.T) {
	s := newTestServer(t)

	rec := s.postJSON(t, "/api/transactions/new-orders", gin.H{
		"warehouse_id": s.warehouse.ID,
		"district_id":  s.district.ID,
		"customer_id":  s.customer.ID,
		"items":        []gin.H{},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeResponse(t, rec)
	assert.Equal(t, false, body["success"])
}

func TestNewOrderEndpointUnknownWarehouse(t *testing.T) {
	s := newTestServer(t)

	rec := s.postJSON(t, "/api/transactions/new-orders", gin.H{
		"warehouse_id": "no-such-warehouse",
		"district_id":  s.district.ID,
		"customer_id":  s.customer.ID,
		"items": []gin.H{
			{"product_id": s.product.ID, "supplying_warehouse_id": s.warehouse.ID, "quantity": 1},
		},
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	body := decodeResponse(t, rec)
	errInfo := body["error"].(map[string]any)
	assert.Equal(t, "NOT_FOUND", errInfo["code"])
	assert.NotEmpty(t, errInfo["request_id"])
}

func TestPaymentEndpointAmbiguousEmail(t *testing.T) {
	s := newTestServer(t)
	_, err := s.stores.Customers.Save(&model.Customer{
		DistrictID: s.district.ID,
		Email:      "alice@example.com",
		Credit:     model.CreditGood,
	})
	require.NoError(t, err)

	rec := s.postJSON(t, "/api/transactions/payments", gin.H{
		"warehouse_id":   s.warehouse.ID,
		"district_id":    s.district.ID,
		"customer_email": "alice@example.com",
		"amount":         10,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	body := decodeResponse(t, rec)
	errInfo := body["error"].(map[string]any)
	assert.Equal(t, "AMBIGUOUS_LOOKUP", errInfo["code"])
}

func TestOrderStatusEndpoint(t *testing.T) {
	s := newTestServer(t)
	order, err := s.stores.Orders.Save(&model.Order{
		DistrictID: s.district.ID,
		CustomerID: s.customer.ID,
		Number:     1,
		EntryDate:  time.Now(),
	})
	require.NoError(t, err)

	rec := s.get(t, fmt.Sprintf("/api/transactions/order-status?warehouse_id=%s&district_id=%s&customer_id=%s",
		s.warehouse.ID, s.district.ID, s.customer.ID))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeResponse(t, rec)
	data := body["data"].(map[string]any)
	assert.Equal(t, order.ID, data["order_id"])
}

func TestStockLevelEndpoint(t *testing.T) {
	s := newTestServer(t)
	order, err := s.stores.Orders.Save(&model.Order{
		DistrictID: s.district.ID,
		CustomerID: s.customer.ID,
		Number:     1,
		EntryDate:  time.Now(),
	})
	require.NoError(t, err)
	_, err = s.stores.OrderItems.Save(&model.OrderItem{
		OrderID:              order.ID,
		ProductID:            s.product.ID,
		SupplyingWarehouseID: s.warehouse.ID,
		Number:               1,
		Quantity:             1,
		Amount:               decimal.RequireFromString("25.00"),
	})
	require.NoError(t, err)

	rec := s.get(t, fmt.Sprintf("/api/transactions/stock-levels?warehouse_id=%s&district_id=%s&stock_threshold=60",
		s.warehouse.ID, s.district.ID))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeResponse(t, rec)
	data := body["data"].(map[string]any)
	assert.Equal(t, float64(1), data["low_stock_count"])
}

func TestDeliveryEndpoint(t *testing.T) {
	s := newTestServer(t)
	carrier, err := s.stores.Carriers.Save(&model.Carrier{Name: "Speedy"})
	require.NoError(t, err)
	order, err := s.stores.Orders.Save(&model.Order{
		DistrictID: s.district.ID,
		CustomerID: s.customer.ID,
		Number:     1,
		EntryDate:  time.Now(),
	})
	require.NoError(t, err)

	rec := s.postJSON(t, "/api/transactions/deliveries", gin.H{
		"warehouse_id": s.warehouse.ID,
		"carrier_id":   carrier.ID,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	delivered, err := s.stores.Orders.GetByID(order.ID)
	require.NoError(t, err)
	assert.True(t, delivered.Fulfilled)
	assert.Equal(t, carrier.ID, delivered.CarrierID)
}

func TestStockLevelEndpointRejectsMissingThreshold(t *testing.T) {
	s := newTestServer(t)

	rec := s.get(t, fmt.Sprintf("/api/transactions/stock-levels?warehouse_id=%s&district_id=%s",
		s.warehouse.ID, s.district.ID))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
