package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	inventoryapp "github.com/opsuite/backend/internal/application/inventory"
	"github.com/opsuite/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupInventoryHandler(
	productRepo *MockProductRepository,
	lotRepo *MockLotRepository,
	movementRepo *MockMovementRepository,
) *InventoryHandler {
	scope := inventoryapp.NewNoOpTransactionScope(lotRepo, movementRepo)
	service := inventoryapp.NewInventoryService(productRepo, lotRepo, movementRepo, scope)
	return NewInventoryHandler(service)
}

func TestInventoryHandler_ReceiveStock_NewLot(t *testing.T) {
	productRepo := new(MockProductRepository)
	lotRepo := new(MockLotRepository)
	movementRepo := new(MockMovementRepository)
	handler := setupInventoryHandler(productRepo, lotRepo, movementRepo)

	product := stockedProduct()
	productRepo.On("FindByIDForTenant", mock.Anything, testTenantID, product.ID).Return(product, nil)
	lotRepo.On("Save", mock.Anything, mock.AnythingOfType("*inventory.Lot")).Return(nil)
	movementRepo.On("Append", mock.Anything, mock.AnythingOfType("*inventory.Movement")).Return(nil)
	movementRepo.On("SumByProduct", mock.Anything, testTenantID, product.ID).Return(decimal.NewFromInt(10), nil)

	router := setupTestRouter()
	router.POST("/inventory/receipts", handler.ReceiveStock)

	body, _ := json.Marshal(inventoryapp.ReceiveStockRequest{
		ProductID: product.ID,
		Quantity:  decimal.NewFromInt(10),
		LotCode:   "L-2506",
	})
	req := httptest.NewRequest(http.MethodPost, "/inventory/receipts", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	resp := decodeEnvelope(t, w)
	assert.True(t, resp.Success)

	var result inventoryapp.ReceiveStockResponse
	decodeData(t, resp, &result)
	assert.NotNil(t, result.LotID)
	assert.True(t, result.Balance.Equal(decimal.NewFromInt(10)))
	movementRepo.AssertExpectations(t)
}

func TestInventoryHandler_ProductBalance(t *testing.T) {
	productRepo := new(MockProductRepository)
	movementRepo := new(MockMovementRepository)
	handler := setupInventoryHandler(productRepo, new(MockLotRepository), movementRepo)

	product := stockedProduct()
	productRepo.On("FindByIDForTenant", mock.Anything, testTenantID, product.ID).Return(product, nil)
	movementRepo.On("SumByProduct", mock.Anything, testTenantID, product.ID).Return(decimal.NewFromInt(7), nil)

	router := setupTestRouter()
	router.GET("/inventory/products/:id/balance", handler.ProductBalance)

	req := httptest.NewRequest(http.MethodGet, "/inventory/products/"+product.ID.String()+"/balance", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeEnvelope(t, w)

	var result inventoryapp.ProductBalanceResponse
	decodeData(t, resp, &result)
	assert.Equal(t, product.ID, result.ProductID)
	assert.True(t, result.Balance.Equal(decimal.NewFromInt(7)))
}

func TestInventoryHandler_ExpiringLots_BadWindow(t *testing.T) {
	handler := setupInventoryHandler(new(MockProductRepository), new(MockLotRepository), new(MockMovementRepository))

	router := setupTestRouter()
	router.GET("/inventory/expiring", handler.ExpiringLots)

	req := httptest.NewRequest(http.MethodGet, "/inventory/expiring?within_days=soon", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInventoryHandler_ListMovements_ByProduct(t *testing.T) {
	movementRepo := new(MockMovementRepository)
	handler := setupInventoryHandler(new(MockProductRepository), new(MockLotRepository), movementRepo)

	productID := uuid.New()
	movementRepo.On("ListByProduct", mock.Anything, testTenantID, productID, mock.Anything).
		Return([]inventory.Movement{}, int64(0), nil)

	router := setupTestRouter()
	router.GET("/inventory/movements", handler.ListMovements)

	req := httptest.NewRequest(http.MethodGet, "/inventory/movements?product_id="+productID.String(), nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeEnvelope(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(0), resp.Meta.Total)
	movementRepo.AssertExpectations(t)
}

func TestInventoryHandler_ListMovements_BadProductID(t *testing.T) {
	handler := setupInventoryHandler(new(MockProductRepository), new(MockLotRepository), new(MockMovementRepository))

	router := setupTestRouter()
	router.GET("/inventory/movements", handler.ListMovements)

	req := httptest.NewRequest(http.MethodGet, "/inventory/movements?product_id=nope", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
