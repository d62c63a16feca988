package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stockbuddy07/styleswap/internal/api/handlers"
	appErrors "github.com/stockbuddy07/styleswap/internal/errors"
	"github.com/stockbuddy07/styleswap/internal/models"
	"github.com/stockbuddy07/styleswap/internal/services/mocks"
	"github.com/stockbuddy07/styleswap/internal/testutils"
	"github.com/stockbuddy07/styleswap/internal/utils/response"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func decodeProduct(t *testing.T, body []byte) models.Product {
	t.Helper()

	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	require.True(t, resp.Success)

	dataBytes, err := json.Marshal(resp.Data)
	require.NoError(t, err)

	var product models.Product
	require.NoError(t, json.Unmarshal(dataBytes, &product))

	return product
}

func TestCreateProductHandler(t *testing.T) {
	mockProductService := new(mocks.ProductService)
	productHandler := handlers.NewProductHandler(mockProductService)
	vendorID := uuid.New()

	vendorClaims := &models.Claims{UserID: vendorID, Role: models.RoleVendor, ShopName: "Velvet Loft"}

	t.Run("Success - Product Created", func(t *testing.T) {
		// Arrange
		createReq := models.CreateProductRequest{
			Name:            "Tweed Blazer",
			Category:        "outerwear",
			PricePerDay:     40,
			SecurityDeposit: 150,
			StockQuantity:   6,
			Sizes:           []string{"S", "M"},
		}
		expected := &models.Product{
			ID:                uuid.New(),
			VendorID:          vendorID,
			ShopName:          "Velvet Loft",
			Name:              "Tweed Blazer",
			StockQuantity:     6,
			AvailableQuantity: 6,
		}

		mockProductService.On("CreateProduct", mock.Anything, mock.AnythingOfType("*models.Claims"), mock.AnythingOfType("*models.CreateProductRequest")).
			Return(expected, nil).Once()

		bodyBytes, _ := json.Marshal(createReq)
		req := testutils.CreateTestRequestWithClaims(http.MethodPost, "/products", bytes.NewReader(bodyBytes), vendorClaims, nil)
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		// Act
		productHandler.CreateProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusCreated, rr.Code)

		product := decodeProduct(t, rr.Body.Bytes())
		assert.Equal(t, expected.ID, product.ID)
		assert.Equal(t, 6, product.AvailableQuantity)

		mockProductService.AssertExpectations(t)
	})

	t.Run("Failure - Missing Sizes", func(t *testing.T) {
		// Arrange
		bodyBytes, _ := json.Marshal(models.CreateProductRequest{
			Name:          "Tweed Blazer",
			Category:      "outerwear",
			PricePerDay:   40,
			StockQuantity: 6,
		})
		req := testutils.CreateTestRequestWithClaims(http.MethodPost, "/products", bytes.NewReader(bodyBytes), vendorClaims, nil)
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		// Act
		productHandler.CreateProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockProductService.AssertNotCalled(t, "CreateProduct")
	})

	t.Run("Failure - Customer Role", func(t *testing.T) {
		// Arrange
		mockProductService.On("CreateProduct", mock.Anything, mock.AnythingOfType("*models.Claims"), mock.AnythingOfType("*models.CreateProductRequest")).
			Return(nil, appErrors.ForbiddenError("Only vendors can create products")).Once()

		bodyBytes, _ := json.Marshal(models.CreateProductRequest{
			Name:          "Tweed Blazer",
			Category:      "outerwear",
			PricePerDay:   40,
			StockQuantity: 6,
			Sizes:         []string{"M"},
		})
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/products", bytes.NewReader(bodyBytes), uuid.New(), nil)
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		// Act
		productHandler.CreateProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusForbidden, rr.Code)
		mockProductService.AssertExpectations(t)
	})
}

func TestGetProductHandler(t *testing.T) {
	mockProductService := new(mocks.ProductService)
	productHandler := handlers.NewProductHandler(mockProductService)
	productID := uuid.New()

	t.Run("Success - Product Returned", func(t *testing.T) {
		// Arrange
		expected := &models.Product{ID: productID, Name: "Sequin Gown", PricePerDay: 50}

		mockProductService.On("GetProductByID", mock.Anything, productID).Return(expected, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/products/"+productID.String(), nil, uuid.New(),
			map[string]string{"id": productID.String()})
		rr := httptest.NewRecorder()

		// Act
		productHandler.GetProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		product := decodeProduct(t, rr.Body.Bytes())
		assert.Equal(t, "Sequin Gown", product.Name)

		mockProductService.AssertExpectations(t)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		mockProductService.On("GetProductByID", mock.Anything, productID).
			Return(nil, appErrors.NotFoundError("Product not found")).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/products/"+productID.String(), nil, uuid.New(),
			map[string]string{"id": productID.String()})
		rr := httptest.NewRecorder()

		// Act
		productHandler.GetProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, rr.Code)
		mockProductService.AssertExpectations(t)
	})
}

func TestRestockHandler(t *testing.T) {
	mockProductService := new(mocks.ProductService)
	productHandler := handlers.NewProductHandler(mockProductService)
	vendorID := uuid.New()
	productID := uuid.New()

	vendorClaims := &models.Claims{UserID: vendorID, Role: models.RoleVendor, ShopName: "Velvet Loft"}

	t.Run("Success - Stock Added", func(t *testing.T) {
		// Arrange
		expected := &models.Product{ID: productID, VendorID: vendorID, StockQuantity: 10, AvailableQuantity: 6}

		mockProductService.On("Restock", mock.Anything, mock.AnythingOfType("*models.Claims"), productID, mock.AnythingOfType("*models.RestockRequest")).
			Return(expected, nil).Once()

		bodyBytes, _ := json.Marshal(models.RestockRequest{Quantity: 4})
		req := testutils.CreateTestRequestWithClaims(http.MethodPatch, "/products/"+productID.String()+"/stock",
			bytes.NewReader(bodyBytes), vendorClaims, map[string]string{"id": productID.String()})
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		// Act
		productHandler.Restock().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		product := decodeProduct(t, rr.Body.Bytes())
		assert.Equal(t, 10, product.StockQuantity)
		assert.Equal(t, 6, product.AvailableQuantity)

		mockProductService.AssertExpectations(t)
	})

	t.Run("Failure - Negative Quantity", func(t *testing.T) {
		// Arrange
		bodyBytes, _ := json.Marshal(models.RestockRequest{Quantity: -3})
		req := testutils.CreateTestRequestWithClaims(http.MethodPatch, "/products/"+productID.String()+"/stock",
			bytes.NewReader(bodyBytes), vendorClaims, map[string]string{"id": productID.String()})
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		// Act
		productHandler.Restock().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockProductService.AssertNotCalled(t, "Restock")
	})
}
