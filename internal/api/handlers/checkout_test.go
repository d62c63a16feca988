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

func TestCheckoutHandler(t *testing.T) {
	mockCheckoutService := new(mocks.CheckoutService)
	checkoutHandler := handlers.NewCheckoutHandler(mockCheckoutService)
	userID := uuid.New()
	checkoutID := uuid.New()

	t.Run("Success - Orders Placed", func(t *testing.T) {
		// Arrange
		expected := &models.CheckoutResponse{
			CheckoutID: checkoutID,
			Orders: []models.Order{
				{ID: uuid.New(), CheckoutID: checkoutID, Status: models.OrderStatusActive, TotalAmount: 350},
				{ID: uuid.New(), CheckoutID: checkoutID, Status: models.OrderStatusActive, TotalAmount: 1000},
			},
		}

		mockCheckoutService.On("Checkout", mock.Anything, mock.AnythingOfType("*models.Claims"), mock.AnythingOfType("*models.CheckoutRequest")).
			Return(expected, nil).Once()

		bodyBytes, _ := json.Marshal(models.CheckoutRequest{CheckoutID: checkoutID, PaymentMethod: "card"})
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/checkout", bytes.NewReader(bodyBytes), userID, nil)
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		// Act
		checkoutHandler.Checkout().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusCreated, rr.Code)

		var resp response.APIResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		require.True(t, resp.Success)

		dataBytes, err := json.Marshal(resp.Data)
		require.NoError(t, err)

		var checkoutResp models.CheckoutResponse
		require.NoError(t, json.Unmarshal(dataBytes, &checkoutResp))
		assert.Equal(t, checkoutID, checkoutResp.CheckoutID)
		assert.Len(t, checkoutResp.Orders, 2)

		mockCheckoutService.AssertExpectations(t)
	})

	t.Run("Failure - Unauthorized", func(t *testing.T) {
		// Arrange
		bodyBytes, _ := json.Marshal(models.CheckoutRequest{CheckoutID: checkoutID, PaymentMethod: "card"})
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/checkout", bytes.NewReader(bodyBytes), nil)
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		// Act
		checkoutHandler.Checkout().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		mockCheckoutService.AssertNotCalled(t, "Checkout")
	})

	t.Run("Failure - Unknown Payment Method", func(t *testing.T) {
		// Arrange
		bodyBytes, _ := json.Marshal(models.CheckoutRequest{CheckoutID: checkoutID, PaymentMethod: "barter"})
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/checkout", bytes.NewReader(bodyBytes), userID, nil)
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		// Act
		checkoutHandler.Checkout().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockCheckoutService.AssertNotCalled(t, "Checkout")
	})

	t.Run("Failure - Insufficient Stock", func(t *testing.T) {
		// Arrange
		mockCheckoutService.On("Checkout", mock.Anything, mock.AnythingOfType("*models.Claims"), mock.AnythingOfType("*models.CheckoutRequest")).
			Return(nil, appErrors.ConflictError("Some items are no longer available in the requested quantity")).Once()

		bodyBytes, _ := json.Marshal(models.CheckoutRequest{CheckoutID: checkoutID, PaymentMethod: "upi"})
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/checkout", bytes.NewReader(bodyBytes), userID, nil)
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		// Act
		checkoutHandler.Checkout().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusConflict, rr.Code)

		var resp response.APIResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		require.NotNil(t, resp.Error)

		mockCheckoutService.AssertExpectations(t)
	})

	t.Run("Failure - Empty Cart", func(t *testing.T) {
		// Arrange
		mockCheckoutService.On("Checkout", mock.Anything, mock.AnythingOfType("*models.Claims"), mock.AnythingOfType("*models.CheckoutRequest")).
			Return(nil, appErrors.BadRequestError("Cart is empty")).Once()

		bodyBytes, _ := json.Marshal(models.CheckoutRequest{CheckoutID: checkoutID, PaymentMethod: "cod"})
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/checkout", bytes.NewReader(bodyBytes), userID, nil)
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		// Act
		checkoutHandler.Checkout().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockCheckoutService.AssertExpectations(t)
	})
}
