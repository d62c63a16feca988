package service_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stockbuddy07/styleswap/internal/cache"
	cachemocks "github.com/stockbuddy07/styleswap/internal/cache/mocks"
	appErrors "github.com/stockbuddy07/styleswap/internal/errors"
	"github.com/stockbuddy07/styleswap/internal/models"
	"github.com/stockbuddy07/styleswap/internal/repositories/mocks"
	service "github.com/stockbuddy07/styleswap/internal/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupOrderServiceTest(t *testing.T) (service.OrderService, *mocks.OrderRepository, *mocks.ProductRepository, *cachemocks.Cache) {
	t.Helper()

	mockOrderRepo := mocks.NewOrderRepository(t)
	mockProductRepo := mocks.NewProductRepository(t)
	mockCache := cachemocks.NewCache(t)
	orderService := service.NewOrderService(mockOrderRepo, mockProductRepo, mockCache)

	return orderService, mockOrderRepo, mockProductRepo, mockCache
}

func activeOrder(customerID, vendorID uuid.UUID) *models.Order {
	return &models.Order{
		ID:         uuid.New(),
		CheckoutID: uuid.New(),
		CustomerID: customerID,
		VendorID:   vendorID,
		Items: []models.OrderItem{
			{ProductID: uuid.New(), ProductName: "Sequin Gown", Quantity: 2, RentalDays: 3},
		},
		TotalAmount:     350,
		RentalStartDate: time.Now().AddDate(0, 0, -3),
		RentalEndDate:   time.Now().AddDate(0, 0, 4),
		Status:          models.OrderStatusActive,
	}
}

func TestOrderService_UpdateStatus(t *testing.T) {
	customerID := uuid.New()
	vendorID := uuid.New()
	claims := &models.Claims{UserID: customerID, Role: models.RoleCustomer}

	t.Run("Allowed Transition", func(t *testing.T) {
		// Arrange
		orderService, mockOrderRepo, _, _ := setupOrderServiceTest(t)
		ctx := context.Background()
		order := activeOrder(customerID, vendorID)

		mockOrderRepo.On("GetOrderByID", ctx, order.ID).Return(order, nil).Once()
		mockOrderRepo.On("UpdateOrderStatus", ctx, order.ID, models.OrderStatusPendingReturn).Return(nil).Once()

		// Act
		updated, err := orderService.UpdateStatus(ctx, claims, order.ID, models.OrderStatusPendingReturn)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusPendingReturn, updated.Status)
	})

	t.Run("Terminal Status Rejects Further Moves", func(t *testing.T) {
		// Arrange
		orderService, mockOrderRepo, _, _ := setupOrderServiceTest(t)
		ctx := context.Background()
		order := activeOrder(customerID, vendorID)
		order.Status = models.OrderStatusReturned

		mockOrderRepo.On("GetOrderByID", ctx, order.ID).Return(order, nil).Once()

		// Act
		updated, err := orderService.UpdateStatus(ctx, claims, order.ID, models.OrderStatusActive)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, updated)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, 409, appErr.StatusCode)
		mockOrderRepo.AssertNotCalled(t, "UpdateOrderStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Unknown Status Value", func(t *testing.T) {
		// Arrange
		orderService, _, _, _ := setupOrderServiceTest(t)
		ctx := context.Background()

		// Act
		updated, err := orderService.UpdateStatus(ctx, claims, uuid.New(), models.OrderStatus("Shipped"))

		// Assert
		assert.Error(t, err)
		assert.Nil(t, updated)
	})

	t.Run("Return Releases Stock", func(t *testing.T) {
		// Arrange
		orderService, mockOrderRepo, mockProductRepo, mockCache := setupOrderServiceTest(t)
		ctx := context.Background()
		order := activeOrder(customerID, vendorID)
		productID := order.Items[0].ProductID

		mockOrderRepo.On("GetOrderByID", ctx, order.ID).Return(order, nil).Once()
		mockOrderRepo.On("UpdateOrderStatus", ctx, order.ID, models.OrderStatusReturned).Return(nil).Once()
		mockProductRepo.On("ReleaseStock", ctx, productID, 2).Return(5, nil).Once()
		mockCache.On("Delete", ctx, cache.Key(cache.ProductKeyPrefix, productID.String())).Return(nil).Once()

		// Act
		updated, err := orderService.UpdateStatus(ctx, claims, order.ID, models.OrderStatusReturned)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusReturned, updated.Status)
	})

	t.Run("Cancel Releases Stock", func(t *testing.T) {
		// Arrange
		orderService, mockOrderRepo, mockProductRepo, mockCache := setupOrderServiceTest(t)
		ctx := context.Background()
		order := activeOrder(customerID, vendorID)
		productID := order.Items[0].ProductID

		mockOrderRepo.On("GetOrderByID", ctx, order.ID).Return(order, nil).Once()
		mockOrderRepo.On("UpdateOrderStatus", ctx, order.ID, models.OrderStatusCancelled).Return(nil).Once()
		mockProductRepo.On("ReleaseStock", ctx, productID, 2).Return(5, nil).Once()
		mockCache.On("Delete", ctx, cache.Key(cache.ProductKeyPrefix, productID.String())).Return(nil).Once()

		// Act
		_, err := orderService.UpdateStatus(ctx, claims, order.ID, models.OrderStatusCancelled)

		// Assert
		require.NoError(t, err)
	})

	t.Run("Stranger Cannot Touch The Order", func(t *testing.T) {
		// Arrange
		orderService, mockOrderRepo, _, _ := setupOrderServiceTest(t)
		ctx := context.Background()
		order := activeOrder(customerID, vendorID)
		stranger := &models.Claims{UserID: uuid.New(), Role: models.RoleCustomer}

		mockOrderRepo.On("GetOrderByID", ctx, order.ID).Return(order, nil).Once()

		// Act
		updated, err := orderService.UpdateStatus(ctx, stranger, order.ID, models.OrderStatusCancelled)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, updated)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, 403, appErr.StatusCode)
	})
}

func TestOrderService_SubmitFeedback(t *testing.T) {
	customerID := uuid.New()
	vendorID := uuid.New()
	claims := &models.Claims{UserID: customerID, Role: models.RoleCustomer}

	t.Run("Second Submission Overwrites The First", func(t *testing.T) {
		// Arrange
		orderService, mockOrderRepo, _, _ := setupOrderServiceTest(t)
		ctx := context.Background()
		order := activeOrder(customerID, vendorID)
		order.Feedback = &models.Feedback{Rating: 2, Review: "meh", ItemName: "Sequin Gown", SubmittedAt: time.Now().Add(-time.Hour)}

		mockOrderRepo.On("GetOrderByID", ctx, order.ID).Return(order, nil).Once()
		mockOrderRepo.On("UpdateFeedback", ctx, order.ID, mock.AnythingOfType("*models.Feedback")).Return(nil).Once()

		// Act
		updated, err := orderService.SubmitFeedback(ctx, claims, order.ID, &models.SubmitFeedbackRequest{
			Rating:   5,
			Review:   "Gorgeous fit after all",
			ItemName: "Sequin Gown",
		})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 5, updated.Feedback.Rating)
		assert.Equal(t, "Gorgeous fit after all", updated.Feedback.Review)
	})

	t.Run("Vendor Cannot Submit Feedback", func(t *testing.T) {
		// Arrange
		orderService, mockOrderRepo, _, _ := setupOrderServiceTest(t)
		ctx := context.Background()
		order := activeOrder(customerID, vendorID)
		vendorClaims := &models.Claims{UserID: vendorID, Role: models.RoleVendor}

		mockOrderRepo.On("GetOrderByID", ctx, order.ID).Return(order, nil).Once()

		// Act
		updated, err := orderService.SubmitFeedback(ctx, vendorClaims, order.ID, &models.SubmitFeedbackRequest{
			Rating:   1,
			ItemName: "Sequin Gown",
		})

		// Assert
		assert.Error(t, err)
		assert.Nil(t, updated)
	})

	t.Run("Review Markup Is Stripped", func(t *testing.T) {
		// Arrange
		orderService, mockOrderRepo, _, _ := setupOrderServiceTest(t)
		ctx := context.Background()
		order := activeOrder(customerID, vendorID)

		mockOrderRepo.On("GetOrderByID", ctx, order.ID).Return(order, nil).Once()
		mockOrderRepo.On("UpdateFeedback", ctx, order.ID, mock.AnythingOfType("*models.Feedback")).Return(nil).Once()

		// Act
		updated, err := orderService.SubmitFeedback(ctx, claims, order.ID, &models.SubmitFeedbackRequest{
			Rating:   4,
			Review:   `<script>alert("x")</script>Lovely`,
			ItemName: "Sequin Gown",
		})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Lovely", updated.Feedback.Review)
	})
}

func TestOrderService_Issues(t *testing.T) {
	customerID := uuid.New()
	vendorID := uuid.New()
	claims := &models.Claims{UserID: customerID, Role: models.RoleCustomer}

	t.Run("Issues Accumulate", func(t *testing.T) {
		// Arrange
		orderService, mockOrderRepo, _, _ := setupOrderServiceTest(t)
		ctx := context.Background()
		order := activeOrder(customerID, vendorID)
		order.Issues = []models.Issue{
			{IssueID: uuid.New(), Type: "damage", Status: models.IssueStatusOpen},
		}

		mockOrderRepo.On("GetOrderByID", ctx, order.ID).Return(order, nil).Once()
		mockOrderRepo.On("UpdateIssues", ctx, order.ID, mock.AnythingOfType("[]models.Issue")).Return(nil).Once()

		// Act
		updated, err := orderService.RaiseIssue(ctx, claims, order.ID, &models.RaiseIssueRequest{
			Type:        "late_delivery",
			Description: "Arrived two days into the rental window",
			ItemName:    "Sequin Gown",
		})

		// Assert
		require.NoError(t, err)
		require.Len(t, updated.Issues, 2)
		assert.Equal(t, models.IssueStatusOpen, updated.Issues[1].Status)
		assert.NotEqual(t, uuid.Nil, updated.Issues[1].IssueID)
	})

	t.Run("Only The Customer May Raise", func(t *testing.T) {
		// Arrange
		orderService, mockOrderRepo, _, _ := setupOrderServiceTest(t)
		ctx := context.Background()
		order := activeOrder(customerID, vendorID)
		vendorClaims := &models.Claims{UserID: vendorID, Role: models.RoleVendor}

		mockOrderRepo.On("GetOrderByID", ctx, order.ID).Return(order, nil).Once()

		// Act
		updated, err := orderService.RaiseIssue(ctx, vendorClaims, order.ID, &models.RaiseIssueRequest{
			Type:        "other",
			Description: "Not my call to make",
			ItemName:    "Sequin Gown",
		})

		// Assert
		assert.Error(t, err)
		assert.Nil(t, updated)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, 403, appErr.StatusCode)
	})

	t.Run("Admin Resolves By Issue ID", func(t *testing.T) {
		// Arrange
		orderService, mockOrderRepo, _, _ := setupOrderServiceTest(t)
		ctx := context.Background()
		order := activeOrder(customerID, vendorID)
		issueID := uuid.New()
		order.Issues = []models.Issue{
			{IssueID: issueID, Type: "damage", Status: models.IssueStatusOpen},
		}
		adminClaims := &models.Claims{UserID: uuid.New(), Role: models.RoleAdmin}

		mockOrderRepo.On("GetOrderByID", ctx, order.ID).Return(order, nil).Once()
		mockOrderRepo.On("UpdateIssues", ctx, order.ID, mock.AnythingOfType("[]models.Issue")).Return(nil).Once()

		// Act
		updated, err := orderService.ResolveIssue(ctx, adminClaims, order.ID, issueID, &models.ResolveIssueRequest{
			Status:        models.IssueStatusResolved,
			AdminResponse: "Deposit partially withheld",
		})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, models.IssueStatusResolved, updated.Issues[0].Status)
		assert.Equal(t, "Deposit partially withheld", updated.Issues[0].AdminResponse)
	})

	t.Run("Non-Admin Cannot Resolve", func(t *testing.T) {
		// Arrange
		orderService, mockOrderRepo, _, _ := setupOrderServiceTest(t)
		ctx := context.Background()

		// Act
		updated, err := orderService.ResolveIssue(ctx, claims, uuid.New(), uuid.New(), &models.ResolveIssueRequest{
			Status:        models.IssueStatusResolved,
			AdminResponse: "n/a",
		})

		// Assert
		assert.Error(t, err)
		assert.Nil(t, updated)
		mockOrderRepo.AssertNotCalled(t, "GetOrderByID", mock.Anything, mock.Anything)
	})

	t.Run("Unknown Issue ID", func(t *testing.T) {
		// Arrange
		orderService, mockOrderRepo, _, _ := setupOrderServiceTest(t)
		ctx := context.Background()
		order := activeOrder(customerID, vendorID)
		order.Issues = []models.Issue{{IssueID: uuid.New(), Status: models.IssueStatusOpen}}
		adminClaims := &models.Claims{UserID: uuid.New(), Role: models.RoleAdmin}

		mockOrderRepo.On("GetOrderByID", ctx, order.ID).Return(order, nil).Once()

		// Act
		updated, err := orderService.ResolveIssue(ctx, adminClaims, order.ID, uuid.New(), &models.ResolveIssueRequest{
			Status:        models.IssueStatusRejected,
			AdminResponse: "No matching report",
		})

		// Assert
		assert.Error(t, err)
		assert.Nil(t, updated)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, 404, appErr.StatusCode)
	})
}

func TestOrderService_ListOrders(t *testing.T) {
	orderService, mockOrderRepo, _, _ := setupOrderServiceTest(t)
	ctx := context.Background()
	customerID := uuid.New()
	vendorID := uuid.New()

	t.Run("Customer Sees Own Orders", func(t *testing.T) {
		// Arrange
		claims := &models.Claims{UserID: customerID, Role: models.RoleCustomer}
		mockOrderRepo.On("ListOrdersByCustomer", ctx, customerID, 1, 10).
			Return([]models.Order{{CustomerID: customerID}}, 1, nil).Once()

		// Act
		orders, total, err := orderService.ListOrders(ctx, claims, 1, 10)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Len(t, orders, 1)
	})

	t.Run("Vendor Sees Shop Orders", func(t *testing.T) {
		// Arrange
		claims := &models.Claims{UserID: vendorID, Role: models.RoleVendor}
		mockOrderRepo.On("ListOrdersByVendor", ctx, vendorID, 1, 10).
			Return([]models.Order{{VendorID: vendorID}}, 1, nil).Once()

		// Act
		_, total, err := orderService.ListOrders(ctx, claims, 1, 10)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 1, total)
	})

	t.Run("Admin Sees Everything", func(t *testing.T) {
		// Arrange
		claims := &models.Claims{UserID: uuid.New(), Role: models.RoleAdmin}
		mockOrderRepo.On("ListOrders", ctx, 1, 10).
			Return([]models.Order{{}, {}}, 2, nil).Once()

		// Act
		orders, total, err := orderService.ListOrders(ctx, claims, 1, 10)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		assert.Len(t, orders, 2)
	})
}

func TestOrderService_GetOrder(t *testing.T) {
	orderService, mockOrderRepo, _, _ := setupOrderServiceTest(t)
	ctx := context.Background()
	customerID := uuid.New()
	vendorID := uuid.New()

	t.Run("Vendor Of The Order Has Access", func(t *testing.T) {
		// Arrange
		order := activeOrder(customerID, vendorID)
		claims := &models.Claims{UserID: vendorID, Role: models.RoleVendor}

		mockOrderRepo.On("GetOrderByID", ctx, order.ID).Return(order, nil).Once()

		// Act
		got, err := orderService.GetOrder(ctx, claims, order.ID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, order.ID, got.ID)
	})

	t.Run("Missing Order", func(t *testing.T) {
		// Arrange
		id := uuid.New()
		claims := &models.Claims{UserID: customerID, Role: models.RoleCustomer}

		mockOrderRepo.On("GetOrderByID", ctx, id).Return(nil, sql.ErrNoRows).Once()

		// Act
		got, err := orderService.GetOrder(ctx, claims, id)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, got)
	})
}

func TestOrderTransitionTable(t *testing.T) {
	cases := []struct {
		from    models.OrderStatus
		to      models.OrderStatus
		allowed bool
	}{
		{models.OrderStatusActive, models.OrderStatusPendingReturn, true},
		{models.OrderStatusActive, models.OrderStatusReturned, true},
		{models.OrderStatusActive, models.OrderStatusOverdue, true},
		{models.OrderStatusActive, models.OrderStatusCancelled, true},
		{models.OrderStatusPendingReturn, models.OrderStatusReturned, true},
		{models.OrderStatusPendingReturn, models.OrderStatusActive, false},
		{models.OrderStatusPendingReturn, models.OrderStatusCancelled, false},
		{models.OrderStatusOverdue, models.OrderStatusReturned, true},
		{models.OrderStatusReturned, models.OrderStatusActive, false},
		{models.OrderStatusReturned, models.OrderStatusOverdue, false},
		{models.OrderStatusCancelled, models.OrderStatusActive, false},
		{models.OrderStatusCancelled, models.OrderStatusReturned, false},
	}

	for _, tc := range cases {
		assert.Equalf(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}
