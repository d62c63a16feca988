package service_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	appErrors "github.com/stockbuddy07/styleswap/internal/errors"
	"github.com/stockbuddy07/styleswap/internal/models"
	"github.com/stockbuddy07/styleswap/internal/repositories/mocks"
	service "github.com/stockbuddy07/styleswap/internal/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupCartServiceTest(t *testing.T) (service.CartService, *mocks.CartRepository, *mocks.ProductRepository) {
	t.Helper()

	mockCartRepo := mocks.NewCartRepository(t)
	mockProductRepo := mocks.NewProductRepository(t)
	cartService := service.NewCartService(mockCartRepo, mockProductRepo)

	return cartService, mockCartRepo, mockProductRepo
}

func testProduct(vendorID uuid.UUID) *models.Product {
	return &models.Product{
		ID:                uuid.New(),
		VendorID:          vendorID,
		ShopName:          "Velvet Archive",
		Name:              "Sequin Gown",
		Category:          "dresses",
		PricePerDay:       50,
		SecurityDeposit:   200,
		StockQuantity:     5,
		AvailableQuantity: 5,
		Images:            []string{"gown.jpg"},
	}
}

func TestCartService_GetCart(t *testing.T) {
	cartService, mockCartRepo, _ := setupCartServiceTest(t)
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Returns Empty Cart When None Persisted", func(t *testing.T) {
		// Arrange
		mockCartRepo.On("GetCartByUserID", ctx, userID).Return(nil, sql.ErrNoRows).Once()

		// Act
		cart, err := cartService.GetCart(ctx, userID)

		// Assert
		assert.NoError(t, err)
		assert.NotNil(t, cart)
		assert.Equal(t, userID, cart.UserID)
		assert.Empty(t, cart.Items)
	})

	t.Run("Propagates Storage Failure", func(t *testing.T) {
		// Arrange
		mockCartRepo.On("GetCartByUserID", ctx, userID).Return(nil, sql.ErrConnDone).Once()

		// Act
		cart, err := cartService.GetCart(ctx, userID)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, cart)
	})
}

func TestCartService_AddItem(t *testing.T) {
	cartService, mockCartRepo, mockProductRepo := setupCartServiceTest(t)
	ctx := context.Background()
	userID := uuid.New()
	vendorID := uuid.New()

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 3)

	t.Run("Success - Snapshots Product Into New Line", func(t *testing.T) {
		// Arrange
		product := testProduct(vendorID)
		req := &models.AddCartItemRequest{
			ProductID:       product.ID,
			Size:            "M",
			Quantity:        2,
			RentalStartDate: start,
			RentalEndDate:   end,
		}

		mockProductRepo.On("GetProductByID", ctx, product.ID).Return(product, nil).Once()
		mockCartRepo.On("GetCartByUserID", ctx, userID).Return(nil, sql.ErrNoRows).Once()
		mockCartRepo.On("SaveCart", ctx, mock.AnythingOfType("*models.Cart")).Return(nil).Once()

		// Act
		cart, err := cartService.AddItem(ctx, userID, req)

		// Assert
		assert.NoError(t, err)
		assert.Len(t, cart.Items, 1)

		line := cart.Items[0]
		assert.Equal(t, product.ID, line.ProductID)
		assert.Equal(t, "Sequin Gown", line.ProductName)
		assert.Equal(t, vendorID, line.VendorID)
		assert.Equal(t, 3, line.RentalDays)
		// 50/day * 3 days * 2 units
		assert.Equal(t, 300.0, line.Subtotal)
		// 200 deposit * 2 units
		assert.Equal(t, 400.0, line.DepositTotal)
	})

	t.Run("Repeated Product Appends A Second Line", func(t *testing.T) {
		// Arrange
		product := testProduct(vendorID)
		req := &models.AddCartItemRequest{
			ProductID:       product.ID,
			Size:            "M",
			Quantity:        1,
			RentalStartDate: start,
			RentalEndDate:   end,
		}

		existing := &models.Cart{
			ID:     uuid.New(),
			UserID: userID,
			Items: []models.CartLineItem{
				{ID: uuid.New(), ProductID: product.ID, VendorID: vendorID, Quantity: 1},
			},
		}

		mockProductRepo.On("GetProductByID", ctx, product.ID).Return(product, nil).Once()
		mockCartRepo.On("GetCartByUserID", ctx, userID).Return(existing, nil).Once()
		mockCartRepo.On("SaveCart", ctx, mock.AnythingOfType("*models.Cart")).Return(nil).Once()

		// Act
		cart, err := cartService.AddItem(ctx, userID, req)

		// Assert
		assert.NoError(t, err)
		assert.Len(t, cart.Items, 2)
		assert.NotEqual(t, cart.Items[0].ID, cart.Items[1].ID)
	})

	t.Run("Rejects Degenerate Rental Window", func(t *testing.T) {
		// Arrange
		product := testProduct(vendorID)
		req := &models.AddCartItemRequest{
			ProductID:       product.ID,
			Size:            "M",
			Quantity:        1,
			RentalStartDate: end,
			RentalEndDate:   start, // reversed
		}

		mockProductRepo.On("GetProductByID", ctx, product.ID).Return(product, nil).Once()

		// Act
		cart, err := cartService.AddItem(ctx, userID, req)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, cart)

		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, 400, appErr.StatusCode)
	})

	t.Run("Rejects Quantity Above Availability", func(t *testing.T) {
		// Arrange
		product := testProduct(vendorID)
		product.AvailableQuantity = 1

		req := &models.AddCartItemRequest{
			ProductID:       product.ID,
			Size:            "M",
			Quantity:        3,
			RentalStartDate: start,
			RentalEndDate:   end,
		}

		mockProductRepo.On("GetProductByID", ctx, product.ID).Return(product, nil).Once()

		// Act
		cart, err := cartService.AddItem(ctx, userID, req)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, cart)
	})

	t.Run("Unknown Product", func(t *testing.T) {
		// Arrange
		productID := uuid.New()
		req := &models.AddCartItemRequest{
			ProductID:       productID,
			Size:            "M",
			Quantity:        1,
			RentalStartDate: start,
			RentalEndDate:   end,
		}

		mockProductRepo.On("GetProductByID", ctx, productID).Return(nil, sql.ErrNoRows).Once()

		// Act
		cart, err := cartService.AddItem(ctx, userID, req)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, cart)
	})
}

func TestCartService_UpdateQuantity(t *testing.T) {
	cartService, mockCartRepo, _ := setupCartServiceTest(t)
	ctx := context.Background()
	userID := uuid.New()
	lineID := uuid.New()

	existingCart := func() *models.Cart {
		return &models.Cart{
			ID:     uuid.New(),
			UserID: userID,
			Items: []models.CartLineItem{
				{
					ID:              lineID,
					PricePerDay:     50,
					SecurityDeposit: 200,
					Quantity:        2,
					RentalDays:      3,
					Subtotal:        300,
					DepositTotal:    400,
				},
			},
		}
	}

	t.Run("Success - Recomputes Derived Totals", func(t *testing.T) {
		// Arrange
		mockCartRepo.On("GetCartByUserID", ctx, userID).Return(existingCart(), nil).Once()
		mockCartRepo.On("SaveCart", ctx, mock.AnythingOfType("*models.Cart")).Return(nil).Once()

		// Act
		cart, err := cartService.UpdateQuantity(ctx, userID, lineID, 4)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, 4, cart.Items[0].Quantity)
		assert.Equal(t, 600.0, cart.Items[0].Subtotal)
		assert.Equal(t, 800.0, cart.Items[0].DepositTotal)
	})

	t.Run("Rejects Quantity Below One Without Touching Store", func(t *testing.T) {
		// Arrange
		cartService, mockCartRepo, _ := setupCartServiceTest(t)

		// Act
		cart, err := cartService.UpdateQuantity(ctx, userID, lineID, 0)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, cart)
		mockCartRepo.AssertNotCalled(t, "SaveCart", mock.Anything, mock.Anything)
	})

	t.Run("Unknown Line", func(t *testing.T) {
		// Arrange
		mockCartRepo.On("GetCartByUserID", ctx, userID).Return(existingCart(), nil).Once()

		// Act
		cart, err := cartService.UpdateQuantity(ctx, userID, uuid.New(), 2)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, cart)
	})
}

func TestCartService_UpdateDates(t *testing.T) {
	cartService, mockCartRepo, _ := setupCartServiceTest(t)
	ctx := context.Background()
	userID := uuid.New()
	lineID := uuid.New()

	cartOnDisk := &models.Cart{
		ID:     uuid.New(),
		UserID: userID,
		Items: []models.CartLineItem{
			{
				ID:              lineID,
				PricePerDay:     100,
				SecurityDeposit: 500,
				Quantity:        1,
				RentalDays:      2,
				Subtotal:        200,
				DepositTotal:    500,
			},
		},
	}

	// Arrange
	mockCartRepo.On("GetCartByUserID", ctx, userID).Return(cartOnDisk, nil).Once()
	mockCartRepo.On("SaveCart", ctx, mock.AnythingOfType("*models.Cart")).Return(nil).Once()

	start := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 5)

	// Act
	cart, err := cartService.UpdateDates(ctx, userID, lineID, start, end)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, 5, cart.Items[0].RentalDays)
	assert.Equal(t, 500.0, cart.Items[0].Subtotal)
	// Deposit is date independent.
	assert.Equal(t, 500.0, cart.Items[0].DepositTotal)
}

func TestCartService_RemoveItem(t *testing.T) {
	cartService, mockCartRepo, _ := setupCartServiceTest(t)
	ctx := context.Background()
	userID := uuid.New()
	lineID := uuid.New()

	t.Run("Removes Matching Line", func(t *testing.T) {
		// Arrange
		cartOnDisk := &models.Cart{
			ID:     uuid.New(),
			UserID: userID,
			Items: []models.CartLineItem{
				{ID: lineID},
				{ID: uuid.New()},
			},
		}

		mockCartRepo.On("GetCartByUserID", ctx, userID).Return(cartOnDisk, nil).Once()
		mockCartRepo.On("SaveCart", ctx, mock.AnythingOfType("*models.Cart")).Return(nil).Once()

		// Act
		cart, err := cartService.RemoveItem(ctx, userID, lineID)

		// Assert
		assert.NoError(t, err)
		assert.Len(t, cart.Items, 1)
	})

	t.Run("Absent Line Is A No-Op", func(t *testing.T) {
		// Arrange
		cartService, mockCartRepo, _ := setupCartServiceTest(t)

		cartOnDisk := &models.Cart{
			ID:     uuid.New(),
			UserID: userID,
			Items:  []models.CartLineItem{{ID: uuid.New()}},
		}

		mockCartRepo.On("GetCartByUserID", ctx, userID).Return(cartOnDisk, nil).Once()

		// Act
		cart, err := cartService.RemoveItem(ctx, userID, uuid.New())

		// Assert
		assert.NoError(t, err)
		assert.Len(t, cart.Items, 1)
		mockCartRepo.AssertNotCalled(t, "SaveCart", mock.Anything, mock.Anything)
	})
}

func TestCartService_Summary(t *testing.T) {
	cartService, mockCartRepo, _ := setupCartServiceTest(t)
	ctx := context.Background()
	userID := uuid.New()
	vendorA := uuid.New()
	vendorB := uuid.New()

	cartOnDisk := &models.Cart{
		ID:     uuid.New(),
		UserID: userID,
		Items: []models.CartLineItem{
			{ID: uuid.New(), VendorID: vendorA, ShopName: "Velvet Archive", Quantity: 1, Subtotal: 150, DepositTotal: 500},
			{ID: uuid.New(), VendorID: vendorB, ShopName: "Denim Loft", Quantity: 2, Subtotal: 200, DepositTotal: 800},
			{ID: uuid.New(), VendorID: vendorA, ShopName: "Velvet Archive", Quantity: 1, Subtotal: 100, DepositTotal: 200},
		},
	}

	// Arrange
	mockCartRepo.On("GetCartByUserID", ctx, userID).Return(cartOnDisk, nil).Once()

	// Act
	summary, err := cartService.Summary(ctx, userID)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, 4, summary.CartCount)
	assert.Equal(t, 450.0, summary.TotalRentalFees)
	assert.Equal(t, 1500.0, summary.TotalDeposits)
	assert.Equal(t, 1950.0, summary.GrandTotal)

	// Interleaved vendors collapse to two groups in first-appearance order.
	assert.Len(t, summary.Groups, 2)
	assert.Equal(t, vendorA, summary.Groups[0].VendorID)
	assert.Len(t, summary.Groups[0].Items, 2)
	assert.Equal(t, vendorB, summary.Groups[1].VendorID)
	assert.Len(t, summary.Groups[1].Items, 1)
}

func TestCartService_Clear(t *testing.T) {
	cartService, mockCartRepo, _ := setupCartServiceTest(t)
	ctx := context.Background()
	userID := uuid.New()

	cartOnDisk := &models.Cart{
		ID:     uuid.New(),
		UserID: userID,
		Items: []models.CartLineItem{
			{ID: uuid.New(), VendorID: uuid.New(), ShopName: "Velvet Archive", Quantity: 2, Subtotal: 300, DepositTotal: 400},
			{ID: uuid.New(), VendorID: uuid.New(), ShopName: "Denim Loft", Quantity: 1, Subtotal: 80, DepositTotal: 150},
		},
	}

	// Arrange
	mockCartRepo.On("GetCartByUserID", ctx, userID).Return(cartOnDisk, nil).Once()
	mockCartRepo.On("SaveCart", ctx, mock.MatchedBy(func(c *models.Cart) bool {
		return c.UserID == userID && len(c.Items) == 0
	})).Return(nil).Once()

	// Act
	err := cartService.Clear(ctx, userID)

	// Assert
	assert.NoError(t, err)

	// A summary read after the clear sees the emptied cart and all aggregates
	// collapse to zero.
	mockCartRepo.On("GetCartByUserID", ctx, userID).Return(cartOnDisk, nil).Once()

	summary, err := cartService.Summary(ctx, userID)
	assert.NoError(t, err)
	assert.Zero(t, summary.CartCount)
	assert.Zero(t, summary.TotalRentalFees)
	assert.Zero(t, summary.TotalDeposits)
	assert.Zero(t, summary.GrandTotal)
	assert.Empty(t, summary.Groups)
}

func TestGroupByVendor(t *testing.T) {
	vendorA := uuid.New()
	vendorB := uuid.New()

	items := []models.CartLineItem{
		{ID: uuid.New(), VendorID: vendorA, ShopName: "Velvet Archive", Subtotal: 150},
		{ID: uuid.New(), VendorID: vendorB, ShopName: "Denim Loft", Subtotal: 200},
		{ID: uuid.New(), VendorID: vendorA, ShopName: "Velvet Archive", Subtotal: 100},
	}

	t.Run("Repeated Grouping Yields Identical Partitions", func(t *testing.T) {
		// Act
		first := service.GroupByVendor(items)
		second := service.GroupByVendor(items)

		// Assert
		assert.Equal(t, first, second)
		assert.Len(t, first, 2)
		assert.Equal(t, vendorA, first[0].VendorID)
		assert.Equal(t, vendorB, first[1].VendorID)
	})

	t.Run("Input Slice Is Left Untouched", func(t *testing.T) {
		// Arrange
		before := make([]models.CartLineItem, len(items))
		copy(before, items)

		// Act
		_ = service.GroupByVendor(items)

		// Assert
		assert.Equal(t, before, items)
	})

	t.Run("No Items Yields No Groups", func(t *testing.T) {
		assert.Empty(t, service.GroupByVendor(nil))
	})
}
