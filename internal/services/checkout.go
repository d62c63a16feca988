package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/stockbuddy07/styleswap/internal/api/middleware"
	"github.com/stockbuddy07/styleswap/internal/cache"
	appErrors "github.com/stockbuddy07/styleswap/internal/errors"
	"github.com/stockbuddy07/styleswap/internal/metrics"
	"github.com/stockbuddy07/styleswap/internal/models"
	repository "github.com/stockbuddy07/styleswap/internal/repositories"
	"github.com/google/uuid"
)

// CheckoutService converts the current cart into one persisted order per
// vendor and reflects the rental against vendor stock. The whole conversion
// is atomic: the repository runs every insert and every availability
// decrement in one transaction, and the client-supplied checkout id makes
// retries idempotent.
type CheckoutService interface {
	Checkout(ctx context.Context, claims *models.Claims, req *models.CheckoutRequest) (*models.CheckoutResponse, error)
}

type checkoutService struct {
	orderRepo    repository.OrderRepository
	cartService  CartService
	couponRepo   repository.CouponRepository
	notifier     NotificationService
	productCache cache.Cache
}

func NewCheckoutService(
	orderRepo repository.OrderRepository,
	cartService CartService,
	couponRepo repository.CouponRepository,
	notifier NotificationService,
	productCache cache.Cache,
) CheckoutService {
	return &checkoutService{
		orderRepo:    orderRepo,
		cartService:  cartService,
		couponRepo:   couponRepo,
		notifier:     notifier,
		productCache: productCache,
	}
}

func (s *checkoutService) Checkout(ctx context.Context, claims *models.Claims, req *models.CheckoutRequest) (*models.CheckoutResponse, error) {

	logger := middleware.LoggerFromContext(ctx)

	// A retry of an already-committed checkout returns its orders unchanged.
	if existing, err := s.orderRepo.GetOrdersByCheckoutID(ctx, req.CheckoutID); err == nil && len(existing) > 0 {
		logger.Info("Checkout replayed", slog.String("checkoutId", req.CheckoutID.String()))
		metrics.ObserveCheckout("replayed")

		return &models.CheckoutResponse{CheckoutID: req.CheckoutID, Orders: existing}, nil
	}

	cart, err := s.cartService.GetCart(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	if len(cart.Items) == 0 {
		return nil, appErrors.BadRequestError("Cannot check out an empty cart")
	}

	for _, item := range cart.Items {
		if item.RentalDays <= 0 {
			return nil, appErrors.ValidationError(
				fmt.Sprintf("Item %q has no valid rental period", item.ProductName))
		}

		if item.Quantity < 1 {
			return nil, appErrors.ValidationError(
				fmt.Sprintf("Item %q has an invalid quantity", item.ProductName))
		}
	}

	discountPercent, err := s.resolveCoupon(ctx, req.CouponCode)
	if err != nil {
		return nil, err
	}

	groups := GroupByVendor(cart.Items)
	now := time.Now()

	orders := make([]*models.Order, 0, len(groups))

	for _, group := range groups {

		var rentalFees, deposits float64

		items := make([]models.OrderItem, 0, len(group.Items))

		for _, line := range group.Items {
			rentalFees += line.Subtotal
			deposits += line.DepositTotal

			items = append(items, models.OrderItem{
				ProductID:       line.ProductID,
				ProductName:     line.ProductName,
				ProductImage:    line.ProductImage,
				Category:        line.Category,
				PricePerDay:     line.PricePerDay,
				SecurityDeposit: line.SecurityDeposit,
				Size:            line.Size,
				Quantity:        line.Quantity,
				RentalDays:      line.RentalDays,
				Subtotal:        line.Subtotal,
				DepositTotal:    line.DepositTotal,
			})
		}

		// The coupon discounts rental fees only, never deposits.
		discount := rentalFees * discountPercent / 100

		first := group.Items[0]

		orders = append(orders, &models.Order{
			ID:             uuid.New(),
			CheckoutID:     req.CheckoutID,
			CustomerID:     claims.UserID,
			CustomerName:   claims.Name,
			VendorID:       group.VendorID,
			ShopName:       group.ShopName,
			Items:          items,
			TotalAmount:    rentalFees - discount + deposits,
			DiscountAmount: discount,
			// Rental window of the first item in the vendor group. Items in
			// the same group may carry different ranges; the first one wins.
			RentalStartDate: first.RentalStartDate,
			RentalEndDate:   first.RentalEndDate,
			PaymentMethod:   req.PaymentMethod,
			Status:          models.OrderStatusActive,
			OrderDate:       now,
			UpdatedAt:       now,
		})
	}

	if err := s.orderRepo.CreateOrders(ctx, orders); err != nil {

		metrics.ObserveCheckout("failed")

		// The cart stays intact on any failure so the user can retry.
		if errors.Is(err, repository.ErrInsufficientStock) {
			return nil, appErrors.ConflictError("One or more items are no longer available").WithError(err)
		}

		if errors.Is(err, repository.ErrDuplicateCheckout) {
			if existing, replayErr := s.orderRepo.GetOrdersByCheckoutID(ctx, req.CheckoutID); replayErr == nil && len(existing) > 0 {
				return &models.CheckoutResponse{CheckoutID: req.CheckoutID, Orders: existing}, nil
			}

			return nil, appErrors.ConflictError("Checkout already processed").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to place orders").WithError(err)
	}

	// Orders are committed; clearing the cart afterwards is safe to retry and
	// a failure here must not fail the checkout.
	if err := s.cartService.Clear(ctx, claims.UserID); err != nil {
		logger.Error("Cart clear failed after successful checkout",
			slog.String("checkoutId", req.CheckoutID.String()), slog.Any("error", err))
	}

	s.invalidateProducts(ctx, orders)

	s.notifyOrderPlaced(ctx, claims, orders)
	metrics.ObserveCheckout("placed")

	placed := make([]models.Order, 0, len(orders))
	for _, order := range orders {
		placed = append(placed, *order)
	}

	logger.Info("Checkout completed",
		slog.String("checkoutId", req.CheckoutID.String()),
		slog.Int("orders", len(placed)))

	return &models.CheckoutResponse{CheckoutID: req.CheckoutID, Orders: placed}, nil
}

func (s *checkoutService) resolveCoupon(ctx context.Context, code string) (float64, error) {

	if code == "" {
		return 0, nil
	}

	coupon, err := s.couponRepo.GetCouponByCode(ctx, strings.ToUpper(code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, appErrors.NotFoundError("Coupon not found")
		}

		return 0, appErrors.DatabaseError("Failed to look up coupon").WithError(err)
	}

	if !coupon.Active {
		return 0, appErrors.BadRequestError("Coupon is no longer active")
	}

	return coupon.Percent, nil
}

// notifyOrderPlaced is best effort; the checkout outcome never depends on it.
// invalidateProducts drops the cached copy of every product whose
// availability the committed checkout just decremented. Best effort; a miss
// only extends staleness until the TTL.
func (s *checkoutService) invalidateProducts(ctx context.Context, orders []*models.Order) {

	logger := middleware.LoggerFromContext(ctx)
	seen := make(map[uuid.UUID]bool)

	for _, order := range orders {
		for _, item := range order.Items {
			if seen[item.ProductID] {
				continue
			}

			seen[item.ProductID] = true

			cacheKey := cache.Key(cache.ProductKeyPrefix, item.ProductID.String())
			if err := s.productCache.Delete(ctx, cacheKey); err != nil {
				logger.Warn("Product cache invalidation failed",
					slog.String("key", cacheKey), slog.Any("error", err))
			}
		}
	}
}

func (s *checkoutService) notifyOrderPlaced(ctx context.Context, claims *models.Claims, orders []*models.Order) {

	if s.notifier == nil {
		return
	}

	content := fmt.Sprintf("Your checkout produced %d order(s). Happy swapping!", len(orders))

	_, err := s.notifier.SendEmail(ctx, claims.UserID, &models.EmailNotificationRequest{
		To:      claims.Email,
		Subject: "Your StyleSwap rental is confirmed",
		Content: content,
	})
	if err != nil {
		middleware.LoggerFromContext(ctx).Warn("Order confirmation email failed", slog.Any("error", err))
	}
}
