package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/stockbuddy07/styleswap/internal/api/middleware"
	"github.com/stockbuddy07/styleswap/internal/cache"
	"github.com/stockbuddy07/styleswap/internal/errors"
	"github.com/stockbuddy07/styleswap/internal/models"
	repository "github.com/stockbuddy07/styleswap/internal/repositories"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

// OrderService drives the post-checkout order lifecycle: status transitions,
// feedback, and the issue raise/resolve sub-flow.
type OrderService interface {
	GetOrder(ctx context.Context, claims *models.Claims, id uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, claims *models.Claims, page, size int) ([]models.Order, int, error)
	UpdateStatus(ctx context.Context, claims *models.Claims, id uuid.UUID, status models.OrderStatus) (*models.Order, error)
	SubmitFeedback(ctx context.Context, claims *models.Claims, id uuid.UUID, req *models.SubmitFeedbackRequest) (*models.Order, error)
	RaiseIssue(ctx context.Context, claims *models.Claims, id uuid.UUID, req *models.RaiseIssueRequest) (*models.Order, error)
	ResolveIssue(ctx context.Context, claims *models.Claims, orderID, issueID uuid.UUID, req *models.ResolveIssueRequest) (*models.Order, error)
}

type orderService struct {
	repo         repository.OrderRepository
	productRepo  repository.ProductRepository
	productCache cache.Cache
	sanitizer    *bluemonday.Policy
}

func NewOrderService(repo repository.OrderRepository, productRepo repository.ProductRepository, productCache cache.Cache) OrderService {
	return &orderService{
		repo:         repo,
		productRepo:  productRepo,
		productCache: productCache,
		sanitizer:    bluemonday.StrictPolicy(),
	}
}

func (s *orderService) GetOrder(ctx context.Context, claims *models.Claims, id uuid.UUID) (*models.Order, error) {

	order, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Order not found").WithError(err)
	}

	if !canView(claims, order) {
		return nil, errors.ForbiddenError("You don't have permission to access this order")
	}

	return order, nil
}

// ListOrders is role-scoped: customers see their own orders, vendors the
// orders against their shop, admins everything.
func (s *orderService) ListOrders(ctx context.Context, claims *models.Claims, page, size int) ([]models.Order, int, error) {

	var (
		orders []models.Order
		total  int
		err    error
	)

	switch {
	case claims.IsAdmin():
		orders, total, err = s.repo.ListOrders(ctx, page, size)
	case claims.IsVendor():
		orders, total, err = s.repo.ListOrdersByVendor(ctx, claims.UserID, page, size)
	default:
		orders, total, err = s.repo.ListOrdersByCustomer(ctx, claims.UserID, page, size)
	}

	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to fetch orders").WithError(err)
	}

	return orders, total, nil
}

// UpdateStatus validates the move against the transition table before
// persisting. Transitions into Returned or Cancelled release the rented
// units back to availability.
func (s *orderService) UpdateStatus(ctx context.Context, claims *models.Claims, id uuid.UUID, status models.OrderStatus) (*models.Order, error) {

	if !status.IsValid() {
		return nil, errors.ValidationError(fmt.Sprintf("Unknown order status %q", status))
	}

	order, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Order not found").WithError(err)
	}

	if !canView(claims, order) {
		return nil, errors.ForbiddenError("You don't have permission to update this order")
	}

	if !order.Status.CanTransitionTo(status) {
		return nil, errors.ConflictError(
			fmt.Sprintf("Cannot move order from %q to %q", order.Status, status))
	}

	if err := s.repo.UpdateOrderStatus(ctx, id, status); err != nil {
		return nil, errors.DatabaseError("Failed to update order status").WithError(err)
	}

	if status == models.OrderStatusReturned || status == models.OrderStatusCancelled {
		s.releaseStock(ctx, order)
	}

	order.Status = status
	order.UpdatedAt = time.Now()

	return order, nil
}

// SubmitFeedback stores a single feedback object per order; a second
// submission overwrites the first (last write wins).
func (s *orderService) SubmitFeedback(ctx context.Context, claims *models.Claims, id uuid.UUID, req *models.SubmitFeedbackRequest) (*models.Order, error) {

	order, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Order not found").WithError(err)
	}

	if order.CustomerID != claims.UserID {
		return nil, errors.ForbiddenError("Only the order's customer can submit feedback")
	}

	if req.ItemIndex >= len(order.Items) {
		return nil, errors.ValidationError("Item index is out of range")
	}

	feedback := &models.Feedback{
		Rating:      req.Rating,
		Review:      s.sanitizer.Sanitize(req.Review),
		Tags:        req.Tags,
		ItemIndex:   req.ItemIndex,
		ItemName:    req.ItemName,
		SubmittedAt: time.Now(),
	}

	if err := s.repo.UpdateFeedback(ctx, id, feedback); err != nil {
		return nil, errors.DatabaseError("Failed to save feedback").WithError(err)
	}

	order.Feedback = feedback

	return order, nil
}

// RaiseIssue appends an Open issue; the customer-side list is append-only.
func (s *orderService) RaiseIssue(ctx context.Context, claims *models.Claims, id uuid.UUID, req *models.RaiseIssueRequest) (*models.Order, error) {

	order, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Order not found").WithError(err)
	}

	if order.CustomerID != claims.UserID {
		return nil, errors.ForbiddenError("Only the order's customer can raise an issue")
	}

	if req.ItemIndex >= len(order.Items) {
		return nil, errors.ValidationError("Item index is out of range")
	}

	issue := models.Issue{
		IssueID:     uuid.New(),
		Type:        req.Type,
		Description: s.sanitizer.Sanitize(req.Description),
		ItemIndex:   req.ItemIndex,
		ItemName:    req.ItemName,
		Status:      models.IssueStatusOpen,
		RaisedAt:    time.Now(),
	}

	issues := append(order.Issues, issue)

	if err := s.repo.UpdateIssues(ctx, id, issues); err != nil {
		return nil, errors.DatabaseError("Failed to save issue").WithError(err)
	}

	order.Issues = issues

	return order, nil
}

// ResolveIssue replaces the matching issue's status and admin response.
func (s *orderService) ResolveIssue(ctx context.Context, claims *models.Claims, orderID, issueID uuid.UUID, req *models.ResolveIssueRequest) (*models.Order, error) {

	if !claims.IsAdmin() {
		return nil, errors.ForbiddenError("Only admins can resolve issues")
	}

	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, errors.NotFoundError("Order not found").WithError(err)
	}

	found := false

	for i := range order.Issues {
		if order.Issues[i].IssueID == issueID {
			order.Issues[i].Status = req.Status
			order.Issues[i].AdminResponse = s.sanitizer.Sanitize(req.AdminResponse)

			found = true

			break
		}
	}

	if !found {
		return nil, errors.NotFoundError("Issue not found on this order")
	}

	if err := s.repo.UpdateIssues(ctx, orderID, order.Issues); err != nil {
		return nil, errors.DatabaseError("Failed to update issue").WithError(err)
	}

	return order, nil
}

// releaseStock is best effort after the status write committed; a failed
// release is logged, not surfaced, so the transition itself stands.
func (s *orderService) releaseStock(ctx context.Context, order *models.Order) {

	logger := middleware.LoggerFromContext(ctx)

	for _, item := range order.Items {
		if _, err := s.productRepo.ReleaseStock(ctx, item.ProductID, item.Quantity); err != nil {
			logger.Error("Failed to release stock",
				slog.String("orderId", order.ID.String()),
				slog.String("productId", item.ProductID.String()),
				slog.Any("error", err))

			continue
		}

		// Availability changed; drop the cached product so reads see it.
		cacheKey := cache.Key(cache.ProductKeyPrefix, item.ProductID.String())
		if err := s.productCache.Delete(ctx, cacheKey); err != nil {
			logger.Warn("Product cache invalidation failed",
				slog.String("key", cacheKey), slog.Any("error", err))
		}
	}
}

// canView reports whether claims may read or mutate the order: its customer,
// its vendor, or a platform admin.
func canView(claims *models.Claims, order *models.Order) bool {
	return claims.IsAdmin() || order.CustomerID == claims.UserID || order.VendorID == claims.UserID
}
