package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	appErrors "github.com/stockbuddy07/styleswap/internal/errors"
	"github.com/stockbuddy07/styleswap/internal/models"
	"github.com/stockbuddy07/styleswap/internal/pricing"
	repository "github.com/stockbuddy07/styleswap/internal/repositories"
	"github.com/stockbuddy07/styleswap/internal/stock"
	"github.com/google/uuid"
)

// CartService owns the authoritative line item list for one user. Every
// mutation recomputes the derived fields (rentalDays, subtotal, depositTotal)
// from the canonical ones; nothing else ever writes them.
type CartService interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	AddItem(ctx context.Context, userID uuid.UUID, req *models.AddCartItemRequest) (*models.Cart, error)
	RemoveItem(ctx context.Context, userID, lineID uuid.UUID) (*models.Cart, error)
	UpdateQuantity(ctx context.Context, userID, lineID uuid.UUID, quantity int) (*models.Cart, error)
	UpdateDates(ctx context.Context, userID, lineID uuid.UUID, start, end time.Time) (*models.Cart, error)
	UpdateSize(ctx context.Context, userID, lineID uuid.UUID, size string) (*models.Cart, error)
	Clear(ctx context.Context, userID uuid.UUID) error
	Summary(ctx context.Context, userID uuid.UUID) (*models.CartSummary, error)
}

type cartService struct {
	repo        repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(repo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{repo: repo, productRepo: productRepo}
}

// GetCart returns the user's cart, creating an empty one on first touch.
func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {

	cart, err := s.repo.GetCartByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &models.Cart{
				ID:     uuid.New(),
				UserID: userID,
				Items:  []models.CartLineItem{},
			}, nil
		}

		return nil, appErrors.DatabaseError("Failed to load cart").WithError(err)
	}

	return cart, nil
}

// AddItem snapshots the product at this instant and appends a new line.
// Duplicate product/size/date selections are deliberately kept as distinct
// lines; there is no merge.
func (s *cartService) AddItem(ctx context.Context, userID uuid.UUID, req *models.AddCartItemRequest) (*models.Cart, error) {

	product, err := s.productRepo.GetProductByID(ctx, req.ProductID)
	if err != nil {
		return nil, appErrors.NotFoundError("Product not found").WithError(err)
	}

	days := pricing.RentalDays(req.RentalStartDate, req.RentalEndDate)
	if days <= 0 {
		return nil, appErrors.ValidationError("Rental end date must be after the start date")
	}

	if !stock.CanReserve(product.AvailableQuantity, req.Quantity) {
		return nil, appErrors.BadRequestError("Requested quantity exceeds availability")
	}

	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	image := ""
	if len(product.Images) > 0 {
		image = product.Images[0]
	}

	subtotal, depositTotal := pricing.LineTotals(product.PricePerDay, product.SecurityDeposit, days, req.Quantity)

	line := models.CartLineItem{
		ID:              uuid.New(),
		ProductID:       product.ID,
		ProductName:     product.Name,
		ProductImage:    image,
		Category:        product.Category,
		VendorID:        product.VendorID,
		ShopName:        product.ShopName,
		PricePerDay:     product.PricePerDay,
		SecurityDeposit: product.SecurityDeposit,
		Size:            req.Size,
		Quantity:        req.Quantity,
		RentalStartDate: req.RentalStartDate,
		RentalEndDate:   req.RentalEndDate,
		RentalDays:      days,
		Subtotal:        subtotal,
		DepositTotal:    depositTotal,
	}

	cart.Items = append(cart.Items, line)

	if err := s.repo.SaveCart(ctx, cart); err != nil {
		return nil, appErrors.DatabaseError("Failed to save cart").WithError(err)
	}

	return cart, nil
}

// RemoveItem deletes the line by id; removing an unknown id is a no-op.
func (s *cartService) RemoveItem(ctx context.Context, userID, lineID uuid.UUID) (*models.Cart, error) {

	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	kept := cart.Items[:0]
	removed := false

	for _, item := range cart.Items {
		if item.ID == lineID {
			removed = true

			continue
		}

		kept = append(kept, item)
	}

	if !removed {
		return cart, nil
	}

	cart.Items = kept

	if err := s.repo.SaveCart(ctx, cart); err != nil {
		return nil, appErrors.DatabaseError("Failed to save cart").WithError(err)
	}

	return cart, nil
}

// UpdateQuantity rejects quantities below one; the prior value stays in
// place. The store does not re-validate against live stock here, that check
// belongs to checkout.
func (s *cartService) UpdateQuantity(ctx context.Context, userID, lineID uuid.UUID, quantity int) (*models.Cart, error) {

	if quantity < 1 {
		return nil, appErrors.ValidationError("Quantity must be at least 1")
	}

	return s.mutateLine(ctx, userID, lineID, func(line *models.CartLineItem) {
		line.Quantity = quantity
		line.Subtotal, line.DepositTotal = pricing.LineTotals(line.PricePerDay, line.SecurityDeposit, line.RentalDays, quantity)
	})
}

// UpdateDates recomputes the day count and the subtotal. The deposit does not
// depend on dates and is left alone.
func (s *cartService) UpdateDates(ctx context.Context, userID, lineID uuid.UUID, start, end time.Time) (*models.Cart, error) {

	return s.mutateLine(ctx, userID, lineID, func(line *models.CartLineItem) {
		line.RentalStartDate = start
		line.RentalEndDate = end
		line.RentalDays = pricing.RentalDays(start, end)
		line.Subtotal, _ = pricing.LineTotals(line.PricePerDay, line.SecurityDeposit, line.RentalDays, line.Quantity)
	})
}

func (s *cartService) UpdateSize(ctx context.Context, userID, lineID uuid.UUID, size string) (*models.Cart, error) {

	return s.mutateLine(ctx, userID, lineID, func(line *models.CartLineItem) {
		line.Size = size
	})
}

func (s *cartService) Clear(ctx context.Context, userID uuid.UUID) error {

	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return err
	}

	cart.Items = []models.CartLineItem{}

	if err := s.repo.SaveCart(ctx, cart); err != nil {
		return appErrors.DatabaseError("Failed to clear cart").WithError(err)
	}

	return nil
}

// Summary recomputes every aggregate from the line items on each call.
func (s *cartService) Summary(ctx context.Context, userID uuid.UUID) (*models.CartSummary, error) {

	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &models.CartSummary{
		Groups: GroupByVendor(cart.Items),
	}

	for _, item := range cart.Items {
		summary.CartCount += item.Quantity
		summary.TotalRentalFees += item.Subtotal
		summary.TotalDeposits += item.DepositTotal
	}

	summary.GrandTotal = summary.TotalRentalFees + summary.TotalDeposits

	return summary, nil
}

func (s *cartService) mutateLine(ctx context.Context, userID, lineID uuid.UUID, mutate func(*models.CartLineItem)) (*models.Cart, error) {

	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	found := false

	for i := range cart.Items {
		if cart.Items[i].ID == lineID {
			mutate(&cart.Items[i])

			found = true

			break
		}
	}

	if !found {
		return nil, appErrors.NotFoundError("Cart item not found")
	}

	if err := s.repo.SaveCart(ctx, cart); err != nil {
		return nil, appErrors.DatabaseError("Failed to save cart").WithError(err)
	}

	return cart, nil
}

// GroupByVendor partitions line items by vendor, groups ordered by the first
// appearance of each vendor and items kept in cart order. Pure projection,
// the cart is not touched.
func GroupByVendor(items []models.CartLineItem) []models.VendorGroup {

	var groups []models.VendorGroup

	index := make(map[uuid.UUID]int)

	for _, item := range items {

		i, ok := index[item.VendorID]
		if !ok {
			i = len(groups)
			index[item.VendorID] = i

			groups = append(groups, models.VendorGroup{
				VendorID: item.VendorID,
				ShopName: item.ShopName,
			})
		}

		groups[i].Items = append(groups[i].Items, item)
	}

	return groups
}
