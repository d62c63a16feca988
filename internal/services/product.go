package service

import (
	"context"
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

type ProductService interface {
	CreateProduct(ctx context.Context, claims *models.Claims, req *models.CreateProductRequest) (*models.Product, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	UpdateProduct(ctx context.Context, claims *models.Claims, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error)
	ListProducts(ctx context.Context, page, pageSize int, category string) ([]*models.Product, int, error)
	ListVendorProducts(ctx context.Context, vendorID uuid.UUID, page, pageSize int) ([]*models.Product, int, error)
	Restock(ctx context.Context, claims *models.Claims, id uuid.UUID, req *models.RestockRequest) (*models.Product, error)
}

type productService struct {
	repo      repository.ProductRepository
	cache     cache.Cache
	cacheTTL  time.Duration
	sanitizer *bluemonday.Policy
}

func NewProductService(repo repository.ProductRepository, productCache cache.Cache, cacheTTL time.Duration) ProductService {
	return &productService{
		repo:      repo,
		cache:     productCache,
		cacheTTL:  cacheTTL,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *productService) CreateProduct(ctx context.Context, claims *models.Claims, req *models.CreateProductRequest) (*models.Product, error) {

	if !claims.IsVendor() && !claims.IsAdmin() {
		return nil, errors.ForbiddenError("Only vendors can create products")
	}

	shopName := claims.ShopName
	if shopName == "" {
		shopName = claims.Name
	}

	product := &models.Product{
		VendorID:        claims.UserID,
		ShopName:        shopName,
		Name:            s.sanitizer.Sanitize(req.Name),
		Category:        req.Category,
		Description:     s.sanitizer.Sanitize(req.Description),
		PricePerDay:     req.PricePerDay,
		SecurityDeposit: req.SecurityDeposit,
		StockQuantity:   req.StockQuantity,
		// a new product starts fully available
		AvailableQuantity: req.StockQuantity,
		Sizes:             req.Sizes,
		Images:            req.Images,
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, errors.DatabaseError("Failed to create product").WithError(err)
	}

	return product, nil
}

func (s *productService) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {

	logger := middleware.LoggerFromContext(ctx)
	cacheKey := cache.Key(cache.ProductKeyPrefix, id.String())

	var cached models.Product

	found, err := s.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		logger.Warn("Product cache read failed", slog.String("key", cacheKey), slog.Any("error", err))
	}

	if found {
		return &cached, nil
	}

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Product not found").WithError(err)
	}

	if err := s.cache.Set(ctx, cacheKey, product, s.cacheTTL); err != nil {
		logger.Warn("Product cache write failed", slog.String("key", cacheKey), slog.Any("error", err))
	}

	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, claims *models.Claims, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error) {

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Product not found").WithError(err)
	}

	if product.VendorID != claims.UserID && !claims.IsAdmin() {
		return nil, errors.ForbiddenError("You don't own this product")
	}

	if req.Name != nil {
		product.Name = s.sanitizer.Sanitize(*req.Name)
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Description != nil {
		product.Description = s.sanitizer.Sanitize(*req.Description)
	}
	if req.PricePerDay != nil {
		product.PricePerDay = *req.PricePerDay
	}
	if req.SecurityDeposit != nil {
		product.SecurityDeposit = *req.SecurityDeposit
	}
	if req.Sizes != nil {
		product.Sizes = *req.Sizes
	}
	if req.Images != nil {
		product.Images = *req.Images
	}

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		return nil, errors.DatabaseError("Failed to update product").WithError(err)
	}

	s.invalidate(ctx, id)

	return product, nil
}

func (s *productService) ListProducts(ctx context.Context, page, pageSize int, category string) ([]*models.Product, int, error) {

	products, total, err := s.repo.ListProducts(ctx, page, pageSize, category)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to fetch products").WithError(err)
	}

	return products, total, nil
}

func (s *productService) ListVendorProducts(ctx context.Context, vendorID uuid.UUID, page, pageSize int) ([]*models.Product, int, error) {

	products, total, err := s.repo.ListProductsByVendor(ctx, vendorID, page, pageSize)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to fetch vendor products").WithError(err)
	}

	return products, total, nil
}

// Restock grows a product's inventory. Availability changes ride on the
// repository's single-statement stock guard, never on a read-then-write.
func (s *productService) Restock(ctx context.Context, claims *models.Claims, id uuid.UUID, req *models.RestockRequest) (*models.Product, error) {

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Product not found").WithError(err)
	}

	if product.VendorID != claims.UserID && !claims.IsAdmin() {
		return nil, errors.ForbiddenError("You don't own this product")
	}

	updated, err := s.repo.AddStock(ctx, id, req.Quantity)
	if err != nil {
		return nil, errors.DatabaseError("Failed to restock product").WithError(err)
	}

	product.StockQuantity = updated.StockQuantity
	product.AvailableQuantity = updated.AvailableQuantity
	product.UpdatedAt = updated.UpdatedAt

	s.invalidate(ctx, id)

	return product, nil
}

func (s *productService) invalidate(ctx context.Context, id uuid.UUID) {

	cacheKey := cache.Key(cache.ProductKeyPrefix, id.String())

	if err := s.cache.Delete(ctx, cacheKey); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Product cache invalidation failed",
			slog.String("key", cacheKey), slog.Any("error", err))
	}
}
