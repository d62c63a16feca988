package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/stockbuddy07/styleswap/internal/api/middleware"
	"github.com/stockbuddy07/styleswap/internal/errors"
	"github.com/stockbuddy07/styleswap/internal/models"
	service "github.com/stockbuddy07/styleswap/internal/services"
	"github.com/stockbuddy07/styleswap/internal/utils"
	"github.com/stockbuddy07/styleswap/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type ProductHandler struct {
	productService service.ProductService
	validator      *validator.Validate
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService, validator: validator.New()}
}

// CreateProduct godoc
//	@Summary		List a new rental item
//	@Description	Creates a product listing for the authenticated vendor's shop.
//	@Tags			Products
//	@Accept			json
//	@Produce		json
//	@Param			product	body		models.CreateProductRequest	true	"Product Details"
//	@Success		201		{object}	models.Product				"Successfully created product"
//	@Failure		400		{object}	response.ErrorResponse		"Validation error"
//	@Failure		401		{object}	response.ErrorResponse		"Authentication required"
//	@Failure		403		{object}	response.ErrorResponse		"Vendor role required"
//	@Failure		500		{object}	response.ErrorResponse		"Internal server error"
//	@Security		BearerAuth
//	@Router			/products [post]
func (h *ProductHandler) CreateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Unauthorized product creation attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		logger = logger.With(slog.String("userID", claims.UserID.String()))

		var req models.CreateProductRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid create product input")
			return
		}

		product, err := h.productService.CreateProduct(r.Context(), claims, &req)
		if err != nil {
			logger.Error("Failed to create product", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Product created successfully", slog.String("productId", product.ID.String()))
		response.Success(w, http.StatusCreated, product)
	}
}

// GetProduct godoc
//	@Summary		Get a product by ID
//	@Description	Retrieves a single product listing. Public endpoint.
//	@Tags			Products
//	@Produce		json
//	@Param			id	path		string					true	"Product ID (UUID)"	Format(uuid)
//	@Success		200	{object}	models.Product			"Product"
//	@Failure		400	{object}	response.ErrorResponse	"Invalid product ID format"
//	@Failure		404	{object}	response.ErrorResponse	"Product not found"
//	@Router			/products/{id} [get]
func (h *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid product id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		product, err := h.productService.GetProductByID(r.Context(), id)
		if err != nil {
			logger.Error("Failed to get product", slog.String("productId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, product)
	}
}

// ListProducts godoc
//	@Summary		Browse the catalog
//	@Description	Paginated catalog listing with an optional category filter. Public endpoint.
//	@Tags			Products
//	@Produce		json
//	@Param			page		query		int												false	"Page number for pagination (default: 1)"			minimum(1)
//	@Param			pageSize	query		int												false	"Number of items per page (default: 10, max: 100)"	minimum(1)	maximum(100)
//	@Param			category	query		string											false	"Category filter"
//	@Success		200			{object}	models.PaginatedResponse{Data=[]models.Product}	"Products"
//	@Failure		500			{object}	response.ErrorResponse							"Internal server error"
//	@Router			/products [get]
func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		if err != nil || page < 1 {
			page = 1
		}
		pageSize, err := strconv.Atoi(r.URL.Query().Get("pageSize"))
		if err != nil || pageSize < 1 || pageSize > 100 {
			pageSize = 10
		}

		category := r.URL.Query().Get("category")

		products, total, err := h.productService.ListProducts(r.Context(), page, pageSize, category)
		if err != nil {
			logger.Error("Failed to list products", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Data:     products,
			Total:    total,
			Page:     page,
			PageSize: pageSize,
		})
	}
}

// ListMyProducts godoc
//	@Summary		List own shop's products
//	@Description	Paginated listing of the authenticated vendor's products.
//	@Tags			Products
//	@Produce		json
//	@Param			page		query		int												false	"Page number for pagination (default: 1)"			minimum(1)
//	@Param			pageSize	query		int												false	"Number of items per page (default: 10, max: 100)"	minimum(1)	maximum(100)
//	@Success		200			{object}	models.PaginatedResponse{Data=[]models.Product}	"Products"
//	@Failure		401			{object}	response.ErrorResponse							"Authentication required"
//	@Failure		500			{object}	response.ErrorResponse							"Internal server error"
//	@Security		BearerAuth
//	@Router			/products/mine [get]
func (h *ProductHandler) ListMyProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Unauthorized product list attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		if err != nil || page < 1 {
			page = 1
		}
		pageSize, err := strconv.Atoi(r.URL.Query().Get("pageSize"))
		if err != nil || pageSize < 1 || pageSize > 100 {
			pageSize = 10
		}

		products, total, err := h.productService.ListVendorProducts(r.Context(), claims.UserID, page, pageSize)
		if err != nil {
			logger.Error("Failed to list vendor products", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Data:     products,
			Total:    total,
			Page:     page,
			PageSize: pageSize,
		})
	}
}

// UpdateProduct godoc
//	@Summary		Update a product listing
//	@Description	Updates descriptive fields of a product. Only the owning vendor or an admin may update.
//	@Tags			Products
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Product ID (UUID)"	Format(uuid)
//	@Param			product	body		models.UpdateProductRequest	true	"Fields to update"
//	@Success		200		{object}	models.Product				"Updated product"
//	@Failure		400		{object}	response.ErrorResponse		"Validation error or invalid ID"
//	@Failure		401		{object}	response.ErrorResponse		"Authentication required"
//	@Failure		403		{object}	response.ErrorResponse		"Not the owning vendor"
//	@Failure		404		{object}	response.ErrorResponse		"Product not found"
//	@Failure		500		{object}	response.ErrorResponse		"Internal server error"
//	@Security		BearerAuth
//	@Router			/products/{id} [put]
func (h *ProductHandler) UpdateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Unauthorized product update attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid product id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		var req models.UpdateProductRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid update product input")
			return
		}

		product, err := h.productService.UpdateProduct(r.Context(), claims, id, &req)
		if err != nil {
			logger.Error("Failed to update product", slog.String("productId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Product updated successfully", slog.String("productId", id.String()))
		response.Success(w, http.StatusOK, product)
	}
}

// Restock godoc
//	@Summary		Add stock to a product
//	@Description	Raises both total and available quantity by the given amount. Only the owning vendor or an admin may restock.
//	@Tags			Products
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Product ID (UUID)"	Format(uuid)
//	@Param			stock	body		models.RestockRequest	true	"Units to add"
//	@Success		200		{object}	models.Product			"Updated product"
//	@Failure		400		{object}	response.ErrorResponse	"Validation error or invalid ID"
//	@Failure		401		{object}	response.ErrorResponse	"Authentication required"
//	@Failure		403		{object}	response.ErrorResponse	"Not the owning vendor"
//	@Failure		404		{object}	response.ErrorResponse	"Product not found"
//	@Failure		500		{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/products/{id}/stock [patch]
func (h *ProductHandler) Restock() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Unauthorized restock attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid product id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		var req models.RestockRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid restock input")
			return
		}

		product, err := h.productService.Restock(r.Context(), claims, id, &req)
		if err != nil {
			logger.Error("Failed to restock product", slog.String("productId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Product restocked successfully",
			slog.String("productId", id.String()),
			slog.Int("added", req.Quantity))
		response.Success(w, http.StatusOK, product)
	}
}
