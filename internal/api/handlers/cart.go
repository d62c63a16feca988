package handlers

import (
	"log/slog"
	"net/http"

	"github.com/stockbuddy07/styleswap/internal/api/middleware"
	"github.com/stockbuddy07/styleswap/internal/errors"
	"github.com/stockbuddy07/styleswap/internal/models"
	service "github.com/stockbuddy07/styleswap/internal/services"
	"github.com/stockbuddy07/styleswap/internal/utils"
	"github.com/stockbuddy07/styleswap/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService, validator: validator.New()}
}

// GetCart godoc
//	@Summary		Get the current cart
//	@Description	Returns the authenticated user's cart, empty if nothing has been added yet.
//	@Tags			Cart
//	@Produce		json
//	@Success		200	{object}	models.Cart				"Cart"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/cart [get]
func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Unauthorized cart access attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		cart, err := h.cartService.GetCart(r.Context(), claims.UserID)
		if err != nil {
			logger.Error("Failed to get cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// AddItem godoc
//	@Summary		Add an item to the cart
//	@Description	Adds a product line with size, quantity, and rental window. Always appends a new line, even for a repeated product.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.AddCartItemRequest	true	"Line Item Details"
//	@Success		200		{object}	models.Cart					"Updated cart"
//	@Failure		400		{object}	response.ErrorResponse		"Validation error or degenerate rental window"
//	@Failure		401		{object}	response.ErrorResponse		"Authentication required"
//	@Failure		404		{object}	response.ErrorResponse		"Product not found"
//	@Failure		409		{object}	response.ErrorResponse		"Requested quantity exceeds availability"
//	@Failure		500		{object}	response.ErrorResponse		"Internal server error"
//	@Security		BearerAuth
//	@Router			/cart/items [post]
func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Unauthorized cart mutation attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		logger = logger.With(slog.String("userID", claims.UserID.String()))

		var req models.AddCartItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid add item input")
			return
		}

		cart, err := h.cartService.AddItem(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Error("Failed to add cart item", slog.String("productId", req.ProductID.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Cart item added", slog.String("productId", req.ProductID.String()))
		response.Success(w, http.StatusOK, cart)
	}
}

// RemoveItem godoc
//	@Summary		Remove a line item
//	@Description	Removes the identified line from the cart. Removing an absent line is a no-op.
//	@Tags			Cart
//	@Produce		json
//	@Param			lineId	path		string					true	"Line Item ID (UUID)"	Format(uuid)
//	@Success		200		{object}	models.Cart				"Updated cart"
//	@Failure		400		{object}	response.ErrorResponse	"Invalid line ID format"
//	@Failure		401		{object}	response.ErrorResponse	"Authentication required"
//	@Failure		500		{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/cart/items/{lineId} [delete]
func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Unauthorized cart mutation attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		lineID, err := utils.ParseID(r, "lineId")
		if err != nil {
			logger.Warn("Invalid line id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		cart, err := h.cartService.RemoveItem(r.Context(), claims.UserID, lineID)
		if err != nil {
			logger.Error("Failed to remove cart item", slog.String("lineId", lineID.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// UpdateQuantity godoc
//	@Summary		Change a line item's quantity
//	@Description	Sets the quantity of a cart line and recomputes its totals. Quantities below 1 are rejected.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			lineId		path		string								true	"Line Item ID (UUID)"	Format(uuid)
//	@Param			quantity	body		models.UpdateCartQuantityRequest	true	"New Quantity"
//	@Success		200			{object}	models.Cart							"Updated cart"
//	@Failure		400			{object}	response.ErrorResponse				"Validation error or invalid ID"
//	@Failure		401			{object}	response.ErrorResponse				"Authentication required"
//	@Failure		404			{object}	response.ErrorResponse				"Line item not found"
//	@Failure		500			{object}	response.ErrorResponse				"Internal server error"
//	@Security		BearerAuth
//	@Router			/cart/items/{lineId}/quantity [patch]
func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Unauthorized cart mutation attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		lineID, err := utils.ParseID(r, "lineId")
		if err != nil {
			logger.Warn("Invalid line id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		var req models.UpdateCartQuantityRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid update quantity input")
			return
		}

		cart, err := h.cartService.UpdateQuantity(r.Context(), claims.UserID, lineID, req.Quantity)
		if err != nil {
			logger.Error("Failed to update quantity", slog.String("lineId", lineID.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// UpdateDates godoc
//	@Summary		Change a line item's rental window
//	@Description	Sets the rental dates of a cart line and recomputes its rental days and subtotal.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			lineId	path		string							true	"Line Item ID (UUID)"	Format(uuid)
//	@Param			dates	body		models.UpdateCartDatesRequest	true	"New Rental Window"
//	@Success		200		{object}	models.Cart						"Updated cart"
//	@Failure		400		{object}	response.ErrorResponse			"Validation error or invalid ID"
//	@Failure		401		{object}	response.ErrorResponse			"Authentication required"
//	@Failure		404		{object}	response.ErrorResponse			"Line item not found"
//	@Failure		500		{object}	response.ErrorResponse			"Internal server error"
//	@Security		BearerAuth
//	@Router			/cart/items/{lineId}/dates [patch]
func (h *CartHandler) UpdateDates() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Unauthorized cart mutation attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		lineID, err := utils.ParseID(r, "lineId")
		if err != nil {
			logger.Warn("Invalid line id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		var req models.UpdateCartDatesRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid update dates input")
			return
		}

		cart, err := h.cartService.UpdateDates(r.Context(), claims.UserID, lineID, req.RentalStartDate, req.RentalEndDate)
		if err != nil {
			logger.Error("Failed to update rental dates", slog.String("lineId", lineID.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// UpdateSize godoc
//	@Summary		Change a line item's size
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			lineId	path		string							true	"Line Item ID (UUID)"	Format(uuid)
//	@Param			size	body		models.UpdateCartSizeRequest	true	"New Size"
//	@Success		200		{object}	models.Cart						"Updated cart"
//	@Failure		400		{object}	response.ErrorResponse			"Validation error or invalid ID"
//	@Failure		401		{object}	response.ErrorResponse			"Authentication required"
//	@Failure		404		{object}	response.ErrorResponse			"Line item not found"
//	@Failure		500		{object}	response.ErrorResponse			"Internal server error"
//	@Security		BearerAuth
//	@Router			/cart/items/{lineId}/size [patch]
func (h *CartHandler) UpdateSize() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Unauthorized cart mutation attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		lineID, err := utils.ParseID(r, "lineId")
		if err != nil {
			logger.Warn("Invalid line id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		var req models.UpdateCartSizeRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid update size input")
			return
		}

		cart, err := h.cartService.UpdateSize(r.Context(), claims.UserID, lineID, req.Size)
		if err != nil {
			logger.Error("Failed to update size", slog.String("lineId", lineID.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// ClearCart godoc
//	@Summary		Empty the cart
//	@Tags			Cart
//	@Produce		json
//	@Success		204	"Cart cleared"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/cart [delete]
func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Unauthorized cart mutation attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		if err := h.cartService.Clear(r.Context(), claims.UserID); err != nil {
			logger.Error("Failed to clear cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Cart cleared")
		w.WriteHeader(http.StatusNoContent)
	}
}

// Summary godoc
//	@Summary		Get cart totals grouped by vendor
//	@Description	Returns the cart's rental fee, deposit, and grand totals along with the per-vendor grouping used at checkout.
//	@Tags			Cart
//	@Produce		json
//	@Success		200	{object}	models.CartSummary		"Summary"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/cart/summary [get]
func (h *CartHandler) Summary() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Unauthorized cart access attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		summary, err := h.cartService.Summary(r.Context(), claims.UserID)
		if err != nil {
			logger.Error("Failed to build cart summary", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, summary)
	}
}
