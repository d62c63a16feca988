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

type CheckoutHandler struct {
	checkoutService service.CheckoutService
	validator       *validator.Validate
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService, validator: validator.New()}
}

// Checkout godoc
//	@Summary		Convert the cart into orders
//	@Description	Places one order per vendor represented in the cart, decrements stock, and clears the cart. The whole conversion is atomic. Retrying with the same checkout_id returns the already-placed orders.
//	@Tags			Checkout
//	@Accept			json
//	@Produce		json
//	@Param			checkout	body		models.CheckoutRequest	true	"Checkout Details"
//	@Success		201			{object}	models.CheckoutResponse	"Orders placed"
//	@Failure		400			{object}	response.ErrorResponse	"Validation error, empty cart, or inactive coupon"
//	@Failure		401			{object}	response.ErrorResponse	"Authentication required"
//	@Failure		404			{object}	response.ErrorResponse	"Coupon not found"
//	@Failure		409			{object}	response.ErrorResponse	"Insufficient stock"
//	@Failure		500			{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/checkout [post]
func (h *CheckoutHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Unauthorized checkout attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		logger = logger.With(slog.String("userID", claims.UserID.String()))

		var req models.CheckoutRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid checkout input")
			return
		}

		resp, err := h.checkoutService.Checkout(r.Context(), claims, &req)
		if err != nil {
			logger.Error("Checkout failed", slog.String("checkoutId", req.CheckoutID.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Checkout succeeded",
			slog.String("checkoutId", resp.CheckoutID.String()),
			slog.Int("orders", len(resp.Orders)))
		response.Success(w, http.StatusCreated, resp)
	}
}
