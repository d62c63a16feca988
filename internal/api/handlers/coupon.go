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

type CouponHandler struct {
	couponService service.CouponService
	validator     *validator.Validate
}

func NewCouponHandler(couponService service.CouponService) *CouponHandler {
	return &CouponHandler{couponService: couponService, validator: validator.New()}
}

// CreateCoupon godoc
//	@Summary		Create a coupon (Admin)
//	@Description	Registers a percentage discount code. Discounts apply to rental fees only, never to deposits.
//	@Tags			Coupons
//	@Accept			json
//	@Produce		json
//	@Param			coupon	body		models.CreateCouponRequest	true	"Coupon Details"
//	@Success		201		{object}	models.Coupon				"Created coupon"
//	@Failure		400		{object}	response.ErrorResponse		"Validation error"
//	@Failure		401		{object}	response.ErrorResponse		"Authentication required"
//	@Failure		403		{object}	response.ErrorResponse		"Admin role required"
//	@Failure		500		{object}	response.ErrorResponse		"Internal server error"
//	@Security		BearerAuth
//	@Router			/coupons [post]
func (h *CouponHandler) CreateCoupon() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Unauthorized coupon creation attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.CreateCouponRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid create coupon input")
			return
		}

		coupon, err := h.couponService.CreateCoupon(r.Context(), claims, &req)
		if err != nil {
			logger.Error("Failed to create coupon", slog.String("code", req.Code), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Coupon created", slog.String("code", coupon.Code))
		response.Success(w, http.StatusCreated, coupon)
	}
}

// DeactivateCoupon godoc
//	@Summary		Deactivate a coupon (Admin)
//	@Description	Marks the coupon inactive so future checkouts reject it. Orders already placed with it keep their discount.
//	@Tags			Coupons
//	@Produce		json
//	@Param			code	path	string	true	"Coupon Code"
//	@Success		204		"Coupon deactivated"
//	@Failure		401		{object}	response.ErrorResponse	"Authentication required"
//	@Failure		403		{object}	response.ErrorResponse	"Admin role required"
//	@Failure		404		{object}	response.ErrorResponse	"Coupon not found"
//	@Failure		500		{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/coupons/{code} [delete]
func (h *CouponHandler) DeactivateCoupon() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Unauthorized coupon deactivation attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		code := r.PathValue("code")
		if code == "" {
			response.Error(w, errors.BadRequestError("Coupon code is required"))
			return
		}

		if err := h.couponService.DeactivateCoupon(r.Context(), claims, code); err != nil {
			logger.Error("Failed to deactivate coupon", slog.String("code", code), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Coupon deactivated", slog.String("code", code))
		w.WriteHeader(http.StatusNoContent)
	}
}
