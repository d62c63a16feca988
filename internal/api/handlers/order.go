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

type OrderHandler struct {
	orderService service.OrderService
	validator    *validator.Validate
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService, validator: validator.New()}
}

// GetOrder godoc
//	@Summary		Get an order by ID
//	@Description	Retrieves a single order. Visible to its customer, its vendor, and admins.
//	@Tags			Orders
//	@Produce		json
//	@Param			id	path		string					true	"Order ID (UUID)"	Format(uuid)
//	@Success		200	{object}	models.Order			"Order"
//	@Failure		400	{object}	response.ErrorResponse	"Invalid order ID format"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		403	{object}	response.ErrorResponse	"No access to this order"
//	@Failure		404	{object}	response.ErrorResponse	"Order not found"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/orders/{id} [get]
func (h *OrderHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Unauthorized order access attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid order id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		order, err := h.orderService.GetOrder(r.Context(), claims, id)
		if err != nil {
			logger.Error("Failed to get order", slog.String("orderId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, order)
	}
}

// ListOrders godoc
//	@Summary		List orders with pagination
//	@Description	Customers see their own orders, vendors the orders against their shop, admins everything.
//	@Tags			Orders
//	@Produce		json
//	@Param			page		query		int												false	"Page number for pagination (default: 1)"			minimum(1)
//	@Param			pageSize	query		int												false	"Number of items per page (default: 10, max: 100)"	minimum(1)	maximum(100)
//	@Success		200			{object}	models.PaginatedResponse{Data=[]models.Order}	"Orders"
//	@Failure		401			{object}	response.ErrorResponse							"Authentication required"
//	@Failure		500			{object}	response.ErrorResponse							"Internal server error"
//	@Security		BearerAuth
//	@Router			/orders [get]
func (h *OrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Unauthorized order list attempt")
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

		orders, total, err := h.orderService.ListOrders(r.Context(), claims, page, pageSize)
		if err != nil {
			logger.Error("Failed to list orders", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Data:     orders,
			Total:    total,
			Page:     page,
			PageSize: pageSize,
		})
	}
}

// UpdateStatus godoc
//	@Summary		Move an order through its lifecycle
//	@Description	Applies a status transition. Illegal moves per the transition table are rejected with 409. Transitions into Returned or Cancelled release the rented units back to availability.
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Order ID (UUID)"	Format(uuid)
//	@Param			status	body		models.UpdateOrderStatusRequest	true	"Target Status"
//	@Success		200		{object}	models.Order					"Updated order"
//	@Failure		400		{object}	response.ErrorResponse			"Validation error or invalid ID"
//	@Failure		401		{object}	response.ErrorResponse			"Authentication required"
//	@Failure		403		{object}	response.ErrorResponse			"No access to this order"
//	@Failure		404		{object}	response.ErrorResponse			"Order not found"
//	@Failure		409		{object}	response.ErrorResponse			"Transition not allowed from current status"
//	@Failure		500		{object}	response.ErrorResponse			"Internal server error"
//	@Security		BearerAuth
//	@Router			/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Unauthorized order status update attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid order id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		var req models.UpdateOrderStatusRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid update order status input")
			return
		}

		order, err := h.orderService.UpdateStatus(r.Context(), claims, id, req.Status)
		if err != nil {
			logger.Error("Failed to update order status",
				slog.String("orderId", id.String()),
				slog.String("newStatus", string(req.Status)),
				slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Order status updated",
			slog.String("orderId", id.String()),
			slog.String("newStatus", string(req.Status)))
		response.Success(w, http.StatusOK, order)
	}
}

// SubmitFeedback godoc
//	@Summary		Submit feedback on an order
//	@Description	Stores a rating and optional review for the order. A second submission overwrites the first.
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Param			id			path		string							true	"Order ID (UUID)"	Format(uuid)
//	@Param			feedback	body		models.SubmitFeedbackRequest	true	"Feedback"
//	@Success		200			{object}	models.Order					"Order with feedback"
//	@Failure		400			{object}	response.ErrorResponse			"Validation error or invalid ID"
//	@Failure		401			{object}	response.ErrorResponse			"Authentication required"
//	@Failure		403			{object}	response.ErrorResponse			"Only the order's customer may submit"
//	@Failure		404			{object}	response.ErrorResponse			"Order not found"
//	@Failure		500			{object}	response.ErrorResponse			"Internal server error"
//	@Security		BearerAuth
//	@Router			/orders/{id}/feedback [put]
func (h *OrderHandler) SubmitFeedback() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Unauthorized feedback attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid order id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		var req models.SubmitFeedbackRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid feedback input")
			return
		}

		order, err := h.orderService.SubmitFeedback(r.Context(), claims, id, &req)
		if err != nil {
			logger.Error("Failed to submit feedback", slog.String("orderId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Feedback submitted", slog.String("orderId", id.String()), slog.Int("rating", req.Rating))
		response.Success(w, http.StatusOK, order)
	}
}

// RaiseIssue godoc
//	@Summary		Raise an issue against an order
//	@Description	Appends an open issue to the order's issue list. Issues accumulate; raising never replaces earlier ones.
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Order ID (UUID)"	Format(uuid)
//	@Param			issue	body		models.RaiseIssueRequest	true	"Issue Details"
//	@Success		201		{object}	models.Order			"Order with the new issue"
//	@Failure		400		{object}	response.ErrorResponse	"Validation error or invalid ID"
//	@Failure		401		{object}	response.ErrorResponse	"Authentication required"
//	@Failure		403		{object}	response.ErrorResponse	"Only the order's customer may raise issues"
//	@Failure		404		{object}	response.ErrorResponse	"Order not found"
//	@Failure		500		{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/orders/{id}/issues [post]
func (h *OrderHandler) RaiseIssue() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Unauthorized issue attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid order id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		var req models.RaiseIssueRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid issue input")
			return
		}

		order, err := h.orderService.RaiseIssue(r.Context(), claims, id, &req)
		if err != nil {
			logger.Error("Failed to raise issue", slog.String("orderId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Issue raised", slog.String("orderId", id.String()), slog.String("type", req.Type))
		response.Success(w, http.StatusCreated, order)
	}
}

// ResolveIssue godoc
//	@Summary		Resolve or reject an issue (Admin)
//	@Description	Sets the status and admin response on a previously raised issue.
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Param			id			path		string						true	"Order ID (UUID)"	Format(uuid)
//	@Param			issueId		path		string						true	"Issue ID (UUID)"	Format(uuid)
//	@Param			resolution	body		models.ResolveIssueRequest	true	"Resolution"
//	@Success		200			{object}	models.Order				"Order with the updated issue"
//	@Failure		400			{object}	response.ErrorResponse		"Validation error or invalid ID"
//	@Failure		401			{object}	response.ErrorResponse		"Authentication required"
//	@Failure		403			{object}	response.ErrorResponse		"Admin role required"
//	@Failure		404			{object}	response.ErrorResponse		"Order or issue not found"
//	@Failure		500			{object}	response.ErrorResponse		"Internal server error"
//	@Security		BearerAuth
//	@Router			/orders/{id}/issues/{issueId} [patch]
func (h *OrderHandler) ResolveIssue() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Unauthorized issue resolution attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		orderID, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid order id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		issueID, err := utils.ParseID(r, "issueId")
		if err != nil {
			logger.Warn("Invalid issue id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		var req models.ResolveIssueRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid resolution input")
			return
		}

		order, err := h.orderService.ResolveIssue(r.Context(), claims, orderID, issueID, &req)
		if err != nil {
			logger.Error("Failed to resolve issue",
				slog.String("orderId", orderID.String()),
				slog.String("issueId", issueID.String()),
				slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Issue resolved",
			slog.String("orderId", orderID.String()),
			slog.String("issueId", issueID.String()),
			slog.String("status", string(req.Status)))
		response.Success(w, http.StatusOK, order)
	}
}
