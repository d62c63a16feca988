package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/stockbuddy07/styleswap/internal/api/middleware"
	"github.com/stockbuddy07/styleswap/internal/errors"
	"github.com/stockbuddy07/styleswap/internal/models"
	service "github.com/stockbuddy07/styleswap/internal/services"
	"github.com/stockbuddy07/styleswap/internal/utils/response"
)

type NotificationHandler struct {
	notificationService service.NotificationService
}

func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// ListNotifications godoc
//	@Summary		List own notifications
//	@Description	Paginated list of notifications sent to the authenticated user, newest first.
//	@Tags			Notifications
//	@Produce		json
//	@Param			page		query		int														false	"Page number for pagination (default: 1)"			minimum(1)
//	@Param			pageSize	query		int														false	"Number of items per page (default: 10, max: 100)"	minimum(1)	maximum(100)
//	@Success		200			{object}	models.PaginatedResponse{Data=[]models.Notification}	"Notifications"
//	@Failure		401			{object}	response.ErrorResponse									"Authentication required"
//	@Failure		500			{object}	response.ErrorResponse									"Internal server error"
//	@Security		BearerAuth
//	@Router			/notifications [get]
func (h *NotificationHandler) ListNotifications() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Unauthorized notification list attempt")
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

		notifications, total, err := h.notificationService.ListNotifications(r.Context(), claims.UserID, page, pageSize)
		if err != nil {
			logger.Error("Failed to list notifications", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Data:     notifications,
			Total:    total,
			Page:     page,
			PageSize: pageSize,
		})
	}
}
