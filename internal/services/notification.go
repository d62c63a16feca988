package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/stockbuddy07/styleswap/internal/api/middleware"
	"github.com/stockbuddy07/styleswap/internal/errors"
	"github.com/stockbuddy07/styleswap/internal/models"
	repository "github.com/stockbuddy07/styleswap/internal/repositories"
	"github.com/stockbuddy07/styleswap/pkg/sendgrid"
	"github.com/google/uuid"
)

type NotificationService interface {
	SendEmail(ctx context.Context, userID uuid.UUID, req *models.EmailNotificationRequest) (*models.NotificationResponse, error)
	ListNotifications(ctx context.Context, userID uuid.UUID, page, size int) ([]*models.Notification, int, error)
}

type notificationService struct {
	repo  repository.NotificationRepository
	email sendgrid.EmailService
}

func NewNotificationService(repo repository.NotificationRepository, email sendgrid.EmailService) NotificationService {
	return &notificationService{repo: repo, email: email}
}

// SendEmail records the notification before dispatch so a delivery failure
// still leaves an auditable row in failed status.
func (s *notificationService) SendEmail(ctx context.Context, userID uuid.UUID, req *models.EmailNotificationRequest) (*models.NotificationResponse, error) {

	logger := middleware.LoggerFromContext(ctx)

	notification := &models.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      models.NotificationTypeEmail,
		Recipient: req.To,
		Subject:   req.Subject,
		Content:   req.Content,
		Status:    models.NotificationStatusPending,
		CreatedAt: time.Now(),
	}

	if err := s.repo.CreateNotification(ctx, notification); err != nil {
		return nil, errors.DatabaseError("Failed to record notification").WithError(err)
	}

	if err := s.email.Send(ctx, req); err != nil {
		logger.Error("Email delivery failed",
			slog.String("notificationId", notification.ID.String()),
			slog.Any("error", err))

		if updateErr := s.repo.UpdateNotificationStatus(ctx, notification.ID, models.NotificationStatusFailed, err.Error()); updateErr != nil {
			logger.Error("Failed to mark notification as failed", slog.Any("error", updateErr))
		}

		return nil, errors.InternalError("Failed to send email").WithError(err)
	}

	if err := s.repo.UpdateNotificationStatus(ctx, notification.ID, models.NotificationStatusSent, ""); err != nil {
		logger.Error("Failed to mark notification as sent", slog.Any("error", err))
	}

	notification.Status = models.NotificationStatusSent

	return &models.NotificationResponse{
		ID:        notification.ID,
		Type:      notification.Type,
		Status:    notification.Status,
		Recipient: notification.Recipient,
		CreatedAt: notification.CreatedAt,
	}, nil
}

func (s *notificationService) ListNotifications(ctx context.Context, userID uuid.UUID, page, size int) ([]*models.Notification, int, error) {

	notifications, total, err := s.repo.ListNotificationsByUser(ctx, userID, page, size)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to fetch notifications").WithError(err)
	}

	return notifications, total, nil
}
