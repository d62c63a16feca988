package service_test

import (
	"context"
	"testing"

	appErrors "github.com/stockbuddy07/styleswap/internal/errors"
	"github.com/stockbuddy07/styleswap/internal/models"
	"github.com/stockbuddy07/styleswap/internal/repositories/mocks"
	service "github.com/stockbuddy07/styleswap/internal/services"
	sendgridmocks "github.com/stockbuddy07/styleswap/pkg/sendgrid/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupNotificationServiceTest(t *testing.T) (service.NotificationService, *mocks.NotificationRepository, *sendgridmocks.EmailService) {
	t.Helper()

	mockRepo := mocks.NewNotificationRepository(t)
	mockEmail := sendgridmocks.NewEmailService(t)
	notificationService := service.NewNotificationService(mockRepo, mockEmail)

	return notificationService, mockRepo, mockEmail
}

func TestNotificationService_SendEmail(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	req := &models.EmailNotificationRequest{
		To:      "renter@example.com",
		Subject: "Your rental is due back soon",
		Content: "Please return the Sequin Gown by Friday.",
	}

	t.Run("Success - Delivered And Marked Sent", func(t *testing.T) {
		// Arrange
		notificationService, mockRepo, mockEmail := setupNotificationServiceTest(t)

		var notificationID uuid.UUID

		mockRepo.On("CreateNotification", ctx, mock.MatchedBy(func(n *models.Notification) bool {
			return n.UserID == userID &&
				n.Type == models.NotificationTypeEmail &&
				n.Recipient == req.To &&
				n.Status == models.NotificationStatusPending
		})).Run(func(args mock.Arguments) {
			notificationID = args.Get(1).(*models.Notification).ID
		}).Return(nil).Once()

		mockEmail.On("Send", ctx, req).Return(nil).Once()

		mockRepo.On("UpdateNotificationStatus", ctx, mock.MatchedBy(func(id uuid.UUID) bool {
			return id == notificationID
		}), models.NotificationStatusSent, "").Return(nil).Once()

		// Act
		resp, err := notificationService.SendEmail(ctx, userID, req)

		// Assert
		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, models.NotificationStatusSent, resp.Status)
		assert.Equal(t, req.To, resp.Recipient)
		assert.Equal(t, models.NotificationTypeEmail, resp.Type)
	})

	t.Run("Failure - Delivery Error Marks Notification Failed", func(t *testing.T) {
		// Arrange
		notificationService, mockRepo, mockEmail := setupNotificationServiceTest(t)

		mockRepo.On("CreateNotification", ctx, mock.Anything).Return(nil).Once()
		mockEmail.On("Send", ctx, req).Return(assert.AnError).Once()
		mockRepo.On("UpdateNotificationStatus", ctx, mock.Anything, models.NotificationStatusFailed, assert.AnError.Error()).Return(nil).Once()

		// Act
		resp, err := notificationService.SendEmail(ctx, userID, req)

		// Assert
		require.Error(t, err)
		assert.Nil(t, resp)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeInternal, appErr.Code)
	})

	t.Run("Failure - Repository Error Skips Delivery", func(t *testing.T) {
		// Arrange
		notificationService, mockRepo, mockEmail := setupNotificationServiceTest(t)

		mockRepo.On("CreateNotification", ctx, mock.Anything).Return(assert.AnError).Once()

		// Act
		resp, err := notificationService.SendEmail(ctx, userID, req)

		// Assert
		require.Error(t, err)
		assert.Nil(t, resp)
		mockEmail.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})
}

func TestNotificationService_ListNotifications(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		notificationService, mockRepo, _ := setupNotificationServiceTest(t)
		expected := []*models.Notification{
			{ID: uuid.New(), UserID: userID, Status: models.NotificationStatusSent},
			{ID: uuid.New(), UserID: userID, Status: models.NotificationStatusFailed},
		}

		mockRepo.On("ListNotificationsByUser", ctx, userID, 1, 10).Return(expected, 2, nil).Once()

		// Act
		notifications, total, err := notificationService.ListNotifications(ctx, userID, 1, 10)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		assert.Equal(t, expected, notifications)
	})

	t.Run("Failure - Repository Error", func(t *testing.T) {
		// Arrange
		notificationService, mockRepo, _ := setupNotificationServiceTest(t)

		mockRepo.On("ListNotificationsByUser", ctx, userID, 1, 10).Return(nil, 0, assert.AnError).Once()

		// Act
		notifications, total, err := notificationService.ListNotifications(ctx, userID, 1, 10)

		// Assert
		require.Error(t, err)
		assert.Nil(t, notifications)
		assert.Zero(t, total)
	})
}
