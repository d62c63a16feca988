package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/stockbuddy07/styleswap/internal/models"
	"github.com/stockbuddy07/styleswap/internal/utils"
	"github.com/google/uuid"
)

type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
	UpdateNotificationStatus(ctx context.Context, id uuid.UUID, status models.NotificationStatus, errorMsg string) error
	ListNotificationsByUser(ctx context.Context, userID uuid.UUID, page, size int) ([]*models.Notification, int, error)
}

type notificationRepository struct {
	DB *sql.DB
}

func NewNotificationRepo(db *sql.DB) NotificationRepository {
	return &notificationRepository{DB: db}
}

func (r *notificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO notifications (id, user_id, type, recipient, subject, content, status, error_message, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`

	_, err := r.DB.ExecContext(dbCtx, query,
		notification.ID, notification.UserID, notification.Type, notification.Recipient,
		notification.Subject, notification.Content, notification.Status, notification.ErrorMessage)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

func (r *notificationRepository) UpdateNotificationStatus(ctx context.Context, id uuid.UUID, status models.NotificationStatus, errorMsg string) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE notifications SET status = $1, error_message = $2, updated_at = $3
		WHERE id = $4
	`

	result, err := r.DB.ExecContext(dbCtx, query, status, errorMsg, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update the notification status: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *notificationRepository) ListNotificationsByUser(ctx context.Context, userID uuid.UUID, page, size int) ([]*models.Notification, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	countQuery := `SELECT COUNT(*) FROM notifications WHERE user_id = $1`

	if err := r.DB.QueryRowContext(dbCtx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * size

	query := `
		SELECT id, user_id, type, recipient, subject, content, status, error_message, created_at, updated_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.DB.QueryContext(dbCtx, query, userID, size, offset)
	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()

	var notifications []*models.Notification

	for rows.Next() {

		notification := &models.Notification{}

		err := rows.Scan(
			&notification.ID, &notification.UserID, &notification.Type, &notification.Recipient,
			&notification.Subject, &notification.Content, &notification.Status, &notification.ErrorMessage,
			&notification.CreatedAt, &notification.UpdatedAt)
		if err != nil {
			return nil, 0, err
		}

		notifications = append(notifications, notification)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return notifications, total, nil
}
