package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/stockbuddy07/styleswap/internal/models"
	"github.com/stockbuddy07/styleswap/internal/utils"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type OrderRepository interface {
	CreateOrders(ctx context.Context, orders []*models.Order) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetOrdersByCheckoutID(ctx context.Context, checkoutID uuid.UUID) ([]models.Order, error)
	ListOrdersByCustomer(ctx context.Context, customerID uuid.UUID, page, size int) ([]models.Order, int, error)
	ListOrdersByVendor(ctx context.Context, vendorID uuid.UUID, page, size int) ([]models.Order, int, error)
	ListOrders(ctx context.Context, page, size int) ([]models.Order, int, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error
	UpdateFeedback(ctx context.Context, id uuid.UUID, feedback *models.Feedback) error
	UpdateIssues(ctx context.Context, id uuid.UUID, issues []models.Issue) error
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

const orderColumns = `id, checkout_id, customer_id, customer_name, vendor_id, shop_name, items,
	total_amount, discount_amount, rental_start_date, rental_end_date, payment_method, status,
	feedback, issues, order_date, updated_at`

// CreateOrders persists a whole checkout in one transaction: every per-vendor
// order insert plus every availability decrement commits or rolls back
// together. The decrement is conditional on available_quantity >= quantity,
// which closes the lost-update race between concurrent checkouts; zero rows
// affected means another checkout got the units first.
func (r *orderRepository) CreateOrders(ctx context.Context, orders []*models.Order) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		_ = tx.Rollback()
	}()

	insertQuery := `
		INSERT INTO orders (id, checkout_id, customer_id, customer_name, vendor_id, shop_name, items, total_amount, discount_amount, rental_start_date, rental_end_date, payment_method, status, issues, order_date, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, '[]', NOW(), NOW())
	`

	decrementQuery := `
		UPDATE products
		SET available_quantity = available_quantity - $2, updated_at = NOW()
		WHERE id = $1 AND available_quantity >= $2
	`

	for _, order := range orders {

		itemsJSON, err := json.Marshal(order.Items)
		if err != nil {
			return fmt.Errorf("failed to marshal order items: %w", err)
		}

		_, err = tx.ExecContext(dbCtx, insertQuery,
			order.ID, order.CheckoutID, order.CustomerID, order.CustomerName,
			order.VendorID, order.ShopName, itemsJSON,
			order.TotalAmount, order.DiscountAmount,
			order.RentalStartDate, order.RentalEndDate,
			order.PaymentMethod, order.Status)
		if err != nil {

			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
				return ErrDuplicateCheckout
			}

			return fmt.Errorf("failed to insert order: %w", err)
		}

		for _, item := range order.Items {

			result, err := tx.ExecContext(dbCtx, decrementQuery, item.ProductID, item.Quantity)
			if err != nil {
				return fmt.Errorf("failed to decrement availability: %w", err)
			}

			affected, err := result.RowsAffected()
			if err != nil {
				return fmt.Errorf("failed to read affected rows: %w", err)
			}

			if affected == 0 {
				return fmt.Errorf("product %s: %w", item.ProductName, ErrInsufficientStock)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit checkout transaction: %w", err)
	}

	return nil
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	row := r.DB.QueryRowContext(dbCtx, query, id)

	order, err := scanOrder(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("failed to get the order: %w", err)
	}

	return order, nil
}

func (r *orderRepository) GetOrdersByCheckoutID(ctx context.Context, checkoutID uuid.UUID) ([]models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + orderColumns + ` FROM orders WHERE checkout_id = $1 ORDER BY order_date, vendor_id`

	rows, err := r.DB.QueryContext(dbCtx, query, checkoutID)
	if err != nil {
		return nil, fmt.Errorf("failed to get checkout orders: %w", err)
	}

	defer rows.Close()

	return scanOrders(rows)
}

func (r *orderRepository) ListOrdersByCustomer(ctx context.Context, customerID uuid.UUID, page, size int) ([]models.Order, int, error) {
	return r.list(ctx, `customer_id = $1`, customerID, page, size)
}

func (r *orderRepository) ListOrdersByVendor(ctx context.Context, vendorID uuid.UUID, page, size int) ([]models.Order, int, error) {
	return r.list(ctx, `vendor_id = $1`, vendorID, page, size)
}

func (r *orderRepository) ListOrders(ctx context.Context, page, size int) ([]models.Order, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	if err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM orders`).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * size

	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY order_date DESC LIMIT $1 OFFSET $2`

	rows, err := r.DB.QueryContext(dbCtx, query, size, offset)
	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()

	orders, err := scanOrders(rows)
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (r *orderRepository) list(ctx context.Context, where string, key uuid.UUID, page, size int) ([]models.Order, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	countQuery := `SELECT COUNT(*) FROM orders WHERE ` + where

	if err := r.DB.QueryRowContext(dbCtx, countQuery, key).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * size

	query := `SELECT ` + orderColumns + ` FROM orders WHERE ` + where + ` ORDER BY order_date DESC LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(dbCtx, query, key, size, offset)
	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()

	orders, err := scanOrders(rows)
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (r *orderRepository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3`

	return r.exec(dbCtx, query, status, time.Now(), id)
}

func (r *orderRepository) UpdateFeedback(ctx context.Context, id uuid.UUID, feedback *models.Feedback) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	feedbackJSON, err := json.Marshal(feedback)
	if err != nil {
		return fmt.Errorf("failed to marshal feedback: %w", err)
	}

	query := `UPDATE orders SET feedback = $1, updated_at = $2 WHERE id = $3`

	return r.exec(dbCtx, query, feedbackJSON, time.Now(), id)
}

func (r *orderRepository) UpdateIssues(ctx context.Context, id uuid.UUID, issues []models.Issue) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	issuesJSON, err := json.Marshal(issues)
	if err != nil {
		return fmt.Errorf("failed to marshal issues: %w", err)
	}

	query := `UPDATE orders SET issues = $1, updated_at = $2 WHERE id = $3`

	return r.exec(dbCtx, query, issuesJSON, time.Now(), id)
}

func (r *orderRepository) exec(ctx context.Context, query string, args ...any) error {

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update the order: %w", err)
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*models.Order, error) {

	order := &models.Order{}

	var itemsJSON, issuesJSON []byte
	var feedbackJSON []byte

	err := row.Scan(
		&order.ID, &order.CheckoutID, &order.CustomerID, &order.CustomerName,
		&order.VendorID, &order.ShopName, &itemsJSON,
		&order.TotalAmount, &order.DiscountAmount,
		&order.RentalStartDate, &order.RentalEndDate,
		&order.PaymentMethod, &order.Status,
		&feedbackJSON, &issuesJSON,
		&order.OrderDate, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order items: %w", err)
	}

	if len(feedbackJSON) > 0 {
		if err := json.Unmarshal(feedbackJSON, &order.Feedback); err != nil {
			return nil, fmt.Errorf("failed to unmarshal feedback: %w", err)
		}
	}

	if len(issuesJSON) > 0 {
		if err := json.Unmarshal(issuesJSON, &order.Issues); err != nil {
			return nil, fmt.Errorf("failed to unmarshal issues: %w", err)
		}
	}

	return order, nil
}

func scanOrders(rows *sql.Rows) ([]models.Order, error) {

	var orders []models.Order

	for rows.Next() {

		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}

		orders = append(orders, *order)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
