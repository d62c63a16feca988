package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/stockbuddy07/styleswap/internal/models"
	"github.com/stockbuddy07/styleswap/internal/utils"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	ListProducts(ctx context.Context, page, size int, category string) ([]*models.Product, int, error)
	ListProductsByVendor(ctx context.Context, vendorID uuid.UUID, page, size int) ([]*models.Product, int, error)
	AddStock(ctx context.Context, id uuid.UUID, quantity int) (*models.Product, error)
	ReleaseStock(ctx context.Context, id uuid.UUID, quantity int) (int, error)
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

const productColumns = `id, vendor_id, shop_name, name, category, description, price_per_day,
	security_deposit, stock_quantity, available_quantity, sizes, images, created_at, updated_at`

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO products (vendor_id, shop_name, name, category, description, price_per_day, security_deposit, stock_quantity, available_quantity, sizes, images)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query,
		product.VendorID, product.ShopName, product.Name, product.Category, product.Description,
		product.PricePerDay, product.SecurityDeposit, product.StockQuantity, product.AvailableQuantity,
		pq.Array(product.Sizes), pq.Array(product.Images)).
		Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

func (r *productRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	product := &models.Product{}

	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(
		&product.ID, &product.VendorID, &product.ShopName, &product.Name, &product.Category,
		&product.Description, &product.PricePerDay, &product.SecurityDeposit,
		&product.StockQuantity, &product.AvailableQuantity,
		pq.Array(&product.Sizes), pq.Array(&product.Images),
		&product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	return product, nil
}

// UpdateProduct writes the descriptive fields only. Stock columns are owned
// by AddStock/ReleaseStock and the checkout transaction.
func (r *productRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE products
		SET name = $1, category = $2, description = $3, price_per_day = $4, security_deposit = $5, sizes = $6, images = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query,
		product.Name, product.Category, product.Description, product.PricePerDay,
		product.SecurityDeposit, pq.Array(product.Sizes), pq.Array(product.Images), product.ID).
		Scan(&product.UpdatedAt)
}

func (r *productRepository) ListProducts(ctx context.Context, page, size int, category string) ([]*models.Product, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	countQuery := `SELECT COUNT(*) FROM products WHERE ($1 = '' OR category = $1)`

	if err := r.DB.QueryRowContext(dbCtx, countQuery, category).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * size

	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE ($1 = '' OR category = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.DB.QueryContext(dbCtx, query, category, size, offset)
	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *productRepository) ListProductsByVendor(ctx context.Context, vendorID uuid.UUID, page, size int) ([]*models.Product, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	countQuery := `SELECT COUNT(*) FROM products WHERE vendor_id = $1`

	if err := r.DB.QueryRowContext(dbCtx, countQuery, vendorID).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * size

	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE vendor_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.DB.QueryContext(dbCtx, query, vendorID, size, offset)
	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// AddStock grows both the total and the availability in one statement, so the
// 0 <= available <= stock invariant cannot be observed broken mid-update.
func (r *productRepository) AddStock(ctx context.Context, id uuid.UUID, quantity int) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	product := &models.Product{ID: id}

	query := `
		UPDATE products
		SET stock_quantity = stock_quantity + $2, available_quantity = available_quantity + $2, updated_at = NOW()
		WHERE id = $1
		RETURNING stock_quantity, available_quantity, updated_at
	`

	err := r.DB.QueryRowContext(dbCtx, query, id, quantity).
		Scan(&product.StockQuantity, &product.AvailableQuantity, &product.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("failed to add stock: %w", err)
	}

	return product, nil
}

// ReleaseStock returns rented units to availability, ceiling-clamped at the
// total stock. Single atomic statement; no read-modify-write.
func (r *productRepository) ReleaseStock(ctx context.Context, id uuid.UUID, quantity int) (int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var available int

	query := `
		UPDATE products
		SET available_quantity = LEAST(available_quantity + $2, stock_quantity), updated_at = NOW()
		WHERE id = $1
		RETURNING available_quantity
	`

	err := r.DB.QueryRowContext(dbCtx, query, id, quantity).Scan(&available)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, err
		}

		return 0, fmt.Errorf("failed to release stock: %w", err)
	}

	return available, nil
}

func scanProducts(rows *sql.Rows) ([]*models.Product, error) {

	var products []*models.Product

	for rows.Next() {
		product := &models.Product{}

		err := rows.Scan(
			&product.ID, &product.VendorID, &product.ShopName, &product.Name, &product.Category,
			&product.Description, &product.PricePerDay, &product.SecurityDeposit,
			&product.StockQuantity, &product.AvailableQuantity,
			pq.Array(&product.Sizes), pq.Array(&product.Images),
			&product.CreatedAt, &product.UpdatedAt)
		if err != nil {
			return nil, err
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}
