package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/stockbuddy07/styleswap/internal/models"
	"github.com/stockbuddy07/styleswap/internal/utils"
)

type CouponRepository interface {
	GetCouponByCode(ctx context.Context, code string) (*models.Coupon, error)
	CreateCoupon(ctx context.Context, coupon *models.Coupon) error
	SetCouponActive(ctx context.Context, code string, active bool) error
}

type couponRepository struct {
	DB *sql.DB
}

func NewCouponRepo(db *sql.DB) CouponRepository {
	return &couponRepository{DB: db}
}

func (r *couponRepository) GetCouponByCode(ctx context.Context, code string) (*models.Coupon, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	coupon := &models.Coupon{}

	query := `
		SELECT code, percent, active, created_at
		FROM coupons
		WHERE code = $1
	`

	err := r.DB.QueryRowContext(dbCtx, query, code).
		Scan(&coupon.Code, &coupon.Percent, &coupon.Active, &coupon.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	return coupon, nil
}

func (r *couponRepository) CreateCoupon(ctx context.Context, coupon *models.Coupon) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO coupons (code, percent, active, created_at)
		VALUES ($1, $2, $3, NOW())
	`

	if _, err := r.DB.ExecContext(dbCtx, query, coupon.Code, coupon.Percent, coupon.Active); err != nil {
		return fmt.Errorf("failed to create coupon: %w", err)
	}

	return nil
}

func (r *couponRepository) SetCouponActive(ctx context.Context, code string, active bool) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE coupons SET active = $1 WHERE code = $2`

	result, err := r.DB.ExecContext(dbCtx, query, active, code)
	if err != nil {
		return fmt.Errorf("failed to update coupon: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}
