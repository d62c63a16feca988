package service

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"strings"
	"time"

	"github.com/stockbuddy07/styleswap/internal/errors"
	"github.com/stockbuddy07/styleswap/internal/models"
	repository "github.com/stockbuddy07/styleswap/internal/repositories"
)

type CouponService interface {
	CreateCoupon(ctx context.Context, claims *models.Claims, req *models.CreateCouponRequest) (*models.Coupon, error)
	DeactivateCoupon(ctx context.Context, claims *models.Claims, code string) error
}

type couponService struct {
	repo repository.CouponRepository
}

func NewCouponService(repo repository.CouponRepository) CouponService {
	return &couponService{repo: repo}
}

// CreateCoupon registers a new active coupon. Codes are stored uppercase so
// lookups at checkout are case insensitive.
func (s *couponService) CreateCoupon(ctx context.Context, claims *models.Claims, req *models.CreateCouponRequest) (*models.Coupon, error) {

	if !claims.IsAdmin() {
		return nil, errors.ForbiddenError("Only admins can create coupons")
	}

	coupon := &models.Coupon{
		Code:      strings.ToUpper(req.Code),
		Percent:   req.Percent,
		Active:    true,
		CreatedAt: time.Now(),
	}

	if err := s.repo.CreateCoupon(ctx, coupon); err != nil {
		return nil, errors.DatabaseError("Failed to create coupon").WithError(err)
	}

	return coupon, nil
}

func (s *couponService) DeactivateCoupon(ctx context.Context, claims *models.Claims, code string) error {

	if !claims.IsAdmin() {
		return errors.ForbiddenError("Only admins can deactivate coupons")
	}

	if err := s.repo.SetCouponActive(ctx, strings.ToUpper(code), false); err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return errors.NotFoundError("Coupon not found")
		}

		return errors.DatabaseError("Failed to deactivate coupon").WithError(err)
	}

	return nil
}
