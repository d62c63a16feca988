package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/XSAM/otelsql"
	"github.com/stockbuddy07/styleswap/internal/config"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	_ "github.com/lib/pq"
)

// Sentinel errors surfaced by the storage layer. Services translate these
// into AppErrors; handlers never see them directly.
var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrDuplicateCheckout = errors.New("checkout already processed")
)

type Repositories struct {
	DB           *sql.DB
	User         UserRepository
	Product      ProductRepository
	Cart         CartRepository
	Order        OrderRepository
	Coupon       CouponRepository
	Notification NotificationRepository
}

func New(cfg *config.Config) (*Repositories, error) {

	db, err := otelsql.Open("postgres", cfg.Database.GetDSN(),
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Repositories{
		DB:           db,
		User:         NewUserRepo(db),
		Product:      NewProductRepo(db),
		Cart:         NewCartRepo(db),
		Order:        NewOrderRepo(db),
		Coupon:       NewCouponRepo(db),
		Notification: NewNotificationRepo(db),
	}, nil
}

func (r *Repositories) Close() error {
	return r.DB.Close()
}
