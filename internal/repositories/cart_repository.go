package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/stockbuddy07/styleswap/internal/models"
	"github.com/stockbuddy07/styleswap/internal/utils"
	"github.com/google/uuid"
)

// CartRepository is the pluggable persistence adapter behind the cart store.
// One row per user; line items live in a JSONB column so the stored shape
// matches the in-memory one exactly.
type CartRepository interface {
	GetCartByUserID(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	SaveCart(ctx context.Context, cart *models.Cart) error
}

type cartRepository struct {
	DB *sql.DB
}

func NewCartRepo(db *sql.DB) CartRepository {
	return &cartRepository{DB: db}
}

func (r *cartRepository) GetCartByUserID(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, user_id, items, created_at, updated_at
		FROM carts
		WHERE user_id = $1
	`

	cart := &models.Cart{}

	var itemsJSON []byte

	err := r.DB.QueryRowContext(dbCtx, query, userID).
		Scan(&cart.ID, &cart.UserID, &itemsJSON, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	if err := json.Unmarshal(itemsJSON, &cart.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart items: %w", err)
	}

	return cart, nil
}

// SaveCart upserts on user_id, so the first mutation creates the row and
// every later one replaces the item list wholesale.
func (r *cartRepository) SaveCart(ctx context.Context, cart *models.Cart) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	itemsJSON, err := json.Marshal(cart.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart items: %w", err)
	}

	query := `
		INSERT INTO carts (id, user_id, items, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), $4)
		ON CONFLICT (user_id)
		DO UPDATE SET items = EXCLUDED.items, updated_at = EXCLUDED.updated_at
		RETURNING id, created_at, updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query, cart.ID, cart.UserID, itemsJSON, time.Now()).
		Scan(&cart.ID, &cart.CreatedAt, &cart.UpdatedAt)
}
