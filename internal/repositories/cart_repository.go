package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/marketbase/storefront/internal/models"
	"github.com/marketbase/storefront/internal/utils"
)

type CartRepository interface {
	GetCartByUser(ctx context.Context, userID uuid.UUID) ([]*models.CartItem, error)
	AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*models.CartItem, error)
	UpdateQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) (*models.CartItem, error)
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) (bool, error)
	ClearCart(ctx context.Context, userID uuid.UUID) error
}

type cartRepository struct {
	DB *sql.DB
}

func NewCartRepo(db *sql.DB) CartRepository {
	return &cartRepository{DB: db}
}

func (r *cartRepository) GetCartByUser(ctx context.Context, userID uuid.UUID) ([]*models.CartItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT ci.id, ci.user_id, ci.product_id, ci.quantity,
		       p.id, p.name, p.description, p.price, p.stock, p.image_url, p.category, p.created_at
		FROM cart_items ci
		INNER JOIN products p ON ci.product_id = p.id
		WHERE ci.user_id = $1`

	rows, err := r.DB.QueryContext(dbCtx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart items: %w", err)
	}

	defer rows.Close()

	items := []*models.CartItem{}

	for rows.Next() {
		item := &models.CartItem{}
		product := &models.Product{}

		err := rows.Scan(&item.ID, &item.UserID, &item.ProductID, &item.Quantity,
			&product.ID, &product.Name, &product.Description, &product.Price,
			&product.Stock, &product.ImageURL, &product.Category, &product.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}

		item.Product = product
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// AddItem merges into an existing line in a single statement: the
// unique (user_id, product_id) index turns a concurrent double-add
// into an increment instead of a lost update.
func (r *cartRepository) AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*models.CartItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO cart_items (id, user_id, product_id, quantity)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
		RETURNING id, quantity`

	item := &models.CartItem{
		UserID:    userID,
		ProductID: productID,
	}

	err := r.DB.QueryRowContext(dbCtx, query, uuid.New(), userID, productID, quantity).
		Scan(&item.ID, &item.Quantity)
	if err != nil {
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}

	return item, nil
}

func (r *cartRepository) UpdateQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) (*models.CartItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE cart_items
		SET quantity = $1
		WHERE user_id = $2 AND product_id = $3
		RETURNING id, quantity`

	item := &models.CartItem{
		UserID:    userID,
		ProductID: productID,
	}

	err := r.DB.QueryRowContext(dbCtx, query, quantity, userID, productID).
		Scan(&item.ID, &item.Quantity)
	if err != nil {
		return nil, err
	}

	return item, nil
}

func (r *cartRepository) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`

	result, err := r.DB.ExecContext(dbCtx, query, userID, productID)
	if err != nil {
		return false, fmt.Errorf("failed to remove cart item: %w", err)
	}

	deletedRows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get deleted rows: %w", err)
	}

	return deletedRows > 0, nil
}

func (r *cartRepository) ClearCart(ctx context.Context, userID uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `DELETE FROM cart_items WHERE user_id = $1`

	if _, err := r.DB.ExecContext(dbCtx, query, userID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return nil
}
