package service

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/google/uuid"
	"github.com/marketbase/storefront/internal/errors"
	"github.com/marketbase/storefront/internal/models"
	repository "github.com/marketbase/storefront/internal/repositories"
)

type CartService interface {
	GetCart(ctx context.Context, userID uuid.UUID) ([]*models.CartItem, error)
	AddItem(ctx context.Context, userID uuid.UUID, req *models.AddCartItemRequest) (*models.CartItem, error)
	UpdateItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*models.CartItem, error)
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) error
	ClearCart(ctx context.Context, userID uuid.UUID) error
}

type cartService struct {
	repo        repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(repo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{repo: repo, productRepo: productRepo}
}

func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) ([]*models.CartItem, error) {
	items, err := s.repo.GetCartByUser(ctx, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	return items, nil
}

func (s *cartService) AddItem(ctx context.Context, userID uuid.UUID, req *models.AddCartItemRequest) (*models.CartItem, error) {
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	if _, err := s.productRepo.GetProductByID(ctx, req.ProductID); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Product not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to fetch product").WithError(err)
	}

	item, err := s.repo.AddItem(ctx, userID, req.ProductID, quantity)
	if err != nil {
		return nil, errors.DatabaseError("Failed to add cart item").WithError(err)
	}

	return item, nil
}

// UpdateItem sets an absolute quantity. Zero or less removes the line
// and reports no resulting item.
func (s *cartService) UpdateItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*models.CartItem, error) {
	if quantity <= 0 {
		if _, err := s.repo.RemoveItem(ctx, userID, productID); err != nil {
			return nil, errors.DatabaseError("Failed to remove cart item").WithError(err)
		}

		return nil, nil
	}

	item, err := s.repo.UpdateQuantity(ctx, userID, productID, quantity)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Cart item not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to update cart item").WithError(err)
	}

	return item, nil
}

func (s *cartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) error {
	removed, err := s.repo.RemoveItem(ctx, userID, productID)
	if err != nil {
		return errors.DatabaseError("Failed to remove cart item").WithError(err)
	}

	if !removed {
		return errors.NotFoundError("Cart item not found")
	}

	return nil
}

func (s *cartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.ClearCart(ctx, userID); err != nil {
		return errors.DatabaseError("Failed to clear cart").WithError(err)
	}

	return nil
}
