package service_test

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"
	apperrors "github.com/marketbase/storefront/internal/errors"
	"github.com/marketbase/storefront/internal/models"
	service "github.com/marketbase/storefront/internal/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProductService_CreateProduct(t *testing.T) {
	t.Run("Success - Markup Is Stripped From Name And Description", func(t *testing.T) {
		// Arrange
		repo := new(mockProductRepo)
		svc := service.NewProductService(repo)

		repo.On("CreateProduct", mock.Anything, mock.MatchedBy(func(product *models.Product) bool {
			return product.Name == "Walnut Desk" && product.Description == "Solid wood"
		})).Return(nil)

		req := &models.CreateProductRequest{
			Name:        `Walnut Desk<script>alert("x")</script>`,
			Description: `Solid wood<iframe src="https://evil.example.com"></iframe>`,
			Price:       decimal.RequireFromString("249.99"),
			Stock:       12,
		}

		// Act
		product, err := svc.CreateProduct(t.Context(), req)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Walnut Desk", product.Name)
		repo.AssertExpectations(t)
	})

	t.Run("Failure - Non-Positive Price", func(t *testing.T) {
		// Arrange
		repo := new(mockProductRepo)
		svc := service.NewProductService(repo)

		req := &models.CreateProductRequest{Name: "Walnut Desk", Price: decimal.Zero}

		// Act
		product, err := svc.CreateProduct(t.Context(), req)

		// Assert
		require.Error(t, err)
		assert.Nil(t, product)

		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
		repo.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
	})
}

func TestProductService_UpdateProduct(t *testing.T) {
	productID := uuid.New()

	existing := func() *models.Product {
		return &models.Product{
			ID:    productID,
			Name:  "Walnut Desk",
			Price: decimal.RequireFromString("249.99"),
			Stock: 12,
		}
	}

	t.Run("Success - Only Submitted Fields Change", func(t *testing.T) {
		// Arrange
		repo := new(mockProductRepo)
		svc := service.NewProductService(repo)

		newPrice := decimal.RequireFromString("199.99")

		repo.On("GetProductByID", mock.Anything, productID).Return(existing(), nil)
		repo.On("UpdateProduct", mock.Anything, mock.MatchedBy(func(product *models.Product) bool {
			return product.Price.Equal(newPrice) && product.Name == "Walnut Desk" && product.Stock == 12
		})).Return(nil)

		// Act
		product, err := svc.UpdateProduct(t.Context(), productID, &models.UpdateProductRequest{Price: &newPrice})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "199.99", product.Price.StringFixed(2))
		assert.Equal(t, "Walnut Desk", product.Name, "untouched fields keep their values")
		repo.AssertExpectations(t)
	})

	t.Run("Failure - Unknown Product", func(t *testing.T) {
		// Arrange
		repo := new(mockProductRepo)
		svc := service.NewProductService(repo)

		repo.On("GetProductByID", mock.Anything, productID).Return(nil, sql.ErrNoRows)

		// Act
		product, err := svc.UpdateProduct(t.Context(), productID, &models.UpdateProductRequest{})

		// Assert
		require.Error(t, err)
		assert.Nil(t, product)

		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
		repo.AssertNotCalled(t, "UpdateProduct", mock.Anything, mock.Anything)
	})
}

func TestProductService_DeleteProduct(t *testing.T) {
	productID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		repo := new(mockProductRepo)
		svc := service.NewProductService(repo)

		repo.On("DeleteProduct", mock.Anything, productID).Return(true, nil)

		// Act & Assert
		require.NoError(t, svc.DeleteProduct(t.Context(), productID))
		repo.AssertExpectations(t)
	})

	t.Run("Failure - Unknown Product", func(t *testing.T) {
		// Arrange
		repo := new(mockProductRepo)
		svc := service.NewProductService(repo)

		repo.On("DeleteProduct", mock.Anything, productID).Return(false, nil)

		// Act
		err := svc.DeleteProduct(t.Context(), productID)

		// Assert
		require.Error(t, err)

		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
	})
}

func TestProductService_GetProductByID(t *testing.T) {
	productID := uuid.New()

	t.Run("Failure - Unknown Product", func(t *testing.T) {
		// Arrange
		repo := new(mockProductRepo)
		svc := service.NewProductService(repo)

		repo.On("GetProductByID", mock.Anything, productID).Return(nil, sql.ErrNoRows)

		// Act
		product, err := svc.GetProductByID(t.Context(), productID)

		// Assert
		require.Error(t, err)
		assert.Nil(t, product)

		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
	})
}

func TestProductService_ListProducts(t *testing.T) {
	t.Run("Success - Empty Catalog", func(t *testing.T) {
		// Arrange
		repo := new(mockProductRepo)
		svc := service.NewProductService(repo)

		repo.On("ListProducts", mock.Anything).Return([]*models.Product{}, nil)

		// Act
		products, err := svc.ListProducts(t.Context())

		// Assert
		require.NoError(t, err)
		assert.Empty(t, products)
	})
}
