package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrahimElhajji/alx-backend-graphql-crm/internal/apperr"
	"github.com/BrahimElhajji/alx-backend-graphql-crm/internal/event"
	"github.com/BrahimElhajji/alx-backend-graphql-crm/internal/model"
	"github.com/BrahimElhajji/alx-backend-graphql-crm/internal/service"
	"github.com/BrahimElhajji/alx-backend-graphql-crm/pkg/validator"
	"github.com/BrahimElhajji/alx-backend-graphql-crm/pkg/zerror"
)

func newProductService(t *testing.T, productRepo *fakeProductRepo) (service.ProductService, *fakeOutboxRepo) {
	t.Helper()

	v, err := validator.NewDefaultValidator()
	require.NoError(t, err)

	outboxRepo := &fakeOutboxRepo{}
	svc := service.NewProductService(&fakeDB{}, v, productRepo, outboxRepo)

	return svc, outboxRepo
}

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Should create product with default stock", func(t *testing.T) {
		productRepo := &fakeProductRepo{}
		svc, outboxRepo := newProductService(t, productRepo)

		product, err := svc.CreateProduct(ctx, service.CreateProductParams{
			Name:  "Widget",
			Price: decimal.RequireFromString("9.99"),
		})

		require.NoError(t, err)
		assert.Equal(t, "Widget", product.Name)
		assert.Equal(t, 0, product.Stock)
		assert.True(t, product.Price.Equal(decimal.RequireFromString("9.99")))

		require.Len(t, productRepo.products, 1)
		require.Len(t, outboxRepo.msgs, 1)
		assert.Equal(t, event.TopicProductCreated, outboxRepo.msgs[0].Topic)
	})

	t.Run("Should reject zero price", func(t *testing.T) {
		svc, _ := newProductService(t, &fakeProductRepo{})

		_, err := svc.CreateProduct(ctx, service.CreateProductParams{Name: "Widget", Price: decimal.Zero})

		var zErr zerror.ZError
		require.ErrorAs(t, err, &zErr)
		assert.Equal(t, apperr.InvalidPriceErr.Code(), zErr.Code())
	})

	t.Run("Should reject negative price", func(t *testing.T) {
		svc, _ := newProductService(t, &fakeProductRepo{})

		_, err := svc.CreateProduct(ctx, service.CreateProductParams{Name: "Widget", Price: decimal.NewFromInt(-5)})

		var zErr zerror.ZError
		require.ErrorAs(t, err, &zErr)
		assert.Equal(t, apperr.InvalidPriceErr.Code(), zErr.Code())
	})

	t.Run("Should reject negative stock", func(t *testing.T) {
		svc, _ := newProductService(t, &fakeProductRepo{})

		_, err := svc.CreateProduct(ctx, service.CreateProductParams{
			Name:  "Widget",
			Price: decimal.NewFromInt(1),
			Stock: -1,
		})

		var zErr zerror.ZError
		require.ErrorAs(t, err, &zErr)
		assert.Equal(t, apperr.InvalidStockErr.Code(), zErr.Code())
	})
}

func TestUpdateLowStockProducts(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, stocks map[string]int) *fakeProductRepo {
		t.Helper()
		repo := &fakeProductRepo{}
		// deterministic order for the partial-failure case
		for _, name := range []string{"A", "B", "C"} {
			stock, ok := stocks[name]
			if !ok {
				continue
			}
			repo.products = append(repo.products, model.Product{
				ID:        newUUID(t),
				Name:      name,
				Price:     decimal.NewFromInt(5),
				Stock:     stock,
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			})
		}
		return repo
	}

	t.Run("Should restock products below the threshold", func(t *testing.T) {
		productRepo := seed(t, map[string]int{"A": 3, "B": 10})
		svc, _ := newProductService(t, productRepo)

		updated, message, err := svc.UpdateLowStockProducts(ctx)

		require.NoError(t, err)
		assert.Equal(t, service.LowStockUpdatedMsg, message)
		require.Len(t, updated, 1)
		assert.Equal(t, "A", updated[0].Name)
		assert.Equal(t, 13, updated[0].Stock)

		// the stock = 10 product stays untouched
		assert.Equal(t, 10, productRepo.products[1].Stock)
	})

	t.Run("Should return nothing when no product is low", func(t *testing.T) {
		svc, _ := newProductService(t, seed(t, map[string]int{"A": 10, "B": 42}))

		updated, message, err := svc.UpdateLowStockProducts(ctx)

		require.NoError(t, err)
		assert.Equal(t, service.LowStockUpdatedMsg, message)
		assert.Empty(t, updated)
	})

	t.Run("Should keep earlier updates on mid-batch failure", func(t *testing.T) {
		productRepo := seed(t, map[string]int{"A": 3, "B": 4})
		productRepo.failStockUpdateFor = "B"
		svc, _ := newProductService(t, productRepo)

		updated, _, err := svc.UpdateLowStockProducts(ctx)

		require.Error(t, err)
		require.Len(t, updated, 1)
		assert.Equal(t, "A", updated[0].Name)

		// A's increment is already persisted, B's is not
		assert.Equal(t, 13, productRepo.products[0].Stock)
		assert.Equal(t, 4, productRepo.products[1].Stock)
	})
}
