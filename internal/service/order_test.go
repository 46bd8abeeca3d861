package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrahimElhajji/alx-backend-graphql-crm/internal/apperr"
	"github.com/BrahimElhajji/alx-backend-graphql-crm/internal/event"
	"github.com/BrahimElhajji/alx-backend-graphql-crm/internal/model"
	"github.com/BrahimElhajji/alx-backend-graphql-crm/internal/service"
	"github.com/BrahimElhajji/alx-backend-graphql-crm/pkg/zerror"
)

type orderFixture struct {
	svc        service.OrderService
	customer   model.Customer
	products   []model.Product
	orderRepo  *fakeOrderRepo
	outboxRepo *fakeOutboxRepo
}

func newOrderFixture(t *testing.T, prices ...string) orderFixture {
	t.Helper()

	customer := model.Customer{
		ID:    newUUID(t),
		Name:  "Alice",
		Email: "alice@example.com",
	}
	customerRepo := &fakeCustomerRepo{customers: []model.Customer{customer}}

	productRepo := &fakeProductRepo{}
	for i, price := range prices {
		productRepo.products = append(productRepo.products, model.Product{
			ID:    newUUID(t),
			Name:  fmt.Sprintf("Product %d", i),
			Price: decimal.RequireFromString(price),
			Stock: 100,
		})
	}

	orderRepo := &fakeOrderRepo{}
	outboxRepo := &fakeOutboxRepo{}
	svc := service.NewOrderService(&fakeDB{}, customerRepo, productRepo, orderRepo, outboxRepo)

	return orderFixture{
		svc:        svc,
		customer:   customer,
		products:   productRepo.products,
		orderRepo:  orderRepo,
		outboxRepo: outboxRepo,
	}
}

func TestCreateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("Should sum product prices into total amount", func(t *testing.T) {
		f := newOrderFixture(t, "10.00", "15.50")

		order, err := f.svc.CreateOrder(ctx, service.CreateOrderParams{
			CustomerID: f.customer.ID,
			ProductIDs: []uuid.UUID{f.products[0].ID, f.products[1].ID},
		})

		require.NoError(t, err)
		assert.Equal(t, "25.5", order.TotalAmount.String())
		assert.Equal(t, f.customer.ID, order.CustomerID)
		assert.Len(t, order.Products, 2)

		require.Len(t, f.orderRepo.orders, 1)
		require.Len(t, f.outboxRepo.msgs, 1)
		assert.Equal(t, event.TopicOrderCreated, f.outboxRepo.msgs[0].Topic)
	})

	t.Run("Should default order date to now", func(t *testing.T) {
		f := newOrderFixture(t, "10.00")

		before := time.Now()
		order, err := f.svc.CreateOrder(ctx, service.CreateOrderParams{
			CustomerID: f.customer.ID,
			ProductIDs: []uuid.UUID{f.products[0].ID},
		})

		require.NoError(t, err)
		assert.False(t, order.OrderDate.Before(before))
		assert.False(t, order.OrderDate.After(time.Now()))
	})

	t.Run("Should keep an explicit order date", func(t *testing.T) {
		f := newOrderFixture(t, "10.00")

		orderDate := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
		order, err := f.svc.CreateOrder(ctx, service.CreateOrderParams{
			CustomerID: f.customer.ID,
			ProductIDs: []uuid.UUID{f.products[0].ID},
			OrderDate:  &orderDate,
		})

		require.NoError(t, err)
		assert.True(t, order.OrderDate.Equal(orderDate))
	})

	t.Run("Should reject unknown customer", func(t *testing.T) {
		f := newOrderFixture(t, "10.00")

		_, err := f.svc.CreateOrder(ctx, service.CreateOrderParams{
			CustomerID: newUUID(t),
			ProductIDs: []uuid.UUID{f.products[0].ID},
		})

		var zErr zerror.ZError
		require.ErrorAs(t, err, &zErr)
		assert.Equal(t, apperr.CustomerNotFoundErr.Code(), zErr.Code())
		assert.Empty(t, f.orderRepo.orders)
	})

	t.Run("Should reject empty product list before persisting", func(t *testing.T) {
		f := newOrderFixture(t)

		_, err := f.svc.CreateOrder(ctx, service.CreateOrderParams{
			CustomerID: f.customer.ID,
			ProductIDs: []uuid.UUID{},
		})

		var zErr zerror.ZError
		require.ErrorAs(t, err, &zErr)
		assert.Equal(t, apperr.EmptyProductListErr.Code(), zErr.Code())
		assert.Empty(t, f.orderRepo.orders)
		assert.Empty(t, f.outboxRepo.msgs)
	})

	t.Run("Should name the first unresolved product id", func(t *testing.T) {
		f := newOrderFixture(t, "10.00")

		unknown := newUUID(t)
		_, err := f.svc.CreateOrder(ctx, service.CreateOrderParams{
			CustomerID: f.customer.ID,
			ProductIDs: []uuid.UUID{unknown, f.products[0].ID},
		})

		var zErr zerror.ZError
		require.ErrorAs(t, err, &zErr)
		assert.Equal(t, apperr.ProductNotFoundErr.Code(), zErr.Code())
		assert.Equal(t, fmt.Sprintf("Invalid product ID: %s", unknown), zErr.Msg())
		assert.Empty(t, f.orderRepo.orders)
	})
}
