package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/BrahimElhajji/alx-backend-graphql-crm/internal/apperr"
	"github.com/BrahimElhajji/alx-backend-graphql-crm/internal/model"
	"github.com/BrahimElhajji/alx-backend-graphql-crm/internal/repository"
	"github.com/BrahimElhajji/alx-backend-graphql-crm/internal/storage/db"
)

func newUUID(t *testing.T) uuid.UUID {
	t.Helper()
	id, err := uuid.NewV7()
	require.NoError(t, err)
	return id
}

// fakeDB runs transaction functions directly against itself. The embedded
// interface is never touched because the fake repositories ignore their DB.
type fakeDB struct {
	db.DB
}

func (f *fakeDB) WithTx(_ context.Context, txFunc func(db.DB) error) error {
	return txFunc(f)
}

type fakeCustomerRepo struct {
	customers []model.Customer
}

func (r *fakeCustomerRepo) WithDB(db.DB) repository.CustomerRepository { return r }

func (r *fakeCustomerRepo) CreateCustomer(_ context.Context, customer model.Customer) error {
	for _, existing := range r.customers {
		if existing.Email == customer.Email {
			return apperr.DuplicateEmailErr
		}
	}
	r.customers = append(r.customers, customer)
	return nil
}

func (r *fakeCustomerRepo) EmailExists(_ context.Context, email string) (bool, error) {
	for _, existing := range r.customers {
		if existing.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCustomerRepo) GetCustomer(_ context.Context, id uuid.UUID) (model.Customer, error) {
	for _, existing := range r.customers {
		if existing.ID == id {
			return existing, nil
		}
	}
	return model.Customer{}, apperr.CustomerNotFoundErr
}

func (r *fakeCustomerRepo) ListCustomers(_ context.Context, _ repository.ListCustomersParams) ([]model.Customer, error) {
	return r.customers, nil
}

type fakeProductRepo struct {
	products []model.Product

	// failStockUpdateFor makes UpdateProductStock fail for the named product,
	// simulating a mid-batch persistence failure.
	failStockUpdateFor string
}

func (r *fakeProductRepo) WithDB(db.DB) repository.ProductRepository { return r }

func (r *fakeProductRepo) CreateProduct(_ context.Context, product model.Product) error {
	r.products = append(r.products, product)
	return nil
}

func (r *fakeProductRepo) GetProduct(_ context.Context, id uuid.UUID) (model.Product, error) {
	for _, existing := range r.products {
		if existing.ID == id {
			return existing, nil
		}
	}
	return model.Product{}, apperr.ProductNotFoundErr
}

func (r *fakeProductRepo) ListProducts(_ context.Context, _ repository.ListProductsParams) ([]model.Product, error) {
	return r.products, nil
}

func (r *fakeProductRepo) ListLowStockProducts(_ context.Context, threshold int) ([]model.Product, error) {
	lowStock := make([]model.Product, 0)
	for _, product := range r.products {
		if product.Stock < threshold {
			lowStock = append(lowStock, product)
		}
	}
	return lowStock, nil
}

func (r *fakeProductRepo) ListProductsByOrder(_ context.Context, _ uuid.UUID) ([]model.Product, error) {
	return r.products, nil
}

func (r *fakeProductRepo) UpdateProductStock(_ context.Context, product model.Product) error {
	if r.failStockUpdateFor == product.Name {
		return fmt.Errorf("stock update failed for %s", product.Name)
	}
	for i, existing := range r.products {
		if existing.ID == product.ID {
			r.products[i] = product
			return nil
		}
	}
	return apperr.ProductNotFoundErr
}

type fakeOrderRepo struct {
	orders []model.Order
}

func (r *fakeOrderRepo) WithDB(db.DB) repository.OrderRepository { return r }

func (r *fakeOrderRepo) CreateOrder(_ context.Context, order model.Order) error {
	r.orders = append(r.orders, order)
	return nil
}

func (r *fakeOrderRepo) ListOrders(_ context.Context, _ repository.ListOrdersParams) ([]model.Order, error) {
	return r.orders, nil
}

type fakeOutboxRepo struct {
	msgs []repository.CreateOutboxMsgParams
}

func (r *fakeOutboxRepo) WithDB(db.DB) repository.OutboxMsgRepository { return r }

func (r *fakeOutboxRepo) CreateOutboxMsg(_ context.Context, params repository.CreateOutboxMsgParams) error {
	r.msgs = append(r.msgs, params)
	return nil
}

func (r *fakeOutboxRepo) ListUnprocessedOutboxMsgs(_ context.Context, _ repository.ListUnprocessedOutboxMsgsParams) ([]repository.ListUnprocessedOutboxMsgsResult, error) {
	return nil, nil
}

func (r *fakeOutboxRepo) BulkUpdateOutboxMsgs(_ context.Context, _ repository.BulkUpdateOutboxMsgsParams) error {
	return nil
}
