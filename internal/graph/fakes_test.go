package graph_test

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BrahimElhajji/alx-backend-graphql-crm/internal/apperr"
	"github.com/BrahimElhajji/alx-backend-graphql-crm/internal/model"
	"github.com/BrahimElhajji/alx-backend-graphql-crm/internal/repository"
	"github.com/BrahimElhajji/alx-backend-graphql-crm/internal/service"
	"github.com/BrahimElhajji/alx-backend-graphql-crm/pkg/validator"
)

type fakeCustomerService struct {
	customers []model.Customer
}

func (s *fakeCustomerService) CreateCustomer(_ context.Context, params service.CreateCustomerParams) (model.Customer, error) {
	for _, existing := range s.customers {
		if existing.Email == params.Email {
			return model.Customer{}, apperr.DuplicateEmailErr
		}
	}
	if params.Phone != nil && !validator.PhoneRegex.MatchString(*params.Phone) {
		return model.Customer{}, apperr.InvalidPhoneFormatErr
	}

	now := time.Now()
	customer := model.Customer{
		ID:        uuid.New(),
		Name:      params.Name,
		Email:     params.Email,
		Phone:     params.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.customers = append(s.customers, customer)
	return customer, nil
}

func (s *fakeCustomerService) BulkCreateCustomers(ctx context.Context, rows []service.CreateCustomerParams) ([]model.Customer, []string, error) {
	created := make([]model.Customer, 0, len(rows))
	rowErrors := make([]string, 0)
	for i, row := range rows {
		customer, err := s.CreateCustomer(ctx, row)
		if err != nil {
			rowErrors = append(rowErrors, fmt.Sprintf("Row %d: Email '%s' already exists.", i+1, row.Email))
			continue
		}
		created = append(created, customer)
	}
	return created, rowErrors, nil
}

func (s *fakeCustomerService) GetCustomer(_ context.Context, id uuid.UUID) (model.Customer, error) {
	for _, existing := range s.customers {
		if existing.ID == id {
			return existing, nil
		}
	}
	return model.Customer{}, apperr.CustomerNotFoundErr
}

func (s *fakeCustomerService) ListCustomers(_ context.Context, _ repository.ListCustomersParams) ([]model.Customer, error) {
	return s.customers, nil
}

type fakeProductService struct {
	products []model.Product
}

func (s *fakeProductService) CreateProduct(_ context.Context, params service.CreateProductParams) (model.Product, error) {
	if !params.Price.IsPositive() {
		return model.Product{}, apperr.InvalidPriceErr
	}
	if params.Stock < 0 {
		return model.Product{}, apperr.InvalidStockErr
	}

	now := time.Now()
	product := model.Product{
		ID:        uuid.New(),
		Name:      params.Name,
		Price:     params.Price,
		Stock:     params.Stock,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.products = append(s.products, product)
	return product, nil
}

func (s *fakeProductService) ListProducts(_ context.Context, _ repository.ListProductsParams) ([]model.Product, error) {
	return s.products, nil
}

func (s *fakeProductService) ListProductsByOrder(_ context.Context, _ uuid.UUID) ([]model.Product, error) {
	return s.products, nil
}

func (s *fakeProductService) UpdateLowStockProducts(_ context.Context) ([]model.Product, string, error) {
	updated := make([]model.Product, 0)
	for i, product := range s.products {
		if product.Stock < model.LowStockThreshold {
			product.Stock += model.ReplenishAmount
			s.products[i] = product
			updated = append(updated, product)
		}
	}
	return updated, service.LowStockUpdatedMsg, nil
}

type fakeOrderService struct {
	customerSvc *fakeCustomerService
	productSvc  *fakeProductService
	orders      []model.Order
}

func (s *fakeOrderService) CreateOrder(ctx context.Context, params service.CreateOrderParams) (model.Order, error) {
	customer, err := s.customerSvc.GetCustomer(ctx, params.CustomerID)
	if err != nil {
		return model.Order{}, err
	}
	if len(params.ProductIDs) == 0 {
		return model.Order{}, apperr.EmptyProductListErr
	}

	products := make([]model.Product, 0, len(params.ProductIDs))
	total := decimal.Zero
	for _, pid := range params.ProductIDs {
		found := false
		for _, product := range s.productSvc.products {
			if product.ID == pid {
				products = append(products, product)
				total = total.Add(product.Price)
				found = true
				break
			}
		}
		if !found {
			return model.Order{}, apperr.ProductNotFoundErr.WithMsg(fmt.Sprintf("Invalid product ID: %s", pid))
		}
	}

	orderDate := time.Now()
	if params.OrderDate != nil {
		orderDate = *params.OrderDate
	}

	order := model.Order{
		ID:          uuid.New(),
		CustomerID:  customer.ID,
		Products:    products,
		OrderDate:   orderDate,
		TotalAmount: total,
		CreatedAt:   time.Now(),
	}
	s.orders = append(s.orders, order)
	return order, nil
}

func (s *fakeOrderService) ListOrders(_ context.Context, _ repository.ListOrdersParams) ([]model.Order, error) {
	return s.orders, nil
}
