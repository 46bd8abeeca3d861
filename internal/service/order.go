package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BrahimElhajji/alx-backend-graphql-crm/internal/apperr"
	"github.com/BrahimElhajji/alx-backend-graphql-crm/internal/event"
	"github.com/BrahimElhajji/alx-backend-graphql-crm/internal/model"
	"github.com/BrahimElhajji/alx-backend-graphql-crm/internal/repository"
	"github.com/BrahimElhajji/alx-backend-graphql-crm/internal/storage/db"
	"github.com/BrahimElhajji/alx-backend-graphql-crm/pkg/outbox"
	"github.com/BrahimElhajji/alx-backend-graphql-crm/pkg/ptr"
	"github.com/BrahimElhajji/alx-backend-graphql-crm/pkg/zerror"
)

type CreateOrderParams struct {
	CustomerID uuid.UUID
	ProductIDs []uuid.UUID
	OrderDate  *time.Time
}

type OrderService interface {
	CreateOrder(ctx context.Context, params CreateOrderParams) (model.Order, error)
	ListOrders(ctx context.Context, params repository.ListOrdersParams) ([]model.Order, error)
}

type orderService struct {
	db           db.DB
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	orderRepo    repository.OrderRepository
	outboxRepo   repository.OutboxMsgRepository
}

func NewOrderService(
	db db.DB,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	outboxRepo repository.OutboxMsgRepository,
) OrderService {
	return &orderService{
		db:           db,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		orderRepo:    orderRepo,
		outboxRepo:   outboxRepo,
	}
}

// CreateOrder validates everything before touching the orders table. Product
// ids are resolved in input order; the first unresolved id fails the whole
// mutation. TotalAmount is the sum of the resolved prices and is never
// recomputed afterwards.
func (s *orderService) CreateOrder(ctx context.Context, params CreateOrderParams) (model.Order, error) {
	customer, err := s.customerRepo.GetCustomer(ctx, params.CustomerID)
	if err != nil {
		return model.Order{}, err
	}

	if len(params.ProductIDs) == 0 {
		return model.Order{}, apperr.EmptyProductListErr
	}

	products := make([]model.Product, 0, len(params.ProductIDs))
	total := decimal.Zero
	for _, pid := range params.ProductIDs {
		product, err := s.productRepo.GetProduct(ctx, pid)
		if err != nil {
			var zErr zerror.ZError
			if errors.As(err, &zErr) && zErr.Code() == apperr.ProductNotFoundErr.Code() {
				return model.Order{}, apperr.ProductNotFoundErr.WithMsg(fmt.Sprintf("Invalid product ID: %s", pid))
			}
			return model.Order{}, err
		}
		products = append(products, product)
		total = total.Add(product.Price)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return model.Order{}, fmt.Errorf("generate uuid v7: %w", err)
	}

	orderDate := time.Now()
	if params.OrderDate != nil {
		orderDate = *params.OrderDate
	}

	order := model.Order{
		ID:          id,
		CustomerID:  customer.ID,
		Products:    products,
		OrderDate:   orderDate,
		TotalAmount: total,
		CreatedAt:   time.Now(),
	}

	productIDs := make([]string, 0, len(products))
	for _, product := range products {
		productIDs = append(productIDs, product.ID.String())
	}

	ev := event.OrderCreatedEvent{
		OrderID:     order.ID.String(),
		CustomerID:  order.CustomerID.String(),
		ProductIDs:  productIDs,
		TotalAmount: order.TotalAmount.String(),
		OrderDate:   order.OrderDate,
	}

	evBytes, err := json.Marshal(ev)
	if err != nil {
		return model.Order{}, fmt.Errorf("marshal event: %w", err)
	}

	if err := s.db.WithTx(ctx, func(db db.DB) error {
		if err := s.orderRepo.
			WithDB(db).
			CreateOrder(ctx, order); err != nil {
			return fmt.Errorf("order repository create order: %w", err)
		}

		if err := s.outboxRepo.
			WithDB(db).
			CreateOutboxMsg(ctx, repository.CreateOutboxMsgParams{
				Topic:        event.TopicOrderCreated,
				Headers:      outbox.BuildHeaders(ctx),
				Payload:      evBytes,
				PartitionKey: ptr.New(order.ID.String()),
			}); err != nil {
			return fmt.Errorf("outbox msg repository create outbox msg: %w", err)
		}

		return nil
	}); err != nil {
		return model.Order{}, fmt.Errorf("db with tx: %w", err)
	}

	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, params repository.ListOrdersParams) ([]model.Order, error) {
	orders, err := s.orderRepo.ListOrders(ctx, params)
	if err != nil {
		return nil, err
	}
	return orders, nil
}
