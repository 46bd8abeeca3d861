package service

import (
	"context"
	"encoding/json"
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
	"github.com/BrahimElhajji/alx-backend-graphql-crm/pkg/validator"
)

// LowStockUpdatedMsg is returned after a successful low-stock replenishment run.
const LowStockUpdatedMsg = "Stock updated for low-stock products."

type CreateProductParams struct {
	Name  string `validate:"required"`
	Price decimal.Decimal
	Stock int
}

type ProductService interface {
	CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error)
	ListProducts(ctx context.Context, params repository.ListProductsParams) ([]model.Product, error)
	ListProductsByOrder(ctx context.Context, orderID uuid.UUID) ([]model.Product, error)
	// UpdateLowStockProducts increments every product with stock below the
	// low-stock threshold by the replenish amount. Each product is persisted
	// individually; a mid-batch failure leaves prior increments committed and
	// returns the partial set with the error.
	UpdateLowStockProducts(ctx context.Context) ([]model.Product, string, error)
}

type productService struct {
	db          db.DB
	validator   validator.Validator
	productRepo repository.ProductRepository
	outboxRepo  repository.OutboxMsgRepository
}

func NewProductService(
	db db.DB,
	v validator.Validator,
	productRepo repository.ProductRepository,
	outboxRepo repository.OutboxMsgRepository,
) ProductService {
	return &productService{
		db:          db,
		validator:   v,
		productRepo: productRepo,
		outboxRepo:  outboxRepo,
	}
}

func (s *productService) CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error) {
	if !params.Price.IsPositive() {
		return model.Product{}, apperr.InvalidPriceErr
	}
	if params.Stock < 0 {
		return model.Product{}, apperr.InvalidStockErr
	}

	if err := s.validator.Validate(params); err != nil {
		return model.Product{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return model.Product{}, fmt.Errorf("generate uuid v7: %w", err)
	}

	now := time.Now()
	product := model.Product{
		ID:        id,
		Name:      params.Name,
		Price:     params.Price,
		Stock:     params.Stock,
		CreatedAt: now,
		UpdatedAt: now,
	}

	ev := event.ProductCreatedEvent{
		ProductID: product.ID.String(),
		Name:      product.Name,
		Price:     product.Price.String(),
		Stock:     product.Stock,
	}

	evBytes, err := json.Marshal(ev)
	if err != nil {
		return model.Product{}, fmt.Errorf("marshal event: %w", err)
	}

	if err := s.db.WithTx(ctx, func(db db.DB) error {
		if err := s.productRepo.
			WithDB(db).
			CreateProduct(ctx, product); err != nil {
			return fmt.Errorf("product repository create product: %w", err)
		}

		if err := s.outboxRepo.
			WithDB(db).
			CreateOutboxMsg(ctx, repository.CreateOutboxMsgParams{
				Topic:        event.TopicProductCreated,
				Headers:      outbox.BuildHeaders(ctx),
				Payload:      evBytes,
				PartitionKey: ptr.New(product.ID.String()),
			}); err != nil {
			return fmt.Errorf("outbox msg repository create outbox msg: %w", err)
		}

		return nil
	}); err != nil {
		return model.Product{}, fmt.Errorf("db with tx: %w", err)
	}

	return product, nil
}

func (s *productService) ListProducts(ctx context.Context, params repository.ListProductsParams) ([]model.Product, error) {
	products, err := s.productRepo.ListProducts(ctx, params)
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (s *productService) ListProductsByOrder(ctx context.Context, orderID uuid.UUID) ([]model.Product, error) {
	products, err := s.productRepo.ListProductsByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (s *productService) UpdateLowStockProducts(ctx context.Context) ([]model.Product, string, error) {
	lowStock, err := s.productRepo.ListLowStockProducts(ctx, model.LowStockThreshold)
	if err != nil {
		return nil, "", fmt.Errorf("product repository list low stock products: %w", err)
	}

	updated := make([]model.Product, 0, len(lowStock))
	for _, product := range lowStock {
		product.Stock += model.ReplenishAmount
		product.UpdatedAt = time.Now()

		if err := s.productRepo.UpdateProductStock(ctx, product); err != nil {
			return updated, "", fmt.Errorf("product repository update product stock: %w", err)
		}

		updated = append(updated, product)
	}

	return updated, LowStockUpdatedMsg, nil
}
