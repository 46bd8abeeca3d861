package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/BrahimElhajji/alx-backend-graphql-crm/internal/apperr"
	"github.com/BrahimElhajji/alx-backend-graphql-crm/internal/model"
	"github.com/BrahimElhajji/alx-backend-graphql-crm/internal/storage/db"
)

// productOrderingKeys maps API ordering keys to product columns.
var productOrderingKeys = map[string]string{
	"name":      "name",
	"price":     "price",
	"stock":     "stock",
	"createdAt": "created_at",
}

type ProductFilter struct {
	NameContains *string
	PriceGte     *decimal.Decimal
	PriceLte     *decimal.Decimal
	StockGte     *int
	StockLte     *int
}

type ListProductsParams struct {
	Filter   ProductFilter
	Ordering []string
}

type ProductRepository interface {
	WithDB(db db.DB) ProductRepository
	CreateProduct(ctx context.Context, product model.Product) error
	GetProduct(ctx context.Context, id uuid.UUID) (model.Product, error)
	ListProducts(ctx context.Context, params ListProductsParams) ([]model.Product, error)
	ListLowStockProducts(ctx context.Context, threshold int) ([]model.Product, error)
	ListProductsByOrder(ctx context.Context, orderID uuid.UUID) ([]model.Product, error)
	UpdateProductStock(ctx context.Context, product model.Product) error
}

type productRepository struct {
	db db.DB
}

func NewProductRepository(db db.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r productRepository) WithDB(db db.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r productRepository) CreateProduct(ctx context.Context, product model.Product) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO products (id, name, price, stock, created_at, updated_at)
		VALUES (@id, @name, @price, @stock, @created_at, @updated_at)
	`, pgx.NamedArgs{
		"id":         product.ID,
		"name":       product.Name,
		"price":      product.Price.String(),
		"stock":      product.Stock,
		"created_at": product.CreatedAt,
		"updated_at": product.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}

	return nil
}

func (r productRepository) GetProduct(ctx context.Context, id uuid.UUID) (model.Product, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, name, price::text, stock, created_at, updated_at
		FROM products
		WHERE id = $1
	`, id)

	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Product{}, apperr.ProductNotFoundErr.WrapParent(err)
		}
		return model.Product{}, fmt.Errorf("get product: %w", err)
	}

	return product, nil
}

func (r productRepository) ListProducts(ctx context.Context, params ListProductsParams) ([]model.Product, error) {
	clauses, err := ParseOrdering(params.Ordering, productOrderingKeys)
	if err != nil {
		return nil, err
	}

	var b condBuilder
	f := params.Filter
	if f.NameContains != nil {
		b.add(`name ILIKE '%%' || $%d || '%%'`, *f.NameContains)
	}
	if f.PriceGte != nil {
		b.add(`price >= $%d`, f.PriceGte.String())
	}
	if f.PriceLte != nil {
		b.add(`price <= $%d`, f.PriceLte.String())
	}
	if f.StockGte != nil {
		b.add(`stock >= $%d`, *f.StockGte)
	}
	if f.StockLte != nil {
		b.add(`stock <= $%d`, *f.StockLte)
	}

	query := `
		SELECT id, name, price::text, stock, created_at, updated_at
		FROM products` + b.whereSQL() + orderBySQL(clauses, "created_at")

	return r.queryProducts(ctx, query, b.args...)
}

func (r productRepository) ListLowStockProducts(ctx context.Context, threshold int) ([]model.Product, error) {
	return r.queryProducts(ctx, `
		SELECT id, name, price::text, stock, created_at, updated_at
		FROM products
		WHERE stock < $1
		ORDER BY created_at
	`, threshold)
}

func (r productRepository) ListProductsByOrder(ctx context.Context, orderID uuid.UUID) ([]model.Product, error) {
	return r.queryProducts(ctx, `
		SELECT p.id, p.name, p.price::text, p.stock, p.created_at, p.updated_at
		FROM products p
		JOIN order_products op ON op.product_id = p.id
		WHERE op.order_id = $1
		ORDER BY p.created_at
	`, orderID)
}

func (r productRepository) UpdateProductStock(ctx context.Context, product model.Product) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE products
		SET stock = @stock, updated_at = @updated_at
		WHERE id = @id
	`, pgx.NamedArgs{
		"id":         product.ID,
		"stock":      product.Stock,
		"updated_at": product.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ProductNotFoundErr
	}

	return nil
}

func (r productRepository) queryProducts(ctx context.Context, query string, args ...any) ([]model.Product, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	products := make([]model.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	return products, nil
}

func scanProduct(row pgx.Row) (model.Product, error) {
	var (
		p        model.Product
		priceStr string
	)
	if err := row.Scan(&p.ID, &p.Name, &priceStr, &p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return model.Product{}, err
	}

	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		return model.Product{}, fmt.Errorf("parse price: %w", err)
	}
	p.Price = price

	return p, nil
}
