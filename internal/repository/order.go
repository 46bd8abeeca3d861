package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/BrahimElhajji/alx-backend-graphql-crm/internal/model"
	"github.com/BrahimElhajji/alx-backend-graphql-crm/internal/storage/db"
)

// orderOrderingKeys maps API ordering keys to order columns.
var orderOrderingKeys = map[string]string{
	"orderDate":   "order_date",
	"totalAmount": "total_amount",
	"createdAt":   "created_at",
}

type OrderFilter struct {
	TotalAmountGte        *decimal.Decimal
	TotalAmountLte        *decimal.Decimal
	OrderDateGte          *time.Time
	OrderDateLte          *time.Time
	CustomerEmailContains *string
	ProductID             *uuid.UUID
}

type ListOrdersParams struct {
	Filter   OrderFilter
	Ordering []string
}

type OrderRepository interface {
	WithDB(db db.DB) OrderRepository
	CreateOrder(ctx context.Context, order model.Order) error
	ListOrders(ctx context.Context, params ListOrdersParams) ([]model.Order, error)
}

type orderRepository struct {
	db db.DB
}

func NewOrderRepository(db db.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r orderRepository) WithDB(db db.DB) OrderRepository {
	return &orderRepository{db: db}
}

// CreateOrder inserts the order row and its product join rows. The caller is
// expected to run it inside a transaction.
func (r orderRepository) CreateOrder(ctx context.Context, order model.Order) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO orders (id, customer_id, order_date, total_amount, created_at)
		VALUES (@id, @customer_id, @order_date, @total_amount, @created_at)
	`, pgx.NamedArgs{
		"id":           order.ID,
		"customer_id":  order.CustomerID,
		"order_date":   order.OrderDate,
		"total_amount": order.TotalAmount.String(),
		"created_at":   order.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}

	rows := make([][]any, 0, len(order.Products))
	for _, product := range order.Products {
		rows = append(rows, []any{order.ID, product.ID})
	}

	if _, err := r.db.CopyFrom(ctx,
		pgx.Identifier{"order_products"},
		[]string{"order_id", "product_id"},
		pgx.CopyFromRows(rows),
	); err != nil {
		return fmt.Errorf("create order products: %w", err)
	}

	return nil
}

func (r orderRepository) ListOrders(ctx context.Context, params ListOrdersParams) ([]model.Order, error) {
	clauses, err := ParseOrdering(params.Ordering, orderOrderingKeys)
	if err != nil {
		return nil, err
	}
	// Qualify columns, the listing joins customers for email filtering.
	for i := range clauses {
		clauses[i].Column = "o." + clauses[i].Column
	}

	var b condBuilder
	f := params.Filter
	if f.TotalAmountGte != nil {
		b.add(`o.total_amount >= $%d`, f.TotalAmountGte.String())
	}
	if f.TotalAmountLte != nil {
		b.add(`o.total_amount <= $%d`, f.TotalAmountLte.String())
	}
	if f.OrderDateGte != nil {
		b.add(`o.order_date >= $%d`, *f.OrderDateGte)
	}
	if f.OrderDateLte != nil {
		b.add(`o.order_date <= $%d`, *f.OrderDateLte)
	}
	if f.CustomerEmailContains != nil {
		b.add(`c.email ILIKE '%%' || $%d || '%%'`, *f.CustomerEmailContains)
	}
	if f.ProductID != nil {
		b.add(`EXISTS (SELECT 1 FROM order_products op WHERE op.order_id = o.id AND op.product_id = $%d)`, *f.ProductID)
	}

	query := `
		SELECT o.id, o.customer_id, o.order_date, o.total_amount::text, o.created_at
		FROM orders o
		JOIN customers c ON c.id = o.customer_id` +
		b.whereSQL() + orderBySQL(clauses, "o.order_date")

	rows, err := r.db.Query(ctx, query, b.args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]model.Order, 0)
	for rows.Next() {
		var (
			o        model.Order
			totalStr string
		)
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.OrderDate, &totalStr, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}

		total, err := decimal.NewFromString(totalStr)
		if err != nil {
			return nil, fmt.Errorf("parse total amount: %w", err)
		}
		o.TotalAmount = total

		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}

	return orders, nil
}
