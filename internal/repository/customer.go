package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/BrahimElhajji/alx-backend-graphql-crm/internal/apperr"
	"github.com/BrahimElhajji/alx-backend-graphql-crm/internal/model"
	"github.com/BrahimElhajji/alx-backend-graphql-crm/internal/storage/db"
)

// customerOrderingKeys maps API ordering keys to customer columns.
var customerOrderingKeys = map[string]string{
	"name":      "name",
	"email":     "email",
	"createdAt": "created_at",
}

type CustomerFilter struct {
	NameContains  *string
	EmailContains *string
	PhonePrefix   *string
	CreatedAtGte  *time.Time
	CreatedAtLte  *time.Time
}

type ListCustomersParams struct {
	Filter   CustomerFilter
	Ordering []string
}

type CustomerRepository interface {
	WithDB(db db.DB) CustomerRepository
	CreateCustomer(ctx context.Context, customer model.Customer) error
	EmailExists(ctx context.Context, email string) (bool, error)
	GetCustomer(ctx context.Context, id uuid.UUID) (model.Customer, error)
	ListCustomers(ctx context.Context, params ListCustomersParams) ([]model.Customer, error)
}

type customerRepository struct {
	db db.DB
}

func NewCustomerRepository(db db.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r customerRepository) WithDB(db db.DB) CustomerRepository {
	return &customerRepository{db: db}
}

const uniqueViolationCode = "23505"

func (r customerRepository) CreateCustomer(ctx context.Context, customer model.Customer) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO customers (id, name, email, phone, created_at, updated_at)
		VALUES (@id, @name, @email, @phone, @created_at, @updated_at)
	`, pgx.NamedArgs{
		"id":         customer.ID,
		"name":       customer.Name,
		"email":      customer.Email,
		"phone":      customer.Phone,
		"created_at": customer.CreatedAt,
		"updated_at": customer.UpdatedAt,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return apperr.DuplicateEmailErr.WrapParent(err)
		}
		return fmt.Errorf("create customer: %w", err)
	}

	return nil
}

func (r customerRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM customers WHERE email = $1)`, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check email exists: %w", err)
	}

	return exists, nil
}

func (r customerRepository) GetCustomer(ctx context.Context, id uuid.UUID) (model.Customer, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, name, email, phone, created_at, updated_at
		FROM customers
		WHERE id = $1
	`, id)

	customer, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Customer{}, apperr.CustomerNotFoundErr.WrapParent(err)
		}
		return model.Customer{}, fmt.Errorf("get customer: %w", err)
	}

	return customer, nil
}

func (r customerRepository) ListCustomers(ctx context.Context, params ListCustomersParams) ([]model.Customer, error) {
	clauses, err := ParseOrdering(params.Ordering, customerOrderingKeys)
	if err != nil {
		return nil, err
	}

	var b condBuilder
	f := params.Filter
	if f.NameContains != nil {
		b.add(`name ILIKE '%%' || $%d || '%%'`, *f.NameContains)
	}
	if f.EmailContains != nil {
		b.add(`email ILIKE '%%' || $%d || '%%'`, *f.EmailContains)
	}
	if f.PhonePrefix != nil {
		b.add(`phone LIKE $%d || '%%'`, *f.PhonePrefix)
	}
	if f.CreatedAtGte != nil {
		b.add(`created_at >= $%d`, *f.CreatedAtGte)
	}
	if f.CreatedAtLte != nil {
		b.add(`created_at <= $%d`, *f.CreatedAtLte)
	}

	query := `
		SELECT id, name, email, phone, created_at, updated_at
		FROM customers` + b.whereSQL() + orderBySQL(clauses, "created_at")

	rows, err := r.db.Query(ctx, query, b.args...)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	customers := make([]model.Customer, 0)
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, customer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customers: %w", err)
	}

	return customers, nil
}

func scanCustomer(row pgx.Row) (model.Customer, error) {
	var c model.Customer
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return model.Customer{}, err
	}
	return c, nil
}
