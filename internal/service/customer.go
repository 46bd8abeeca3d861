package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/BrahimElhajji/alx-backend-graphql-crm/internal/apperr"
	"github.com/BrahimElhajji/alx-backend-graphql-crm/internal/event"
	"github.com/BrahimElhajji/alx-backend-graphql-crm/internal/model"
	"github.com/BrahimElhajji/alx-backend-graphql-crm/internal/repository"
	"github.com/BrahimElhajji/alx-backend-graphql-crm/internal/storage/db"
	"github.com/BrahimElhajji/alx-backend-graphql-crm/pkg/outbox"
	"github.com/BrahimElhajji/alx-backend-graphql-crm/pkg/ptr"
	"github.com/BrahimElhajji/alx-backend-graphql-crm/pkg/validator"
	"github.com/BrahimElhajji/alx-backend-graphql-crm/pkg/zerror"
)

// CustomerCreatedMsg is returned alongside a successfully created customer.
const CustomerCreatedMsg = "Customer created successfully."

type CreateCustomerParams struct {
	Name  string  `validate:"required"`
	Email string  `validate:"required,email"`
	Phone *string `validate:"omitempty,phone"`
}

type CustomerService interface {
	CreateCustomer(ctx context.Context, params CreateCustomerParams) (model.Customer, error)
	// BulkCreateCustomers processes each row independently. A failed row
	// yields a 1-indexed "Row N: ..." error string; earlier rows stay
	// committed.
	BulkCreateCustomers(ctx context.Context, rows []CreateCustomerParams) ([]model.Customer, []string, error)
	GetCustomer(ctx context.Context, id uuid.UUID) (model.Customer, error)
	ListCustomers(ctx context.Context, params repository.ListCustomersParams) ([]model.Customer, error)
}

type customerService struct {
	db           db.DB
	validator    validator.Validator
	customerRepo repository.CustomerRepository
	outboxRepo   repository.OutboxMsgRepository
}

func NewCustomerService(
	db db.DB,
	v validator.Validator,
	customerRepo repository.CustomerRepository,
	outboxRepo repository.OutboxMsgRepository,
) CustomerService {
	return &customerService{
		db:           db,
		validator:    v,
		customerRepo: customerRepo,
		outboxRepo:   outboxRepo,
	}
}

func (s *customerService) CreateCustomer(ctx context.Context, params CreateCustomerParams) (model.Customer, error) {
	exists, err := s.customerRepo.EmailExists(ctx, params.Email)
	if err != nil {
		return model.Customer{}, fmt.Errorf("customer repository email exists: %w", err)
	}
	if exists {
		return model.Customer{}, apperr.DuplicateEmailErr
	}

	if params.Phone != nil && !validator.PhoneRegex.MatchString(*params.Phone) {
		return model.Customer{}, apperr.InvalidPhoneFormatErr
	}

	if err := s.validator.Validate(params); err != nil {
		return model.Customer{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return model.Customer{}, fmt.Errorf("generate uuid v7: %w", err)
	}

	now := time.Now()
	customer := model.Customer{
		ID:        id,
		Name:      params.Name,
		Email:     params.Email,
		Phone:     params.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}

	ev := event.CustomerCreatedEvent{
		CustomerID: customer.ID.String(),
		Name:       customer.Name,
		Email:      customer.Email,
		Phone:      customer.Phone,
	}

	evBytes, err := json.Marshal(ev)
	if err != nil {
		return model.Customer{}, fmt.Errorf("marshal event: %w", err)
	}

	if err := s.db.WithTx(ctx, func(db db.DB) error {
		if err := s.customerRepo.
			WithDB(db).
			CreateCustomer(ctx, customer); err != nil {
			return fmt.Errorf("customer repository create customer: %w", err)
		}

		if err := s.outboxRepo.
			WithDB(db).
			CreateOutboxMsg(ctx, repository.CreateOutboxMsgParams{
				Topic:        event.TopicCustomerCreated,
				Headers:      outbox.BuildHeaders(ctx),
				Payload:      evBytes,
				PartitionKey: ptr.New(customer.ID.String()),
			}); err != nil {
			return fmt.Errorf("outbox msg repository create outbox msg: %w", err)
		}

		return nil
	}); err != nil {
		// Surface a concurrent duplicate-email insert as the domain error
		// rather than an internal one.
		var zErr zerror.ZError
		if errors.As(err, &zErr) {
			return model.Customer{}, zErr
		}
		return model.Customer{}, fmt.Errorf("db with tx: %w", err)
	}

	return customer, nil
}

func (s *customerService) BulkCreateCustomers(ctx context.Context, rows []CreateCustomerParams) ([]model.Customer, []string, error) {
	created := make([]model.Customer, 0, len(rows))
	rowErrors := make([]string, 0)

	for i, row := range rows {
		customer, err := s.CreateCustomer(ctx, row)
		if err != nil {
			rowErrors = append(rowErrors, bulkRowError(i+1, row, err))
			continue
		}
		created = append(created, customer)
	}

	return created, rowErrors, nil
}

func bulkRowError(row int, params CreateCustomerParams, err error) string {
	var zErr zerror.ZError
	if errors.As(err, &zErr) {
		switch zErr.Code() {
		case apperr.DuplicateEmailErr.Code():
			return fmt.Sprintf("Row %d: Email '%s' already exists.", row, params.Email)
		case apperr.InvalidPhoneFormatErr.Code():
			return fmt.Sprintf("Row %d: Invalid phone '%s'.", row, ptr.Deref(params.Phone))
		}
	}
	return fmt.Sprintf("Row %d: %v", row, err)
}

func (s *customerService) GetCustomer(ctx context.Context, id uuid.UUID) (model.Customer, error) {
	customer, err := s.customerRepo.GetCustomer(ctx, id)
	if err != nil {
		return model.Customer{}, err
	}
	return customer, nil
}

func (s *customerService) ListCustomers(ctx context.Context, params repository.ListCustomersParams) ([]model.Customer, error) {
	customers, err := s.customerRepo.ListCustomers(ctx, params)
	if err != nil {
		return nil, err
	}
	return customers, nil
}
