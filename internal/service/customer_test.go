package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrahimElhajji/alx-backend-graphql-crm/internal/apperr"
	"github.com/BrahimElhajji/alx-backend-graphql-crm/internal/event"
	"github.com/BrahimElhajji/alx-backend-graphql-crm/internal/service"
	"github.com/BrahimElhajji/alx-backend-graphql-crm/pkg/ptr"
	"github.com/BrahimElhajji/alx-backend-graphql-crm/pkg/validator"
	"github.com/BrahimElhajji/alx-backend-graphql-crm/pkg/zerror"
)

func newCustomerService(t *testing.T) (service.CustomerService, *fakeCustomerRepo, *fakeOutboxRepo) {
	t.Helper()

	v, err := validator.NewDefaultValidator()
	require.NoError(t, err)

	customerRepo := &fakeCustomerRepo{}
	outboxRepo := &fakeOutboxRepo{}
	svc := service.NewCustomerService(&fakeDB{}, v, customerRepo, outboxRepo)

	return svc, customerRepo, outboxRepo
}

func TestCreateCustomer(t *testing.T) {
	ctx := context.Background()

	t.Run("Should create customer and outbox event", func(t *testing.T) {
		svc, customerRepo, outboxRepo := newCustomerService(t)

		customer, err := svc.CreateCustomer(ctx, service.CreateCustomerParams{
			Name:  "Alice",
			Email: "alice@example.com",
			Phone: ptr.New("+15551234567"),
		})

		require.NoError(t, err)
		assert.Equal(t, "Alice", customer.Name)
		assert.Equal(t, "alice@example.com", customer.Email)
		assert.NotEqual(t, "", customer.ID.String())

		require.Len(t, customerRepo.customers, 1)
		require.Len(t, outboxRepo.msgs, 1)
		assert.Equal(t, event.TopicCustomerCreated, outboxRepo.msgs[0].Topic)
	})

	t.Run("Should accept dashed phone format", func(t *testing.T) {
		svc, _, _ := newCustomerService(t)

		_, err := svc.CreateCustomer(ctx, service.CreateCustomerParams{
			Name:  "Bob",
			Email: "bob@example.com",
			Phone: ptr.New("555-123-4567"),
		})

		assert.NoError(t, err)
	})

	t.Run("Should reject duplicate email", func(t *testing.T) {
		svc, customerRepo, _ := newCustomerService(t)

		_, err := svc.CreateCustomer(ctx, service.CreateCustomerParams{Name: "Alice", Email: "alice@example.com"})
		require.NoError(t, err)

		_, err = svc.CreateCustomer(ctx, service.CreateCustomerParams{Name: "Mallory", Email: "alice@example.com"})

		var zErr zerror.ZError
		require.ErrorAs(t, err, &zErr)
		assert.Equal(t, apperr.DuplicateEmailErr.Code(), zErr.Code())
		assert.Len(t, customerRepo.customers, 1)
	})

	t.Run("Should reject malformed phone", func(t *testing.T) {
		svc, customerRepo, _ := newCustomerService(t)

		_, err := svc.CreateCustomer(ctx, service.CreateCustomerParams{
			Name:  "Carol",
			Email: "carol@example.com",
			Phone: ptr.New("555-1234"),
		})

		var zErr zerror.ZError
		require.ErrorAs(t, err, &zErr)
		assert.Equal(t, apperr.InvalidPhoneFormatErr.Code(), zErr.Code())
		assert.Empty(t, customerRepo.customers)
	})

	t.Run("Should reject invalid email", func(t *testing.T) {
		svc, _, _ := newCustomerService(t)

		_, err := svc.CreateCustomer(ctx, service.CreateCustomerParams{Name: "Dave", Email: "not-an-email"})

		require.Error(t, err)
		assert.True(t, validator.IsValidationError(err))
	})
}

func TestBulkCreateCustomers(t *testing.T) {
	ctx := context.Background()

	t.Run("Should keep valid rows when one row fails", func(t *testing.T) {
		svc, customerRepo, _ := newCustomerService(t)

		_, err := svc.CreateCustomer(ctx, service.CreateCustomerParams{Name: "Existing", Email: "dup@example.com"})
		require.NoError(t, err)

		created, rowErrors, err := svc.BulkCreateCustomers(ctx, []service.CreateCustomerParams{
			{Name: "One", Email: "one@example.com"},
			{Name: "Two", Email: "dup@example.com"},
			{Name: "Three", Email: "three@example.com"},
		})

		require.NoError(t, err)
		assert.Len(t, created, 2)
		require.Len(t, rowErrors, 1)
		assert.Equal(t, "Row 2: Email 'dup@example.com' already exists.", rowErrors[0])
		// existing + the two successful rows
		assert.Len(t, customerRepo.customers, 3)
	})

	t.Run("Should report invalid phone per row", func(t *testing.T) {
		svc, _, _ := newCustomerService(t)

		created, rowErrors, err := svc.BulkCreateCustomers(ctx, []service.CreateCustomerParams{
			{Name: "One", Email: "one@example.com", Phone: ptr.New("555-1234")},
		})

		require.NoError(t, err)
		assert.Empty(t, created)
		require.Len(t, rowErrors, 1)
		assert.Equal(t, "Row 1: Invalid phone '555-1234'.", rowErrors[0])
	})

	t.Run("Should return no errors for an all-valid batch", func(t *testing.T) {
		svc, _, _ := newCustomerService(t)

		rows := make([]service.CreateCustomerParams, 0, 3)
		for i := 0; i < 3; i++ {
			rows = append(rows, service.CreateCustomerParams{
				Name:  fmt.Sprintf("Customer %d", i),
				Email: fmt.Sprintf("customer%d@example.com", i),
			})
		}

		created, rowErrors, err := svc.BulkCreateCustomers(ctx, rows)

		require.NoError(t, err)
		assert.Len(t, created, 3)
		assert.Empty(t, rowErrors)
	})
}

func TestGetCustomer(t *testing.T) {
	ctx := context.Background()

	t.Run("Should return not-found for unknown id", func(t *testing.T) {
		svc, _, _ := newCustomerService(t)

		created, err := svc.CreateCustomer(ctx, service.CreateCustomerParams{Name: "Alice", Email: "alice@example.com"})
		require.NoError(t, err)

		got, err := svc.GetCustomer(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.Email, got.Email)

		_, err = svc.GetCustomer(ctx, newUUID(t))

		var zErr zerror.ZError
		require.ErrorAs(t, err, &zErr)
		assert.Equal(t, apperr.CustomerNotFoundErr.Code(), zErr.Code())
	})
}
