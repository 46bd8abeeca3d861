package apperr

import "github.com/BrahimElhajji/alx-backend-graphql-crm/pkg/zerror"

const (
	ValidationErrorCode = "VALIDATION_FAILED"
)

var (
	ValidationErr = zerror.NewValidationFailed(ValidationErrorCode, "validation error")

	// Customer mutations.
	DuplicateEmailErr     = zerror.NewConflict("EMAIL_ALREADY_EXISTS", "Email already exists.")
	InvalidPhoneFormatErr = zerror.NewValidationFailed("INVALID_PHONE_FORMAT", "Invalid phone format. Use +1234567890 or 123-456-7890")

	// Product mutations.
	InvalidPriceErr = zerror.NewValidationFailed("INVALID_PRICE", "Price must be positive.")
	InvalidStockErr = zerror.NewValidationFailed("INVALID_STOCK", "Stock cannot be negative.")

	// Order mutations.
	CustomerNotFoundErr = zerror.NewNotFound("CUSTOMER_NOT_FOUND", "Invalid customer ID.")
	EmptyProductListErr = zerror.NewValidationFailed("EMPTY_PRODUCT_LIST", "At least one product must be selected.")
	ProductNotFoundErr  = zerror.NewNotFound("PRODUCT_NOT_FOUND", "Invalid product ID.")

	// Query surface.
	InvalidOrderingErr = zerror.NewBadRequest("INVALID_ORDERING", "unknown ordering key")
)
