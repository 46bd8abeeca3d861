package graph

import (
	"errors"
	"strings"

	govalidator "github.com/go-playground/validator/v10"

	"github.com/BrahimElhajji/alx-backend-graphql-crm/internal/apperr"
	"github.com/BrahimElhajji/alx-backend-graphql-crm/pkg/validator"
	"github.com/BrahimElhajji/alx-backend-graphql-crm/pkg/zerror"
)

// resolverError shapes domain errors for the GraphQL errors array: the
// message is the user-facing text, the code rides in extensions.
type resolverError struct {
	msg  string
	code string
}

func (e resolverError) Error() string {
	return e.msg
}

// Extensions implements gqlerrors.ExtendedError.
func (e resolverError) Extensions() map[string]interface{} {
	return map[string]interface{}{
		"code": e.code,
	}
}

func newResolverError(err error) error {
	var zErr zerror.ZError
	if errors.As(err, &zErr) {
		return resolverError{msg: zErr.Msg(), code: zErr.Code()}
	}

	var validationErrs govalidator.ValidationErrors
	if errors.As(err, &validationErrs) {
		parts := make([]string, 0, len(validationErrs))
		for _, fe := range validationErrs {
			parts = append(parts, fe.Field()+" "+validator.ValidationErrorMessage(fe))
		}
		return resolverError{
			msg:  strings.Join(parts, "; "),
			code: apperr.ValidationErrorCode,
		}
	}

	return resolverError{
		msg:  "internal server error",
		code: "INTERNAL_SERVER_ERROR",
	}
}
