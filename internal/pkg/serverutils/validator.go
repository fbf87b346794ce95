package serverutils

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest checks a DTO against its validate tags and returns a
// ValidationError naming the first failing field.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if ok := errors.As(err, &fieldErrs); ok && len(fieldErrs) > 0 {
			return &ValidationError{
				Message: fmt.Sprintf("invalid field: %s", fieldErrs[0].Field()),
			}
		}
		return &ValidationError{Message: "invalid request body"}
	}
	return nil
}
