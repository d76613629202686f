package serverutils

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"notes-admin-be/internal/entity"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidRequest marks a request body or query that failed validation
// for a reason other than a missing or overlong field.
var ErrInvalidRequest = errors.New("invalid request")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// ValidateRequest checks req against its validate tags. The first failure is
// returned as an entity.FieldError when it maps onto one.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return entity.NewFieldError(fe.Field(), entity.ErrRequired)
	case "max":
		limit, _ := strconv.Atoi(fe.Param())
		return &entity.FieldError{Field: fe.Field(), Err: entity.ErrTooLong, Limit: limit}
	}
	if fe.Param() != "" {
		return fmt.Errorf("%w: %s: failed on %s=%s", ErrInvalidRequest, fe.Field(), fe.Tag(), fe.Param())
	}
	return fmt.Errorf("%w: %s: failed on %s", ErrInvalidRequest, fe.Field(), fe.Tag())
}
