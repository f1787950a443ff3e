package catalog

import (
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/angelmondragon/shopstate/pkg/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	return v
}

func decimalValue(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

// ValidateProduct rejects a product that breaks the catalog invariants (id, name,
// non-negative price, at least one image).
func ValidateProduct(p Product) error {
	if err := validate.Struct(p); err != nil {
		return formatValidationErrors(p.ID, err)
	}
	return nil
}

// ValidateProducts keeps the valid products in their original order and returns
// the ids of the rejected ones.
func ValidateProducts(products []Product) ([]Product, []string) {
	valid := make([]Product, 0, len(products))
	var rejected []string
	for _, p := range products {
		if err := ValidateProduct(p); err != nil {
			rejected = append(rejected, p.ID)
			continue
		}
		valid = append(valid, p)
	}
	return valid, rejected
}

func formatValidationErrors(id string, err error) *pkgerrors.Error {
	if errs, ok := err.(validator.ValidationErrors); ok {
		details := map[string]string{}
		for _, fieldErr := range errs {
			details[fieldErr.Field()] = validationMessage(fieldErr)
		}
		details["product_id"] = id
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid product").WithDetails(details)
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must have at least %s entries", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	}
	return "is invalid"
}
