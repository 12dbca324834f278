package repository

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"shagun/internal/domain"
)

// ValidationError нарушение ограничений схемы при записи
type ValidationError struct {
	Entity   string
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s validation failed: %s", e.Entity, strings.Join(e.Problems, ", "))
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report paths by their wire names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return strings.ToLower(f.Name)
		}
		return name
	})
	return v
}

// prepareProduct applies schema defaults and checks constraints before a write.
func prepareProduct(p *domain.Product) error {
	if p.Category == "" {
		p.Category = domain.DefaultCategory
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	problems := structProblems(p)
	switch {
	case p.Price.IsZero():
		problems = append(problems, "price: is required")
	case p.Price.IsNegative():
		problems = append(problems, "price: must be positive")
	}
	return asValidationError("product", problems)
}

func prepareOrder(o *domain.Order) error {
	if o.PaymentMethod == "" {
		o.PaymentMethod = domain.PaymentMethodWhatsApp
	}
	return asValidationError("order", structProblems(o))
}

func prepareUser(u *domain.User) error {
	return asValidationError("user", structProblems(u))
}

func structProblems(v any) []string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, describe(fe))
	}
	return out
}

func describe(fe validator.FieldError) string {
	path := strings.SplitN(fe.Namespace(), ".", 2)
	field := path[len(path)-1]
	switch fe.Tag() {
	case "required":
		return field + ": is required"
	case "oneof":
		return fmt.Sprintf("%s: `%v` is not one of [%s]", field, fe.Value(), fe.Param())
	case "gte", "min":
		return fmt.Sprintf("%s: must be at least %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s: failed %s", field, fe.Tag())
	}
}

func asValidationError(entity string, problems []string) error {
	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Entity: entity, Problems: problems}
}
