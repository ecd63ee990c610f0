package factory

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mrussa/order-insights/internal/geo"
	"github.com/mrussa/order-insights/internal/order"
)

// FormInput is the manual-entry form. Json names follow the order payload so
// a form can be prefilled from an existing order.
type FormInput struct {
	Name     string `json:"client_name" validate:"required"`
	Email    string `json:"client_email" validate:"required,email"`
	Document string `json:"client_document" validate:"required"`
	Phone    string `json:"client_phone" validate:"required"`
	ZipCode  string `json:"client_zip_code" validate:"required"`
	Street   string `json:"client_address" validate:"required"`
	Number   string `json:"client_address_number" validate:"required"`
	District string `json:"client_address_district" validate:"required"`
	City     string `json:"client_address_city" validate:"required"`
	State    string `json:"client_address_state" validate:"required,uf"`

	ProductName string `json:"product_name" validate:"required"`
	Price       string `json:"product_price" validate:"required"`
	Quantity    int    `json:"quantity" validate:"min=1"`
	Status      string `json:"status" validate:"required"`
}

var ErrValidation = errors.New("validation failed")

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

var formValidator = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("uf", func(fl validator.FieldLevel) bool {
		return geo.IsState(fl.Field().String())
	})
	return v
}

// FormFromOrder prefills an edit form from a stored order.
func FormFromOrder(o order.Order) FormInput {
	return FormInput{
		Name:        o.Name,
		Email:       o.Email,
		Document:    o.Document,
		Phone:       o.Phone,
		ZipCode:     o.ZipCode,
		Street:      o.Street,
		Number:      o.Number,
		District:    o.District,
		City:        o.City,
		State:       o.State,
		ProductName: o.Products.Main.Name,
		Price:       o.FinalPrice,
		Quantity:    o.Quantity,
		Status:      o.Status,
	}
}

// validate checks the form and returns the price normalized to two decimals.
func (in FormInput) validate() (string, error) {
	t := in.trimmed()
	if err := formValidator.Struct(t); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return "", &ValidationError{Field: verrs[0].Field(), Reason: reason(verrs[0])}
		}
		return "", fmt.Errorf("%w: %v", ErrValidation, err)
	}

	p, err := order.ParsePrice(t.Price)
	if errors.Is(err, order.ErrPriceRange) {
		return "", &ValidationError{Field: "product_price", Reason: "out of range"}
	}
	if err != nil {
		return "", &ValidationError{Field: "product_price", Reason: "not a number"}
	}
	if p.IsNegative() {
		return "", &ValidationError{Field: "product_price", Reason: "negative"}
	}
	return order.FormatPrice(p), nil
}

func (in FormInput) trimmed() FormInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Document = strings.TrimSpace(in.Document)
	in.Phone = strings.TrimSpace(in.Phone)
	in.ZipCode = strings.TrimSpace(in.ZipCode)
	in.Street = strings.TrimSpace(in.Street)
	in.Number = strings.TrimSpace(in.Number)
	in.District = strings.TrimSpace(in.District)
	in.City = strings.TrimSpace(in.City)
	in.State = strings.TrimSpace(in.State)
	in.ProductName = strings.TrimSpace(in.ProductName)
	in.Price = strings.TrimSpace(in.Price)
	in.Status = strings.TrimSpace(in.Status)
	return in
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "email":
		return "not an e-mail address"
	case "min":
		return "must be >= " + fe.Param()
	case "len":
		return "must have length " + fe.Param()
	case "uf":
		return "unknown state code"
	default:
		return "failed " + fe.Tag()
	}
}
