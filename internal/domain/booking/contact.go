package booking

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var ErrValidation = errors.New("validation failed")

// NationalPhoneDigits is the length of the national part of a phone number,
// excluding the country prefix.
const NationalPhoneDigits = 9

type Country struct {
	Code   string
	Name   string
	Prefix string
}

var countries = []Country{
	{Code: "TZ", Name: "Tanzania", Prefix: "+255"},
	{Code: "KE", Name: "Kenya", Prefix: "+254"},
	{Code: "UG", Name: "Uganda", Prefix: "+256"},
	{Code: "RW", Name: "Rwanda", Prefix: "+250"},
}

func Countries() []Country {
	out := make([]Country, len(countries))
	copy(out, countries)
	return out
}

func LookupCountryPrefix(prefix string) (Country, bool) {
	for _, c := range countries {
		if c.Prefix == prefix {
			return c, true
		}
	}
	return Country{}, false
}

// Contact is the customer-facing part of the booking form.
type Contact struct {
	Name          string `validate:"required"`
	CountryPrefix string `validate:"required,country_prefix"`
	Phone         string `validate:"required,national_phone"`
	Email         string `validate:"required,email"`
}

// NewContact trims the fields and drops spaces and dashes from the phone.
func NewContact(name, countryPrefix, phone, email string) Contact {
	return Contact{
		Name:          strings.TrimSpace(name),
		CountryPrefix: strings.TrimSpace(countryPrefix),
		Phone:         normalizePhone(phone),
		Email:         strings.TrimSpace(email),
	}
}

// FullPhone is the number sent to the backend: prefix followed by national digits.
func (c Contact) FullPhone() string {
	return c.CountryPrefix + c.Phone
}

func (c Contact) IsEmpty() bool {
	return c == Contact{}
}

func (c Contact) Validate() error {
	if err := validate.Struct(c); err != nil {
		return newValidationError(err)
	}
	return nil
}

func normalizePhone(phone string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, strings.TrimSpace(phone))
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("national_phone", func(fl validator.FieldLevel) bool {
		return isNationalPhone(fl.Field().String())
	})
	_ = v.RegisterValidation("country_prefix", func(fl validator.FieldLevel) bool {
		_, ok := LookupCountryPrefix(fl.Field().String())
		return ok
	})
	return v
}

func isNationalPhone(s string) bool {
	if len(s) != NationalPhoneDigits {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// ValidationError lists every failing form field with a human readable reason.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationError) add(field, reason string) {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = reason
	}
}

func (e *ValidationError) merge(err error) {
	var other *ValidationError
	if errors.As(err, &other) {
		for k, v := range other.Fields {
			e.add(k, v)
		}
	}
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

var fieldNames = map[string]string{
	"Name":          "name",
	"CountryPrefix": "countryPrefix",
	"Phone":         "phone",
	"Email":         "email",
}

func newValidationError(err error) *ValidationError {
	verr := &ValidationError{Fields: map[string]string{}}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		verr.add("form", err.Error())
		return verr
	}

	for _, fe := range fieldErrs {
		name, ok := fieldNames[fe.Field()]
		if !ok {
			name = fe.Field()
		}
		verr.add(name, reasonFor(fe))
	}
	return verr
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "national_phone":
		return fmt.Sprintf("must be exactly %d digits", NationalPhoneDigits)
	case "country_prefix":
		return "unsupported country prefix"
	default:
		return "is invalid"
	}
}
