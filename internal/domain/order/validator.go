package order

import (
	"errors"
	"regexp"
	"strings"

	"dicetrails/internal/domain/pricing"
)

var (
	emailRegex   = regexp.MustCompile(`^[A-Za-z0-9+_.\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)
	phoneRegex   = regexp.MustCompile(`^[0-9]{10,15}$`)
	zipcodeRegex = regexp.MustCompile(`^[0-9]{4,10}$`)
)

var ErrUnknownPaymentMethod = errors.New("unknown payment method")

// Address is the shipping destination captured with an order.
type Address struct {
	FirstName string
	LastName  string
	Email     string
	Street    string
	City      string
	State     string
	Zipcode   string
	Country   string
	Phone     string
}

type PaymentMethod string

const (
	PaymentCOD          PaymentMethod = "cod"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentCard         PaymentMethod = "card"
)

func NewPaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case PaymentCOD, PaymentBankTransfer, PaymentCard:
		return m, nil
	default:
		return "", ErrUnknownPaymentMethod
	}
}

// Draft is an order candidate before placement: cart snapshot plus the
// customer-supplied checkout fields, not yet priced or persisted.
type Draft struct {
	Lines         []pricing.CartLine
	Address       Address
	PaymentMethod PaymentMethod
	Region        pricing.Region
}

type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Reason
}

// ValidationError carries every field violation found in one pass, so a
// client can surface all problems at once instead of fixing them one by one.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Error())
	}
	return "order validation failed: " + strings.Join(parts, "; ")
}

// ValidateDraft checks the whole draft and collects all violations rather
// than stopping at the first. Format checks only run on non-empty values, so
// an empty field reports exactly one violation.
func ValidateDraft(d Draft) error {
	var fields []FieldError

	if len(d.Lines) == 0 {
		fields = append(fields, FieldError{Field: "items", Reason: "cart must not be empty"})
	}

	required := []struct {
		name  string
		value string
	}{
		{"first_name", d.Address.FirstName},
		{"last_name", d.Address.LastName},
		{"email", d.Address.Email},
		{"street", d.Address.Street},
		{"city", d.Address.City},
		{"state", d.Address.State},
		{"zipcode", d.Address.Zipcode},
		{"country", d.Address.Country},
		{"phone", d.Address.Phone},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			fields = append(fields, FieldError{Field: r.name, Reason: "must not be empty"})
		}
	}

	if email := strings.TrimSpace(d.Address.Email); email != "" && !emailRegex.MatchString(email) {
		fields = append(fields, FieldError{Field: "email", Reason: "invalid email format"})
	}
	if phone := strings.TrimSpace(d.Address.Phone); phone != "" && !phoneRegex.MatchString(phone) {
		fields = append(fields, FieldError{Field: "phone", Reason: "must be 10 to 15 digits"})
	}
	if zip := strings.TrimSpace(d.Address.Zipcode); zip != "" && !zipcodeRegex.MatchString(zip) {
		fields = append(fields, FieldError{Field: "zipcode", Reason: "must be 4 to 10 digits"})
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
