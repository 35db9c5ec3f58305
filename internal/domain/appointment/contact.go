package appointment

import (
	"strings"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

// Contact is what the booking form supplies about the customer.
type Contact struct {
	Name  string
	Phone string
	Email string
}

// Normalized trims surrounding whitespace from every field.
func (c Contact) Normalized() Contact {
	return Contact{
		Name:  strings.TrimSpace(c.Name),
		Phone: strings.TrimSpace(c.Phone),
		Email: strings.TrimSpace(c.Email),
	}
}

func (c Contact) Validate() error {
	fields := map[string]string{}

	if c.Name == "" {
		fields["customer_name"] = "required"
	}
	if c.Phone == "" {
		fields["customer_phone"] = "required"
	} else if !validators.IsPhoneValid(c.Phone) {
		fields["customer_phone"] = "invalid"
	}
	if c.Email != "" && !validators.IsEmailValid(c.Email) {
		fields["customer_email"] = "invalid"
	}

	if len(fields) > 0 {
		return httperr.Validation("invalid_contact", fields)
	}
	return nil
}
