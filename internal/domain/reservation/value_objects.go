package reservation

import (
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

const (
	maxNameLength  = 200
	maxPhoneLength = 32
)

// Customer is the contact captured on the booking, which may differ from the account holder.
type Customer struct {
	name  string
	email string
	phone string
}

func NewCustomer(name, email, phone string) (Customer, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)

	if name == "" || len(name) > maxNameLength {
		return Customer{}, ErrInvalidCustomerName
	}
	if !emailRegex.MatchString(email) {
		return Customer{}, ErrInvalidCustomerEmail
	}
	if phone == "" || len(phone) > maxPhoneLength {
		return Customer{}, ErrInvalidCustomerPhone
	}
	return Customer{name: name, email: email, phone: phone}, nil
}

// ReconstructCustomer skips validation for rows already stored.
func ReconstructCustomer(name, email, phone string) Customer {
	return Customer{name: name, email: email, phone: phone}
}

func (c Customer) Name() string  { return c.name }
func (c Customer) Email() string { return c.email }
func (c Customer) Phone() string { return c.phone }
