package validate

import (
	"fmt"
	"math"
	"net/mail"
	"strings"

	"demo/ordertrace/internal/model"
)

const (
	maxNameLen    = 255
	maxProductLen = 255
)

type multiErr []error

func (m multiErr) Error() string {
	var b strings.Builder
	for i, e := range m {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(e.Error())
	}
	return b.String()
}
func (m multiErr) OrNil() error {
	if len(m) == 0 {
		return nil
	}
	return m
}

func ValidateUser(u model.User) error {
	var errs multiErr

	name := strings.TrimSpace(u.Name)
	if name == "" {
		errs = append(errs, fmt.Errorf("name: required"))
	} else if len(name) > maxNameLen {
		errs = append(errs, fmt.Errorf("name: at most %d characters", maxNameLen))
	}
	// Email uniqueness is not enforced; only the shape is checked.
	if u.Email != "" {
		if _, err := mail.ParseAddress(u.Email); err != nil {
			errs = append(errs, fmt.Errorf("email: invalid"))
		}
	}

	return errs.OrNil()
}

// ValidateOrder checks the payload only. Whether UserID names an existing
// user is decided by the order workflow.
func ValidateOrder(o model.Order) error {
	var errs multiErr

	product := strings.TrimSpace(o.ProductName)
	if product == "" {
		errs = append(errs, fmt.Errorf("productName: required"))
	} else if len(product) > maxProductLen {
		errs = append(errs, fmt.Errorf("productName: at most %d characters", maxProductLen))
	}
	if math.IsNaN(o.Amount) || math.IsInf(o.Amount, 0) || o.Amount < 0 {
		errs = append(errs, fmt.Errorf("amount: must be >= 0"))
	}

	return errs.OrNil()
}
