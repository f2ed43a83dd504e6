package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrProductNotFound is returned when an operation references a product id
// that is not in the catalog.
var ErrProductNotFound = errors.New("product not found")

// ErrInvalidCredentials is returned on a failed login. Callers only learn
// pass/fail; no distinction is made between unknown user and wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ValidationError reports product fields rejected by a create, update or
// commit request. Without an explicit Message the fields are reported as
// missing, the common case.
type ValidationError struct {
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}
