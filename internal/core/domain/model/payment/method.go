package payment

import (
	"fmt"

	"ordering/internal/pkg/errs"
)

// Method is how the payment was captured.
type Method string

const (
	Card     Method = "card"
	Transfer Method = "transfer"
	Cash     Method = "cash"
)

// ParseMethod validates a method code.
func ParseMethod(s string) (Method, error) {
	m := Method(s)
	if err := m.Validate(); err != nil {
		return "", err
	}
	return m, nil
}

func (m Method) Validate() error {
	switch m {
	case Card, Transfer, Cash:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("method", fmt.Errorf("%q is not a valid payment method", string(m)))
	}
}

func (m Method) String() string {
	return string(m)
}
