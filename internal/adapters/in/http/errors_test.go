package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", errs.NewValueIsInvalidError("amount"), http.StatusBadRequest},
		{"required", errs.NewValueIsRequiredError("items"), http.StatusBadRequest},
		{"out of range", errs.NewValueIsOutOfRangeError("quantity", 0, 1, 100), http.StatusBadRequest},
		{"joined validation", errors.Join(errs.NewValueIsRequiredError("caller"), errs.NewValueIsInvalidError("id")), http.StatusBadRequest},
		{"duplicate target", errs.NewRuleViolationError(services.ErrDuplicateTarget, "order", "x", ""), http.StatusUnprocessableEntity},
		{"not shippable", errs.NewRuleViolationError(services.ErrOrderNotShippable, "order", "x", ""), http.StatusConflict},
		{"not fully paid", errs.NewRuleViolationError(commands.ErrOrderNotFullyPaid, "order", "x", ""), http.StatusConflict},
		{"tracking exhausted", errs.NewRuleViolationError(commands.ErrTrackingNumberExhausted, "shipment", "x", ""), http.StatusServiceUnavailable},
		{"wrapped transition", fmt.Errorf("ship: %w", errs.NewInvalidTransitionError("order", "x", order.Pending, order.Shipped)), http.StatusConflict},
		{"not constructed", commands.ErrApplyPaymentCommandIsNotConstructed, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}
