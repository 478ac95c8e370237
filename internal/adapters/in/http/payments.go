package http

import (
	"net/http"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/payment"

	"github.com/labstack/echo/v4"
)

// CreatePayment handles POST /api/v1/payments. The payment is recorded as
// captured and Pending.
func (s *Server) CreatePayment(c echo.Context) error {
	var body NewPayment
	if err := c.Bind(&body); err != nil {
		return writeJSONError(c, http.StatusBadRequest, "Invalid request body")
	}

	amount, err := kernel.MoneyFromString(body.Amount)
	if err != nil {
		return s.writeError(c, err)
	}
	method, err := payment.ParseMethod(body.Method)
	if err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewCreatePaymentCommand(kernel.NewUUID(), amount, method)
	if err != nil {
		return s.writeError(c, err)
	}

	p, err := s.handlers.CreatePayment.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, paymentFromDomain(p))
}

// ListPayments handles GET /api/v1/payments. Customers only see payments
// allocated to their own orders.
func (s *Server) ListPayments(c echo.Context) error {
	names, err := queryStrings(c, "status")
	if err != nil {
		return s.writeError(c, err)
	}
	statuses := make([]payment.Status, 0, len(names))
	for _, name := range names {
		status, parseErr := payment.ParseStatus(name)
		if parseErr != nil {
			return s.writeError(c, parseErr)
		}
		statuses = append(statuses, status)
	}

	query, err := queries.NewListPaymentsQuery(statuses, callerFrom(c))
	if err != nil {
		return s.writeError(c, err)
	}

	summaries, err := s.handlers.ListPayments.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}

	response := make([]Payment, 0, len(summaries))
	for _, summary := range summaries {
		response = append(response, paymentFromSummary(summary))
	}
	return c.JSON(http.StatusOK, response)
}

// GetPayment handles GET /api/v1/payments/{id}.
func (s *Server) GetPayment(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.writeError(c, err)
	}

	query, err := queries.NewGetPaymentQuery(id, callerFrom(c))
	if err != nil {
		return s.writeError(c, err)
	}

	view, err := s.handlers.GetPayment.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, paymentFromView(view))
}

// ApplyPayment handles POST /api/v1/payments/{id}/apply. Without amounts
// the payment is spread over the orders in the given order. The response is
// the payment as GetPayment shows it to the caller.
func (s *Server) ApplyPayment(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.writeError(c, err)
	}

	var body ApplyPayment
	if err = c.Bind(&body); err != nil {
		return writeJSONError(c, http.StatusBadRequest, "Invalid request body")
	}
	orderIDs, err := parseUUIDs("orderIds", body.OrderIDs)
	if err != nil {
		return s.writeError(c, err)
	}
	amounts, err := parseAmounts(body.Amounts)
	if err != nil {
		return s.writeError(c, err)
	}

	caller := callerFrom(c)
	cmd, err := commands.NewApplyPaymentCommand(id, orderIDs, amounts, caller)
	if err != nil {
		return s.writeError(c, err)
	}

	if _, err = s.handlers.ApplyPayment.Handle(c.Request().Context(), cmd); err != nil {
		return s.writeError(c, err)
	}

	// The payment may carry allocations on other customers' orders, so the
	// response goes through the same caller filter as GET /payments/{id}.
	query, err := queries.NewGetPaymentQuery(id, caller)
	if err != nil {
		return s.writeError(c, err)
	}
	view, err := s.handlers.GetPayment.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, paymentFromView(view))
}

// CompletePayment handles POST /api/v1/payments/{id}/complete.
func (s *Server) CompletePayment(c echo.Context) error {
	return s.settle(c, payment.Completed)
}

// FailPayment handles POST /api/v1/payments/{id}/fail.
func (s *Server) FailPayment(c echo.Context) error {
	return s.settle(c, payment.Failed)
}

func (s *Server) settle(c echo.Context, outcome payment.Status) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewSettlePaymentCommand(id, outcome, callerFrom(c))
	if err != nil {
		return s.writeError(c, err)
	}

	p, err := s.handlers.SettlePayment.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, paymentFromDomain(p))
}
