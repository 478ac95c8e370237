package http

import (
	"net/http"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// CreateOrder handles POST /api/v1/orders. The caller becomes the owner.
func (s *Server) CreateOrder(c echo.Context) error {
	var body NewOrder
	if err := c.Bind(&body); err != nil {
		return writeJSONError(c, http.StatusBadRequest, "Invalid request body")
	}

	items := make([]order.Item, 0, len(body.Items))
	for _, line := range body.Items {
		productID, err := parseUUID("productId", line.ProductID)
		if err != nil {
			return s.writeError(c, err)
		}
		price, err := kernel.MoneyFromString(line.UnitPrice)
		if err != nil {
			return s.writeError(c, err)
		}
		item, err := order.NewItem(productID, line.Quantity, price)
		if err != nil {
			return s.writeError(c, err)
		}
		items = append(items, item)
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), callerFrom(c), items)
	if err != nil {
		return s.writeError(c, err)
	}

	o, err := s.handlers.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, orderFromDomain(o))
}

// ListOrders handles GET /api/v1/orders. Without customerId the caller's
// own orders are listed.
func (s *Server) ListOrders(c echo.Context) error {
	caller := callerFrom(c)

	customerID := caller.UserID()
	if raw := c.QueryParam("customerId"); raw != "" {
		id, err := parseUUID("customerId", raw)
		if err != nil {
			return s.writeError(c, err)
		}
		customerID = id
	}

	names, err := queryStrings(c, "status")
	if err != nil {
		return s.writeError(c, err)
	}
	statuses := make([]order.Status, 0, len(names))
	for _, name := range names {
		status, parseErr := order.ParseStatus(name)
		if parseErr != nil {
			return s.writeError(c, parseErr)
		}
		statuses = append(statuses, status)
	}

	query, err := queries.NewListCustomerOrdersQuery(customerID, statuses, caller)
	if err != nil {
		return s.writeError(c, err)
	}

	summaries, err := s.handlers.ListCustomerOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}

	response := make([]Order, 0, len(summaries))
	for _, summary := range summaries {
		response = append(response, orderFromSummary(summary))
	}
	return c.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/{id}.
func (s *Server) GetOrder(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.writeError(c, err)
	}

	query, err := queries.NewGetOrderQuery(id, callerFrom(c))
	if err != nil {
		return s.writeError(c, err)
	}

	view, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, orderFromView(view))
}

// TransitionOrderStatus handles PATCH /api/v1/orders/{id}/status.
func (s *Server) TransitionOrderStatus(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.writeError(c, err)
	}

	var body OrderStatusChange
	if err = c.Bind(&body); err != nil {
		return writeJSONError(c, http.StatusBadRequest, "Invalid request body")
	}
	if body.Status == "" {
		return s.writeError(c, errs.NewValueIsRequiredError("status"))
	}
	target, err := order.ParseStatus(body.Status)
	if err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewTransitionOrderStatusCommand(id, target, callerFrom(c))
	if err != nil {
		return s.writeError(c, err)
	}

	o, err := s.handlers.TransitionOrderStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, orderFromDomain(o))
}
