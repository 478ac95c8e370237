package http

import (
	"net/http"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// CreateShipment handles POST /api/v1/shipments.
func (s *Server) CreateShipment(c echo.Context) error {
	var body NewShipment
	if err := c.Bind(&body); err != nil {
		return writeJSONError(c, http.StatusBadRequest, "Invalid request body")
	}
	orderID, err := parseUUID("orderId", body.OrderID)
	if err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewCreateShipmentCommand(kernel.NewUUID(), orderID, callerFrom(c))
	if err != nil {
		return s.writeError(c, err)
	}

	sh, err := s.handlers.CreateShipment.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, shipmentFromDomain(sh))
}

// ListOrderShipments handles GET /api/v1/shipments/by-order/{orderId}.
func (s *Server) ListOrderShipments(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return s.writeError(c, err)
	}

	query, err := queries.NewListOrderShipmentsQuery(orderID, callerFrom(c))
	if err != nil {
		return s.writeError(c, err)
	}

	views, err := s.handlers.ListOrderShipments.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}

	response := make([]Shipment, 0, len(views))
	for _, v := range views {
		response = append(response, shipmentFromView(v))
	}
	return c.JSON(http.StatusOK, response)
}

// TrackShipment handles GET /api/v1/shipments/track/{trackingNumber}.
func (s *Server) TrackShipment(c echo.Context) error {
	trackingNumber, err := pathString(c, "trackingNumber")
	if err != nil {
		return s.writeError(c, err)
	}

	query, err := queries.NewTrackShipmentQuery(trackingNumber, callerFrom(c))
	if err != nil {
		return s.writeError(c, err)
	}

	view, err := s.handlers.TrackShipment.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, shipmentFromView(view))
}

// ShipShipment handles POST /api/v1/shipments/{id}/ship.
func (s *Server) ShipShipment(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewShipShipmentCommand(id, callerFrom(c))
	if err != nil {
		return s.writeError(c, err)
	}

	sh, err := s.handlers.ShipShipment.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, shipmentFromDomain(sh))
}

// DeliverShipment handles POST /api/v1/shipments/{id}/deliver.
func (s *Server) DeliverShipment(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewDeliverShipmentCommand(id, callerFrom(c))
	if err != nil {
		return s.writeError(c, err)
	}

	sh, err := s.handlers.DeliverShipment.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, shipmentFromDomain(sh))
}
