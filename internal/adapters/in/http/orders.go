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

// ListOrders handles GET /api/orders.
func (s *Server) ListOrders(c echo.Context) error {
	var filter queries.OrderFilter

	rawCustomer, err := queryString(c, "customerId")
	if err != nil {
		return s.fail(c, err)
	}
	if rawCustomer != "" {
		customerID, parseErr := kernel.UUIDFromString(rawCustomer)
		if parseErr != nil {
			return s.fail(c, errs.NewValueIsInvalidErrorWithCause("customerId", parseErr))
		}
		filter.CustomerID = &customerID
	}

	rawStatus, err := queryString(c, "status")
	if err != nil {
		return s.fail(c, err)
	}
	if rawStatus != "" {
		status, parseErr := order.StatusFromString(rawStatus)
		if parseErr != nil {
			return s.fail(c, parseErr)
		}
		filter.Status = &status
	}

	query, err := queries.NewListOrdersQuery(filter)
	if err != nil {
		return s.fail(c, err)
	}
	orders, err := s.handlers.Orders.ListOrders(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

// RecentOrders handles GET /api/orders/recent.
func (s *Server) RecentOrders(c echo.Context) error {
	limit, err := queryLimit(c)
	if err != nil {
		return s.fail(c, err)
	}
	query, err := queries.NewGetRecentOrdersQuery(limit)
	if err != nil {
		return s.fail(c, err)
	}

	orders, err := s.handlers.Orders.GetRecentOrders(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

// PendingOrders handles GET /api/orders/pending.
func (s *Server) PendingOrders(c echo.Context) error {
	orders, err := s.handlers.Orders.GetPendingOrders(c.Request().Context(), queries.NewGetPendingOrdersQuery())
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

// OrderStats handles GET /api/orders/stats.
func (s *Server) OrderStats(c echo.Context) error {
	stats, err := s.handlers.Orders.GetOrderStats(c.Request().Context(), queries.NewGetOrderStatsQuery())
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

// GetOrder handles GET /api/orders/{id}.
func (s *Server) GetOrder(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return s.fail(c, err)
	}

	view, err := s.handlers.Orders.GetOrder(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// CreateOrder handles POST /api/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var req orderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	cmd, err := req.command(s.newID())
	if err != nil {
		return s.fail(c, err)
	}

	created, err := s.handlers.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, queries.FromOrder(created))
}

// ChangeOrderStatus handles PUT /api/orders/{id}/status.
func (s *Server) ChangeOrderStatus(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	var req statusRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	status, err := order.StatusFromString(req.Status)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewChangeOrderStatusCommand(id, status)
	if err != nil {
		return s.fail(c, err)
	}

	updated, err := s.handlers.ChangeOrderStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, queries.FromOrder(updated))
}

// AddOrderItem handles POST /api/orders/{id}/items.
func (s *Server) AddOrderItem(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	var req orderLineRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	line, err := req.line()
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewAddOrderItemCommand(id, line.ProductID, line.Quantity)
	if err != nil {
		return s.fail(c, err)
	}

	updated, _, err := s.handlers.AddOrderItem.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, queries.FromOrder(updated))
}

// RemoveOrderItem handles DELETE /api/orders/{id}/items/{itemId}.
func (s *Server) RemoveOrderItem(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	itemID, err := pathUUID(c, "itemId")
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewRemoveOrderItemCommand(id, itemID)
	if err != nil {
		return s.fail(c, err)
	}

	updated, err := s.handlers.RemoveOrderItem.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, queries.FromOrder(updated))
}

// DeleteOrder handles DELETE /api/orders/{id}.
func (s *Server) DeleteOrder(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewDeleteOrderCommand(id)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.handlers.DeleteOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
