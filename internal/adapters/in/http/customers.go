package http

import (
	"net/http"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// ListCustomers handles GET /api/customers.
func (s *Server) ListCustomers(c echo.Context) error {
	var filter queries.CustomerFilter
	var err error
	if filter.Name, err = queryString(c, "name"); err != nil {
		return s.fail(c, err)
	}
	if filter.City, err = queryString(c, "city"); err != nil {
		return s.fail(c, err)
	}
	if filter.State, err = queryString(c, "state"); err != nil {
		return s.fail(c, err)
	}

	customers, err := s.handlers.Customers.ListCustomers(c.Request().Context(), queries.NewListCustomersQuery(filter))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, customers)
}

// RecentCustomers handles GET /api/customers/recent.
func (s *Server) RecentCustomers(c echo.Context) error {
	limit, err := queryLimit(c)
	if err != nil {
		return s.fail(c, err)
	}
	query, err := queries.NewGetRecentCustomersQuery(limit)
	if err != nil {
		return s.fail(c, err)
	}

	customers, err := s.handlers.Customers.GetRecentCustomers(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, customers)
}

// CountCustomers handles GET /api/customers/count.
func (s *Server) CountCustomers(c echo.Context) error {
	count, err := s.handlers.Customers.CountCustomers(c.Request().Context(), queries.NewCountCustomersQuery())
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"count": count})
}

// GetCustomer handles GET /api/customers/{id}.
func (s *Server) GetCustomer(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	query, err := queries.NewGetCustomerByIDQuery(id)
	if err != nil {
		return s.fail(c, err)
	}
	return s.getCustomer(c, query)
}

// GetCustomerByEmail handles GET /api/customers/email/{email}.
func (s *Server) GetCustomerByEmail(c echo.Context) error {
	email, err := pathString(c, "email")
	if err != nil {
		return s.fail(c, err)
	}
	query, err := queries.NewGetCustomerByEmailQuery(email)
	if err != nil {
		return s.fail(c, err)
	}
	return s.getCustomer(c, query)
}

// GetCustomerByNationalID handles GET /api/customers/national-id/{nationalId}.
func (s *Server) GetCustomerByNationalID(c echo.Context) error {
	nationalID, err := pathString(c, "nationalId")
	if err != nil {
		return s.fail(c, err)
	}
	query, err := queries.NewGetCustomerByNationalIDQuery(nationalID)
	if err != nil {
		return s.fail(c, err)
	}
	return s.getCustomer(c, query)
}

func (s *Server) getCustomer(c echo.Context, query queries.GetCustomerQuery) error {
	view, err := s.handlers.Customers.GetCustomer(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// CreateCustomer handles POST /api/customers.
func (s *Server) CreateCustomer(c echo.Context) error {
	var req customerRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	profile, err := req.profile()
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewCreateCustomerCommand(s.newID(), profile)
	if err != nil {
		return s.fail(c, err)
	}

	created, err := s.handlers.CreateCustomer.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, queries.FromCustomer(created))
}

// UpdateCustomer handles PUT /api/customers/{id}. The body replaces the whole profile.
func (s *Server) UpdateCustomer(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	var req customerRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	profile, err := req.profile()
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewUpdateCustomerCommand(id, profile)
	if err != nil {
		return s.fail(c, err)
	}

	updated, err := s.handlers.UpdateCustomer.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, queries.FromCustomer(updated))
}

// DeleteCustomer handles DELETE /api/customers/{id}.
func (s *Server) DeleteCustomer(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewDeleteCustomerCommand(id)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.handlers.DeleteCustomer.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
