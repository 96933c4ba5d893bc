package http

import (
	"net/http"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// ListProducts handles GET /api/products.
func (s *Server) ListProducts(c echo.Context) error {
	var filter queries.ProductFilter
	var err error
	if filter.Name, err = queryString(c, "name"); err != nil {
		return s.fail(c, err)
	}
	var available *bool
	if err = queryParam(c, "available", &available); err != nil {
		return s.fail(c, err)
	}
	filter.AvailableOnly = available != nil && *available

	products, err := s.handlers.Products.ListProducts(c.Request().Context(), queries.NewListProductsQuery(filter))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, products)
}

// CountProducts handles GET /api/products/count.
func (s *Server) CountProducts(c echo.Context) error {
	counts, err := s.handlers.Products.CountProducts(c.Request().Context(), queries.NewCountProductsQuery())
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, counts)
}

// GetProduct handles GET /api/products/{id}.
func (s *Server) GetProduct(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	query, err := queries.NewGetProductQuery(id)
	if err != nil {
		return s.fail(c, err)
	}

	view, err := s.handlers.Products.GetProduct(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// CreateProduct handles POST /api/products.
func (s *Server) CreateProduct(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	details, err := req.details()
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewCreateProductCommand(s.newID(), details)
	if err != nil {
		return s.fail(c, err)
	}

	created, err := s.handlers.CreateProduct.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, queries.FromProduct(created))
}

// UpdateProduct handles PUT /api/products/{id}.
func (s *Server) UpdateProduct(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	var req productRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	details, err := req.details()
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewUpdateProductCommand(id, details)
	if err != nil {
		return s.fail(c, err)
	}

	updated, err := s.handlers.UpdateProduct.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, queries.FromProduct(updated))
}

// DeleteProduct handles DELETE /api/products/{id}.
func (s *Server) DeleteProduct(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewDeleteProductCommand(id)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.handlers.DeleteProduct.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
