// Package http exposes the ordering use cases over a JSON API served by echo.
// Requests under /api are validated against the embedded OpenAPI document
// before they reach a handler; the document is also served at /swagger/.
package http

import (
	"context"
	"log/slog"
	"net/http"

	"ordering/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Server implements the API routes. It translates HTTP input into commands and
// queries and maps results and errors back to HTTP.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
	newID    func() kernel.UUID
}

// NewServer creates a server dispatching to handlers. Identifiers of created
// customers, products and orders are generated here.
func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		handlers: handlers,
		logger:   logger,
		newID:    kernel.NewUUID,
	}
}

// NewEcho builds the echo instance with middleware, validation, docs and routes.
func NewEcho(ctx context.Context, s *Server) (*echo.Echo, error) {
	doc, err := LoadOpenAPI(ctx)
	if err != nil {
		return nil, err
	}
	if err = registerSwaggerDoc(doc); err != nil {
		return nil, err
	}
	validator, err := RequestValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = HTTPErrorHandler

	e.Use(middleware.Recover())
	e.Use(Tracing())
	e.Use(RequestLogger(s.logger))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	s.RegisterRoutes(e.Group("/api", validator))
	return e, nil
}

// RegisterRoutes mounts the API on g. Static segments are registered next to the
// :id routes; echo matches them first.
func (s *Server) RegisterRoutes(g *echo.Group) {
	g.GET("/customers", s.ListCustomers)
	g.POST("/customers", s.CreateCustomer)
	g.GET("/customers/recent", s.RecentCustomers)
	g.GET("/customers/count", s.CountCustomers)
	g.GET("/customers/email/:email", s.GetCustomerByEmail)
	g.GET("/customers/national-id/:nationalId", s.GetCustomerByNationalID)
	g.GET("/customers/:id", s.GetCustomer)
	g.PUT("/customers/:id", s.UpdateCustomer)
	g.DELETE("/customers/:id", s.DeleteCustomer)

	g.GET("/products", s.ListProducts)
	g.POST("/products", s.CreateProduct)
	g.GET("/products/count", s.CountProducts)
	g.GET("/products/:id", s.GetProduct)
	g.PUT("/products/:id", s.UpdateProduct)
	g.DELETE("/products/:id", s.DeleteProduct)

	g.GET("/orders", s.ListOrders)
	g.POST("/orders", s.CreateOrder)
	g.GET("/orders/recent", s.RecentOrders)
	g.GET("/orders/pending", s.PendingOrders)
	g.GET("/orders/stats", s.OrderStats)
	g.GET("/orders/:id", s.GetOrder)
	g.DELETE("/orders/:id", s.DeleteOrder)
	g.PUT("/orders/:id/status", s.ChangeOrderStatus)
	g.POST("/orders/:id/items", s.AddOrderItem)
	g.DELETE("/orders/:id/items/:itemId", s.RemoveOrderItem)
}
