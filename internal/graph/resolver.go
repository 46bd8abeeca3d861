package graph

import (
	"log/slog"

	"github.com/BrahimElhajji/alx-backend-graphql-crm/internal/service"
)

// HelloMsg is the static liveness payload; the heartbeat job queries it.
const HelloMsg = "Hello, GraphQL!"

// Resolver holds the services the schema resolves against.
type Resolver struct {
	logger      *slog.Logger
	customerSvc service.CustomerService
	productSvc  service.ProductService
	orderSvc    service.OrderService
}

func NewResolver(
	logger *slog.Logger,
	customerSvc service.CustomerService,
	productSvc service.ProductService,
	orderSvc service.OrderService,
) *Resolver {
	return &Resolver{
		logger:      logger.With(slog.String("service", "graph")),
		customerSvc: customerSvc,
		productSvc:  productSvc,
		orderSvc:    orderSvc,
	}
}
