package graph

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/graphql-go/graphql"
	"github.com/shopspring/decimal"

	"github.com/BrahimElhajji/alx-backend-graphql-crm/internal/apperr"
	"github.com/BrahimElhajji/alx-backend-graphql-crm/internal/repository"
	"github.com/BrahimElhajji/alx-backend-graphql-crm/internal/service"
	"github.com/BrahimElhajji/alx-backend-graphql-crm/pkg/validator"
	"github.com/BrahimElhajji/alx-backend-graphql-crm/pkg/zerror"
)

// NewSchema builds the executable schema around the given resolver.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	customerType := newCustomerType()
	productType := newProductType()
	orderType := r.newOrderType(customerType, productType)

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query:    r.newQueryType(customerType, productType, orderType),
		Mutation: r.newMutationType(customerType, productType, orderType),
	})
	if err != nil {
		return graphql.Schema{}, fmt.Errorf("new schema: %w", err)
	}

	return schema, nil
}

func newCustomerType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Customer",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"email":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"phone":     &graphql.Field{Type: graphql.String},
			"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
			"updatedAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		},
	})
}

func newProductType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Product",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"price":     &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"stock":     &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
			"updatedAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		},
	})
}

func (r *Resolver) newOrderType(customerType, productType *graphql.Object) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Order",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"orderDate":   &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
			"totalAmount": &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"createdAt":   &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
			"customer": &graphql.Field{
				Type: graphql.NewNonNull(customerType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					order, ok := p.Source.(orderDTO)
					if !ok {
						return nil, fmt.Errorf("unexpected source type %T", p.Source)
					}

					id, err := uuid.Parse(order.CustomerID)
					if err != nil {
						return nil, r.resolveErr(p.Context, "Order.customer", err)
					}

					customer, err := r.customerSvc.GetCustomer(p.Context, id)
					if err != nil {
						return nil, r.resolveErr(p.Context, "Order.customer", err)
					}

					return toCustomerDTO(customer), nil
				},
			},
			"products": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(productType))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					order, ok := p.Source.(orderDTO)
					if !ok {
						return nil, fmt.Errorf("unexpected source type %T", p.Source)
					}

					id, err := uuid.Parse(order.ID)
					if err != nil {
						return nil, r.resolveErr(p.Context, "Order.products", err)
					}

					products, err := r.productSvc.ListProductsByOrder(p.Context, id)
					if err != nil {
						return nil, r.resolveErr(p.Context, "Order.products", err)
					}

					return toProductDTOs(products), nil
				},
			},
		},
	})
}

func (r *Resolver) newQueryType(customerType, productType, orderType *graphql.Object) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"hello": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return HelloMsg, nil
				},
			},
			"allCustomers": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(customerType))),
				Args: graphql.FieldConfigArgument{
					"nameContains":  &graphql.ArgumentConfig{Type: graphql.String},
					"emailContains": &graphql.ArgumentConfig{Type: graphql.String},
					"phonePrefix":   &graphql.ArgumentConfig{Type: graphql.String},
					"createdAtGte":  &graphql.ArgumentConfig{Type: graphql.DateTime},
					"createdAtLte":  &graphql.ArgumentConfig{Type: graphql.DateTime},
					"ordering":      &graphql.ArgumentConfig{Type: graphql.NewList(graphql.NewNonNull(graphql.String))},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					params := repository.ListCustomersParams{
						Filter: repository.CustomerFilter{
							NameContains:  optString(p.Args, "nameContains"),
							EmailContains: optString(p.Args, "emailContains"),
							PhonePrefix:   optString(p.Args, "phonePrefix"),
							CreatedAtGte:  optTime(p.Args, "createdAtGte"),
							CreatedAtLte:  optTime(p.Args, "createdAtLte"),
						},
						Ordering: orderingArg(p.Args),
					}

					customers, err := r.customerSvc.ListCustomers(p.Context, params)
					if err != nil {
						return nil, r.resolveErr(p.Context, "allCustomers", err)
					}

					return toCustomerDTOs(customers), nil
				},
			},
			"allProducts": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(productType))),
				Args: graphql.FieldConfigArgument{
					"nameContains": &graphql.ArgumentConfig{Type: graphql.String},
					"priceGte":     &graphql.ArgumentConfig{Type: graphql.Float},
					"priceLte":     &graphql.ArgumentConfig{Type: graphql.Float},
					"stockGte":     &graphql.ArgumentConfig{Type: graphql.Int},
					"stockLte":     &graphql.ArgumentConfig{Type: graphql.Int},
					"ordering":     &graphql.ArgumentConfig{Type: graphql.NewList(graphql.NewNonNull(graphql.String))},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					params := repository.ListProductsParams{
						Filter: repository.ProductFilter{
							NameContains: optString(p.Args, "nameContains"),
							PriceGte:     optDecimal(p.Args, "priceGte"),
							PriceLte:     optDecimal(p.Args, "priceLte"),
							StockGte:     optInt(p.Args, "stockGte"),
							StockLte:     optInt(p.Args, "stockLte"),
						},
						Ordering: orderingArg(p.Args),
					}

					products, err := r.productSvc.ListProducts(p.Context, params)
					if err != nil {
						return nil, r.resolveErr(p.Context, "allProducts", err)
					}

					return toProductDTOs(products), nil
				},
			},
			"allOrders": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(orderType))),
				Args: graphql.FieldConfigArgument{
					"totalAmountGte": &graphql.ArgumentConfig{Type: graphql.Float},
					"totalAmountLte": &graphql.ArgumentConfig{Type: graphql.Float},
					"orderDateGte":   &graphql.ArgumentConfig{Type: graphql.DateTime},
					"orderDateLte":   &graphql.ArgumentConfig{Type: graphql.DateTime},
					"customerEmail":  &graphql.ArgumentConfig{Type: graphql.String},
					"productId":      &graphql.ArgumentConfig{Type: graphql.ID},
					"ordering":       &graphql.ArgumentConfig{Type: graphql.NewList(graphql.NewNonNull(graphql.String))},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					filter := repository.OrderFilter{
						TotalAmountGte:        optDecimal(p.Args, "totalAmountGte"),
						TotalAmountLte:        optDecimal(p.Args, "totalAmountLte"),
						OrderDateGte:          optTime(p.Args, "orderDateGte"),
						OrderDateLte:          optTime(p.Args, "orderDateLte"),
						CustomerEmailContains: optString(p.Args, "customerEmail"),
					}

					if raw := optString(p.Args, "productId"); raw != nil {
						id, err := uuid.Parse(*raw)
						if err != nil {
							return nil, r.resolveErr(p.Context, "allOrders", apperr.ProductNotFoundErr.WithMsg(fmt.Sprintf("Invalid product ID: %s", *raw)))
						}
						filter.ProductID = &id
					}

					orders, err := r.orderSvc.ListOrders(p.Context, repository.ListOrdersParams{
						Filter:   filter,
						Ordering: orderingArg(p.Args),
					})
					if err != nil {
						return nil, r.resolveErr(p.Context, "allOrders", err)
					}

					return toOrderDTOs(orders), nil
				},
			},
		},
	})
}

func (r *Resolver) newMutationType(customerType, productType, orderType *graphql.Object) *graphql.Object {
	customerInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CustomerInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"email": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"phone": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	createCustomerPayload := graphql.NewObject(graphql.ObjectConfig{
		Name: "CreateCustomerPayload",
		Fields: graphql.Fields{
			"customer": &graphql.Field{Type: customerType},
			"message":  &graphql.Field{Type: graphql.String},
		},
	})

	bulkCreateCustomersPayload := graphql.NewObject(graphql.ObjectConfig{
		Name: "BulkCreateCustomersPayload",
		Fields: graphql.Fields{
			"customers": &graphql.Field{Type: graphql.NewList(graphql.NewNonNull(customerType))},
			"errors":    &graphql.Field{Type: graphql.NewList(graphql.NewNonNull(graphql.String))},
		},
	})

	createProductPayload := graphql.NewObject(graphql.ObjectConfig{
		Name: "CreateProductPayload",
		Fields: graphql.Fields{
			"product": &graphql.Field{Type: productType},
		},
	})

	createOrderPayload := graphql.NewObject(graphql.ObjectConfig{
		Name: "CreateOrderPayload",
		Fields: graphql.Fields{
			"order": &graphql.Field{Type: orderType},
		},
	})

	updateLowStockPayload := graphql.NewObject(graphql.ObjectConfig{
		Name: "UpdateLowStockProductsPayload",
		Fields: graphql.Fields{
			"updatedProducts": &graphql.Field{Type: graphql.NewList(graphql.NewNonNull(productType))},
			"successMessage":  &graphql.Field{Type: graphql.String},
		},
	})

	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createCustomer": &graphql.Field{
				Type: graphql.NewNonNull(createCustomerPayload),
				Args: graphql.FieldConfigArgument{
					"name":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"email": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"phone": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					params := service.CreateCustomerParams{
						Name:  p.Args["name"].(string),
						Email: p.Args["email"].(string),
						Phone: optString(p.Args, "phone"),
					}

					customer, err := r.customerSvc.CreateCustomer(p.Context, params)
					if err != nil {
						return nil, r.resolveErr(p.Context, "createCustomer", err)
					}

					return createCustomerResult{
						Customer: toCustomerDTO(customer),
						Message:  service.CustomerCreatedMsg,
					}, nil
				},
			},
			"bulkCreateCustomers": &graphql.Field{
				Type: graphql.NewNonNull(bulkCreateCustomersPayload),
				Args: graphql.FieldConfigArgument{
					"customers": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(customerInputType))),
					},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					rawRows, _ := p.Args["customers"].([]interface{})
					rows := make([]service.CreateCustomerParams, 0, len(rawRows))
					for _, raw := range rawRows {
						input, ok := raw.(map[string]interface{})
						if !ok {
							return nil, fmt.Errorf("unexpected customer input type %T", raw)
						}

						name, _ := input["name"].(string)
						email, _ := input["email"].(string)
						row := service.CreateCustomerParams{
							Name:  name,
							Email: email,
							Phone: optString(input, "phone"),
						}
						rows = append(rows, row)
					}

					created, rowErrors, err := r.customerSvc.BulkCreateCustomers(p.Context, rows)
					if err != nil {
						return nil, r.resolveErr(p.Context, "bulkCreateCustomers", err)
					}

					return bulkCreateCustomersResult{
						Customers: toCustomerDTOs(created),
						Errors:    rowErrors,
					}, nil
				},
			},
			"createProduct": &graphql.Field{
				Type: graphql.NewNonNull(createProductPayload),
				Args: graphql.FieldConfigArgument{
					"name":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"price": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"stock": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 0},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					price, _ := p.Args["price"].(float64)
					stock, _ := p.Args["stock"].(int)

					product, err := r.productSvc.CreateProduct(p.Context, service.CreateProductParams{
						Name:  p.Args["name"].(string),
						Price: decimal.NewFromFloat(price),
						Stock: stock,
					})
					if err != nil {
						return nil, r.resolveErr(p.Context, "createProduct", err)
					}

					return createProductResult{Product: toProductDTO(product)}, nil
				},
			},
			"createOrder": &graphql.Field{
				Type: graphql.NewNonNull(createOrderPayload),
				Args: graphql.FieldConfigArgument{
					"customerId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"productIds": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.ID)))},
					"orderDate":  &graphql.ArgumentConfig{Type: graphql.DateTime},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					rawCustomerID, _ := p.Args["customerId"].(string)
					customerID, err := uuid.Parse(rawCustomerID)
					if err != nil {
						return nil, r.resolveErr(p.Context, "createOrder", apperr.CustomerNotFoundErr)
					}

					rawProductIDs, _ := p.Args["productIds"].([]interface{})
					productIDs := make([]uuid.UUID, 0, len(rawProductIDs))
					for _, raw := range rawProductIDs {
						rawID, _ := raw.(string)
						id, err := uuid.Parse(rawID)
						if err != nil {
							return nil, r.resolveErr(p.Context, "createOrder", apperr.ProductNotFoundErr.WithMsg(fmt.Sprintf("Invalid product ID: %s", rawID)))
						}
						productIDs = append(productIDs, id)
					}

					order, err := r.orderSvc.CreateOrder(p.Context, service.CreateOrderParams{
						CustomerID: customerID,
						ProductIDs: productIDs,
						OrderDate:  optTime(p.Args, "orderDate"),
					})
					if err != nil {
						return nil, r.resolveErr(p.Context, "createOrder", err)
					}

					return createOrderResult{Order: toOrderDTO(order)}, nil
				},
			},
			"updateLowStockProducts": &graphql.Field{
				Type: graphql.NewNonNull(updateLowStockPayload),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					updated, message, err := r.productSvc.UpdateLowStockProducts(p.Context)
					if err != nil {
						return nil, r.resolveErr(p.Context, "updateLowStockProducts", err)
					}

					return updateLowStockResult{
						UpdatedProducts: toProductDTOs(updated),
						SuccessMessage:  message,
					}, nil
				},
			},
		},
	})
}

type createCustomerResult struct {
	Customer customerDTO `json:"customer"`
	Message  string      `json:"message"`
}

type bulkCreateCustomersResult struct {
	Customers []customerDTO `json:"customers"`
	Errors    []string      `json:"errors"`
}

type createProductResult struct {
	Product productDTO `json:"product"`
}

type createOrderResult struct {
	Order orderDTO `json:"order"`
}

type updateLowStockResult struct {
	UpdatedProducts []productDTO `json:"updatedProducts"`
	SuccessMessage  string       `json:"successMessage"`
}

func (r *Resolver) resolveErr(ctx context.Context, op string, err error) error {
	var zErr zerror.ZError
	if !errors.As(err, &zErr) && !validator.IsValidationError(err) {
		r.logger.ErrorContext(ctx, "resolver error",
			slog.String("op", op),
			slog.Any("error", err),
		)
	}
	return newResolverError(err)
}

func optString(args map[string]interface{}, key string) *string {
	if v, ok := args[key].(string); ok {
		return &v
	}
	return nil
}

func optInt(args map[string]interface{}, key string) *int {
	if v, ok := args[key].(int); ok {
		return &v
	}
	return nil
}

func optDecimal(args map[string]interface{}, key string) *decimal.Decimal {
	if v, ok := args[key].(float64); ok {
		d := decimal.NewFromFloat(v)
		return &d
	}
	return nil
}

func optTime(args map[string]interface{}, key string) *time.Time {
	if v, ok := args[key].(time.Time); ok {
		return &v
	}
	return nil
}

func orderingArg(args map[string]interface{}) []string {
	raw, ok := args["ordering"].([]interface{})
	if !ok {
		return nil
	}

	keys := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			keys = append(keys, s)
		}
	}
	return keys
}
