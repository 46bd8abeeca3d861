package graph

import (
	"time"

	"github.com/BrahimElhajji/alx-backend-graphql-crm/internal/model"
)

// Response objects with camelCase json tags so the default field resolver
// matches the schema field names.

type customerDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type productDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Stock     int       `json:"stock"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type orderDTO struct {
	ID          string    `json:"id"`
	CustomerID  string    `json:"customerId"`
	OrderDate   time.Time `json:"orderDate"`
	TotalAmount float64   `json:"totalAmount"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toCustomerDTO(c model.Customer) customerDTO {
	return customerDTO{
		ID:        c.ID.String(),
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toCustomerDTOs(customers []model.Customer) []customerDTO {
	dtos := make([]customerDTO, 0, len(customers))
	for _, c := range customers {
		dtos = append(dtos, toCustomerDTO(c))
	}
	return dtos
}

func toProductDTO(p model.Product) productDTO {
	return productDTO{
		ID:        p.ID.String(),
		Name:      p.Name,
		Price:     p.Price.InexactFloat64(),
		Stock:     p.Stock,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toProductDTOs(products []model.Product) []productDTO {
	dtos := make([]productDTO, 0, len(products))
	for _, p := range products {
		dtos = append(dtos, toProductDTO(p))
	}
	return dtos
}

func toOrderDTO(o model.Order) orderDTO {
	return orderDTO{
		ID:          o.ID.String(),
		CustomerID:  o.CustomerID.String(),
		OrderDate:   o.OrderDate,
		TotalAmount: o.TotalAmount.InexactFloat64(),
		CreatedAt:   o.CreatedAt,
	}
}

func toOrderDTOs(orders []model.Order) []orderDTO {
	dtos := make([]orderDTO, 0, len(orders))
	for _, o := range orders {
		dtos = append(dtos, toOrderDTO(o))
	}
	return dtos
}
