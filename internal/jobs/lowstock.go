package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/BrahimElhajji/alx-backend-graphql-crm/pkg/gqlclient"
)

const updateLowStockMutation = `mutation {
	updateLowStockProducts {
		updatedProducts {
			name
			stock
		}
		successMessage
	}
}`

// UpdatedProduct is one product touched by the low-stock mutation.
type UpdatedProduct struct {
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

type LowStockResult struct {
	Timestamp time.Time
	Message   string
	Products  []UpdatedProduct
	Err       error
}

// UpdateLowStock invokes the updateLowStockProducts mutation.
func (s *Service) UpdateLowStock(ctx context.Context) LowStockResult {
	result := LowStockResult{Timestamp: s.now()}

	var out struct {
		UpdateLowStockProducts struct {
			UpdatedProducts []UpdatedProduct `json:"updatedProducts"`
			SuccessMessage  string           `json:"successMessage"`
		} `json:"updateLowStockProducts"`
	}
	if err := s.client.Execute(ctx, gqlclient.Request{Query: updateLowStockMutation}, &out); err != nil {
		result.Err = err
		return result
	}

	result.Message = out.UpdateLowStockProducts.SuccessMessage
	result.Products = out.UpdateLowStockProducts.UpdatedProducts
	return result
}

// Lines renders the low-stock log: a success (or error) line, then one line
// per restocked product.
func (r LowStockResult) Lines() []string {
	ts := r.Timestamp.Format(logTimestampFormat)

	if r.Err != nil {
		return []string{fmt.Sprintf("%s Error updating low-stock products: %v", ts, r.Err)}
	}

	lines := make([]string, 0, len(r.Products)+1)
	lines = append(lines, fmt.Sprintf("%s %s", ts, r.Message))
	for _, p := range r.Products {
		lines = append(lines, fmt.Sprintf("%s %s: new stock %d", ts, p.Name, p.Stock))
	}

	return lines
}
