package event

import (
	"context"
	"log/slog"
	"time"
)

const TopicOrderCreated = "order.created"

type OrderCreatedEvent struct {
	OrderID     string    `json:"order_id"`
	CustomerID  string    `json:"customer_id"`
	ProductIDs  []string  `json:"product_ids"`
	TotalAmount string    `json:"total_amount"`
	OrderDate   time.Time `json:"order_date"`
}

func (s *Service) handleOrderCreatedEvent(ctx context.Context, ev OrderCreatedEvent) error {
	s.logger.InfoContext(ctx, "handling order created event", slog.Any("event", ev))
	return nil
}
