package event

import (
	"context"
	"log/slog"
)

const TopicCustomerCreated = "customer.created"

type CustomerCreatedEvent struct {
	CustomerID string  `json:"customer_id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Phone      *string `json:"phone,omitempty"`
}

func (s *Service) handleCustomerCreatedEvent(ctx context.Context, ev CustomerCreatedEvent) error {
	s.logger.InfoContext(ctx, "handling customer created event", slog.Any("event", ev))
	return nil
}
