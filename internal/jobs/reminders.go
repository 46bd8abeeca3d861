package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/BrahimElhajji/alx-backend-graphql-crm/pkg/gqlclient"
)

// ReminderWindow is how far back the reminder scan looks.
const ReminderWindow = 7 * 24 * time.Hour

const recentOrdersQuery = `query ($ordering: [String!]) {
	allOrders(ordering: $ordering) {
		id
		orderDate
		customer {
			email
		}
	}
}`

// OrderReminder is one order inside the reminder window.
type OrderReminder struct {
	OrderID       string
	CustomerEmail string
	OrderDate     time.Time
}

type RemindersResult struct {
	Timestamp time.Time
	Reminders []OrderReminder
	Err       error
}

// OrderReminders scans orders newest-first and keeps those placed within the
// reminder window.
func (s *Service) OrderReminders(ctx context.Context) RemindersResult {
	result := RemindersResult{Timestamp: s.now()}

	var out struct {
		AllOrders []struct {
			ID        string    `json:"id"`
			OrderDate time.Time `json:"orderDate"`
			Customer  struct {
				Email string `json:"email"`
			} `json:"customer"`
		} `json:"allOrders"`
	}
	err := s.client.Execute(ctx, gqlclient.Request{
		Query:     recentOrdersQuery,
		Variables: map[string]any{"ordering": []string{"-orderDate"}},
	}, &out)
	if err != nil {
		result.Err = err
		return result
	}

	cutoff := result.Timestamp.Add(-ReminderWindow)
	for _, order := range out.AllOrders {
		if order.OrderDate.Before(cutoff) {
			// orders come back newest-first, everything after this is older
			break
		}
		result.Reminders = append(result.Reminders, OrderReminder{
			OrderID:       order.ID,
			CustomerEmail: order.Customer.Email,
			OrderDate:     order.OrderDate,
		})
	}

	return result
}

// Lines renders one reminder line per recent order, or a single error line.
func (r RemindersResult) Lines() []string {
	ts := r.Timestamp.Format(logTimestampFormat)

	if r.Err != nil {
		return []string{fmt.Sprintf("%s Error processing order reminders: %v", ts, r.Err)}
	}

	lines := make([]string, 0, len(r.Reminders))
	for _, reminder := range r.Reminders {
		lines = append(lines, fmt.Sprintf("%s Order %s - customer %s", ts, reminder.OrderID, reminder.CustomerEmail))
	}

	return lines
}
