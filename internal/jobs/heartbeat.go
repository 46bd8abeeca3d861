package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/BrahimElhajji/alx-backend-graphql-crm/pkg/gqlclient"
)

const heartbeatTimestampFormat = "02/01/2006-15:04:05"

// HeartbeatResult reports one heartbeat invocation. The alive line is always
// written; a failing hello query adds a failure line rather than an error
// return.
type HeartbeatResult struct {
	Timestamp time.Time
	HelloErr  error
}

// Heartbeat checks API liveness with the hello query.
func (s *Service) Heartbeat(ctx context.Context) HeartbeatResult {
	result := HeartbeatResult{Timestamp: s.now()}

	var out struct {
		Hello string `json:"hello"`
	}
	if err := s.client.Execute(ctx, gqlclient.Request{Query: `{ hello }`}, &out); err != nil {
		result.HelloErr = err
	}

	return result
}

// Lines renders the heartbeat log lines.
func (r HeartbeatResult) Lines() []string {
	ts := r.Timestamp.Format(heartbeatTimestampFormat)

	lines := []string{fmt.Sprintf("%s CRM is alive", ts)}
	if r.HelloErr != nil {
		lines = append(lines, fmt.Sprintf("%s GraphQL hello check failed: %v", ts, r.HelloErr))
	}

	return lines
}
