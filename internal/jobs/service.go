// Package jobs implements the cron-invoked maintenance jobs. Each job talks
// to the GraphQL API over HTTP, returns an explicit result, and leaves all
// log-file writing to the caller.
package jobs

import (
	"time"

	"github.com/BrahimElhajji/alx-backend-graphql-crm/internal/config"
	"github.com/BrahimElhajji/alx-backend-graphql-crm/pkg/gqlclient"
)

const logTimestampFormat = "2006-01-02 15:04:05"

type Service struct {
	client *gqlclient.Client
	now    func() time.Time
}

func New(cfg config.Jobs) *Service {
	return NewWithClient(gqlclient.New(gqlclient.Config{
		Endpoint:           cfg.GraphQLURL,
		Retries:            cfg.TransportRetries,
		InsecureSkipVerify: cfg.InsecureSkipVerify,
		Timeout:            cfg.RequestTimeout,
	}))
}

func NewWithClient(client *gqlclient.Client) *Service {
	return &Service{
		client: client,
		now:    time.Now,
	}
}
