package config

import "time"

// Jobs configures the cron-invoked maintenance jobs. The log paths are the
// fixed append-only files the external scheduler contract expects.
type Jobs struct {
	GraphQLURL         string        `env:"CRM_GRAPHQL_URL" envDefault:"http://localhost:8000/graphql"`
	TransportRetries   int           `env:"CRM_TRANSPORT_RETRIES" envDefault:"3"`
	InsecureSkipVerify bool          `env:"CRM_TLS_SKIP_VERIFY" envDefault:"true"`
	RequestTimeout     time.Duration `env:"CRM_REQUEST_TIMEOUT" envDefault:"30s"`

	HeartbeatLogPath string `env:"CRM_HEARTBEAT_LOG" envDefault:"/tmp/crm_heartbeat_log.txt"`
	LowStockLogPath  string `env:"CRM_LOW_STOCK_LOG" envDefault:"/tmp/low_stock_updates_log.txt"`
	RemindersLogPath string `env:"CRM_ORDER_REMINDERS_LOG" envDefault:"/tmp/order_reminders_log.txt"`
}
