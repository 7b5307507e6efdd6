package api

import "github.com/okian/prospectboard/pkg/logger"

const (
	defaultLeaders    = 5
	defaultMaxLeaders = 100
)

type serverConfig struct {
	maxLeaders     int
	defaultLeaders int
	logger         logger.Logger
}

// Option applies a configuration option to the Server.
type Option func(*serverConfig)

// WithMaxLeadersLimit caps GET /leaders?limit.
func WithMaxLeadersLimit(n int) Option {
	return func(c *serverConfig) {
		if n > 0 {
			c.maxLeaders = n
		}
	}
}

// WithDefaultLeadersLimit sets the limit used when the query omits it.
func WithDefaultLeadersLimit(n int) Option {
	return func(c *serverConfig) {
		if n > 0 {
			c.defaultLeaders = n
		}
	}
}

// WithLogger receives a line for every 5xx reply, tagged with its request id.
func WithLogger(l logger.Logger) Option {
	return func(c *serverConfig) {
		if l != nil {
			c.logger = l
		}
	}
}
