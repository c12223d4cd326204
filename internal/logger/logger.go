package logger

import (
	"go.uber.org/zap"
)

// New builds the application logger: JSON output in prod, console output
// everywhere else.
func New(prod bool) (*zap.Logger, error) {
	if prod {
		return zap.NewProduction()
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	return cfg.Build()
}
