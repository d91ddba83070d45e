package logger

import (
	"go.uber.org/zap"

	"github.com/hamdan/hifzi/internal/config"
)

// New builds a zap logger for the configured environment.
func New(cfg *config.Config) (*zap.Logger, error) {
	if cfg.App.Env == "production" {
		return zap.NewProduction()
	}

	return zap.NewDevelopment()
}
