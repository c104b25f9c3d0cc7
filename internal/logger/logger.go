package logger

import (
	"go.uber.org/zap"
)

// New monta o logger do processo: JSON em produção, console legível
// em desenvolvimento.
func New(production bool) (*zap.Logger, error) {
	if production {
		return zap.NewProduction()
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	return cfg.Build()
}
