// Package logging builds the process-wide zap logger, grounded on the
// zap.NewProductionConfig/verbose-switch pattern in
// theRebelliousNerd-codenerd/cmd/nerd/main.go.
package logging

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a zap.Logger for a single run, tagged with a fresh run id so
// every log line from one `careplan` invocation can be correlated.
func New(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: build zap logger: %w", err)
	}
	return logger.With(zap.String("run_id", uuid.NewString())), nil
}
