/*
Package logger builds the structured logger used by the statement tool.

PURPOSE:
  Logs are ECS-formatted JSON (zap + ecszap) written to stderr, so
  statements printed on stdout stay clean and log lines can be shipped
  to an Elastic stack unchanged.

USAGE:
  log, err := logger.New("debug")
  if err != nil {
      return err
  }
  defer log.Sync()
  ctx = logger.NewContext(ctx, log.With(zap.String("customer", name)))
  logger.FromContext(ctx).Info("statement rendered")
*/
package logger

import (
	"context"
	"fmt"

	"go.elastic.co/ecszap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns an ECS JSON logger at the given level ("debug", "info",
// "warn", "error"). An empty level means info.
func New(level string) (*zap.Logger, error) {
	lvl := zapcore.InfoLevel
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.Sampling = nil
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.EncoderConfig = ecszap.ECSCompatibleEncoderConfig(config.EncoderConfig)

	return config.Build(ecszap.WrapCoreOption(), zap.AddCaller())
}

type loggerKey struct{}

// NewContext returns a copy of parent carrying log.
func NewContext(parent context.Context, log *zap.Logger) context.Context {
	return context.WithValue(parent, loggerKey{}, log)
}

// FromContext returns the logger stored in ctx, or a no-op logger.
func FromContext(ctx context.Context) *zap.Logger {
	if log, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok {
		return log
	}
	return zap.NewNop()
}
