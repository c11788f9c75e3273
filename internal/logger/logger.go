package logger

import (
	"fmt"
	"os"

	"github.com/go-logr/zapr"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a JSON logger writing to stderr at the given level.
// The OpenTelemetry SDK internal logger is redirected to it as well.
func New(atomicLevel zap.AtomicLevel, additionalCores ...zapcore.Core) *zap.Logger {
	logger := newLogger(atomicLevel, additionalCores...)
	initOTel(logger)

	return logger
}

// ParseLevel parses a level name such as debug, info, warn or error.
func ParseLevel(level string) (zap.AtomicLevel, error) {
	atomicLevel, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return zap.AtomicLevel{}, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	return atomicLevel, nil
}

func newLogger(levelEnabler zapcore.LevelEnabler, additionalCores ...zapcore.Core) *zap.Logger {
	encoder := getZapEncoder()

	defaultCore := zapcore.NewCore(
		encoder,
		zapcore.Lock(os.Stderr),
		levelEnabler,
	)
	cores := append(additionalCores, defaultCore)

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller())
}

/*
This function routes the diagnostics of the OpenTelemetry SDK, e.g. dropped records or exporter errors, to zap
*/
func initOTel(log *zap.Logger) {
	otel.SetLogger(zapr.NewLogger(log.Named("otel")))
}

func getZapEncoder() zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.MessageKey = "message"

	return zapcore.NewJSONEncoder(encoderConfig)
}
