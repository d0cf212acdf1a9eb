package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger defines an interface for logging within the application.
type Logger interface {
	// Debug logs a message at Debug level.
	Debug(msg string, fields ...zap.Field)
	// Info logs a message at Info level.
	Info(msg string, fields ...zap.Field)
	// Warn logs a message at Warn level.
	Warn(msg string, fields ...zap.Field)
	// Error logs a message at Error level.
	Error(msg string, fields ...zap.Field)
}

type loggerImpl struct {
	zapLogger *zap.Logger
}

var _ Logger = &loggerImpl{}

// NewLogger creates a new logger. If logFileName is non-empty, the log output
// is mirrored to that file in addition to stdout.
func NewLogger(isProduction bool, logFileName string, logLevel string) (Logger, error) {
	level, err := zapcore.ParseLevel(logLevel)
	if err != nil {
		return nil, err
	}

	var config zap.Config
	if isProduction {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
	}

	config.Level = zap.NewAtomicLevelAt(level)
	config.OutputPaths = []string{"stdout"}
	if logFileName != "" {
		config.OutputPaths = append(config.OutputPaths, logFileName)
	}

	zapLogger, err := config.Build()
	if err != nil {
		return nil, err
	}

	return &loggerImpl{
		zapLogger: zapLogger,
	}, nil
}

func (l *loggerImpl) Debug(msg string, fields ...zap.Field) {
	l.zapLogger.Debug(msg, fields...)
}

func (l *loggerImpl) Info(msg string, fields ...zap.Field) {
	l.zapLogger.Info(msg, fields...)
}

func (l *loggerImpl) Warn(msg string, fields ...zap.Field) {
	l.zapLogger.Warn(msg, fields...)
}

func (l *loggerImpl) Error(msg string, fields ...zap.Field) {
	l.zapLogger.Error(msg, fields...)
}

// NoOpLogger is a logger that does not log anything. Useful in tests.
type NoOpLogger struct{}

var _ Logger = &NoOpLogger{}

func (n *NoOpLogger) Debug(msg string, fields ...zap.Field) {}

func (n *NoOpLogger) Info(msg string, fields ...zap.Field) {}

func (n *NoOpLogger) Warn(msg string, fields ...zap.Field) {}

func (n *NoOpLogger) Error(msg string, fields ...zap.Field) {}
