package fetcher

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger defines the logging surface the fetcher reports failures through.
type Logger interface {
	DebugObj(msg, key string, obj interface{})
	WarnObj(msg, key string, obj interface{})
}

// logOutput receives diagnostics from fetchers built without WithLogger.
var logOutput io.Writer = os.Stderr

type noopLogger struct{}

func (noopLogger) DebugObj(string, string, interface{}) {}
func (noopLogger) WarnObj(string, string, interface{})  {}

func ensureLogger(log Logger) Logger {
	if log == nil {
		return noopLogger{}
	}
	return log
}

// stderrLogger writes warn-level JSON lines so a bare New still reports failures.
type stderrLogger struct {
	l *zap.Logger
}

func defaultLogger() Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(zapcore.AddSync(logOutput)),
		zapcore.WarnLevel,
	)
	return &stderrLogger{l: zap.New(core)}
}

func (s *stderrLogger) DebugObj(msg, key string, obj interface{}) { s.l.Debug(msg, zap.Any(key, obj)) }
func (s *stderrLogger) WarnObj(msg, key string, obj interface{})  { s.l.Warn(msg, zap.Any(key, obj)) }
