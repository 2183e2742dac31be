package utils

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	unsupportedLogLevelMessageTemplateConstant  = "unsupported log level %q"
	unsupportedLogFormatMessageTemplateConstant = "unsupported log format %q"
)

// LogLevel identifies a supported logging verbosity.
type LogLevel string

// Supported log levels.
const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LogFormat identifies a supported log rendering format.
type LogFormat string

// Supported log formats.
const (
	LogFormatStructured LogFormat = "structured"
	LogFormatConsole    LogFormat = "console"
)

// LoggerOutputs bundles the diagnostic logger with the console event logger.
// The console logger emits operator-facing lines only when the console format
// is selected; in structured mode it is a no-op so machine-readable output
// stays uncontaminated.
type LoggerOutputs struct {
	DiagnosticLogger *zap.Logger
	ConsoleLogger    *zap.Logger
}

// LoggerFactory builds zap loggers for the supported levels and formats.
type LoggerFactory struct{}

// NewLoggerFactory constructs a LoggerFactory instance.
func NewLoggerFactory() *LoggerFactory {
	return &LoggerFactory{}
}

// CreateLoggerOutputs builds logger outputs for the requested level and format.
func (factory *LoggerFactory) CreateLoggerOutputs(requestedLogLevel LogLevel, requestedLogFormat LogFormat) (LoggerOutputs, error) {
	zapLevel, levelSupported := resolveZapLevel(requestedLogLevel)
	if !levelSupported {
		return LoggerOutputs{}, fmt.Errorf(unsupportedLogLevelMessageTemplateConstant, requestedLogLevel)
	}

	switch requestedLogFormat {
	case LogFormatStructured, LogFormatConsole:
	default:
		return LoggerOutputs{}, fmt.Errorf(unsupportedLogFormatMessageTemplateConstant, requestedLogFormat)
	}

	standardErrorSink := zapcore.Lock(zapcore.AddSync(os.Stderr))

	if requestedLogFormat == LogFormatStructured {
		structuredEncoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		diagnosticCore := zapcore.NewCore(structuredEncoder, standardErrorSink, zapLevel)
		return LoggerOutputs{
			DiagnosticLogger: zap.New(diagnosticCore),
			ConsoleLogger:    zap.NewNop(),
		}, nil
	}

	consoleEncoderConfiguration := zap.NewDevelopmentEncoderConfig()
	consoleEncoderConfiguration.TimeKey = ""
	consoleEncoder := zapcore.NewConsoleEncoder(consoleEncoderConfiguration)

	diagnosticCore := zapcore.NewCore(consoleEncoder, standardErrorSink, zapLevel)
	consoleCore := zapcore.NewCore(consoleEncoder, standardErrorSink, zapLevel)

	return LoggerOutputs{
		DiagnosticLogger: zap.New(diagnosticCore),
		ConsoleLogger:    zap.New(consoleCore),
	}, nil
}

func resolveZapLevel(requestedLogLevel LogLevel) (zapcore.Level, bool) {
	switch requestedLogLevel {
	case LogLevelDebug:
		return zapcore.DebugLevel, true
	case LogLevelInfo:
		return zapcore.InfoLevel, true
	case LogLevelWarn:
		return zapcore.WarnLevel, true
	case LogLevelError:
		return zapcore.ErrorLevel, true
	default:
		return zapcore.InvalidLevel, false
	}
}
