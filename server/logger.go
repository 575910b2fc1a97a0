package server

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// InitLogger builds a zap.Logger writing to a rolling file via
// lumberjack, with a console encoder. filePath is the log file's
// location; an empty filePath routes to stderr instead, for tests and
// local runs that don't want a file on disk.
func InitLogger(filePath string) (*zap.Logger, error) {
	encCfg := zapcore.EncoderConfig{
		TimeKey:       "ts",
		LevelKey:      "level",
		NameKey:       "logger",
		CallerKey:     "caller",
		MessageKey:    "msg",
		StacktraceKey: "stack",
		LineEnding:    zapcore.DefaultLineEnding,
		EncodeLevel:   zapcore.CapitalLevelEncoder,
		EncodeTime:    zapcore.ISO8601TimeEncoder,
		EncodeCaller:  zapcore.ShortCallerEncoder,
	}
	encoder := zapcore.NewConsoleEncoder(encCfg)

	var ws zapcore.WriteSyncer
	if filePath == "" {
		ws = zapcore.Lock(zapcore.AddSync(os.Stderr))
	} else {
		ws = zapcore.AddSync(&lumberjack.Logger{
			Filename:   filePath,
			MaxSize:    10, // MB
			MaxBackups: 3,
			MaxAge:     7, // days
			Compress:   false,
		})
	}

	core := zapcore.NewCore(encoder, ws, zapcore.DebugLevel)
	return zap.New(core, zap.AddCaller()), nil
}

// subsystem returns a child logger tagged with a component name, so room,
// session, and manager logs can be filtered independently.
func subsystem(base *zap.Logger, name string) *zap.Logger {
	return base.With(zap.String("component", name))
}

func errField(err error) zap.Field {
	return zap.Error(err)
}
