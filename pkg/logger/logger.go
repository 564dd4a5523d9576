package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log *zap.Logger

// Init builds the process logger: JSON to stdout for production, a
// colored console logger otherwise.
func Init(env string) {
	InitOutput(env, "")
} // ./Init

// InitOutput is Init writing to output instead of the default stream.
func InitOutput(env, output string) {
	var cfg zap.Config

	if env == "production" {
		cfg = zap.NewProductionConfig()
		cfg.Encoding = "json"
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.MessageKey = "message"
		cfg.EncoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.OutputPaths = []string{"stdout"}
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.OutputPaths = []string{"stderr"}
	}
	if output != "" {
		cfg.OutputPaths = []string{output}
	}

	var err error
	log, err = cfg.Build()
	if err != nil {
		panic(err)
	}
} // ./InitOutput

func L() *zap.Logger {
	if log == nil {
		Init(os.Getenv("APP_ENV"))
	}
	return log
} // ./L

func Sync() {
	if log != nil {
		_ = log.Sync()
	}
} // ./Sync
