package logger

import (
	"log"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Logger *zap.Logger

func init() {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(time.RFC3339)
	l, err := cfg.Build()
	if err != nil {
		log.Println("Error while initializing logger.", err)
		l = zap.NewNop()
	}
	Logger = l
}

func Get() *zap.Logger {
	return Logger
}
