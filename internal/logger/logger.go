package logger

import (
	"os"

	"go.uber.org/zap"
)

var Log *zap.Logger = zap.NewNop()

func Init() error {
	var err error

	if os.Getenv("ENV") == "production" {
		Log, err = zap.NewProduction()
	} else {
		Log, err = zap.NewDevelopment()
	}

	return err
}

// Sync flushes buffered entries. Call before process exit.
func Sync() {
	_ = Log.Sync()
}
