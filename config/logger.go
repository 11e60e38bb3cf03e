package config

import (
	"os"

	"go.uber.org/zap"
)

var Log *zap.SugaredLogger

func InitLogger() {
	var (
		l   *zap.Logger
		err error
	)
	if os.Getenv("APP_ENV") == "production" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	Log = l.Sugar()
}

func init() {
	// Packages log through config.Log before main has run InitLogger,
	// notably in tests.
	if Log == nil {
		InitLogger()
	}
}
