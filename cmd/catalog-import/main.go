package main

import (
	"context"
	"flag"
	"os"

	"go.uber.org/zap"

	"cosanostra/internal/config"
	"cosanostra/internal/tools/importer"
)

func main() {
	cfg, err := importer.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	var env config.Env
	if err := config.ParseEnv(&env); err != nil {
		config.Exitf("Error: %v", err)
	}
	level, err := zap.ParseAtomicLevel(env.LogLevel)
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	zcfg := zap.NewDevelopmentConfig()
	zcfg.Level = level
	logger, err := zcfg.Build()
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	defer logger.Sync()

	if err := importer.Run(context.Background(), cfg, os.Stdout, logger); err != nil {
		logger.Error("import failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}
