package main

import (
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"shopifyproduct.com/pkg/config"
	"shopifyproduct.com/pkg/logger"
	"shopifyproduct.com/pkg/shopify"
)

const version = "0.1.0"

// main serves the create_shopify_product tool over stdio. Stdout carries the
// protocol, so logs go to stderr.
func main() {
	defer logger.Sync()

	conf, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger.InitOutput(conf.AppEnv, "stderr")
	log := logger.L()

	s, err := shopify.NewService(conf.Shopify(), shopify.WithLogger(log))
	if err != nil {
		log.Fatal("configure shopify", zap.Error(err))
	}

	log.Info("serving mcp over stdio", zap.String("shop", s.Shop()))
	if err := server.ServeStdio(newServer(s, log)); err != nil {
		log.Fatal("serve stdio", zap.Error(err))
	}
}
