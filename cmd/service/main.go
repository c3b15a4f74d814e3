package main

import (
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"doodle-functions/httpserver"
	"doodle-functions/internal/config"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}

	cfg := config.New()
	if err := cfg.Load(); err != nil {
		panic(err)
	}

	if err := httpserver.Run(cfg); err != nil {
		cfg.Logger.Fatal("server stopped", zap.Error(err))
	}
}
