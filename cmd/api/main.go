package main

import (
	_ "github.com/joho/godotenv/autoload"

	"github.com/conghanh/luanho/internal/pkg/logger"
	"github.com/conghanh/luanho/internal/server"
)

// @title Lửa Nhỏ API
// @version 1.0
// @description Backend for the Lửa Nhỏ community, a Vietnamese space for sharing tips, study habits and everyday inspiration.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT access token prefixed with "Bearer "
func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize server")
	}

	if err := srv.Run(); err != nil {
		logger.Fatal().Err(err).Msg("Server terminated with error")
	}
}
