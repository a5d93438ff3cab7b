package main

import (
	"context"
	"os"

	"github.com/yigit/campusreg/internal/pkg/logger"
	"github.com/yigit/campusreg/internal/server"
)

// @title Campus Registry API
// @version 1.0
// @description Institution registration and review API

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Admin JWT issued by the auth service

func main() {
	srv, err := server.NewServer(context.Background())
	if err != nil {
		// Error details are logged within the bootstrap functions
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Blocks until a shutdown signal arrives
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
