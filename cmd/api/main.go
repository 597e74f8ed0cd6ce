package main

import (
	"os"

	"github.com/winshaurya/alumnet/internal/pkg/logger"
	"github.com/winshaurya/alumnet/internal/server"
)

// @title AlumNet API
// @version 1.0
// @description API for the AlumNet alumni network and job board

// @contact.name API Support
// @contact.email support@alumnet.dev

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	srv, err := server.NewServer()
	if err != nil {
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
