package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/benbeisheim/roomchess-backend/internal/config"
	"github.com/benbeisheim/roomchess-backend/internal/controller"
	"github.com/benbeisheim/roomchess-backend/internal/service"
	"github.com/benbeisheim/roomchess-backend/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

func main() {
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	zerolog.SetGlobalLevel(cfg.LogLevel)

	store, err := storage.Open(cfg.DataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open storage")
	}
	defer store.Close()

	// Initialize services
	roomManager := service.NewRoomManager(cfg.MaxRooms, store, log)
	roomService := service.NewRoomService(roomManager, store)

	// Initialize controllers
	roomController := controller.NewRoomController(roomService, log)
	wsController := controller.NewWebSocketController(roomService, log)

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	controller.Register(app, roomController, wsController, cfg.AllowedOrigins, log)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		log.Info().Msg("shutting down")
		if err := app.Shutdown(); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}()

	log.Info().Str("addr", cfg.Addr()).Msg("listening")
	if err := app.Listen(cfg.Addr()); err != nil {
		log.Error().Err(err).Msg("server stopped")
	}
}
