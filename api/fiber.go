package api

import (
	"log/slog"
	"os"
	"time"

	"github.com/HermawanSutanto/sertifikat-lokal2/api/handler"
	"github.com/HermawanSutanto/sertifikat-lokal2/api/middleware"
	"github.com/HermawanSutanto/sertifikat-lokal2/api/routes"
	"github.com/HermawanSutanto/sertifikat-lokal2/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// Generate requests carry the template plus CSV data in one multipart body.
const bodyLimit = 32 * 1024 * 1024

func NewApp(ctrl routes.Controllers) *fiber.App {
	cfg := fiber.Config{
		AppName:       "sertifikat api",
		ErrorHandler:  handler.HandleError,
		Prefork:       false,
		StrictRouting: true,
		Network:       fiber.NetworkTCP,
		BodyLimit:     bodyLimit,
		ReadTimeout:   60 * time.Second,
		WriteTimeout:  180 * time.Second,
	}
	app := fiber.New(cfg)

	app.Use(logger.New())
	app.Use(middleware.Recover())
	app.Use(middleware.Cors(common.Config.Cors))

	routes.Init(app, ctrl)

	app.Use(handler.HandleNotFound)

	return app
}

func InitFiber(ctrl routes.Controllers) {
	app := NewApp(ctrl)

	slog.Info("Starting server", "port", *common.Config.Port)
	err := app.Listen(*common.Config.Port)

	if err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}
