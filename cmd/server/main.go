package main

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"

	"github.com/benbeisheim/chessboard/internal/config"
	"github.com/benbeisheim/chessboard/internal/controller"
	"github.com/benbeisheim/chessboard/internal/middleware"
	"github.com/benbeisheim/chessboard/internal/service"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	log.SetLevel(cfg.LogLevel)

	app := newApp(cfg)
	log.Infof("listening on %s", cfg.Addr)
	log.Fatal(app.Listen(cfg.Addr))
}

func newApp(cfg config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "chessboard",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, X-Observer-ID",
		AllowMethods: "GET, POST, DELETE, OPTIONS",
	}))

	// Initialize services
	gameManager := service.NewGameManager()
	gameService := service.NewGameService(gameManager)

	// Initialize controllers
	gameController := controller.NewGameController(gameService)
	wsController := controller.NewWebSocketController(gameService)

	// Set up WebSocket routes
	app.Get("/ws/game/:gameId",
		middleware.EnsureObserverID(),
		middleware.RequireGame(gameService, service.ErrGameNotFound),
		middleware.WebSocketUpgrade(),
		websocket.New(wsController.HandleConnection, websocket.Config{
			ReadBufferSize:  cfg.WSBufferSize,
			WriteBufferSize: cfg.WSBufferSize,
			Origins:         cfg.Origins(),
		}))

	// Set up REST routes
	api := app.Group("/api")
	gameRoutes := api.Group("/game")
	gameController.Register(gameRoutes)

	return app
}
