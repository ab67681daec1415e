package main

import (
	"chatbot-ai/internal/config"
	"chatbot-ai/internal/handler"
	"chatbot-ai/internal/middleware"

	_ "chatbot-ai/cmd/api/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
)

func newApp(serverCfg config.ServerConfig, aiHandler *handler.AIHandler, healthHandler *handler.HealthHandler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "chatbot-ai",
		ReadTimeout:  serverCfg.ReadTimeout,
		WriteTimeout: serverCfg.WriteTimeout,
		IdleTimeout:  serverCfg.ReadTimeout,
		BodyLimit:    serverCfg.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept," + middleware.RequestIDHeader, MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/", healthHandler.Root)
	app.Post("/embed", aiHandler.Embed)
	app.Post("/generate", aiHandler.Generate)
	app.Post("/extract-keywords", aiHandler.ExtractKeywords)
	app.Post("/similarity", aiHandler.CheckSimilarity)
	app.Post("/relevance", aiHandler.CheckRelevance)
	app.Post("/categorize", aiHandler.Categorize)

	return app
}
