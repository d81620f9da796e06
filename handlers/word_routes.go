package handlers

import (
	"vocab-review-system/middleware"
	"vocab-review-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupWordRoutes(app *fiber.App, wordService *services.WordService) {
	// 🔓 Public catalogue reads
	app.Get("/words", wordService.SearchWords)
	app.Get("/words/:id", wordService.GetWord)

	// 🔐 Catalogue writes require user context
	secured := app.Group("/", middleware.UserContextMiddleware())
	secured.Post("/words", wordService.CreateWord)
}
