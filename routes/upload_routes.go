package routes

import (
	"plantflow/controllers"

	"github.com/gofiber/fiber/v2"
)

func SetupUploadRoutes(api fiber.Router, controller *controllers.UploadController) {
	api.Post("/upload", controller.Upload)
	api.Get("/upload-logs", controller.RecentUploads)
}
