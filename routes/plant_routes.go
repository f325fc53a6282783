package routes

import (
	"plantflow/controllers"

	"github.com/gofiber/fiber/v2"
)

func SetupPlantRoutes(api fiber.Router, controller *controllers.PlantController) {
	api.Get("/plant-history", controller.GetHistory)
	api.Get("/plant-status", controller.GetStatus)
}

func SetupHealthRoutes(api fiber.Router, controller *controllers.HealthController) {
	api.Get("/health", controller.Health)
}
