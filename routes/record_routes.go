package routes

import (
	"plantflow/controllers"

	"github.com/gofiber/fiber/v2"
)

func SetupRecordRoutes(api fiber.Router, controller *controllers.RecordController) {
	records := api.Group("/records")
	records.Get("/", controller.GetRecords)
	records.Patch("/:id", controller.UpdateRecord)
	records.Patch("/:id/ready", controller.UpdateRecord)
	records.Delete("/:id", controller.DeleteRecord)
}
