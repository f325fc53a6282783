package routes

import (
	"plantflow/controllers"

	"github.com/gofiber/fiber/v2"
)

func SetupBatchRoutes(api fiber.Router, controller *controllers.BatchController) {
	batches := api.Group("/batches")
	batches.Get("/", controller.GetBatches)
	batches.Get("/:batchId", controller.GetBatch)
	batches.Get("/:batchId/export", controller.ExportBatch)
}
