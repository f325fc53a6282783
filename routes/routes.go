package routes

import (
	"plantflow/controllers"

	"github.com/gofiber/fiber/v2"
)

// Controllers bundles the handlers mounted under the API prefix.
type Controllers struct {
	Upload *controllers.UploadController
	Record *controllers.RecordController
	Batch  *controllers.BatchController
	Plant  *controllers.PlantController
	Health *controllers.HealthController
}

func SetupRoutes(app *fiber.App, prefix string, c Controllers) {
	api := app.Group(prefix)
	SetupUploadRoutes(api, c.Upload)
	SetupRecordRoutes(api, c.Record)
	SetupBatchRoutes(api, c.Batch)
	SetupPlantRoutes(api, c.Plant)
	SetupHealthRoutes(api, c.Health)
}
