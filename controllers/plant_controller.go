package controllers

import (
	"context"
	"plantflow/services"

	"github.com/gofiber/fiber/v2"
)

type PlantReporter interface {
	History(ctx context.Context, plant string) (*services.PlantHistory, error)
	Status(ctx context.Context, batchID uint) (*services.PlantStatus, error)
}

type PlantController struct {
	Service PlantReporter
}

func NewPlantController(service PlantReporter) *PlantController {
	return &PlantController{Service: service}
}

func (c *PlantController) GetHistory(ctx *fiber.Ctx) error {
	history, err := c.Service.History(ctx.UserContext(), ctx.Query("plant"))
	if err != nil {
		return respondError(ctx, err, "Plant not found.", "Failed to fetch history.")
	}
	return ctx.JSON(history)
}

// GetStatus serves the read-only TV board.
func (c *PlantController) GetStatus(ctx *fiber.Ctx) error {
	status, err := c.Service.Status(ctx.UserContext(), queryID(ctx, "batchId"))
	if err != nil {
		return respondError(ctx, err, "Batch not found.", services.MsgFetchFailed)
	}
	return ctx.JSON(status)
}
