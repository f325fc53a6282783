package controllers

import (
	"context"
	"plantflow/models"
	"plantflow/services"

	"github.com/gofiber/fiber/v2"
)

type RecordManager interface {
	Records(ctx context.Context, batchID uint) (*services.RecordsView, error)
	Update(ctx context.Context, id uint, patch services.RecordPatch) (*models.ShipmentRecord, error)
	Delete(ctx context.Context, id uint) error
}

type RecordController struct {
	Service RecordManager
}

func NewRecordController(service RecordManager) *RecordController {
	return &RecordController{Service: service}
}

// GetRecords returns the dashboard payload for ?batchId= or the latest batch.
func (c *RecordController) GetRecords(ctx *fiber.Ctx) error {
	view, err := c.Service.Records(ctx.UserContext(), queryID(ctx, "batchId"))
	if err != nil {
		return respondError(ctx, err, "Batch not found.", services.MsgFetchFailed)
	}
	return ctx.JSON(view)
}

func (c *RecordController) UpdateRecord(ctx *fiber.Ctx) error {
	id, ok := paramID(ctx, "id")
	if !ok {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid record id."})
	}

	var patch services.RecordPatch
	if err := ctx.BodyParser(&patch); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request payload.", "details": err.Error()})
	}

	record, err := c.Service.Update(ctx.UserContext(), id, patch)
	if err != nil {
		return respondError(ctx, err, "Record not found.", services.MsgUpdateFailed)
	}
	return ctx.JSON(fiber.Map{"success": true, "record": record})
}

func (c *RecordController) DeleteRecord(ctx *fiber.Ctx) error {
	id, ok := paramID(ctx, "id")
	if !ok {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid record id."})
	}
	if err := c.Service.Delete(ctx.UserContext(), id); err != nil {
		return respondError(ctx, err, "Record not found.", services.MsgDeleteFailed)
	}
	return ctx.JSON(fiber.Map{"success": true})
}
