package controllers

import (
	"bytes"
	"context"
	"fmt"
	"plantflow/models"
	"plantflow/services"

	"github.com/gofiber/fiber/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type BatchBrowser interface {
	List(ctx context.Context) ([]models.UploadBatch, error)
	Detail(ctx context.Context, id uint) (*services.BatchDetail, error)
	Export(ctx context.Context, id uint) (*bytes.Buffer, *models.UploadBatch, error)
}

type BatchController struct {
	Service BatchBrowser
}

func NewBatchController(service BatchBrowser) *BatchController {
	return &BatchController{Service: service}
}

func (c *BatchController) GetBatches(ctx *fiber.Ctx) error {
	batches, err := c.Service.List(ctx.UserContext())
	if err != nil {
		return respondError(ctx, err, "Batch not found.", "Failed to fetch batches.")
	}
	return ctx.JSON(batches)
}

func (c *BatchController) GetBatch(ctx *fiber.Ctx) error {
	id, ok := paramID(ctx, "batchId")
	if !ok {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Batch not found."})
	}
	detail, err := c.Service.Detail(ctx.UserContext(), id)
	if err != nil {
		return respondError(ctx, err, "Batch not found.", "Failed to fetch batch.")
	}
	return ctx.JSON(detail)
}

func (c *BatchController) ExportBatch(ctx *fiber.Ctx) error {
	id, ok := paramID(ctx, "batchId")
	if !ok {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Batch not found."})
	}
	buf, batch, err := c.Service.Export(ctx.UserContext(), id)
	if err != nil {
		return respondError(ctx, err, "Batch not found.", "Failed to export batch.")
	}

	ctx.Set(fiber.HeaderContentType, xlsxContentType)
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="shipments-%s.xlsx"`, batch.UploadDate))
	return ctx.Send(buf.Bytes())
}
