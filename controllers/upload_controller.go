package controllers

import (
	"context"
	"io"
	"plantflow/models"
	"plantflow/services"

	"github.com/gofiber/fiber/v2"
)

type Uploader interface {
	Ingest(ctx context.Context, filename string, src io.Reader) (*services.UploadResult, error)
	RecentUploads(ctx context.Context, limit int) ([]models.UploadLog, error)
}

type UploadController struct {
	Service Uploader
}

func NewUploadController(service Uploader) *UploadController {
	return &UploadController{Service: service}
}

func (c *UploadController) Upload(ctx *fiber.Ctx) error {
	// A missing or unreadable file still goes through Ingest so the attempt
	// is logged as rejected.
	var (
		filename string
		src      io.Reader
	)
	if file, err := ctx.FormFile("file"); err == nil {
		filename = file.Filename
		if f, err := file.Open(); err == nil {
			defer f.Close()
			src = f
		}
	}

	result, err := c.Service.Ingest(ctx.UserContext(), filename, src)
	if err != nil {
		return respondError(ctx, err, "Upload not found.", "Server error processing upload.")
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":     true,
		"batch_id":    result.BatchID,
		"upload_date": result.UploadDate,
		"row_count":   result.RowCount,
	})
}

func (c *UploadController) RecentUploads(ctx *fiber.Ctx) error {
	logs, err := c.Service.RecentUploads(ctx.UserContext(), ctx.QueryInt("limit", 50))
	if err != nil {
		return respondError(ctx, err, "Upload not found.", "Failed to fetch upload logs.")
	}
	return ctx.JSON(logs)
}
