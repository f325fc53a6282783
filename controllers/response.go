package controllers

import (
	"errors"
	"log"
	"plantflow/ingest"
	"plantflow/services"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// respondError maps service errors onto the {error, details} JSON shape.
// fallback is the message used for errors of unknown kind.
func respondError(ctx *fiber.Ctx, err error, notFound, fallback string) error {
	var (
		verr *ingest.ValidationError
		ierr *services.InputError
		serr *services.StoreError
	)
	switch {
	case errors.As(err, &verr):
		body := fiber.Map{"error": verr.Message}
		if verr.Details != nil {
			body["details"] = verr.Details
		}
		return ctx.Status(fiber.StatusBadRequest).JSON(body)
	case errors.As(err, &ierr):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ierr.Message})
	case errors.Is(err, services.ErrNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": notFound})
	case errors.As(err, &serr):
		log.Printf("[HTTP] %s %s: %v", ctx.Method(), ctx.Path(), err)
		body := fiber.Map{"error": serr.Message}
		if serr.Err != nil {
			body["details"] = serr.Err.Error()
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(body)
	default:
		log.Printf("[HTTP] %s %s: %v", ctx.Method(), ctx.Path(), err)
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fallback})
	}
}

// queryID reads an optional positive integer query parameter; absent or
// unparsable values are 0.
func queryID(ctx *fiber.Ctx, name string) uint {
	v, err := strconv.ParseUint(ctx.Query(name), 10, 64)
	if err != nil {
		return 0
	}
	return uint(v)
}

func paramID(ctx *fiber.Ctx, name string) (uint, bool) {
	v, err := strconv.ParseUint(ctx.Params(name), 10, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}
