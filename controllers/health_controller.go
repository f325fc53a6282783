package controllers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger is satisfied by the database handle and the board cache.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type ComponentHealth struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
}

type HealthStatus struct {
	Status   string          `json:"status"`
	Database ComponentHealth `json:"database"`
	Cache    ComponentHealth `json:"cache"`
}

type HealthController struct {
	DB    Pinger
	Cache Pinger
}

func NewHealthController(db, cache Pinger) *HealthController {
	return &HealthController{DB: db, Cache: cache}
}

func check(ctx context.Context, p Pinger) ComponentHealth {
	if p == nil {
		return ComponentHealth{Status: "disabled"}
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	err := p.Ping(ctx)
	elapsed := time.Since(start).Milliseconds()
	if err != nil {
		return ComponentHealth{Status: "unhealthy", ResponseTime: elapsed}
	}
	return ComponentHealth{Status: "healthy", ResponseTime: elapsed}
}

// Health reports 503 when the database is down. An unavailable cache only
// degrades the board, so it never fails the check.
func (c *HealthController) Health(ctx *fiber.Ctx) error {
	status := HealthStatus{
		Status:   "healthy",
		Database: check(ctx.UserContext(), c.DB),
		Cache:    check(ctx.UserContext(), c.Cache),
	}
	if status.Database.Status != "healthy" {
		status.Status = "unhealthy"
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(status)
	}
	return ctx.JSON(status)
}
