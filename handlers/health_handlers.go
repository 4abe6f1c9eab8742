package handlers

import (
	"context"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"

	"github.com/chaitanya039/sales-dashboard-backend/models"
	"github.com/chaitanya039/sales-dashboard-backend/utils"
)

// Pinger reports whether the store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	store Pinger
}

func NewHealthHandler(store Pinger) *HealthHandler {
	return &HealthHandler{store: store}
}

// HandleHealth pings the store.
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	if err := h.store.Ping(c.UserContext()); err != nil {
		return utils.NewApiError(fiber.StatusServiceUnavailable, "Database ping failed", err)
	}
	return c.JSON(models.NewApiResponse(fiber.StatusOK, fiber.Map{"status": "ok"}, "Database ping successful"))
}

// HandleVersion reports the build information embedded in the binary.
func HandleVersion(c *fiber.Ctx) error {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return utils.Internal("No build information available", nil)
	}
	version := fiber.Map{
		"goVersion": info.GoVersion,
		"module":    info.Main.Path,
		"version":   info.Main.Version,
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision", "vcs.time", "vcs.modified":
			version[s.Key] = s.Value
		}
	}
	return c.JSON(models.NewApiResponse(fiber.StatusOK, version, ""))
}
