package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type HealthHandler struct {
	gateway string
	store   string
}

func NewHealthHandler(store, gateway string) *HealthHandler {
	return &HealthHandler{
		gateway: gateway,
		store:   store,
	}
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"store":   h.store,
		"gateway": h.gateway,
		"time":    time.Now().Format(time.RFC3339),
	})
}
