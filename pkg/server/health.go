package server

import (
	"net/http"

	"intellica/pkg/models"

	"github.com/labstack/echo/v4"
)

// getHealth handles GET /healthz. It reports on this server only, never on
// the backend.
func (srv *StatusServer) getHealth(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, models.HealthResponse{
		Status:  "ok",
		Version: srv.version,
	})
}
