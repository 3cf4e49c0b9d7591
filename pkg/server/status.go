package server

import (
	"net/http"

	"intellica/pkg/models"

	"github.com/dustin/go-humanize"
	"github.com/labstack/echo/v4"
)

// getStatus handles GET /api/status.
func (srv *StatusServer) getStatus(ctx echo.Context) error {
	snap := srv.page.Status()

	resp := models.StatusResponse{
		State:   string(snap.State),
		Text:    snap.Text(),
		Message: snap.Message,
		MountID: srv.page.MountID(),
	}

	if snap.Settled() {
		checkedAt := snap.CheckedAt.UTC()
		resp.CheckedAt = &checkedAt
		resp.CheckedAgo = humanize.RelTime(snap.CheckedAt, srv.now(), "ago", "from now")
	}

	return ctx.JSON(http.StatusOK, resp)
}
