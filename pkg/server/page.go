package server

import (
	"bytes"
	"net/http"

	"intellica/pkg/log"

	"github.com/labstack/echo/v4"
)

// servePage renders the status page from the current status. Rendering
// never triggers a health check.
func (srv *StatusServer) servePage(ctx echo.Context) error {
	var buf bytes.Buffer
	if err := srv.tmpl.Execute(&buf, srv.page.Render()); err != nil {
		log.Error().Err(err).Msg("Failed to render status page")
		return ctx.String(http.StatusInternalServerError, "Failed to render status page")
	}

	return ctx.HTMLBlob(http.StatusOK, buf.Bytes())
}
