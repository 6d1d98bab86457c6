// Package httpapi wires the HTTP surface: liveness, lobby diagnostics and
// the websocket upgrade endpoint.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	server "arena-lobby/server"
	"arena-lobby/server/internal/net/ws"
)

// NewRouter builds the gin engine serving /healthz, /diagnostics and /ws.
func NewRouter(hub *server.Hub, logger *zap.SugaredLogger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	r.GET("/diagnostics", func(c *gin.Context) {
		c.JSON(http.StatusOK, hub.DiagnosticsSnapshot())
	})

	r.GET("/ws", func(c *gin.Context) {
		ws.Serve(hub, logger, c.Writer, c.Request)
	})

	return r
}
