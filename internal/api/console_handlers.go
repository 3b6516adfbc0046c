package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/VERT-sh/waitress/internal/console"
	"github.com/VERT-sh/waitress/internal/docker"
	"github.com/VERT-sh/waitress/internal/models"
	"github.com/VERT-sh/waitress/internal/repository"
	"github.com/VERT-sh/waitress/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// ConsoleHandler upgrades authenticated, owned server requests to the
// console websocket, wiring an Attach Bridge to a Session.
type ConsoleHandler struct {
	servers     *repository.ServerRepository
	authService *service.AuthService
	upgrader    websocket.Upgrader
}

func NewConsoleHandler(servers *repository.ServerRepository, authService *service.AuthService) *ConsoleHandler {
	return &ConsoleHandler{
		servers:     servers,
		authService: authService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// HandleConsole implements the Session Supervisor's handshake: query-string
// auth, ownership check, upgrade, Attach Bridge, then Session.Run.
func (h *ConsoleHandler) HandleConsole(c *gin.Context) {
	token := c.Query("auth")
	claims, err := h.authService.ValidateToken(token)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	record, err := h.servers.GetByID(c.Param("id"))
	if errors.Is(err, models.ErrServerNotFound) {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if record.Owner != claims.UserID {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	cancel := make(chan struct{})
	bridge, err := docker.Open(context.Background(), record.ContainerName(), cancel)
	if err != nil {
		conn.Close()
		return
	}
	defer close(cancel)

	session := console.New(conn, bridge)
	session.Run()
}
