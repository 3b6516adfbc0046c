package api

import (
	"github.com/VERT-sh/waitress/internal/apierr"
	"github.com/VERT-sh/waitress/internal/middleware"
	"github.com/VERT-sh/waitress/internal/models"
	"github.com/VERT-sh/waitress/internal/repository"
	"github.com/VERT-sh/waitress/internal/service"
	"github.com/gin-gonic/gin"
)

// ServerHandler exposes the server CRUD surface.
type ServerHandler struct {
	servers       *repository.ServerRepository
	serverService *service.ServerService
}

func NewServerHandler(servers *repository.ServerRepository, serverService *service.ServerService) *ServerHandler {
	return &ServerHandler{servers: servers, serverService: serverService}
}

type createServerRequest struct {
	Name    string `json:"name" binding:"required"`
	Version string `json:"version" binding:"required"`
	Port    int    `json:"port" binding:"required"`
}

// Create provisions a new server for the authenticated caller.
// POST /api/server/create
func (h *ServerHandler) Create(c *gin.Context) {
	var req createServerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apierr.BadRequest(err.Error()))
		return
	}

	record, err := h.serverService.Create(middleware.GetUserID(c), req.Name, req.Port, req.Version)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(200, apierr.Success(record))
}

// All lists every server owned by the authenticated caller.
// GET /api/server/all
func (h *ServerHandler) All(c *gin.Context) {
	records, err := h.servers.GetAllByOwner(middleware.GetUserID(c))
	if err != nil {
		c.Error(apierr.Internal(err.Error()))
		return
	}
	c.JSON(200, apierr.Success(records))
}

// Get returns one server the caller owns (ownership already checked by
// middleware.OwnsServer).
// GET /api/server/:id
func (h *ServerHandler) Get(c *gin.Context) {
	record := c.MustGet("server").(*models.ServerRecord)
	c.JSON(200, apierr.Success(record))
}

// Delete removes a server the caller owns.
// DELETE /api/server/:id/delete
func (h *ServerHandler) Delete(c *gin.Context) {
	record := c.MustGet("server").(*models.ServerRecord)
	if err := h.serverService.Delete(record); err != nil {
		c.Error(err)
		return
	}
	c.JSON(200, apierr.Success(nil))
}
