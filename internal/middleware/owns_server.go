package middleware

import (
	"errors"

	"github.com/VERT-sh/waitress/internal/apierr"
	"github.com/VERT-sh/waitress/internal/models"
	"github.com/VERT-sh/waitress/internal/repository"
	"github.com/gin-gonic/gin"
)

// OwnsServer loads the :id route param's ServerRecord and requires the
// authenticated user to be its owner, storing the record in the gin context
// as "server" for handlers to reuse. 404 if the record does not exist, 403
// if it exists but belongs to someone else.
func OwnsServer(servers *repository.ServerRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		record, err := servers.GetByID(id)
		if errors.Is(err, models.ErrServerNotFound) {
			abortWithError(c, apierr.ServerNotFound())
			return
		}
		if err != nil {
			abortWithError(c, apierr.Internal(err.Error()))
			return
		}

		if record.Owner != GetUserID(c) {
			abortWithError(c, apierr.Forbidden("you do not own this server"))
			return
		}

		c.Set("server", record)
		c.Next()
	}
}
