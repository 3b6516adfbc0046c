package middleware

import (
	"strings"

	"github.com/VERT-sh/waitress/internal/apierr"
	"github.com/VERT-sh/waitress/internal/service"
	"github.com/gin-gonic/gin"
)

// AuthServiceInterface is the subset of AuthService the middleware needs.
type AuthServiceInterface interface {
	ValidateToken(tokenString string) (*service.Claims, error)
}

var authService AuthServiceInterface

// SetAuthService wires the auth service the middleware validates tokens
// against. Must be called before AuthMiddleware is exercised.
func SetAuthService(svc AuthServiceInterface) {
	authService = svc
}

// AuthMiddleware requires a valid "Bearer <token>" Authorization header,
// setting "user_id" in the gin context on success. It is never attached to
// the /ws route: that route authenticates via its own query-string
// token handling instead.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, apierr.Unauthorized("missing authorization header"))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortWithError(c, apierr.Unauthorized("invalid authorization format, expected: Bearer <token>"))
			return
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			abortWithError(c, apierr.Unauthorized("invalid or expired token"))
			return
		}

		c.Set("user_id", claims.UserID)
		c.Next()
	}
}

func abortWithError(c *gin.Context, err *apierr.StatusError) {
	c.Error(err)
	c.Abort()
}

// GetUserID extracts the authenticated user id set by AuthMiddleware.
func GetUserID(c *gin.Context) string {
	userID, _ := c.Get("user_id")
	id, _ := userID.(string)
	return id
}
