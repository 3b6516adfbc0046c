package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/VERT-sh/waitress/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthService struct {
	userID string
	err    error
}

func (f *fakeAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &service.Claims{UserID: f.userID}, nil
}

func newTestRouter(svc AuthServiceInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	SetAuthService(svc)

	router := gin.New()
	router.Use(ErrorHandler())
	router.GET("/protected", AuthMiddleware(), func(c *gin.Context) {
		c.JSON(200, gin.H{"user_id": GetUserID(c)})
	})
	return router
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	router := newTestRouter(&fakeAuthService{userID: "u1"})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	router := newTestRouter(&fakeAuthService{userID: "u1"})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "u1")
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	router := newTestRouter(&fakeAuthService{err: assert.AnError})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	router := newTestRouter(&fakeAuthService{userID: "u1"})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token good-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
