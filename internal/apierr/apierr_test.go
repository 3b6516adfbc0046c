package apierr

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvelopes(t *testing.T) {
	s := Success(map[string]string{"id": "1"})
	assert.Equal(t, "success", s.Type)

	e := Error("boom")
	assert.Equal(t, "error", e.Type)
	assert.Equal(t, "boom", e.Data)
}

func TestStatusErrorCodes(t *testing.T) {
	cases := map[*StatusError]int{
		InvalidName():           http.StatusBadRequest,
		InvalidPort():           http.StatusBadRequest,
		PortAlreadyAllocated():  http.StatusBadRequest,
		VersionNotFound("1.21"): http.StatusNotFound,
		ServerInfoNotFound():    http.StatusInternalServerError,
		ProvisionFailed("x"):    http.StatusInternalServerError,
		Unauthorized("x"):       http.StatusUnauthorized,
		Forbidden("x"):          http.StatusForbidden,
		ServerNotFound():        http.StatusNotFound,
		BadRequest("x"):         http.StatusBadRequest,
		Internal("x"):           http.StatusInternalServerError,
		Conflict("x"):           http.StatusConflict,
	}

	for err, status := range cases {
		assert.Equal(t, status, err.StatusCode())
	}
}
