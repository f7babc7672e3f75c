package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/photovault/service/internal/response"
)

func TestOK_WrapsDataInEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	response.OK(rec, map[string]string{"url": "http://x/y"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var env struct {
		Success bool              `json:"success"`
		Data    map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Equal(t, "http://x/y", env.Data["url"])
}

func TestErrorHelpers(t *testing.T) {
	cases := []struct {
		write  func(http.ResponseWriter)
		status int
	}{
		{func(w http.ResponseWriter) { response.BadRequest(w, "bad") }, http.StatusBadRequest},
		{func(w http.ResponseWriter) { response.NotFound(w, "missing") }, http.StatusNotFound},
		{func(w http.ResponseWriter) { response.PayloadTooLarge(w, "big") }, http.StatusRequestEntityTooLarge},
		{func(w http.ResponseWriter) { response.BadGateway(w, "upstream") }, http.StatusBadGateway},
		{func(w http.ResponseWriter) { response.ServiceUnavailable(w, "down") }, http.StatusServiceUnavailable},
		{response.InternalError, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		tc.write(rec)
		assert.Equal(t, tc.status, rec.Code)

		var env response.Envelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
		assert.False(t, env.Success)
		assert.NotEmpty(t, env.Error)
	}
}
