package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func corsRouter(allowed []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware(allowed))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func doRequest(r *gin.Engine, method, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/ping", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCORSEchoesAnyOriginWhenUnrestricted(t *testing.T) {
	r := corsRouter(nil)

	w := doRequest(r, http.MethodGet, "https://clinica.example.com")
	assert.Equal(t, "https://clinica.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSRestrictedToConfiguredOrigins(t *testing.T) {
	r := corsRouter([]string{"https://app.clinica.com.br"})

	w := doRequest(r, http.MethodGet, "https://app.clinica.com.br")
	assert.Equal(t, "https://app.clinica.com.br", w.Header().Get("Access-Control-Allow-Origin"))

	w = doRequest(r, http.MethodGet, "https://outro.example.com")
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflightShortCircuits(t *testing.T) {
	r := corsRouter(nil)

	w := doRequest(r, http.MethodOptions, "https://app.clinica.com.br")
	assert.Equal(t, http.StatusNoContent, w.Code)
}
