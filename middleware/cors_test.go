package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"tshirt-store/config"
)

func corsRequest(t *testing.T, origin string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(CORSMiddleware())
	router.GET("/products", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.Header.Set("Origin", origin)
	router.ServeHTTP(w, req)
	return w
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	prev := config.AppConfig
	config.AppConfig = &config.Config{AllowOrigin: "https://shop.example.com"}
	t.Cleanup(func() { config.AppConfig = prev })

	w := corsRequest(t, "https://shop.example.com")
	assert.Equal(t, "https://shop.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSRejectsUnknownOrigin(t *testing.T) {
	prev := config.AppConfig
	config.AppConfig = &config.Config{AllowOrigin: "https://shop.example.com"}
	t.Cleanup(func() { config.AppConfig = prev })

	w := corsRequest(t, "https://evil.example.com")
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
