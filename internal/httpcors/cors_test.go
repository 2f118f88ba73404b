package httpcors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestPolicy() *Policy {
	return NewPolicy(
		[]string{"https://news.example.com", "http://localhost:5173"},
		[]string{".preview.example.dev", ".example.app"},
	)
}

func TestResolveOrigin(t *testing.T) {
	p := newTestPolicy()

	tests := []struct {
		name   string
		origin string
		want   string
	}{
		{"listed origin is reflected", "https://news.example.com", "https://news.example.com"},
		{"second listed origin is reflected", "http://localhost:5173", "http://localhost:5173"},
		{"trusted suffix is reflected", "https://branch-42.preview.example.dev", "https://branch-42.preview.example.dev"},
		{"other trusted suffix is reflected", "https://demo.example.app", "https://demo.example.app"},
		{"unknown origin gets the substitute", "https://evil.example.net", "https://news.example.com"},
		{"missing origin gets the substitute", "", "https://news.example.com"},
		{"suffix must match the tail", "https://example.app.evil.net", "https://news.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.ResolveOrigin(tt.origin); got != tt.want {
				t.Errorf("ResolveOrigin(%q) = %q, want %q", tt.origin, got, tt.want)
			}
		})
	}
}

func TestMiddleware_SetsHeadersOnEveryResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(newTestPolicy().Middleware())
	router.POST("/api/subscribe", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/subscribe", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	router.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("Access-Control-Allow-Origin = %q, want reflected origin", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("Access-Control-Allow-Credentials = %q, want %q", got, "true")
	}
	if w.Header().Get("Access-Control-Allow-Headers") == "" {
		t.Error("Access-Control-Allow-Headers missing")
	}
}

func TestMiddleware_PreflightShortCircuits(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handlerCalled := false
	router := gin.New()
	router.Use(newTestPolicy().Middleware())
	router.OPTIONS("/api/subscribe", func(c *gin.Context) {
		handlerCalled = true
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/subscribe", nil)
	req.Header.Set("Origin", "https://unknown.example.org")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want %d", w.Code, http.StatusNoContent)
	}
	if w.Body.Len() != 0 {
		t.Errorf("preflight body should be empty, got %q", w.Body.String())
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://news.example.com" {
		t.Errorf("untrusted preflight origin = %q, want the substitute", got)
	}
	if handlerCalled {
		t.Error("preflight must not reach route handlers")
	}
}
