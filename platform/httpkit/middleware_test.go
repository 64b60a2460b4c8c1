package httpkit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"alma_leads_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

type stubAuthConfig struct {
	apiKey  string
	enabled bool
}

func (c stubAuthConfig) GetAPIKey() string   { return c.apiKey }
func (c stubAuthConfig) IsAuthEnabled() bool { return c.enabled }

func guardedEngine(cfg stubAuthConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(APIKeyRequired(cfg, logger.New("test")))
	engine.GET("/guarded", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return engine
}

func requestWithKey(engine *gin.Engine, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	if key != "" {
		req.Header.Set(APIKeyHeader, key)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestAPIKeyRequiredRejectsMissingKey(t *testing.T) {
	engine := guardedEngine(stubAuthConfig{apiKey: "secret", enabled: true})

	if rec := requestWithKey(engine, ""); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without key, got %d", rec.Code)
	}
}

func TestAPIKeyRequiredRejectsWrongKey(t *testing.T) {
	engine := guardedEngine(stubAuthConfig{apiKey: "secret", enabled: true})

	if rec := requestWithKey(engine, "not-the-secret"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with wrong key, got %d", rec.Code)
	}
}

func TestAPIKeyRequiredAcceptsCorrectKey(t *testing.T) {
	engine := guardedEngine(stubAuthConfig{apiKey: "secret", enabled: true})

	if rec := requestWithKey(engine, "secret"); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with correct key, got %d", rec.Code)
	}
}

func TestAPIKeyRequiredBypassedWhenDisabled(t *testing.T) {
	engine := guardedEngine(stubAuthConfig{apiKey: "secret", enabled: false})

	if rec := requestWithKey(engine, ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with auth disabled, got %d", rec.Code)
	}
}

func TestRateLimitRejectsAfterBurst(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := NewIPRateLimiter(1, 2, logger.New("test"))

	engine := gin.New()
	engine.Use(limiter.RateLimit())
	engine.GET("/limited", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/limited", nil)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Fatalf("expected first two requests to pass, got %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Fatalf("expected third request to be rate limited, got %v", codes)
	}
}
