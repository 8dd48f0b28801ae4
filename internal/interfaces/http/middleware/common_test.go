package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

const posOrigin = "http://pos.local:3000"

func newCORSRouter(cfg CORSConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORSWithConfig(cfg))
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return router
}

func corsRequest(router *gin.Engine, method, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/ping", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCORS_EmptyWhitelistRejectsCrossOrigin(t *testing.T) {
	router := newCORSRouter(DefaultCORSConfig())

	w := corsRequest(router, http.MethodGet, posOrigin)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_EmptyWhitelistAllowsSameOrigin(t *testing.T) {
	router := newCORSRouter(DefaultCORSConfig())

	w := corsRequest(router, http.MethodGet, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_PreflightAlwaysNoContent(t *testing.T) {
	router := newCORSRouter(DefaultCORSConfig())

	w := corsRequest(router, http.MethodOptions, posOrigin)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_AllowsListedOrigin(t *testing.T) {
	cfg := DefaultCORSConfig()
	cfg.AllowOrigins = []string{posOrigin, "https://backoffice.example.com"}
	router := newCORSRouter(cfg)

	w := corsRequest(router, http.MethodGet, posOrigin)
	assert.Equal(t, posOrigin, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	w = corsRequest(router, http.MethodGet, "https://backoffice.example.com")
	assert.Equal(t, "https://backoffice.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_RejectsUnlistedOrigin(t *testing.T) {
	cfg := DefaultCORSConfig()
	cfg.AllowOrigins = []string{posOrigin}
	router := newCORSRouter(cfg)

	w := corsRequest(router, http.MethodGet, "http://evil.example.com")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORS_WildcardAllowsAnyOrigin(t *testing.T) {
	cfg := DefaultCORSConfig()
	cfg.AllowOrigins = []string{"*"}
	router := newCORSRouter(cfg)

	w := corsRequest(router, http.MethodGet, "http://anywhere.example.com")

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_WildcardNeverSendsCredentials(t *testing.T) {
	cfg := DefaultCORSConfig()
	cfg.AllowOrigins = []string{"*"}
	cfg.AllowCredentials = true
	router := newCORSRouter(cfg)

	w := corsRequest(router, http.MethodGet, posOrigin)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORS_ExposeHeaders(t *testing.T) {
	cfg := DefaultCORSConfig()
	cfg.AllowOrigins = []string{posOrigin}
	router := newCORSRouter(cfg)

	w := corsRequest(router, http.MethodGet, posOrigin)

	assert.Equal(t, "X-Request-ID", w.Header().Get("Access-Control-Expose-Headers"))
}

func TestCORS_PreflightForListedOrigin(t *testing.T) {
	cfg := DefaultCORSConfig()
	cfg.AllowOrigins = []string{posOrigin}
	router := newCORSRouter(cfg)

	w := corsRequest(router, http.MethodOptions, posOrigin)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, posOrigin, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "X-Tenant-ID")
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestCORS_PreflightForUnlistedOrigin(t *testing.T) {
	cfg := DefaultCORSConfig()
	cfg.AllowOrigins = []string{posOrigin}
	router := newCORSRouter(cfg)

	w := corsRequest(router, http.MethodOptions, "http://evil.example.com")

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_MaxAgeIsDecimalSeconds(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		expected string
	}{
		{"30 seconds", 30 * time.Second, "30"},
		{"1 minute", time.Minute, "60"},
		{"1 hour", time.Hour, "3600"},
		{"12 hours", 12 * time.Hour, "43200"},
		{"24 hours", 24 * time.Hour, "86400"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultCORSConfig()
			cfg.AllowOrigins = []string{posOrigin}
			cfg.MaxAge = tt.duration
			router := newCORSRouter(cfg)

			w := corsRequest(router, http.MethodGet, posOrigin)

			assert.Equal(t, tt.expected, w.Header().Get("Access-Control-Max-Age"))
		})
	}
}

func TestDefaultCORSConfig(t *testing.T) {
	cfg := DefaultCORSConfig()

	assert.Empty(t, cfg.AllowOrigins)
	assert.Contains(t, cfg.AllowMethods, "GET")
	assert.Contains(t, cfg.AllowMethods, "POST")
	assert.Contains(t, cfg.AllowHeaders, "Content-Type")
	assert.Contains(t, cfg.AllowHeaders, "X-Tenant-ID")
	assert.Contains(t, cfg.AllowHeaders, "X-Idempotency-Key")
	assert.True(t, cfg.AllowCredentials)
	assert.Equal(t, 12*time.Hour, cfg.MaxAge)
}

func TestRequestID_Generated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/ping", func(c *gin.Context) {
		assert.NotEmpty(t, c.GetString("request_id"))
		c.String(http.StatusOK, "pong")
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Len(t, w.Header().Get("X-Request-ID"), 32)
}

func TestRequestID_ReusesIncomingHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "upstream-id-7")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "upstream-id-7", w.Header().Get("X-Request-ID"))
}

func TestGenerateRequestID(t *testing.T) {
	id1 := generateRequestID()
	id2 := generateRequestID()

	assert.NotEmpty(t, id1)
	assert.NotEqual(t, id1, id2)
	assert.Len(t, id1, 32)
}

func secureRequest(cfg SecurityConfig) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(SecureWithConfig(cfg))
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSecure_Defaults(t *testing.T) {
	w := secureRequest(DefaultSecurityConfig())

	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "1; mode=block", w.Header().Get("X-XSS-Protection"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "strict-origin-when-cross-origin", w.Header().Get("Referrer-Policy"))
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "default-src 'self'")
	assert.Contains(t, w.Header().Get("Permissions-Policy"), "camera=()")
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
}

func TestSecureWithConfig_CustomCSP(t *testing.T) {
	cfg := DefaultSecurityConfig()
	cfg.CSPDirective = "default-src 'none'"

	w := secureRequest(cfg)

	assert.Equal(t, "default-src 'none'", w.Header().Get("Content-Security-Policy"))
}

func TestSecureWithConfig_HSTSVariants(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*SecurityConfig)
		expected string
	}{
		{
			name: "full options",
			mutate: func(cfg *SecurityConfig) {
				cfg.HSTSEnabled = true
				cfg.HSTSMaxAge = 63072000
				cfg.HSTSIncludeSubdomains = true
				cfg.HSTSPreload = true
			},
			expected: "max-age=63072000; includeSubDomains; preload",
		},
		{
			name: "bare max-age",
			mutate: func(cfg *SecurityConfig) {
				cfg.HSTSEnabled = true
				cfg.HSTSMaxAge = 3600
				cfg.HSTSIncludeSubdomains = false
				cfg.HSTSPreload = false
			},
			expected: "max-age=3600",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultSecurityConfig()
			tt.mutate(&cfg)

			w := secureRequest(cfg)

			assert.Equal(t, tt.expected, w.Header().Get("Strict-Transport-Security"))
		})
	}
}

func TestSecureWithConfig_CustomPermissionsPolicy(t *testing.T) {
	cfg := DefaultSecurityConfig()
	cfg.PermissionsPolicyDirective = "geolocation=(self)"

	w := secureRequest(cfg)

	assert.Equal(t, "geolocation=(self)", w.Header().Get("Permissions-Policy"))
}

func TestSecureWithConfig_OptionalHeadersDisabled(t *testing.T) {
	w := secureRequest(SecurityConfig{})

	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Empty(t, w.Header().Get("Content-Security-Policy"))
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
	assert.Empty(t, w.Header().Get("Permissions-Policy"))
}

func TestDefaultSecurityConfig(t *testing.T) {
	cfg := DefaultSecurityConfig()

	assert.False(t, cfg.HSTSEnabled)
	assert.Equal(t, 31536000, cfg.HSTSMaxAge)
	assert.True(t, cfg.CSPEnabled)
	assert.NotEmpty(t, cfg.CSPDirective)
	assert.True(t, cfg.PermissionsPolicyEnabled)
	assert.NotEmpty(t, cfg.PermissionsPolicyDirective)
}

func TestTimeout_AdvertisesHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Timeout(30 * time.Second))
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "30s", w.Header().Get("X-Request-Timeout"))
}
