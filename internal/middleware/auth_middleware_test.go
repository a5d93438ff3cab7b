package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/campusreg/internal/pkg/auth"
)

const testSecret = "middleware-secret"

func newAdminRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	m := NewAuthMiddleware(auth.NewJWTService(auth.JWTConfig{SecretKey: testSecret, TokenIssuer: "campusreg.app"}))

	r := gin.New()
	r.GET("/admin", m.JWTAuth(), m.RoleRequired("admin"), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextEmail))
	})
	return r
}

func token(t *testing.T, role string, ttl time.Duration) string {
	t.Helper()
	claims := auth.Claims{
		Email:    "root@campus.example",
		RoleType: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "campusreg.app",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func TestAdminGate(t *testing.T) {
	tests := []struct {
		name   string
		header string
		status int
		code   string
	}{
		{"missing header", "", http.StatusUnauthorized, `"code":"AUTH_008"`},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, `"code":"AUTH_008"`},
		{"garbage token", "Bearer nope", http.StatusUnauthorized, `"code":"AUTH_005"`},
		{"expired token", "Bearer " + token(t, "admin", -time.Minute), http.StatusUnauthorized, `"code":"AUTH_006"`},
		{"non-admin role", "Bearer " + token(t, "institution", time.Hour), http.StatusForbidden, `"code":"AUTH_009"`},
		{"admin", "Bearer " + token(t, "admin", time.Hour), http.StatusOK, ""},
	}

	r := newAdminRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, "root@campus.example", rec.Body.String())
				return
			}
			assert.Contains(t, rec.Body.String(), tt.code)
		})
	}
}

func TestRoleRequiredWithoutAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewAuthMiddleware(auth.NewJWTService(auth.JWTConfig{SecretKey: testSecret}))

	r := gin.New()
	r.GET("/", m.RoleRequired("admin"), func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"AUTH_008"`)
}
