package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reparto_tracker/internal/config"
	"reparto_tracker/internal/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(a *Auth) *gin.Engine {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/planner", a.RequireAuthWithRole(RolePlanner), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/driver/:driverId", a.RequireAuthWithRole(RoleDriver, RolePlanner), a.RequireSameDriver("driverId"), func(c *gin.Context) {
		if d := ActingDriver(c); d != nil {
			c.String(http.StatusOK, d.String())
			return
		}
		c.String(http.StatusOK, "planner")
	})
	return r
}

func do(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuthWithRole(t *testing.T) {
	a := NewAuth(config.AuthConfig{Enabled: true, Secret: "test-secret"})
	r := newRouter(a)

	planner, err := a.GenerateToken("u1", RolePlanner, nil, time.Hour)
	require.NoError(t, err)
	driverID := uuid.New()
	driver, err := a.GenerateToken("u2", RoleDriver, &driverID, time.Hour)
	require.NoError(t, err)
	expired, err := a.GenerateToken("u1", RolePlanner, nil, -time.Hour)
	require.NoError(t, err)
	forged, err := NewAuth(config.AuthConfig{Secret: "other"}).GenerateToken("u1", RolePlanner, nil, time.Hour)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, do(r, "/planner", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "/planner", expired).Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "/planner", forged).Code)
	assert.Equal(t, http.StatusForbidden, do(r, "/planner", driver).Code)
	assert.Equal(t, http.StatusOK, do(r, "/planner", planner).Code)

	w := do(r, "/driver/"+driverID.String(), driver)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, driverID.String(), w.Body.String())
	assert.Equal(t, http.StatusForbidden, do(r, "/driver/"+uuid.NewString(), driver).Code)

	w = do(r, "/driver/"+uuid.NewString(), planner)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "planner", w.Body.String())
}

func TestRejectsOtherSigningMethods(t *testing.T) {
	a := NewAuth(config.AuthConfig{Enabled: true, Secret: "test-secret"})
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{"role": RolePlanner})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, do(newRouter(a), "/planner", signed).Code)
}

func TestAuthDisabled(t *testing.T) {
	r := newRouter(NewAuth(config.AuthConfig{Enabled: false}))
	assert.Equal(t, http.StatusOK, do(r, "/planner", "").Code)
	w := do(r, "/driver/"+uuid.NewString(), "")
	assert.Equal(t, "planner", w.Body.String())
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, logger.RequestID(c.Request.Context()))
	})

	w := do(r, "/", "")
	id := w.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.Equal(t, id, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Body.String())
}

func TestEnableCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) })
	h := EnableCORS([]string{"http://planner.local"})(next)

	req := httptest.NewRequest(http.MethodOptions, "/api/routes", nil)
	req.Header.Set("Origin", "http://planner.local")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://planner.local", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")

	req = httptest.NewRequest(http.MethodGet, "/api/routes", nil)
	req.Header.Set("Origin", "http://evil.local")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
