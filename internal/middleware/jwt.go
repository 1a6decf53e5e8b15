package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"reparto_tracker/internal/config"
)

const (
	RolePlanner = "planner"
	RoleDriver  = "driver"

	ctxUserID   = "user_id"
	ctxRole     = "role"
	ctxDriverID = "driver_id"
)

// Auth verifies HS256 tokens issued by the auth service.
type Auth struct {
	secret  []byte
	enabled bool
}

func NewAuth(cfg config.AuthConfig) *Auth {
	return &Auth{secret: []byte(cfg.Secret), enabled: cfg.Enabled}
}

// GenerateToken signs a token for a user. driverID is only set for drivers.
func (a *Auth) GenerateToken(userID, role string, driverID *uuid.UUID, ttl time.Duration) (string, error) {
	if len(a.secret) == 0 {
		return "", errors.New("no signing secret configured")
	}
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(ttl).Unix(),
	}
	if driverID != nil {
		claims["driver_id"] = driverID.String()
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

func (a *Auth) ValidateToken(tokenStr string) (*jwt.Token, error) {
	return jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
}

// RequireAuth ensures a valid JWT is present
func (a *Auth) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if a.enabled && !a.authenticate(c) {
			return
		}
		c.Next()
	}
}

// RequireAuthWithRole ensures the JWT is valid and carries one of the roles.
func (a *Auth) RequireAuthWithRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.enabled {
			c.Next()
			return
		}
		if !a.authenticate(c) {
			return
		}

		role := c.GetString(ctxRole)
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
	}
}

// authenticate verifies the bearer token and stores its claims on the context. It
// aborts the request and returns false when the token is missing or invalid.
func (a *Auth) authenticate(c *gin.Context) bool {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
		return false
	}

	token, err := a.ValidateToken(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil || !token.Valid {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
		return false
	}
	c.Set(ctxUserID, claims["user_id"])
	if role, ok := claims["role"].(string); ok {
		c.Set(ctxRole, role)
	}
	if raw, ok := claims["driver_id"].(string); ok {
		if id, err := uuid.Parse(raw); err == nil {
			c.Set(ctxDriverID, id)
		}
	}
	return true
}

// RequireSameDriver lets drivers reach only their own resources, identified by the
// path parameter param. Planners pass through.
func (a *Auth) RequireSameDriver(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.enabled || c.GetString(ctxRole) != RoleDriver {
			c.Next()
			return
		}
		actor := ActingDriver(c)
		if actor == nil || actor.String() != strings.ToLower(c.Param(param)) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}
		c.Next()
	}
}

// ActingDriver returns the driver id of a driver token, or nil for planners and
// unauthenticated requests.
func ActingDriver(c *gin.Context) *uuid.UUID {
	if c.GetString(ctxRole) != RoleDriver {
		return nil
	}
	v, ok := c.Get(ctxDriverID)
	if !ok {
		return &uuid.Nil
	}
	id := v.(uuid.UUID)
	return &id
}
