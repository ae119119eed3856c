package middleware

import (
	"net/http"
	"strings"

	"github.com/branchpos/backend/internal/infrastructure/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// JWT context keys
const (
	JWTClaimsKey     = "jwt_claims"
	JWTOperatorIDKey = "jwt_operator_id"
	JWTUsernameKey   = "jwt_username"
	JWTRoleKey       = "jwt_role"
	AuthHeaderKey    = "Authorization"
	BearerPrefix     = "Bearer "
)

// JWTAuth validates the bearer token and stores its claims on the
// request context. Paths in skipPaths pass through unauthenticated.
func JWTAuth(jwtService *auth.JWTService, skipPaths ...string) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		header := c.GetHeader(AuthHeaderKey)
		if !strings.HasPrefix(header, BearerPrefix) {
			abortUnauthorized(c, "Missing or malformed authorization header")
			return
		}

		token := strings.TrimPrefix(header, BearerPrefix)
		claims, err := jwtService.Validate(token)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTOperatorIDKey, claims.OperatorID.String())
		c.Set(JWTUsernameKey, claims.Username)
		c.Set(JWTRoleKey, claims.Role)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": message,
		},
	})
}

// GetClaims returns the validated token claims, if any
func GetClaims(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(JWTClaimsKey); ok {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

// GetOperatorID returns the authenticated operator's id
func GetOperatorID(c *gin.Context) uuid.UUID {
	if claims := GetClaims(c); claims != nil {
		return claims.OperatorID
	}
	return uuid.Nil
}

// GetUsername returns the authenticated operator's username
func GetUsername(c *gin.Context) string {
	return c.GetString(JWTUsernameKey)
}

// GetRole returns the authenticated operator's role
func GetRole(c *gin.Context) string {
	return c.GetString(JWTRoleKey)
}
