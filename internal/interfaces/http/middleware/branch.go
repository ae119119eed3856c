package middleware

import (
	"net/http"

	"github.com/branchpos/backend/internal/domain/branch"
	"github.com/gin-gonic/gin"
)

// Branch context keys
const (
	BranchKeyKey    = "branch_key"
	BranchHeaderKey = "X-Branch-Key"
)

// ActiveBranch resolves the branch every request operates on. The token
// is scoped to one branch; admins may point at another branch with the
// X-Branch-Key header.
func ActiveBranch() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			c.Next()
			return
		}

		key := branch.Key(claims.Branch)
		if header := c.GetHeader(BranchHeaderKey); header != "" && header != claims.Branch {
			if claims.Role != "admin" {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "FORBIDDEN",
						"message": "Token is not valid for the requested branch",
					},
				})
				return
			}
			key = branch.Key(header)
		}

		c.Set(BranchKeyKey, key.String())
		c.Next()
	}
}

// GetBranchKey returns the branch the current request operates on
func GetBranchKey(c *gin.Context) branch.Key {
	return branch.Key(c.GetString(BranchKeyKey))
}
