package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"aurora/internal/access"
	"aurora/pkg/utils"
)

const principalKey = "principal"

// JWTAuthMiddleware resolves the caller from the Authorization header. A
// request without credentials continues as anonymous; a request with a bad
// credential is rejected. adminToken, when not empty, is accepted in place
// of a JWT if the request also carries "X-Admin: true".
func JWTAuthMiddleware(tokens *utils.TokenIssuer, adminToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Set(principalKey, access.Principal{})
			c.Next()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing or invalid")
			c.Abort()
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		if isAdminChannel(c, tokenString, adminToken) {
			utils.RequestLogger(c).Info("admin channel request", zap.String("path", c.FullPath()))
			c.Set(principalKey, access.Principal{AdminChannel: true})
			c.Next()
			return
		}

		claims, err := tokens.Validate(tokenString, utils.TokenTypeAccess)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("Role", claims.Role)
		c.Set(principalKey, access.Principal{
			UserID:      claims.UserID,
			IsStaff:     claims.IsStaff,
			IsSuperuser: claims.IsSuperuser,
		})
		c.Next()
	}
}

func isAdminChannel(c *gin.Context, token, adminToken string) bool {
	if adminToken == "" || !strings.EqualFold(c.GetHeader("X-Admin"), "true") {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(adminToken)) == 1
}

// PrincipalFrom returns the caller resolved by JWTAuthMiddleware, or an
// anonymous principal when the middleware did not run.
func PrincipalFrom(c *gin.Context) access.Principal {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(access.Principal); ok {
			return p
		}
	}
	return access.Principal{}
}

// RequireAuth rejects anonymous callers.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !PrincipalFrom(c).Authenticated() {
			utils.HandleServiceError(c, utils.ErrUnauthenticated)
			c.Abort()
			return
		}
		c.Next()
	}
}
