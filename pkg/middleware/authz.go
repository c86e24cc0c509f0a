package middleware

import (
	"github.com/gin-gonic/gin"

	"aurora/internal/access"
	"aurora/pkg/utils"
)

// AuthzMiddleware lets the request through only when the gateway allows the
// caller to perform act on obj. It is meant for resources without a per-row
// owner, such as the product catalog.
func AuthzMiddleware(gateway *access.Gateway, obj access.Resource, act access.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := PrincipalFrom(c)
		if gateway.Authorize(p, obj, act, "") {
			c.Next()
			return
		}

		if p.Authenticated() {
			utils.HandleServiceError(c, utils.ErrForbidden)
		} else {
			utils.HandleServiceError(c, utils.ErrUnauthenticated)
		}
		c.Abort()
	}
}
