package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"letly-be-svc/internal/auth"
	"letly-be-svc/internal/models"
	"letly-be-svc/pkg/utils"
)

const claimsKey = "auth_claims"

// RequireAuth rejects requests without a valid bearer token and stores the
// claims on the context
func RequireAuth(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			utils.UnauthorizedResponse(c, "No token, authorization denied", auth.ErrMissingToken)
			c.Abort()
			return
		}

		claims, err := jwtManager.Validate(strings.TrimSpace(token))
		if err != nil {
			utils.UnauthorizedResponse(c, "Token is not valid", err)
			c.Abort()
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireRole lets through only actors with one of roles. It must run after RequireAuth.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := CurrentActor(c)
		if !ok {
			utils.UnauthorizedResponse(c, "No token, authorization denied", auth.ErrMissingToken)
			c.Abort()
			return
		}
		if err := actor.Require(roles...); err != nil {
			utils.ForbiddenResponse(c, "Access denied", err)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentActor returns the authenticated caller set by RequireAuth
func CurrentActor(c *gin.Context) (auth.Actor, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return auth.Actor{}, false
	}
	claims, ok := v.(*auth.Claims)
	if !ok {
		return auth.Actor{}, false
	}
	return claims.Actor(), true
}
