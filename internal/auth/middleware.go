package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const identityKey = "authIdentity"

// Middleware resolves the bearer credential and stores the identity on the
// request context. All resolution failures are a 401; the reason only
// reaches the logs.
func Middleware(resolver *Resolver, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, err := resolver.Resolve(c.GetHeader("Authorization"))
		if err != nil {
			log.WithFields(logrus.Fields{
				"path":   c.Request.URL.Path,
				"reason": err.Error(),
			}).Warn("rejected credential")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Set(identityKey, *ident)
		c.Next()
	}
}

// Optional resolves the credential when one is present but never rejects the
// request. Used on public routes that attach the caller when known, like
// inquiry submission.
func Optional(resolver *Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ident, err := resolver.Resolve(c.GetHeader("Authorization")); err == nil {
			c.Set(identityKey, *ident)
		}
		c.Next()
	}
}

// RequireAdmin aborts with 403 unless the resolved identity is an admin.
// Must run after Middleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := IdentityFrom(c)
		if !ok || !ident.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

// IdentityFrom returns the identity stored by Middleware.
func IdentityFrom(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	ident, ok := v.(Identity)
	return ident, ok
}
