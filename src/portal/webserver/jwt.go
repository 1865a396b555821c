package webserver

import (
	"net/http"
	"strings"

	"github.com/Wildboar1/IERP-Website-sub000/src/portal/auth"
	"github.com/Wildboar1/IERP-Website-sub000/src/portal/store"
	"github.com/Wildboar1/IERP-Website-sub000/src/portal/types"
	"github.com/gin-gonic/gin"
)

// JWTMiddleware resolves the session token into an Identity. Every failure
// mode gets the same bare 401 so token state cannot be enumerated.
func JWTMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		ident, err := auth.ParseToken(secret, h[7:])
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Set("identity", ident)
		c.Next()
	}
}

func identityFrom(c *gin.Context) types.Identity {
	v, _ := c.Get("identity")
	ident, _ := v.(types.Identity)
	return ident
}

// AdminMiddleware checks the staff roster in the database rather than trusting
// the token's admin claim, so a revoked admin loses access immediately.
func AdminMiddleware(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, err := st.IsAdmin(identityFrom(c).DiscordID)
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"err": "storage unavailable"})
			c.Abort()
			return
		}
		if !admin {
			c.JSON(http.StatusForbidden, gin.H{"err": "admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
