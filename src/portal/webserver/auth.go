package webserver

import (
	"log"
	"net/http"
	"time"

	"github.com/Wildboar1/IERP-Website-sub000/src/portal/auth"
	"github.com/Wildboar1/IERP-Website-sub000/src/portal/data"
	"github.com/Wildboar1/IERP-Website-sub000/src/portal/store"
	"github.com/Wildboar1/IERP-Website-sub000/src/portal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const sessionTTL = 24 * time.Hour

type Auth struct {
	rdb         *redis.Client
	discord     *auth.Discord
	st          *store.Store
	jwtSecret   []byte
	frontendURL string
}

func NewAuth(rdb *redis.Client, discord *auth.Discord, st *store.Store, secret []byte, frontendURL string) Auth {
	return Auth{rdb: rdb, discord: discord, st: st, jwtSecret: secret, frontendURL: frontendURL}
}

// Login redirects the browser to the Discord authorize page with a single-use
// state nonce.
func (a Auth) Login(c *gin.Context) {
	state := uuid.NewString()
	if err := data.SetState(c, a.rdb, state); err != nil {
		log.Printf("auth: failed to store state: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"err": "failed to start login"})
		return
	}
	c.Redirect(http.StatusFound, a.discord.AuthURL(state))
}

// Callback completes the OAuth flow: consume the state nonce, exchange the
// code, resolve the profile and staff role, then issue the session token.
func (a Auth) Callback(c *gin.Context) {
	state := c.Query("state")
	code := c.Query("code")
	if state == "" || code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"err": "missing code or state"})
		return
	}
	if !data.TakeState(c, a.rdb, state) {
		c.JSON(http.StatusUnauthorized, gin.H{"err": "login challenge expired or not found"})
		return
	}

	prof, err := a.discord.Exchange(c, code)
	if err != nil {
		log.Printf("auth: discord exchange failed: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"err": "discord login failed"})
		return
	}

	admin, err := a.st.IsAdmin(prof.ID)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"err": "storage unavailable"})
		return
	}

	ident := types.Identity{DiscordID: prof.ID, Name: prof.DisplayName(), Admin: admin}
	token, err := auth.IssueToken(a.jwtSecret, ident, sessionTTL)
	if err != nil {
		log.Printf("auth: failed to issue token for %s: %v", prof.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"err": "failed to issue session"})
		return
	}

	log.Printf("auth: authenticated %s (%s, admin=%v)", ident.Name, ident.DiscordID, admin)
	if a.frontendURL != "" {
		c.Redirect(http.StatusFound, a.frontendURL+"/auth#token="+token)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Me echoes the identity baked into the presented session token.
func (a Auth) Me(c *gin.Context) {
	ident := identityFrom(c)
	c.JSON(http.StatusOK, gin.H{
		"id":    ident.DiscordID,
		"name":  ident.Name,
		"admin": ident.Admin,
	})
}
