package auth

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SessionCookieName is the cookie holding the opaque session ID.
const SessionCookieName = "session_id"

const contextKeyUsername = "session_username"

// SessionGetter is the read side of the session store, enough for gating requests.
type SessionGetter interface {
	Get(ctx context.Context, id string) (*Session, error)
}

// UsernameFromContext returns the username set by RequireSession. Empty if not set.
func UsernameFromContext(c *gin.Context) string {
	v, ok := c.Get(contextKeyUsername)
	if !ok {
		return ""
	}
	name, ok := v.(string)
	if !ok {
		return ""
	}
	return name
}

// RequireSession returns a middleware that checks for a valid authenticated
// session and sets the session username in context. Anonymous requests are
// redirected to the landing page.
func RequireSession(sessions SessionGetter) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(SessionCookieName)
		if err != nil || id == "" {
			redirectHome(c)
			return
		}
		sess, err := sessions.Get(c.Request.Context(), id)
		if err != nil {
			// Store fault reads as anonymous; detail stays server-side.
			log.Printf("session lookup: %v (request_id=%s)", err, c.GetString("request_id"))
			redirectHome(c)
			return
		}
		if sess == nil || !sess.Authenticated {
			redirectHome(c)
			return
		}
		c.Set(contextKeyUsername, sess.Username)
		c.Next()
	}
}

func redirectHome(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/")
	c.Abort()
}
