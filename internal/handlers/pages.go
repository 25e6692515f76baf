package handlers

import (
	"log"
	"math/rand"
	"net/http"

	"Members/internal/auth"

	"github.com/gin-gonic/gin"
)

var memberImages = []string{"smart-cat.svg", "angry-cat.svg"}

// Landing renders the landing page for GET /. The content varies when the
// request carries an authenticated session.
func (h *AuthHandler) Landing(c *gin.Context) {
	var sess *auth.Session
	if id, err := c.Cookie(auth.SessionCookieName); err == nil && id != "" {
		s, err := h.sessions.Get(c.Request.Context(), id)
		if err != nil {
			// Render the anonymous variant; detail stays server-side.
			log.Printf("landing: session lookup: %v (request_id=%s)", err, c.GetString("request_id"))
		}
		sess = s
	}

	data := gin.H{"Authenticated": false}
	if sess != nil && sess.Authenticated {
		data["Authenticated"] = true
		data["Username"] = sess.Username
	}
	c.HTML(http.StatusOK, "index.html", data)
}

// Members renders the protected page for GET /members. RequireSession has
// already gated the request and put the username in context.
func (h *AuthHandler) Members(c *gin.Context) {
	c.HTML(http.StatusOK, "members.html", gin.H{
		"Username": auth.UsernameFromContext(c),
		"Image":    "/public/" + memberImages[rand.Intn(len(memberImages))],
	})
}

// About renders GET /about. The color query parameter lands in a style
// attribute; html/template escapes it there, so it cannot break out.
func (h *AuthHandler) About(c *gin.Context) {
	c.HTML(http.StatusOK, "about.html", gin.H{"Color": c.Query("color")})
}

// NotFound renders the 404 page for any unregistered route.
func (h *AuthHandler) NotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "notfound.html", nil)
}
