package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"Members/internal/auth"
	dom "Members/internal/domain"
	"Members/internal/dto"
	"Members/internal/service"
	"Members/internal/validation"

	"github.com/gin-gonic/gin"
)

// loginFailedMessage is deliberately identical for an unknown username, a
// wrong password and malformed login input, so the login form cannot be used
// to enumerate accounts.
const loginFailedMessage = "Username and password not found"

// SessionStore is what the auth flow needs from session persistence.
type SessionStore interface {
	Create(ctx context.Context, sess auth.Session) (string, error)
	Get(ctx context.Context, id string) (*auth.Session, error)
	Save(ctx context.Context, id string, sess auth.Session) error
	Delete(ctx context.Context, id string) error
}

// UserService is what the auth flow needs from credential logic.
type UserService interface {
	Register(ctx context.Context, username, password string) (dom.User, error)
	ValidateCredentials(ctx context.Context, username, password string) (dom.User, error)
}

// AuthHandler drives the signup, login and logout flows.
type AuthHandler struct {
	sessions  SessionStore
	users     UserService
	cookieTTL time.Duration
	secure    bool
}

// NewAuthHandler returns a new AuthHandler. cookieTTL should match the
// session store window so the cookie and the server-side record expire
// together.
func NewAuthHandler(sessions SessionStore, users UserService, cookieTTL time.Duration, secure bool) *AuthHandler {
	return &AuthHandler{sessions: sessions, users: users, cookieTTL: cookieTTL, secure: secure}
}

// SignupForm renders the signup page for GET /signup.
func (h *AuthHandler) SignupForm(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", gin.H{"Error": c.Query("error")})
}

// SubmitUser handles POST /submitUser: validate, hash, create user,
// establish session, redirect to the members page.
func (h *AuthHandler) SubmitUser(c *gin.Context) {
	var f dto.SignupForm
	_ = c.ShouldBind(&f)

	in, msgs := validation.Signup(f.Username, f.Password)
	if msgs != nil {
		redirectWithError(c, "/signup", strings.Join(msgs, ", "))
		return
	}

	user, err := h.users.Register(c.Request.Context(), in.Username, in.Password)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			redirectWithError(c, "/signup", "Username is already taken")
			return
		}
		log.Printf("signup: create user: %v (request_id=%s)", err, c.GetString("request_id"))
		redirectWithError(c, "/signup", "Unable to create user")
		return
	}

	h.establishSession(c, user.Username)
}

// LoginForm renders the login page for GET /login.
func (h *AuthHandler) LoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"Error": c.Query("error")})
}

// LoggingIn handles POST /loggingin: validate, verify credentials, establish
// or refresh the session, redirect to the members page.
func (h *AuthHandler) LoggingIn(c *gin.Context) {
	var f dto.LoginForm
	_ = c.ShouldBind(&f)

	in, msgs := validation.Login(f.Username, f.Password)
	if msgs != nil {
		redirectWithError(c, "/login", loginFailedMessage)
		return
	}

	user, err := h.users.ValidateCredentials(c.Request.Context(), in.Username, in.Password)
	if err != nil {
		if !errors.Is(err, service.ErrInvalidCredentials) {
			log.Printf("login: validate credentials: %v (request_id=%s)", err, c.GetString("request_id"))
		}
		redirectWithError(c, "/login", loginFailedMessage)
		return
	}

	// Sliding TTL: a successful login on an existing session keeps the
	// session ID and re-arms its window instead of minting a new record.
	sess := auth.Session{Authenticated: true, Username: user.Username}
	if id, cerr := c.Cookie(auth.SessionCookieName); cerr == nil && id != "" {
		if existing, gerr := h.sessions.Get(c.Request.Context(), id); gerr == nil && existing != nil {
			if serr := h.sessions.Save(c.Request.Context(), id, sess); serr == nil {
				h.setSessionCookie(c, id)
				c.Redirect(http.StatusSeeOther, "/members")
				return
			}
		}
	}

	h.establishSession(c, user.Username)
}

// Logout handles GET /logout: destroy the server-side session, clear the
// cookie, redirect to the landing page.
func (h *AuthHandler) Logout(c *gin.Context) {
	if id, err := c.Cookie(auth.SessionCookieName); err == nil && id != "" {
		if derr := h.sessions.Delete(c.Request.Context(), id); derr != nil {
			log.Printf("logout: delete session: %v (request_id=%s)", derr, c.GetString("request_id"))
		}
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.SessionCookieName, "", -1, "/", "", h.secure, true)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *AuthHandler) establishSession(c *gin.Context, username string) {
	id, err := h.sessions.Create(c.Request.Context(), auth.Session{
		Authenticated: true,
		Username:      username,
	})
	if err != nil {
		log.Printf("establish session: %v (request_id=%s)", err, c.GetString("request_id"))
		c.String(http.StatusInternalServerError, "Unable to establish session.")
		return
	}
	h.setSessionCookie(c, id)
	c.Redirect(http.StatusSeeOther, "/members")
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, id string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.SessionCookieName, id, int(h.cookieTTL.Seconds()), "/", "", h.secure, true)
}

func redirectWithError(c *gin.Context, path, msg string) {
	c.Redirect(http.StatusSeeOther, path+"?error="+url.QueryEscape(msg))
}
