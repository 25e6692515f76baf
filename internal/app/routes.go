package app

import (
	"Members/internal/auth"
	"Members/internal/config"
	"Members/internal/handlers"
	"Members/internal/repo"
	"Members/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// maxConcurrentHashes caps in-flight bcrypt computations so expensive
// hashing cannot be driven into a denial of service under load.
const maxConcurrentHashes = 4

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, db *pgxpool.Pool, rdb *redis.Client) {
	r.GET("/health", healthHandler(cfg))

	sessionTTL := cfg.Session.TTL.Duration()
	sessions := auth.NewStore(rdb, sessionTTL)
	hasher := auth.NewHasher(maxConcurrentHashes)
	userRepo := repo.NewPGUserRepo(db)
	userSvc := service.NewUserService(userRepo, hasher)
	h := handlers.NewAuthHandler(sessions, userSvc, sessionTTL, cfg.Session.CookieSecure)

	r.GET("/", h.Landing)
	r.GET("/signup", h.SignupForm)
	r.POST("/submitUser", h.SubmitUser)
	r.GET("/login", h.LoginForm)
	r.POST("/loggingin", h.LoggingIn)
	r.GET("/logout", h.Logout)
	r.GET("/about", h.About)

	protected := r.Group("", auth.RequireSession(sessions))
	protected.GET("/members", h.Members)

	r.NoRoute(h.NotFound)
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env, "version": cfg.App.Version})
	}
}
