package router

import (
	"context"
	"net/http"
	"time"

	"github.com/muhammadbalawal/MenuPlus-sub000/internal/analysis"
	"github.com/muhammadbalawal/MenuPlus-sub000/internal/auth"
	"github.com/muhammadbalawal/MenuPlus-sub000/internal/config"
	"github.com/muhammadbalawal/MenuPlus-sub000/internal/menu"
	"github.com/muhammadbalawal/MenuPlus-sub000/internal/middleware"
	"github.com/muhammadbalawal/MenuPlus-sub000/internal/ocr"
	"github.com/muhammadbalawal/MenuPlus-sub000/internal/profile"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deps are the handlers and shared services the HTTP API is assembled from.
// Scans may be nil when OCR is not deployed.
type Deps struct {
	Server config.ServerConfig
	Logger *zap.Logger
	Tokens middleware.TokenValidator

	Auth     *auth.Handler
	Profile  *profile.Handler
	Analysis *analysis.Handler
	Menus    *menu.Handler
	Scans    *ocr.Handler

	// Ping reports database health for GET /health. Optional.
	Ping func(ctx context.Context) error
}

func New(d Deps) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(d.Logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     d.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", health(d.Ping))

	// ───────────────────────── AUTH ─────────────────────────
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", d.Auth.Register)
		authGroup.POST("/login", d.Auth.Login)
		authGroup.GET("/me", middleware.AuthMiddleware(d.Tokens), d.Auth.Me)
	}

	// ───────────────────────── PUBLIC ─────────────────────────
	r.GET("/languages", d.Profile.ListLanguages)

	// ───────────────────────── USER ROUTES ─────────────────────────
	api := r.Group("")
	api.Use(middleware.AuthMiddleware(d.Tokens))
	{
		api.GET("/profile", d.Profile.Get)
		api.PUT("/profile", d.Profile.Save)

		api.POST("/analyses", d.Analysis.Analyze)

		api.POST("/menus", d.Menus.Save)
		api.GET("/menus", d.Menus.List)
		api.GET("/menus/:id", d.Menus.Get)
		api.DELETE("/menus/:id", d.Menus.Delete)

		if d.Scans != nil {
			api.POST("/scans", d.Scans.Upload)
			api.GET("/scans/:id", d.Scans.Get)
			api.POST("/scans/:id/retry", d.Scans.Retry)
		}
	}

	// ───────────────────────── ADMIN ROUTES ─────────────────────────
	admin := r.Group("/admin")
	admin.Use(
		middleware.AuthMiddleware(d.Tokens),
		middleware.RequireRole(auth.RoleAdmin),
	)
	{
		admin.POST("/languages", d.Profile.AddLanguage)
	}

	return r
}

func health(ping func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "unreachable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
