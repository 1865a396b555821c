package webserver

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Wildboar1/IERP-Website-sub000/src/portal/auth"
	"github.com/Wildboar1/IERP-Website-sub000/src/portal/config"
	"github.com/Wildboar1/IERP-Website-sub000/src/portal/store"
)

func New(cfg config.Config, db *gorm.DB, rdb *redis.Client, notifier Notifier) *gin.Engine {
	g := gin.New()
	g.Use(gin.Logger(), gin.Recovery())
	attachRoutes(g, cfg, db, rdb, notifier)
	return g
}

func attachRoutes(r *gin.Engine, cfg config.Config, db *gorm.DB, rdb *redis.Client, notifier Notifier) {
	corsOrigins := []string{"http://localhost:3000"}
	if cfg.FrontendURL != "" {
		corsOrigins = append(corsOrigins, cfg.FrontendURL)
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	st := store.New(db)
	discord := auth.NewDiscord(cfg.DiscordClientID, cfg.DiscordClientSecret, cfg.DiscordRedirectURL)
	authH := NewAuth(rdb, discord, st, []byte(cfg.JWTSecret), cfg.FrontendURL)
	appH := NewApplications(st, notifier)

	v1 := r.Group("/v1")
	{
		v1.GET("/auth/login", authH.Login)
		v1.GET("/auth/callback", authH.Callback)
		v1.GET("/departments", appH.Departments)

		secured := v1.Group("")
		secured.Use(JWTMiddleware([]byte(cfg.JWTSecret)))
		secured.GET("/auth/me", authH.Me)
		secured.POST("/applications", appH.Submit)

		admin := secured.Group("")
		admin.Use(AdminMiddleware(st))
		admin.GET("/applications", appH.List)
		admin.GET("/applications/:id", appH.Get)
		admin.POST("/applications/:id/review", appH.Review)
		admin.POST("/applications/reset", appH.Reset)
	}
}
