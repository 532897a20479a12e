package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"IMDB-backend/docs"
	"IMDB-backend/internal/catalog/genres"
	"IMDB-backend/internal/catalog/movies"
	"IMDB-backend/internal/platform/auth"
	"IMDB-backend/internal/platform/csrf"
	"IMDB-backend/internal/platform/db"
	"IMDB-backend/internal/platform/middleware"
)

// @title                      IMDB admin API
// @version                    1.0
// @description                Movie catalog administration (list / create / edit / details / delete).
// @BasePath                   /api/v1
// @securityDefinitions.apikey Bearer
// @in                         header
// @name                       Authorization
func main() {
	// 設定読み込み
	cfg, err := db.LoadConfig(db.ConfigFilePath)
	if err != nil {
		log.Fatalf("[ERROR] %v", err)
	}
	mode := cfg.Mode
	log.Printf("[INFO] mode:%s version:%s\n", mode, cfg.Version)

	conn, err := db.Connect(cfg.DB)
	if err != nil {
		log.Fatalf("[ERROR] %v", err)
	}
	defer conn.Close()

	log.Printf("[INFO] connected to DB: %s", cfg.DB.DBName)

	if mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), middleware.RequestID())
	r.MaxMultipartMemory = cfg.Server.MultipartMemoryMB << 20
	_ = r.SetTrustedProxies(nil)

	if mode == "dev" {
		// CORS（開発中のみ必要）
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowOrigins,
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", csrf.HeaderName, middleware.RequestIDHeader},
			ExposeHeaders:    []string{"Content-Length", "Location", middleware.RequestIDHeader},
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowCredentials: true,
		}))
	}

	// ヘルス
	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	// API ドキュメント
	docs.SwaggerInfo.Version = cfg.Version
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authSvc := auth.NewService(conn, []byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL)
	guard := csrf.NewGuard(cfg.UseTLS())

	// /api/v1
	api := r.Group("/api/v1")
	admin := api.Group("", auth.RequireAuth(authSvc.Secret()), auth.RequireRole(auth.RoleAdmin))

	stop := make(chan struct{})
	var loginGuards []gin.HandlerFunc
	if cfg.RateLimit.Enabled {
		rl := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		go rl.Run(stop)
		loginGuards = append(loginGuards, rl.Middleware())
	}

	genreSvc := genres.NewService(conn)
	genres.RegisterRoutes(api, genreSvc)
	movies.RegisterRoutes(api, admin,
		movies.NewService(movies.NewStore(conn), genreSvc, movies.DefaultPosterPolicy()),
		guard.Verify())
	guard.RegisterRoutes(api)
	auth.RegisterRoutes(api, admin.Group("", guard.Verify()), authSvc, loginGuards...)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "no such route"}})
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		var err error
		if cfg.UseTLS() {
			// TLS設定
			certFile := fmt.Sprintf("config/tls/%s/%s", mode, cfg.Certificate.Cert)
			keyFile := fmt.Sprintf("config/tls/%s/%s", mode, cfg.Certificate.Key)
			log.Printf("[INFO] listening on https://0.0.0.0%s", cfg.Server.Addr)
			err = srv.ListenAndServeTLS(certFile, keyFile)
		} else {
			log.Printf("[WARN] certificate not configured, listening on http://0.0.0.0%s", cfg.Server.Addr)
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("[INFO] shutting down...")
	close(stop)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}
