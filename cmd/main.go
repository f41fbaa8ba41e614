package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/alexscarano/QrLinkki/internal/config"
	"github.com/alexscarano/QrLinkki/internal/handler"
	"github.com/alexscarano/QrLinkki/internal/service"
	"github.com/alexscarano/QrLinkki/internal/storage/local"
	"github.com/alexscarano/QrLinkki/internal/storage/postgres"
	"github.com/alexscarano/QrLinkki/internal/storage/s3"
)

func main() {
	// Конфигурация: обязательные параметры и длина JWT-секрета проверяются
	// здесь, до поднятия сервера
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	ctx := context.Background()

	// БД
	db, err := postgres.NewStorage(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to PostgreSQL: %v", err)
	}
	defer db.Close()
	if err := db.Init(ctx); err != nil {
		log.Fatalf("failed to init schema: %v", err)
	}
	log.Println("connected to PostgreSQL")

	// Redis опционален: без него работаем, просто без rate limiting
	var limiter *handler.RateLimiter
	if cfg.RedisURL != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisURL})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Printf("redis ping failed, rate limiting disabled: %v", err)
		} else {
			limiter = handler.NewRateLimiter(rdb, 100, time.Minute)
			log.Println("connected to Redis")
		}
		defer rdb.Close()
	}

	// Хранилище QR-кодов: S3, если настроен, иначе локальная папка
	var qrStore service.QRStore
	if cfg.UseS3() {
		qrStore, err = s3.NewS3Storage(ctx, s3.S3Config{
			Region:          cfg.S3Region,
			Bucket:          cfg.S3Bucket,
			AccessKeyID:     cfg.S3AccessKey,
			SecretAccessKey: cfg.S3SecretKey,
			Endpoint:        cfg.S3Endpoint,
		})
		if err != nil {
			log.Fatalf("failed to init S3 storage: %v", err)
		}
	} else {
		qrStore, err = local.NewLocalStorage(cfg.QRDir)
		if err != nil {
			log.Fatalf("failed to init local qr storage: %v", err)
		}
	}

	// Сервисы
	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	qrService := service.NewQRService(qrStore)
	linkService := service.NewLinkService(db, qrService, cfg.BaseURL)
	userService := service.NewUserService(db, db, qrService, tokenService)

	// Обработчик
	h := handler.NewHandler(userService, linkService, tokenService)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("panic recovered: %v", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}))

	// Настройка CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Location"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Публичные маршруты: аутентификация, регистрация и редирект.
	// Редирект не проходит через проверку токена.
	r.POST("/auth", limiter.Middleware(), h.Login)
	r.POST("/users", limiter.Middleware(), h.Register)
	r.GET("/r/:code", limiter.Middleware(), h.Redirect)

	// Профиль
	users := r.Group("/users")
	{
		users.Use(h.AuthMiddleware())
		users.GET("/me", h.GetProfile)
		users.PUT("/me", h.UpdateProfile)
		users.DELETE("/me", h.DeleteAccount)
	}

	// Ссылки
	links := r.Group("/links")
	{
		links.Use(h.AuthMiddleware())
		links.POST("", h.CreateLink)
		links.GET("", h.ListLinks)
		links.GET("/:code", h.GetLink)
		links.PUT("/:code", h.UpdateLink)
		links.DELETE("/:code", h.DeleteLink)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	// Мягкая остановка
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server shutdown: %v", err)
	}
	log.Println("server stopped")
}
