package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/kavinraj/scantrack/internal/config"
	"github.com/kavinraj/scantrack/internal/db"
	"github.com/kavinraj/scantrack/internal/handlers"
	"github.com/kavinraj/scantrack/internal/middleware"
	"github.com/kavinraj/scantrack/internal/services"
	"github.com/kavinraj/scantrack/internal/session"
	"github.com/kavinraj/scantrack/internal/storage"
	"github.com/kavinraj/scantrack/internal/store"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()

	// Initialize Fiber
	app := fiber.New()

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	// Connect to MongoDB
	mongoDB := db.ConnectMongoDB(cfg.MongoURI, cfg.MongoDB)
	users := store.NewMongo(mongoDB)

	// Connect to Redis for sessions
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Redis connection failed: %v", err)
	}
	sessions := session.NewRedisStore(redisClient, cfg.SessionTTL)

	// Initialize MinIO for avatars
	avatars, err := storage.NewAvatarStore(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket)
	if err != nil {
		log.Fatalf("MinIO connection failed: %v", err)
	}

	authService := services.NewAuthService(users, []byte(cfg.JWTSecret))
	userService := services.NewUserService(users)

	authHandler := handlers.NewAuthHandler(authService, sessions)
	userHandler := handlers.NewUserHandler(userService, avatars)
	authMW := middleware.NewAuth(sessions, []byte(cfg.JWTSecret))

	handlers.RegisterRoutes(app, authHandler, userHandler, authMW)

	// Start server
	log.Fatal(app.Listen(":" + cfg.Port))
}
