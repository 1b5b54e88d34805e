// @title Memories API
// @version 1.0
// @description Posts, likes and comments backed by MongoDB.
// @host localhost:5000
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "memories-server/docs"

	"memories-server/bootstrap"
	"memories-server/config"
	"memories-server/database"
	"memories-server/internal/controllers"
	"memories-server/internal/repository"
	"memories-server/internal/routes"
	"memories-server/internal/services"
)

func main() {
	cfg := config.LoadConfig()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	log.Printf("config: port=%s db=%s page_size=%d", cfg.Port, cfg.MongoDB, cfg.PageSize)

	client, err := database.ConnectMongo(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("mongo: %v", err)
	}
	defer database.DisconnectMongo(client)

	db := client.Database(cfg.MongoDB)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := bootstrap.EnsurePostIndexes(ctx, db); err != nil {
		log.Fatalf("ensure indexes failed: %v", err)
	}
	cancel()

	var posts repository.PostStore = repository.NewMongoPostRepository(db)
	if cfg.RedisAddr != "" {
		rdb := repository.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer rdb.Close()
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Printf("redis %s unreachable, post cache will fall through: %v", cfg.RedisAddr, err)
		}
		posts = repository.NewCachedPostRepository(posts, rdb, cfg.CacheTTL)
		log.Printf("post cache enabled: redis=%s ttl=%s", cfg.RedisAddr, cfg.CacheTTL)
	}

	users := repository.NewMongoUserRepository(db)

	app := routes.NewApp(routes.Deps{
		Posts:       controllers.NewPostHandler(services.NewPostService(posts, cfg.PageSize), cfg.RequestTimeout),
		Auth:        controllers.NewAuthHandler(services.NewAuthService(users, cfg.JWTSecret, cfg.JWTTTL), cfg.RequestTimeout),
		JWTSecret:   cfg.JWTSecret,
		CORSOrigins: cfg.CORSOrigins,
		AccessLog:   true,
	})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("shutdown signal received")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("server shutdown error: %v", err)
	}
	log.Println("server gracefully stopped")
}
