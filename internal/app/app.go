package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "muroom/docs"
	"muroom/internal/config"
	"muroom/internal/handlers"
	"muroom/internal/repositories"
	"muroom/internal/routes"
	"muroom/internal/services"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Database.URI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB: ", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Printf("Failed to disconnect MongoDB: %v", err)
		}
	}()
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal("MongoDB ping failed: ", err)
	}
	log.Printf("***** MongoDB connected. *****")

	db := client.Database(cfg.Database.Name)
	if err := repositories.EnsureIndexes(ctx, db); err != nil {
		log.Fatal("Failed to create indexes: ", err)
	}

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)

	// === Services ===
	authService := services.NewAuthService()
	tokenService := services.NewTokenService(cfg.JWT.Secret)
	emailService := buildEmailService(ctx, cfg)

	accountService := services.NewAccountService(userRepo, authService, tokenService, emailService)
	resetService := services.NewPasswordResetService(userRepo, tokenService, emailService)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(accountService, resetService, tokenService)
	userHandler := handlers.NewUserHandler(accountService)

	// === Gin ===
	router := gin.Default()
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(router, authHandler, userHandler, tokenService)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("*********** Server running on %s ***********", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Server failed: ", err)
	}
}

func buildEmailService(ctx context.Context, cfg *config.Config) services.EmailService {
	switch cfg.Email.Provider {
	case "ses":
		svc, err := services.NewSESEmailService(
			ctx,
			cfg.Email.AWSRegion,
			cfg.Email.AWSAccessKey,
			cfg.Email.AWSSecretKey,
			cfg.Email.FromEmail,
			cfg.Email.ReplyTo,
			cfg.Client.URL,
		)
		if err != nil {
			log.Fatal("Failed to build SES mailer: ", err)
		}
		return svc
	default:
		return services.NewSMTPEmailService(
			cfg.Email.SMTPHost,
			cfg.Email.SMTPPort,
			cfg.Email.SMTPUser,
			cfg.Email.SMTPPassword,
			cfg.Email.FromEmail,
			cfg.Email.ReplyTo,
			cfg.Client.URL,
		)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
