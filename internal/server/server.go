// Package server contains the HTTP handlers and routing for the API.
package server

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"menagerie/internal/cache"
	"menagerie/internal/config"
	"menagerie/internal/database"
	"menagerie/internal/middleware"
	"menagerie/internal/models"
	"menagerie/internal/observability"
	"menagerie/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	tokenIssuer   = "menagerie-api"
	tokenAudience = "menagerie-client"
)

// Server holds all dependencies and provides handlers.
type Server struct {
	config       *config.Config
	db           *gorm.DB
	redis        *redis.Client
	userRepo     repository.UserRepository
	animalRepo   repository.AnimalRepository
	tagRepo      repository.TagRepository
	commentRepo  repository.CommentRepository
	favoriteRepo repository.FavoriteRepository
	followRepo   repository.FollowRepository
}

// NewServer creates a server instance, connecting to the database and redis.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}

	redisClient := cache.New(cfg.RedisURL)

	return NewServerWithDB(cfg, db, redisClient), nil
}

// NewServerWithDB wires a server around an existing store handle.
// Tests use it with an in-memory database and no redis.
func NewServerWithDB(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	return &Server{
		config:       cfg,
		db:           db,
		redis:        redisClient,
		userRepo:     repository.NewUserRepository(db),
		animalRepo:   repository.NewAnimalRepository(db),
		tagRepo:      repository.NewTagRepository(db),
		commentRepo:  repository.NewCommentRepository(db),
		favoriteRepo: repository.NewFavoriteRepository(db),
		followRepo:   repository.NewFollowRepository(db),
	}
}

// SetupMiddleware configures middleware for the Fiber app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(requestid.New())
	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())
	app.Use(observability.TraceRequests())

	// Global rate limit, 100 requests per minute per IP
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(models.ErrorEnvelope{
				Errors: models.ErrorBody{Body: []string{"too many requests, please try again later"}},
			})
		},
	}))

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))
}

// SetupRoutes configures all routes for the application.
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Get("/", s.HealthCheck)

	// Registration and login
	users := api.Group("/users")
	users.Post("/", middleware.RateLimit(s.redis, 3, 10*time.Minute, "register"), s.Register)
	users.Post("/login", middleware.RateLimit(s.redis, 10, 5*time.Minute, "login"), s.Login)

	// Current user
	user := api.Group("/user", s.AuthRequired())
	user.Get("/", s.GetCurrentUser)
	user.Put("/", s.UpdateCurrentUser)
	user.Delete("/", s.DeleteCurrentUser)

	// Animals. Specific routes before the generic /:slug ones.
	animals := api.Group("/animals")
	animals.Get("/feed", s.AuthRequired(), s.GetFeed)
	animals.Get("/", s.ListAnimals)
	animals.Post("/", s.AuthRequired(), middleware.RateLimit(s.redis, 5, time.Minute, "create_animal"), s.CreateAnimal)
	animals.Get("/:slug/comments", s.ListComments)
	animals.Post("/:slug/comments", s.AuthRequired(), middleware.RateLimit(s.redis, 10, time.Minute, "create_comment"), s.CreateComment)
	animals.Delete("/:slug/comments/:id", s.AuthRequired(), s.DeleteComment)
	animals.Post("/:slug/favorite", s.AuthRequired(), s.AddFavorite)
	animals.Delete("/:slug/favorite", s.AuthRequired(), s.RemoveFavorite)
	animals.Get("/:slug", s.GetAnimal)
	animals.Patch("/:slug", s.AuthRequired(), s.UpdateAnimal)
	animals.Put("/:slug", s.AuthRequired(), s.UpdateAnimal)
	animals.Delete("/:slug", s.AuthRequired(), s.DeleteAnimal)

	// Tags
	api.Get("/tags", s.GetTags)

	// Profiles and follows
	profiles := api.Group("/profiles")
	profiles.Get("/:username", s.GetProfile)
	profiles.Post("/:username/follow", s.AuthRequired(), s.FollowUser)
	profiles.Delete("/:username/follow", s.AuthRequired(), s.UnfollowUser)
}

// HealthCheck handles health check requests, probing the store and redis.
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"status": "API is running",
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// AuthRequired returns the authentication middleware. The verified user
// ID ends up in c.Locals("userID").
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := s.parseBearer(c)
		if !ok {
			return models.RespondWithError(c,
				models.NewUnauthorizedError("authorization required"))
		}
		c.Locals("userID", userID)
		return c.Next()
	}
}

// optionalUserID extracts the viewer identity when a valid token is
// present but does not enforce one. Public reads use it for the
// viewer-relative favorited/following flags.
func (s *Server) optionalUserID(c *fiber.Ctx) (uint, bool) {
	if uid, ok := c.Locals("userID").(uint); ok {
		return uid, true
	}
	return s.parseBearer(c)
}

func (s *Server) parseBearer(c *fiber.Ctx) (uint, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return 0, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return 0, false
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "invalid signing method")
		}
		return []byte(s.config.JWTSecret), nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(tokenAudience),
	)
	if err != nil || !token.Valid {
		return 0, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, false
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(userID), true
}

// NewApp builds the Fiber app with all middleware and routes mounted.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "Menagerie API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("unhandled error: %v", err)
			return models.RespondWithError(c, models.NewInternalError(err))
		},
	})

	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// Shutdown closes the store and redis connections.
func (s *Server) Shutdown(ctx context.Context) error {
	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
