package routes

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mesto-backend/mesto/internal/auth"
	"github.com/mesto-backend/mesto/internal/card"
	"github.com/mesto-backend/mesto/internal/config"
	"github.com/mesto-backend/mesto/internal/httperr"
	"github.com/mesto-backend/mesto/internal/middleware"
	"github.com/mesto-backend/mesto/internal/token"
	"github.com/mesto-backend/mesto/internal/user"
)

// Deps aggregates shared dependencies required to wire routes. A nil DB
// selects the in-memory repositories, a nil Cache disables rate limiting.
type Deps struct {
	Cfg    config.Config
	DB     *mongo.Database
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	if !d.Cfg.IsDev() && d.DB == nil {
		return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(helmet.New())
	if len(d.Cfg.CORSOrigins) > 0 {
		// Credentialed CORS needs an explicit origin list; a wildcard here
		// would defeat the cookie-based auth.
		app.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Join(d.Cfg.CORSOrigins, ","),
			AllowCredentials: true,
			MaxAge:           30,
		}))
	}
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(middleware.Audit(d.Logger))
	if d.Cache != nil {
		app.Use(middleware.RateLimit(d.Cache, d.Cfg.RateLimitMax, d.Cfg.RateLimitWindow))
	}

	RegisterHealthRoutes(app, d)

	// Repositories: Mongo-backed in deployment, in-memory for tests and
	// database-less development.
	var userRepo user.Repository
	var cardRepo card.Repository
	if d.DB != nil {
		mongoUsers := user.NewMongoRepository(d.DB)
		if err := mongoUsers.EnsureIndexes(context.Background()); err != nil {
			return err
		}
		userRepo = mongoUsers
		cardRepo = card.NewMongoRepository(d.DB)
	} else {
		userRepo = user.NewMemoryRepository()
		cardRepo = card.NewMemoryRepository()
	}

	// Services and handlers
	tokens := token.NewService(d.Cfg.JWTSecret, d.Cfg.TokenTTL)
	userSvc := user.NewService(userRepo, d.Cfg.BcryptCost)
	cardSvc := card.NewService(cardRepo)
	userHandler := user.NewHandler(userSvc, tokens)
	cardHandler := card.NewHandler(cardSvc)

	// Public routes
	app.Post("/signup", userHandler.Signup)
	app.Post("/signin", userHandler.Signin)

	// Protected routes
	protected := app.Group("", auth.Middleware(tokens))
	RegisterUserRoutes(protected, userHandler)
	RegisterCardRoutes(protected, cardHandler)

	// Everything else is a typed 404.
	app.Use(func(c *fiber.Ctx) error {
		return httperr.NotFound("requested resource not found")
	})

	return nil
}
