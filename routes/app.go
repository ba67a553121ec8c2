package routes

import (
	"os"
	"time"

	"octofit/middleware"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"
)

// AppOptions carries what the HTTP layer needs from configuration.
type AppOptions struct {
	BaseURL        string
	RequestTimeout time.Duration
	CORSOrigins    []string
	RateLimitMax   int
	RateLimitStore fiber.Storage
	AccessLog      bool
}

// NewApp builds the fiber application with middleware and all routes mounted.
func NewApp(db *gorm.DB, opts AppOptions) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "octofit-tracker",
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ReadTimeout:  opts.RequestTimeout,
		WriteTimeout: opts.RequestTimeout,
		BodyLimit:    1 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	if opts.AccessLog {
		app.Use(logger.New(logger.Config{
			Format: "[${time}] ${status} - ${latency} ${method} ${path} ${locals:requestid}\n",
			Output: os.Stdout,
		}))
	}

	cors := middleware.DefaultCORSConfig()
	if len(opts.CORSOrigins) > 0 {
		cors.AllowedOrigins = opts.CORSOrigins
	}
	app.Use(middleware.CORS(cors))
	app.Use(middleware.RateLimiter(opts.RateLimitMax, opts.RateLimitStore))

	SetupRoutes(app, db, opts.BaseURL)
	return app
}
