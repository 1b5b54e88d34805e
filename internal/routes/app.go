package routes

import (
	"memories-server/internal/controllers"
	"memories-server/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/google/uuid"
)

type Deps struct {
	Posts       *controllers.PostHandler
	Auth        *controllers.AuthHandler
	JWTSecret   string
	CORSOrigins string
	// AccessLog toggles the request logger; tests leave it off.
	AccessLog bool
}

// NewApp builds the Fiber app with middleware and every route mounted.
func NewApp(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "memories-server",
		ErrorHandler: controllers.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	if d.AccessLog {
		app.Use(logger.New(logger.Config{
			Format: "${time} [${locals:requestid}] ${status} ${method} ${path} ${latency}\n",
		}))
	}
	origins := d.CORSOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	app.Get("/docs/*", swagger.HandlerDefault)
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendString("ok") })

	app.Use(middleware.Authenticate(d.JWTSecret))

	if d.Auth != nil {
		SetupAuth(app, d.Auth)
	}
	SetupRoutesPost(app, d.Posts)

	return app
}
