package routes

import (
	"memories-server/internal/controllers"

	"github.com/gofiber/fiber/v2"
)

func SetupAuth(app fiber.Router, h *controllers.AuthHandler) {
	user := app.Group("/user")

	// curl -X POST http://127.0.0.1:5000/user/signup \
	//   -H "Content-Type: application/json" \
	//   -d '{"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com","password":"pw","confirmPassword":"pw"}'
	user.Post("/signup", h.SignUp)

	// curl -X POST http://127.0.0.1:5000/user/signin \
	//   -H "Content-Type: application/json" \
	//   -d '{"email":"ada@example.com","password":"pw"}'
	user.Post("/signin", h.SignIn)
}
