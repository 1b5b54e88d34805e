package routes

import (
	"memories-server/internal/controllers"
	"memories-server/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutesPost registers /posts. /search must come before /:id.
func SetupRoutesPost(app fiber.Router, h *controllers.PostHandler) {
	posts := app.Group("/posts")

	posts.Get("/search", h.GetPostsBySearch)
	posts.Get("/", h.GetPosts)
	posts.Get("/:id", h.GetPost)

	auth := middleware.RequireAuth()
	posts.Post("/", auth, h.CreatePost)
	posts.Patch("/:id", auth, h.UpdatePost)
	posts.Put("/:id", auth, h.UpdatePost)
	posts.Delete("/:id", auth, h.DeletePost)
	posts.Patch("/:id/like", auth, h.LikePost)
	posts.Post("/:id/comment", h.CommentPost)
}
