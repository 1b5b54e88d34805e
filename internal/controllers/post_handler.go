package controllers

import (
	"context"
	"time"

	"memories-server/dto"
	mid "memories-server/internal/middleware"
	"memories-server/internal/services"
	"memories-server/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type PostHandler struct {
	Service *services.PostService
	Timeout time.Duration
}

func NewPostHandler(svc *services.PostService, timeout time.Duration) *PostHandler {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &PostHandler{Service: svc, Timeout: timeout}
}

func (h *PostHandler) ctx(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), h.Timeout)
}

// GET /posts/:id

// GetPost godoc
// @Summary      Get a post
// @Tags         posts
// @Produce      json
// @Param        id   path      string  true  "Post ID (hex)"
// @Success      200  {object}  models.Post
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /posts/{id} [get]
func (h *PostHandler) GetPost(c *fiber.Ctx) error {
	ctx, cancel := h.ctx(c)
	defer cancel()

	post, err := h.Service.GetPost(ctx, c.Params("id"))
	if err != nil {
		return writePostError(c, "get post", err, fiber.StatusNotFound)
	}
	return c.Status(fiber.StatusOK).JSON(post)
}

// GET /posts?page=N

// GetPosts godoc
// @Summary      List posts
// @Description  Newest first, one page at a time.
// @Tags         posts
// @Produce      json
// @Param        page  query     int  false  "1-based page number"  default(1)
// @Success      200   {object}  dto.PostsPage
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /posts [get]
func (h *PostHandler) GetPosts(c *fiber.Ctx) error {
	ctx, cancel := h.ctx(c)
	defer cancel()

	page := int64(c.QueryInt("page", 1))
	res, err := h.Service.ListPosts(ctx, page)
	if err != nil {
		return writePostError(c, "list posts", err, fiber.StatusNotFound)
	}
	return c.Status(fiber.StatusOK).JSON(res)
}

// GET /posts/search?searchQuery=&tags=

// GetPostsBySearch godoc
// @Summary      Search posts
// @Description  Title substring (case-insensitive) OR any of the comma separated tags.
// @Tags         posts
// @Produce      json
// @Param        searchQuery  query     string  false  "Title substring"
// @Param        tags         query     string  false  "Comma separated tags"
// @Success      200          {object}  dto.SearchResult
// @Failure      404          {object}  dto.ErrorResponse
// @Router       /posts/search [get]
func (h *PostHandler) GetPostsBySearch(c *fiber.Ctx) error {
	ctx, cancel := h.ctx(c)
	defer cancel()

	res, err := h.Service.SearchPosts(ctx, c.Query("searchQuery"), c.Query("tags"))
	if err != nil {
		return writePostError(c, "search posts", err, fiber.StatusNotFound)
	}
	return c.Status(fiber.StatusOK).JSON(res)
}

// POST /posts

// CreatePost godoc
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        data  body      dto.PostInput  true  "Post payload"
// @Success      201   {object}  models.Post
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /posts [post]
func (h *PostHandler) CreatePost(c *fiber.Ctx) error {
	userID, err := mid.UIDFromLocals(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: msgUnauthenticated})
	}

	var body dto.PostInput
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid body"})
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	post, err := h.Service.CreatePost(ctx, userID, body)
	if err != nil {
		return writePostError(c, "create post", err, fiber.StatusConflict)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// PATCH /posts/:id

// UpdatePost godoc
// @Summary      Update a post
// @Description  Only the fields present in the body are changed.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Post ID (hex)"
// @Param        data  body      dto.UpdatePostInput  true  "Fields to change"
// @Success      200   {object}  models.Post
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /posts/{id} [patch]
func (h *PostHandler) UpdatePost(c *fiber.Ctx) error {
	if !utils.IsValidOid(c.Params("id")) {
		return writePostError(c, "update post", services.ErrInvalidID, fiber.StatusNotFound)
	}

	var body dto.UpdatePostInput
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid body"})
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	post, err := h.Service.UpdatePost(ctx, c.Params("id"), body)
	if err != nil {
		return writePostError(c, "update post", err, fiber.StatusInternalServerError)
	}
	return c.Status(fiber.StatusOK).JSON(post)
}

// DELETE /posts/:id

// DeletePost godoc
// @Summary      Delete a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post ID (hex)"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /posts/{id} [delete]
func (h *PostHandler) DeletePost(c *fiber.Ctx) error {
	ctx, cancel := h.ctx(c)
	defer cancel()

	if err := h.Service.DeletePost(ctx, c.Params("id")); err != nil {
		return writePostError(c, "delete post", err, fiber.StatusInternalServerError)
	}
	return c.Status(fiber.StatusOK).JSON(dto.MessageResponse{Message: msgDeleted})
}

// PATCH /posts/:id/like

// LikePost godoc
// @Summary      Toggle like
// @Description  Adds the caller to the post's likers, or removes them if already present.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post ID (hex)"
// @Success      200  {object}  models.Post
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /posts/{id}/like [patch]
func (h *PostHandler) LikePost(c *fiber.Ctx) error {
	userID, _ := mid.UIDFromLocals(c)

	ctx, cancel := h.ctx(c)
	defer cancel()

	post, err := h.Service.LikePost(ctx, c.Params("id"), userID)
	if err != nil {
		return writePostError(c, "like post", err, fiber.StatusInternalServerError)
	}
	return c.Status(fiber.StatusOK).JSON(post)
}

// POST /posts/:id/comment

// CommentPost godoc
// @Summary      Add a comment
// @Description  Open to anonymous callers.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        id    path      string            true  "Post ID (hex)"
// @Param        data  body      dto.CommentInput  true  "Comment"
// @Success      200   {object}  models.Post
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /posts/{id}/comment [post]
func (h *PostHandler) CommentPost(c *fiber.Ctx) error {
	if !utils.IsValidOid(c.Params("id")) {
		return writePostError(c, "comment post", services.ErrInvalidID, fiber.StatusNotFound)
	}

	var body dto.CommentInput
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid body"})
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	post, err := h.Service.CommentPost(ctx, c.Params("id"), body.Value)
	if err != nil {
		return writePostError(c, "comment post", err, fiber.StatusInternalServerError)
	}
	return c.Status(fiber.StatusOK).JSON(post)
}
