package controllers

import (
	"context"
	"errors"
	"log"
	"time"

	"memories-server/dto"
	"memories-server/internal/services"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Service *services.AuthService
	Timeout time.Duration
}

func NewAuthHandler(svc *services.AuthService, timeout time.Duration) *AuthHandler {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &AuthHandler{Service: svc, Timeout: timeout}
}

// POST /user/signup

// SignUp godoc
// @Summary      Register a user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        data  body      dto.SignUpInput  true  "Registration"
// @Success      201   {object}  dto.AuthResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /user/signup [post]
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var body dto.SignUpInput
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), h.Timeout)
	defer cancel()

	res, err := h.Service.SignUp(ctx, body)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput), errors.Is(err, services.ErrPasswordMismatch):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: err.Error()})
		case errors.Is(err, services.ErrEmailTaken):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Message: "User already exists"})
		default:
			log.Printf("[%s] sign up: %v", requestID(c), err)
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "Something went wrong"})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// POST /user/signin

// SignIn godoc
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        data  body      dto.SignInInput  true  "Credentials"
// @Success      200   {object}  dto.AuthResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /user/signin [post]
func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var body dto.SignInInput
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), h.Timeout)
	defer cancel()

	res, err := h.Service.SignIn(ctx, body)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "Invalid credentials"})
		}
		log.Printf("[%s] sign in: %v", requestID(c), err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "Something went wrong"})
	}
	return c.Status(fiber.StatusOK).JSON(res)
}
