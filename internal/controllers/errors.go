package controllers

import (
	"errors"
	"log"

	"memories-server/dto"
	"memories-server/internal/repository"
	"memories-server/internal/services"

	"github.com/gofiber/fiber/v2"
)

const (
	msgNoPost          = "No post with that id"
	msgUnauthenticated = "Unauthenticated"
	msgDeleted         = "Post deleted successfully"
)

// writePostError maps service errors to responses. Unknown errors are store
// failures and get the caller's fallback status.
func writePostError(c *fiber.Ctx, op string, err error, fallback int) error {
	switch {
	case errors.Is(err, services.ErrInvalidID), errors.Is(err, repository.ErrPostNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: msgNoPost})
	case errors.Is(err, services.ErrUnauthenticated):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: msgUnauthenticated})
	default:
		log.Printf("[%s] %s: %v", requestID(c), op, err)
		return c.Status(fallback).JSON(dto.ErrorResponse{Message: err.Error()})
	}
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return "-"
}

// ErrorHandler renders errors returned from handlers and middleware with
// the same envelope as handler written errors.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= fiber.StatusInternalServerError {
		log.Printf("[%s] %s %s: %v", requestID(c), c.Method(), c.Path(), err)
	}
	return c.Status(code).JSON(dto.ErrorResponse{Message: err.Error()})
}
