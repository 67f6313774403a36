package handlers

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/snipr-io/snipr/app/dto"
	"github.com/snipr-io/snipr/app/middleware"
	businessflow "github.com/snipr-io/snipr/business_flow"
)

// RedirectHandlerInterface defines the contract for the public redirect handler
type RedirectHandlerInterface interface {
	Redirect(c fiber.Ctx) error
}

// RedirectHandler serves the public short link redirect endpoint
type RedirectHandler struct {
	redirectFlow     businessflow.RedirectFlow
	errorRedirectURL string
}

// NewRedirectHandler creates a new redirect handler
func NewRedirectHandler(redirectFlow businessflow.RedirectFlow, errorRedirectURL string) *RedirectHandler {
	return &RedirectHandler{
		redirectFlow:     redirectFlow,
		errorRedirectURL: errorRedirectURL,
	}
}

// Redirect handles GET /:shortCode
func (h *RedirectHandler) Redirect(c fiber.Ctx) error {
	code := c.Params("shortCode")

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	metadata.Referer = c.Get("Referer")
	metadata.SetRequestID(c.Get("X-Request-ID"))

	target, err := h.redirectFlow.Resolve(h.createRequestContext(c), code, metadata)
	if err != nil {
		switch {
		case businessflow.IsURLNotFound(err):
			middleware.RecordRedirect("miss")
			return c.Redirect().Status(fiber.StatusMovedPermanently).To(h.errorRedirectURL)
		case businessflow.IsURLExpired(err):
			middleware.RecordRedirect("expired")
			return c.Redirect().Status(fiber.StatusMovedPermanently).To(h.errorRedirectURL)
		}

		log.Println("Redirect failed", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorBody{Error: "Failed to redirect"})
	}

	middleware.RecordRedirect("hit")
	return c.Redirect().Status(fiber.StatusMovedPermanently).To(target)
}

func (h *RedirectHandler) createRequestContext(c fiber.Ctx) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	ctx = context.WithValue(ctx, "request_id", c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, "ip_address", c.IP())
	ctx = context.WithValue(ctx, "endpoint", "/:shortCode")
	ctx = context.WithValue(ctx, "cancel_func", cancel) // Store cancel function for cleanup
	return ctx
}
