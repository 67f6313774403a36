package handlers

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/snipr-io/snipr/app/dto"
	"github.com/snipr-io/snipr/app/middleware"
	businessflow "github.com/snipr-io/snipr/business_flow"
	"github.com/snipr-io/snipr/utils"
)

// URLHandlerInterface defines the contract for URL management handlers
type URLHandlerInterface interface {
	Create(c fiber.Ctx) error
	List(c fiber.Ctx) error
	Get(c fiber.Ctx) error
	Update(c fiber.Ctx) error
	Delete(c fiber.Ctx) error
	Analytics(c fiber.Ctx) error
}

// URLHandler handles shortened URL management HTTP requests. Payload
// validation lives in the flows, which carry the exact client-facing
// error messages.
type URLHandler struct {
	shortenFlow    businessflow.ShortenFlow
	managementFlow businessflow.URLManagementFlow
	isProduction   bool
}

// NewURLHandler creates a new URL management handler
func NewURLHandler(shortenFlow businessflow.ShortenFlow, managementFlow businessflow.URLManagementFlow, isProduction bool) *URLHandler {
	return &URLHandler{
		shortenFlow:    shortenFlow,
		managementFlow: managementFlow,
		isProduction:   isProduction,
	}
}

func (h *URLHandler) ErrorResponse(c fiber.Ctx, statusCode int, message string, details string) error {
	body := dto.ErrorBody{Error: message}
	if !h.isProduction {
		body.Details = details
	}
	return c.Status(statusCode).JSON(body)
}

// Create handles POST /api/urls
func (h *URLHandler) Create(c fiber.Ctx) error {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Access token required", "")
	}

	var req dto.CreateURLRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	metadata.SetRequestID(c.Get("X-Request-ID"))

	result, err := h.shortenFlow.CreateURL(h.createRequestContext(c, "/api/urls"), userID, &req, metadata)
	if err != nil {
		switch {
		case businessflow.IsOriginalURLRequired(err):
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Original URL is required", "")
		case businessflow.IsInvalidURL(err):
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid URL format", "")
		case businessflow.IsInvalidCustomCode(err):
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Short code must be between 3 and 20 characters", "")
		case businessflow.IsShortCodeTaken(err):
			return h.ErrorResponse(c, fiber.StatusBadRequest, "This short code is already taken", "")
		case businessflow.IsCodeGenerationExhausted(err):
			return h.ErrorResponse(c, fiber.StatusServiceUnavailable, "Failed to create shortened URL", "")
		}

		log.Println("Create URL failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create shortened URL", err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

// List handles GET /api/urls
func (h *URLHandler) List(c fiber.Ctx) error {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Access token required", "")
	}

	query := businessflow.ListURLsQuery{
		Page:   queryInt(c, "page", utils.DefaultPage),
		Limit:  queryInt(c, "limit", utils.DefaultURLPageSize),
		SortBy: c.Query("sortBy", "createdAt"),
		Order:  c.Query("order", "desc"),
	}

	result, err := h.managementFlow.ListURLs(h.createRequestContext(c, "/api/urls"), userID, query)
	if err != nil {
		switch {
		case businessflow.IsInvalidPage(err), businessflow.IsInvalidPageSize(err), businessflow.IsInvalidSort(err):
			return h.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), "")
		}

		log.Println("List URLs failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch URLs", err.Error())
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// Get handles GET /api/urls/urls/:id
func (h *URLHandler) Get(c fiber.Ctx) error {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Access token required", "")
	}

	urlID, err := pathID(c)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid URL id", "")
	}

	result, err := h.managementFlow.GetURL(h.createRequestContext(c, "/api/urls/urls/:id"), userID, urlID)
	if err != nil {
		if resp := h.ownershipError(c, err); resp != nil {
			return resp
		}

		log.Println("Get URL failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch URL", err.Error())
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// Update handles PUT /api/urls/urls/:id
func (h *URLHandler) Update(c fiber.Ctx) error {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Access token required", "")
	}

	urlID, err := pathID(c)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid URL id", "")
	}

	var req dto.UpdateURLRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
	}

	result, err := h.managementFlow.UpdateURL(h.createRequestContext(c, "/api/urls/urls/:id"), userID, urlID, &req)
	if err != nil {
		if resp := h.ownershipError(c, err); resp != nil {
			return resp
		}

		log.Println("Update URL failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update URL", err.Error())
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// Delete handles DELETE /api/urls/urls/:id
func (h *URLHandler) Delete(c fiber.Ctx) error {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Access token required", "")
	}

	urlID, err := pathID(c)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid URL id", "")
	}

	if err := h.managementFlow.DeleteURL(h.createRequestContext(c, "/api/urls/urls/:id"), userID, urlID); err != nil {
		if resp := h.ownershipError(c, err); resp != nil {
			return resp
		}

		log.Println("Delete URL failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete URL", err.Error())
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Analytics handles GET /api/urls/urls/:id/analytics
func (h *URLHandler) Analytics(c fiber.Ctx) error {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Access token required", "")
	}

	urlID, err := pathID(c)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid URL id", "")
	}

	query := businessflow.ListAnalyticsQuery{
		Page:  queryInt(c, "page", utils.DefaultPage),
		Limit: queryInt(c, "limit", utils.DefaultAnalyticsPageSize),
	}

	result, err := h.managementFlow.ListAnalytics(h.createRequestContext(c, "/api/urls/urls/:id/analytics"), userID, urlID, query)
	if err != nil {
		switch {
		case businessflow.IsInvalidPage(err), businessflow.IsInvalidPageSize(err):
			return h.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), "")
		}
		if resp := h.ownershipError(c, err); resp != nil {
			return resp
		}

		log.Println("Fetch analytics failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch analytics", err.Error())
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// ownershipError maps not-found and foreign-owner errors, returning nil
// for anything else.
func (h *URLHandler) ownershipError(c fiber.Ctx, err error) error {
	if businessflow.IsURLNotFound(err) {
		return h.ErrorResponse(c, fiber.StatusNotFound, "URL not found", "")
	}
	if businessflow.IsForbidden(err) {
		return h.ErrorResponse(c, fiber.StatusForbidden, "Forbidden", "")
	}
	return nil
}

// createRequestContext creates a context with request-scoped values for observability and timeout
func (h *URLHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	ctx = context.WithValue(ctx, "request_id", c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, "ip_address", c.IP())
	ctx = context.WithValue(ctx, "endpoint", endpoint)
	ctx = context.WithValue(ctx, "cancel_func", cancel) // Store cancel function for cleanup
	return ctx
}

func pathID(c fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func queryInt(c fiber.Ctx, key string, defaultValue int) int {
	raw := c.Query(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return v
}
