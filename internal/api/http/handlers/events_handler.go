package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/blog-service/internal/api/dto"
	"github.com/spec-kit/blog-service/internal/auth"
	"github.com/spec-kit/blog-service/internal/service"
	apperrors "github.com/spec-kit/blog-service/pkg/util"
)

// EventsHandler exposes event and voucher endpoints.
type EventsHandler struct {
	events *service.EventService
}

// NewEventsHandler constructs handler.
func NewEventsHandler(eventService *service.EventService) *EventsHandler {
	return &EventsHandler{events: eventService}
}

// Create handles POST /api/events.
func (h *EventsHandler) Create(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Authentication failed!")
	}

	var req dto.EventRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if err := dto.Validate(&req); err != nil {
		return err
	}

	event, err := h.events.CreateEvent(c.Context(), claims.UserID, req.Title, req.Description, req.Date, req.MaxQuantity)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Event created successfully",
		"event":   dto.NewEventResponse(event),
	})
}

// RequestVoucher handles POST /api/events/:eventId/vouchers.
func (h *EventsHandler) RequestVoucher(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Authentication failed!")
	}
	eventID := c.Params("eventId")
	if eventID == "" {
		return apperrors.NewValidationError("\"eventId\" is required")
	}

	voucher, err := h.events.RequestVoucher(c.Context(), eventID, claims.Email)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Voucher requested successfully",
		"voucher": dto.NewVoucherResponse(voucher),
	})
}
