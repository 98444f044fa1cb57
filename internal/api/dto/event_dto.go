package dto

import (
	"time"

	"github.com/spec-kit/blog-service/internal/domain"
)

// EventRequest payload for creating an event.
type EventRequest struct {
	Title       string    `json:"title" validate:"required,min=5,max=100"`
	Description string    `json:"description" validate:"required,min=10,max=500"`
	Date        time.Time `json:"date" validate:"required"`
	MaxQuantity int       `json:"maxQuantity" validate:"gte=0"`
}

// EventResponse is the client-facing projection of an event.
type EventResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	MaxQuantity int       `json:"maxQuantity"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewEventResponse maps a domain event onto the response shape.
func NewEventResponse(event *domain.Event) EventResponse {
	return EventResponse{
		ID:          event.ID,
		Title:       event.Title,
		Description: event.Description,
		Date:        event.Date,
		MaxQuantity: event.MaxQuantity,
		CreatedAt:   event.CreatedAt,
	}
}

// VoucherResponse is the client-facing projection of an issued voucher.
type VoucherResponse struct {
	Code      string    `json:"code"`
	EventID   string    `json:"eventId"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	IssuedAt  time.Time `json:"issuedAt"`
}

// NewVoucherResponse maps a domain voucher onto the response shape.
func NewVoucherResponse(voucher *domain.Voucher) VoucherResponse {
	return VoucherResponse{
		Code:      voucher.Code,
		EventID:   voucher.EventID,
		StartDate: voucher.StartDate,
		EndDate:   voucher.EndDate,
		IssuedAt:  voucher.IssuedAt,
	}
}
