package domain

import "time"

// Event is a promotion with a limited voucher budget.
type Event struct {
	ID          string
	Title       string
	Description string
	Date        time.Time
	MaxQuantity int
	UserID      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
