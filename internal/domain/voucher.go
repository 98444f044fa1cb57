package domain

import "time"

// Voucher is issued against an event inside a single transaction that also
// decrements the event's remaining quantity.
type Voucher struct {
	ID        string
	Code      string
	EventID   string
	StartDate time.Time
	EndDate   time.Time
	IssuedAt  time.Time
	CreatedAt time.Time
}
