package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/blog-service/internal/domain"
	"github.com/spec-kit/blog-service/internal/mail"
	"github.com/spec-kit/blog-service/internal/repository"
	apperrors "github.com/spec-kit/blog-service/pkg/util"
)

const (
	voucherCharset  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	voucherValidity = 7 * 24 * time.Hour
)

// EventService coordinates event creation and voucher issuance.
type EventService struct {
	events repository.EventRepository
	mailer mail.Enqueuer
	logger *zap.Logger
	now    func() time.Time
}

// NewEventService builds the service.
func NewEventService(events repository.EventRepository, mailer mail.Enqueuer, logger *zap.Logger) *EventService {
	return &EventService{events: events, mailer: mailer, logger: logger, now: time.Now}
}

// CreateEvent persists a new event owned by the caller.
func (s *EventService) CreateEvent(ctx context.Context, userID, title, description string, date time.Time, maxQuantity int) (*domain.Event, error) {
	event := &domain.Event{
		Title:       title,
		Description: description,
		Date:        date,
		MaxQuantity: maxQuantity,
		UserID:      userID,
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return event, nil
}

// RequestVoucher issues a voucher against the event. The insert and the
// quantity decrement commit together or not at all; the confirmation email
// is enqueued only after the transaction commits.
func (s *EventService) RequestVoucher(ctx context.Context, eventID, requesterEmail string) (*domain.Voucher, error) {
	code, err := voucherCode()
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	issuedAt := s.now()
	voucher := &domain.Voucher{
		Code:      code,
		StartDate: issuedAt,
		EndDate:   issuedAt.Add(voucherValidity),
		IssuedAt:  issuedAt,
	}

	if err := s.events.IssueVoucher(ctx, eventID, voucher); err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, apperrors.NewNotFound("Event")
		case errors.Is(err, repository.ErrNoVouchersLeft):
			return nil, apperrors.NewConflict("No vouchers available")
		default:
			return nil, apperrors.NewInternalError(err)
		}
	}

	msg := mail.Message{
		To:      requesterEmail,
		Subject: fmt.Sprintf("Your Voucher Code: %s", voucher.Code),
		Body:    fmt.Sprintf("Congratulations! Your voucher code is: %s.", voucher.Code),
	}
	if err := s.mailer.Enqueue(ctx, msg); err != nil {
		s.logger.Warn("voucher email enqueue failed",
			zap.String("event_id", eventID), zap.Error(err))
	}
	return voucher, nil
}

func voucherCode() (string, error) {
	suffix := make([]byte, 6)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(voucherCharset))))
		if err != nil {
			return "", err
		}
		suffix[i] = voucherCharset[n.Int64()]
	}
	return "VOUCHER-" + string(suffix), nil
}
