package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/blog-service/internal/domain"
	"github.com/spec-kit/blog-service/internal/repository"
	apperrors "github.com/spec-kit/blog-service/pkg/util"
)

type fakeEventRepo struct {
	events   map[string]*domain.Event
	vouchers []*domain.Voucher
	nextID   int
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: make(map[string]*domain.Event)}
}

func (r *fakeEventRepo) Create(_ context.Context, event *domain.Event) error {
	r.nextID++
	event.ID = fmt.Sprintf("event-%d", r.nextID)
	event.CreatedAt = time.Now()
	event.UpdatedAt = event.CreatedAt
	stored := *event
	r.events[event.ID] = &stored
	return nil
}

func (r *fakeEventRepo) GetByID(_ context.Context, id string) (*domain.Event, error) {
	event, ok := r.events[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *event
	return &copied, nil
}

func (r *fakeEventRepo) IssueVoucher(_ context.Context, eventID string, voucher *domain.Voucher) error {
	event, ok := r.events[eventID]
	if !ok {
		return pgx.ErrNoRows
	}
	if event.MaxQuantity <= 0 {
		return repository.ErrNoVouchersLeft
	}
	event.MaxQuantity--
	voucher.ID = fmt.Sprintf("voucher-%d", len(r.vouchers)+1)
	voucher.EventID = eventID
	stored := *voucher
	r.vouchers = append(r.vouchers, &stored)
	return nil
}

func TestRequestVoucher(t *testing.T) {
	t.Parallel()

	repo := newFakeEventRepo()
	mailer := &fakeMailer{}
	svc := NewEventService(repo, mailer, zap.NewNop())
	ctx := context.Background()

	event, err := svc.CreateEvent(ctx, "user-1", "Launch party", "Come celebrate with us", time.Now().Add(48*time.Hour), 1)
	require.NoError(t, err)

	voucher, err := svc.RequestVoucher(ctx, event.ID, "a@x.com")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(voucher.Code, "VOUCHER-"))
	assert.Len(t, voucher.Code, len("VOUCHER-")+6)
	assert.Equal(t, voucher.StartDate.Add(7*24*time.Hour), voucher.EndDate)
	assert.Equal(t, 0, repo.events[event.ID].MaxQuantity)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "a@x.com", mailer.sent[0].To)
	assert.Contains(t, mailer.sent[0].Subject, voucher.Code)
}

func TestRequestVoucher_SoldOut(t *testing.T) {
	t.Parallel()

	repo := newFakeEventRepo()
	svc := NewEventService(repo, &fakeMailer{}, zap.NewNop())
	ctx := context.Background()

	event, err := svc.CreateEvent(ctx, "user-1", "Launch party", "Come celebrate with us", time.Now().Add(48*time.Hour), 0)
	require.NoError(t, err)

	_, err = svc.RequestVoucher(ctx, event.ID, "a@x.com")
	de := apperrors.ToDomainError(err)
	require.NotNil(t, de)
	assert.Equal(t, 400, de.HTTPStatus)
	assert.Equal(t, "No vouchers available", de.Message)
}

func TestRequestVoucher_EventNotFound(t *testing.T) {
	t.Parallel()

	svc := NewEventService(newFakeEventRepo(), &fakeMailer{}, zap.NewNop())

	_, err := svc.RequestVoucher(context.Background(), "missing", "a@x.com")
	de := apperrors.ToDomainError(err)
	require.NotNil(t, de)
	assert.Equal(t, 404, de.HTTPStatus)
}
