package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/alvimrfg/sistema-socio-40graus/internal/allowance"
	"github.com/alvimrfg/sistema-socio-40graus/internal/apperror"
	"github.com/alvimrfg/sistema-socio-40graus/internal/calendar"
	"github.com/alvimrfg/sistema-socio-40graus/internal/db"
	"github.com/alvimrfg/sistema-socio-40graus/internal/inventory"
	"github.com/alvimrfg/sistema-socio-40graus/internal/logger"
	"github.com/alvimrfg/sistema-socio-40graus/internal/member"
	"github.com/alvimrfg/sistema-socio-40graus/internal/metrics"
)

type Service interface {
	// CreateBooking books one unit eagerly as confirmed and debits its nights.
	CreateBooking(ctx context.Context, memberID int, accommodationType string, iv calendar.Interval) (*Booking, error)
	// CreatePendingBooking records a request that holds neither days nor a unit until confirmed.
	CreatePendingBooking(ctx context.Context, memberID int, accommodationType string, iv calendar.Interval) (*Booking, error)
	SetStatus(ctx context.Context, bookingID int, status Status) (*Booking, error)

	FreeUnits(ctx context.Context, accommodationType string, iv calendar.Interval) (int, error)
	MemberBalance(ctx context.Context, memberID int) (allowance.Balance, error)

	GetBooking(ctx context.Context, id int) (*BookingWithDetails, error)
	ListBookings(ctx context.Context) ([]BookingWithDetails, error)
	ListMemberBookings(ctx context.Context, memberID int) ([]BookingWithDetails, error)
}

// MemberLookup resolves the member a notification goes to.
type MemberLookup interface {
	GetByID(ctx context.Context, id int) (*member.Member, error)
}

// Notifier is told about committed confirmations and cancellations.
type Notifier interface {
	SendBookingConfirmation(ctx context.Context, to, name, accommodationType string, iv calendar.Interval) error
	SendBookingCancellation(ctx context.Context, to, name, accommodationType string, iv calendar.Interval) error
}

type service struct {
	tx        db.TxRunner
	reader    sqlx.QueryerContext
	repo      Repository
	allowance allowance.Ledger
	inventory inventory.Ledger
	members   MemberLookup
	notifier  Notifier
}

// NewService wires the booking engine. reader serves the lock-free reads;
// notifier may be nil.
func NewService(
	tx db.TxRunner,
	reader sqlx.QueryerContext,
	repo Repository,
	allowanceLedger allowance.Ledger,
	inventoryLedger inventory.Ledger,
	members MemberLookup,
	notifier Notifier,
) Service {
	return &service{
		tx:        tx,
		reader:    reader,
		repo:      repo,
		allowance: allowanceLedger,
		inventory: inventoryLedger,
		members:   members,
		notifier:  notifier,
	}
}

func (s *service) CreateBooking(ctx context.Context, memberID int, accommodationType string, iv calendar.Interval) (*Booking, error) {
	iv = iv.Dates()
	if !iv.Valid() {
		return nil, s.reject("create", memberID, accommodationType, invalidInterval(iv))
	}
	days := iv.Days()

	var created *Booking
	err := s.tx.WithTx(ctx, func(q sqlx.ExtContext) error {
		created = nil

		bal, err := s.allowance.Lock(ctx, q, memberID)
		if err != nil {
			return err
		}
		if !bal.CanDebit(days) {
			return insufficient(bal, days)
		}

		if _, err := s.inventory.Lock(ctx, q, accommodationType); err != nil {
			return err
		}
		if err := s.requireFreeUnit(ctx, q, accommodationType, iv, 0); err != nil {
			return err
		}

		b := &Booking{
			MemberID:          memberID,
			AccommodationType: accommodationType,
			StartDate:         iv.Start,
			EndDate:           iv.End,
			Status:            StatusConfirmed,
		}
		if err := s.repo.Insert(ctx, q, b); err != nil {
			return err
		}
		if err := s.allowance.Debit(ctx, q, memberID, days); err != nil {
			return err
		}

		created = b
		return nil
	})
	if err != nil {
		return nil, s.reject("create", memberID, accommodationType, err)
	}

	metrics.RecordBooking(string(created.Status), accommodationType)
	metrics.RecordDebit(days)
	logger.Info("booking created",
		"booking_id", created.ID,
		"member_id", memberID,
		"accommodation_type", accommodationType,
		"interval", iv.String(),
		"days", days,
	)

	s.notify(ctx, created, StatusConfirmed)
	return created, nil
}

func (s *service) CreatePendingBooking(ctx context.Context, memberID int, accommodationType string, iv calendar.Interval) (*Booking, error) {
	iv = iv.Dates()
	if !iv.Valid() {
		return nil, s.reject("create", memberID, accommodationType, invalidInterval(iv))
	}

	var created *Booking
	err := s.tx.WithTx(ctx, func(q sqlx.ExtContext) error {
		created = nil

		if _, err := s.allowance.Balance(ctx, q, memberID); err != nil {
			return err
		}

		b := &Booking{
			MemberID:          memberID,
			AccommodationType: accommodationType,
			StartDate:         iv.Start,
			EndDate:           iv.End,
			Status:            StatusPending,
		}
		if err := s.repo.Insert(ctx, q, b); err != nil {
			return err
		}

		created = b
		return nil
	})
	if err != nil {
		return nil, s.reject("create", memberID, accommodationType, err)
	}

	metrics.RecordBooking(string(created.Status), accommodationType)
	logger.Info("pending booking created",
		"booking_id", created.ID,
		"member_id", memberID,
		"accommodation_type", accommodationType,
		"interval", iv.String(),
	)
	return created, nil
}

// SetStatus moves a booking to status, applying the allowance effect of the
// transition in the same transaction as the status write. Writing the
// current status again is a no-op.
func (s *service) SetStatus(ctx context.Context, bookingID int, status Status) (*Booking, error) {
	if !status.Valid() {
		return nil, apperror.Validation("unknown booking status %q", status)
	}

	var (
		result   *Booking
		from     Status
		debited  int
		credited int
	)
	err := s.tx.WithTx(ctx, func(q sqlx.ExtContext) error {
		result, debited, credited = nil, 0, 0

		b, err := s.repo.GetForUpdate(ctx, q, bookingID)
		if err != nil {
			return err
		}
		from = b.Status

		if b.Status == status {
			result = b
			return nil
		}
		if b.Status == StatusCancelled {
			return fmt.Errorf("%w: booking %d is cancelled", apperror.ErrInvalidTransition, bookingID)
		}

		days := b.Days()
		switch {
		case b.Status.HoldsDebit():
			if err := s.allowance.Credit(ctx, q, b.MemberID, days); err != nil {
				return err
			}
			credited = days

		case status.HoldsDebit():
			bal, err := s.allowance.Lock(ctx, q, b.MemberID)
			if err != nil {
				return err
			}
			if !bal.CanDebit(days) {
				return insufficient(bal, days)
			}
			if _, err := s.inventory.Lock(ctx, q, b.AccommodationType); err != nil {
				return err
			}
			if err := s.requireFreeUnit(ctx, q, b.AccommodationType, b.Interval(), b.ID); err != nil {
				return err
			}
			if err := s.allowance.Debit(ctx, q, b.MemberID, days); err != nil {
				return err
			}
			debited = days
		}

		if err := s.repo.UpdateStatus(ctx, q, b.ID, status); err != nil {
			return err
		}

		b.Status = status
		result = b
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperror.ErrNotFound) {
			logger.Error("booking status change failed",
				"booking_id", bookingID,
				"from", string(from),
				"to", string(status),
				"error", err.Error(),
			)
		}
		metrics.RecordRejection(rejectionReason(err))
		return nil, err
	}

	if from == status {
		return result, nil
	}

	metrics.RecordTransition(string(from), string(status))
	if debited > 0 {
		metrics.RecordDebit(debited)
	}
	if credited > 0 {
		metrics.RecordCredit(credited)
	}
	logger.Info("booking status changed",
		"booking_id", result.ID,
		"member_id", result.MemberID,
		"accommodation_type", result.AccommodationType,
		"from", string(from),
		"to", string(status),
		"debited_days", debited,
		"credited_days", credited,
	)

	switch {
	case status == StatusConfirmed:
		s.notify(ctx, result, StatusConfirmed)
	case status == StatusCancelled && from == StatusConfirmed:
		s.notify(ctx, result, StatusCancelled)
	}
	return result, nil
}

// FreeUnits reads without locks; the answer may be stale by the time a
// booking is attempted. An unknown type has no free units.
func (s *service) FreeUnits(ctx context.Context, accommodationType string, iv calendar.Interval) (int, error) {
	iv = iv.Dates()
	if !iv.Valid() {
		return 0, invalidInterval(iv)
	}
	return s.inventory.FreeUnits(ctx, s.reader, accommodationType, iv, 0)
}

func (s *service) MemberBalance(ctx context.Context, memberID int) (allowance.Balance, error) {
	return s.allowance.Balance(ctx, s.reader, memberID)
}

func (s *service) GetBooking(ctx context.Context, id int) (*BookingWithDetails, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListBookings(ctx context.Context) ([]BookingWithDetails, error) {
	return s.repo.List(ctx)
}

func (s *service) ListMemberBookings(ctx context.Context, memberID int) ([]BookingWithDetails, error) {
	if _, err := s.members.GetByID(ctx, memberID); err != nil {
		return nil, err
	}
	return s.repo.ListByMember(ctx, memberID)
}

func (s *service) requireFreeUnit(ctx context.Context, q sqlx.QueryerContext, accommodationType string, iv calendar.Interval, excludeBookingID int) error {
	free, err := s.inventory.FreeUnits(ctx, q, accommodationType, iv, excludeBookingID)
	if err != nil {
		return err
	}
	if free < 1 {
		return fmt.Errorf("%w: %s has no free unit for %s", apperror.ErrNoCapacity, accommodationType, iv)
	}
	return nil
}

func (s *service) reject(op string, memberID int, accommodationType string, err error) error {
	metrics.RecordRejection(rejectionReason(err))
	logger.Info("booking rejected",
		"op", op,
		"member_id", memberID,
		"accommodation_type", accommodationType,
		"reason", err.Error(),
	)
	return err
}

// notify runs after commit. A failed notification never changes the booking outcome.
func (s *service) notify(ctx context.Context, b *Booking, status Status) {
	if s.notifier == nil || s.members == nil {
		return
	}

	m, err := s.members.GetByID(ctx, b.MemberID)
	if err != nil {
		logger.Warn("booking notification skipped", "booking_id", b.ID, "error", err.Error())
		return
	}

	if status == StatusConfirmed {
		err = s.notifier.SendBookingConfirmation(ctx, m.Email, m.FullName, b.AccommodationType, b.Interval())
	} else {
		err = s.notifier.SendBookingCancellation(ctx, m.Email, m.FullName, b.AccommodationType, b.Interval())
	}
	if err != nil {
		logger.Warn("booking notification failed", "booking_id", b.ID, "error", err.Error())
	}
}

func invalidInterval(iv calendar.Interval) error {
	return fmt.Errorf("%w: %s", apperror.ErrInvalidInterval, iv)
}

func insufficient(bal allowance.Balance, days int) error {
	return fmt.Errorf("%w: member %d has %d days available, %d requested",
		apperror.ErrInsufficientBalance, bal.MemberID, bal.Available, days)
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, apperror.ErrInvalidInterval):
		return "invalid_interval"
	case errors.Is(err, apperror.ErrNotFound):
		return "not_found"
	case errors.Is(err, apperror.ErrInsufficientBalance):
		return "insufficient_balance"
	case errors.Is(err, apperror.ErrNoCapacity):
		return "no_capacity"
	case errors.Is(err, apperror.ErrConflict):
		return "conflict"
	case errors.Is(err, apperror.ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, apperror.ErrValidation):
		return "validation"
	default:
		return "storage"
	}
}
