package member

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alvimrfg/sistema-socio-40graus/internal/apperror"
	"github.com/alvimrfg/sistema-socio-40graus/internal/calendar"
	"github.com/alvimrfg/sistema-socio-40graus/internal/logger"
)

type Service interface {
	Create(ctx context.Context, req CreateMemberRequest) (*Member, error)
	Get(ctx context.Context, id int) (*Member, error)
	List(ctx context.Context, search string) ([]Member, error)
	Update(ctx context.Context, id int, req UpdateMemberRequest) (*Member, error)
	UpdatePaymentStatus(ctx context.Context, id int, status string) error
	Delete(ctx context.Context, id int) error

	ListDependents(ctx context.Context, memberID int) ([]Dependent, error)
	AddDependent(ctx context.Context, memberID int, req AddDependentRequest) (*Dependent, error)
	RemoveDependent(ctx context.Context, memberID, dependentID int) error

	// Plans lists the configured usage plans by name.
	Plans() []Plan
}

type service struct {
	repo  Repository
	plans PlanTable
}

func NewService(repo Repository, plans PlanTable) Service {
	return &service{
		repo:  repo,
		plans: plans,
	}
}

func (s *service) Plans() []Plan {
	return s.plans.List()
}

func (s *service) Create(ctx context.Context, req CreateMemberRequest) (*Member, error) {
	taxID, err := NormalizeTaxID(req.TaxID)
	if err != nil {
		return nil, err
	}
	if err := validateQuota(req.QuotaType); err != nil {
		return nil, err
	}
	allowance, err := s.plans.AllowanceFor(req.UsagePlan)
	if err != nil {
		return nil, err
	}
	birthDate, err := parseOptionalDate(req.BirthDate)
	if err != nil {
		return nil, err
	}
	start, err := calendar.ParseDate(req.StartDate)
	if err != nil {
		return nil, err
	}

	status := req.PaymentStatus
	if status == "" {
		status = PaymentPending
	}
	if err := validatePaymentStatus(status); err != nil {
		return nil, err
	}

	m := &Member{
		FullName:      strings.TrimSpace(req.FullName),
		TaxID:         taxID,
		Email:         normalizeEmail(req.Email),
		Phone:         DigitsOnly(req.Phone),
		BirthDate:     birthDate,
		Address:       strings.TrimSpace(req.Address),
		QuotaType:     req.QuotaType,
		UsagePlan:     req.UsagePlan,
		AllowanceDays: allowance,
		StartDate:     start,
		EndDate:       start.Add(MembershipLength),
		PaymentStatus: status,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		logger.Error("member create failed", "tax_id", taxID, "error", err.Error())
		return nil, err
	}

	logger.Info("member created", "member_id", m.ID, "usage_plan", m.UsagePlan, "allowance_days", m.AllowanceDays)
	return m, nil
}

func (s *service) Get(ctx context.Context, id int) (*Member, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, search string) ([]Member, error) {
	return s.repo.List(ctx, strings.TrimSpace(search))
}

// Update re-reads the allowance from the plan table. Days already used stay
// as they are, even when the new plan grants fewer.
func (s *service) Update(ctx context.Context, id int, req UpdateMemberRequest) (*Member, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	taxID, err := NormalizeTaxID(req.TaxID)
	if err != nil {
		return nil, err
	}
	if err := validateQuota(req.QuotaType); err != nil {
		return nil, err
	}
	if err := validatePaymentStatus(req.PaymentStatus); err != nil {
		return nil, err
	}
	allowance, err := s.plans.AllowanceFor(req.UsagePlan)
	if err != nil {
		return nil, err
	}
	birthDate, err := parseOptionalDate(req.BirthDate)
	if err != nil {
		return nil, err
	}

	updated := *current
	updated.FullName = strings.TrimSpace(req.FullName)
	updated.TaxID = taxID
	updated.Email = normalizeEmail(req.Email)
	updated.Phone = DigitsOnly(req.Phone)
	updated.BirthDate = birthDate
	updated.Address = strings.TrimSpace(req.Address)
	updated.QuotaType = req.QuotaType
	updated.UsagePlan = req.UsagePlan
	updated.AllowanceDays = allowance
	updated.PaymentStatus = req.PaymentStatus

	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, err
	}

	if current.UsagePlan != updated.UsagePlan {
		logger.Info("member plan changed",
			"member_id", id,
			"from", current.UsagePlan,
			"to", updated.UsagePlan,
			"allowance_days", updated.AllowanceDays,
			"used_days", updated.UsedDays,
		)
	}
	return &updated, nil
}

func (s *service) UpdatePaymentStatus(ctx context.Context, id int, status string) error {
	if err := validatePaymentStatus(status); err != nil {
		return err
	}
	return s.repo.UpdatePaymentStatus(ctx, id, status)
}

// Delete refuses members that own bookings so booking history is kept.
func (s *service) Delete(ctx context.Context, id int) error {
	has, err := s.repo.HasBookings(ctx, id)
	if err != nil {
		return err
	}
	if has {
		return fmt.Errorf("%w: member %d owns bookings", apperror.ErrConflict, id)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info("member deleted", "member_id", id)
	return nil
}

func (s *service) ListDependents(ctx context.Context, memberID int) ([]Dependent, error) {
	if _, err := s.repo.GetByID(ctx, memberID); err != nil {
		return nil, err
	}
	return s.repo.ListDependents(ctx, memberID)
}

func (s *service) AddDependent(ctx context.Context, memberID int, req AddDependentRequest) (*Dependent, error) {
	name := strings.TrimSpace(req.FullName)
	if name == "" {
		return nil, apperror.Validation("dependent name is required")
	}
	return s.repo.AddDependent(ctx, memberID, name)
}

func (s *service) RemoveDependent(ctx context.Context, memberID, dependentID int) error {
	return s.repo.DeleteDependent(ctx, memberID, dependentID)
}

// NormalizeTaxID strips punctuation from a CPF and requires 11 digits.
func NormalizeTaxID(raw string) (string, error) {
	digits := DigitsOnly(raw)
	if digits == "" {
		return "", apperror.Validation("tax id is required")
	}
	if len(digits) != 11 {
		return "", apperror.Validation("tax id must have 11 digits")
	}
	return digits, nil
}

func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateQuota(quota string) error {
	switch quota {
	case QuotaSimple, QuotaPremium:
		return nil
	}
	return apperror.Validation("unknown quota type %q", quota)
}

func validatePaymentStatus(status string) error {
	switch status {
	case PaymentPaid, PaymentPending, PaymentOverdue:
		return nil
	}
	return apperror.Validation("unknown payment status %q", status)
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := calendar.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
