package inventory

import (
	"context"
	"strings"

	"github.com/alvimrfg/sistema-socio-40graus/internal/apperror"
	"github.com/alvimrfg/sistema-socio-40graus/internal/calendar"
	"github.com/alvimrfg/sistema-socio-40graus/internal/logger"
)

type Service interface {
	List(ctx context.Context) ([]Accommodation, error)
	Get(ctx context.Context, name string) (*Accommodation, error)
	Create(ctx context.Context, req CreateAccommodationRequest) (*Accommodation, error)
	UpdateQuantity(ctx context.Context, name string, req UpdateQuantityRequest) (*Accommodation, error)
	Availability(ctx context.Context, name string, iv calendar.Interval) (*Availability, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
	}
}

func (s *service) List(ctx context.Context) ([]Accommodation, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, name string) (*Accommodation, error) {
	return s.repo.GetByType(ctx, name)
}

func (s *service) Create(ctx context.Context, req CreateAccommodationRequest) (*Accommodation, error) {
	name := strings.TrimSpace(req.Type)
	if name == "" {
		return nil, apperror.Validation("accommodation type is required")
	}
	if req.TotalQuantity < 0 {
		return nil, apperror.Validation("total quantity must not be negative")
	}

	a, err := s.repo.Create(ctx, name, req.TotalQuantity)
	if err != nil {
		return nil, err
	}

	logger.Info("accommodation type created", "accommodation_type", a.Type, "total_quantity", a.TotalQuantity)
	return a, nil
}

// UpdateQuantity changes the unit count of a type. Lowering it below the
// number of units already confirmed for some night is allowed; those
// bookings stand and the type simply reports no free units there.
func (s *service) UpdateQuantity(ctx context.Context, name string, req UpdateQuantityRequest) (*Accommodation, error) {
	if req.TotalQuantity < 0 {
		return nil, apperror.Validation("total quantity must not be negative")
	}

	a, err := s.repo.UpdateQuantity(ctx, name, req.TotalQuantity)
	if err != nil {
		return nil, err
	}

	logger.Info("accommodation quantity updated", "accommodation_type", a.Type, "total_quantity", a.TotalQuantity)
	return a, nil
}

func (s *service) Availability(ctx context.Context, name string, iv calendar.Interval) (*Availability, error) {
	a, err := s.repo.GetByType(ctx, name)
	if err != nil {
		return nil, err
	}

	free, err := s.repo.FreeUnits(ctx, name, iv)
	if err != nil {
		return nil, err
	}

	return &Availability{
		Type:          a.Type,
		StartDate:     iv.Start.Format(calendar.DateLayout),
		EndDate:       iv.End.Format(calendar.DateLayout),
		TotalQuantity: a.TotalQuantity,
		FreeUnits:     free,
	}, nil
}
