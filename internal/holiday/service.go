package holiday

import (
	"context"
	"strings"

	"github.com/alvimrfg/sistema-socio-40graus/internal/apperror"
	"github.com/alvimrfg/sistema-socio-40graus/internal/calendar"
	"github.com/alvimrfg/sistema-socio-40graus/internal/logger"
)

type Service interface {
	List(ctx context.Context) ([]Holiday, error)
	Create(ctx context.Context, req CreateHolidayRequest) (*Holiday, error)
	Delete(ctx context.Context, id int) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]Holiday, error) {
	return s.repo.List(ctx)
}

func (s *service) Create(ctx context.Context, req CreateHolidayRequest) (*Holiday, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperror.Validation("holiday name is required")
	}

	start, err := calendar.ParseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := calendar.ParseDate(req.EndDate)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, apperror.Validation("holiday ends before it starts")
	}

	typ := req.Type
	if typ == "" {
		typ = TypeRegular
	}
	if typ != TypeSpecial && typ != TypeRegular {
		return nil, apperror.Validation("unknown holiday type %q", typ)
	}

	h := &Holiday{Name: name, StartDate: start, EndDate: end, Type: typ}
	if err := s.repo.Create(ctx, h); err != nil {
		return nil, err
	}

	logger.Info("holiday created", "holiday_id", h.ID, "name", h.Name, "type", h.Type)
	return h, nil
}

func (s *service) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info("holiday deleted", "holiday_id", id)
	return nil
}
