package settings

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/alvimrfg/sistema-socio-40graus/internal/apperror"
	"github.com/alvimrfg/sistema-socio-40graus/internal/logger"
	"github.com/alvimrfg/sistema-socio-40graus/internal/member"
)

type Service interface {
	List(ctx context.Context) ([]Setting, error)
	Update(ctx context.Context, key, value string) (*Setting, error)
	// QuotaPrices returns the yearly price per quota type, keyed by quota type.
	QuotaPrices(ctx context.Context) (map[string]decimal.Decimal, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]Setting, error) {
	return s.repo.List(ctx)
}

// Update only rewrites existing keys. Every setting is a money amount.
func (s *service) Update(ctx context.Context, key, value string) (*Setting, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return nil, apperror.Validation("setting %q must be a number, got %q", key, value)
	}
	if amount.IsNegative() {
		return nil, apperror.Validation("setting %q must not be negative", key)
	}

	if _, err := s.repo.Get(ctx, key); err != nil {
		return nil, err
	}

	normalized := amount.StringFixed(2)
	if err := s.repo.Update(ctx, key, normalized); err != nil {
		return nil, err
	}

	logger.Info("setting updated", "key", key, "value", normalized)
	return &Setting{Key: key, Value: normalized}, nil
}

func (s *service) QuotaPrices(ctx context.Context) (map[string]decimal.Decimal, error) {
	keys := map[string]string{
		member.QuotaSimple:  KeySimpleQuotaPrice,
		member.QuotaPremium: KeyPremiumQuotaPrice,
	}

	prices := make(map[string]decimal.Decimal, len(keys))
	for quota, key := range keys {
		st, err := s.repo.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		price, err := decimal.NewFromString(st.Value)
		if err != nil {
			logger.Warn("setting is not a number, using zero", "key", key, "value", st.Value)
			price = decimal.Zero
		}
		prices[quota] = price
	}
	return prices, nil
}
