package report

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alvimrfg/sistema-socio-40graus/internal/calendar"
	"github.com/alvimrfg/sistema-socio-40graus/internal/logger"
	"github.com/alvimrfg/sistema-socio-40graus/internal/metrics"
)

type Service interface {
	CalendarFeed(ctx context.Context, window *calendar.Interval) ([]CalendarEvent, error)
	Dashboard(ctx context.Context) (*Dashboard, error)
	QuotaDistribution(ctx context.Context) ([]QuotaCount, error)
	UpcomingCheckins(ctx context.Context) ([]Checkin, error)
}

// PriceSource yields the yearly price of each quota type.
type PriceSource interface {
	QuotaPrices(ctx context.Context) (map[string]decimal.Decimal, error)
}

type Options struct {
	OccupancyWindowDays  int
	UpcomingCheckinsDays int
	CacheTTL             time.Duration
	Now                  func() time.Time
}

type service struct {
	repo   Repository
	prices PriceSource
	cache  Cache
	opts   Options
}

// NewService builds the projections. cache may be nil, in which case every
// call reads the database.
func NewService(repo Repository, prices PriceSource, cache Cache, opts Options) Service {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.OccupancyWindowDays <= 0 {
		opts.OccupancyWindowDays = 30
	}
	if opts.UpcomingCheckinsDays < 0 {
		opts.UpcomingCheckinsDays = 7
	}
	return &service{
		repo:   repo,
		prices: prices,
		cache:  cache,
		opts:   opts,
	}
}

func (s *service) today() time.Time {
	return calendar.Day(s.opts.Now())
}

func (s *service) CalendarFeed(ctx context.Context, window *calendar.Interval) ([]CalendarEvent, error) {
	key := "calendar:all"
	if window != nil {
		key = "calendar:" + window.Start.Format(calendar.DateLayout) + ":" + window.End.Format(calendar.DateLayout)
	}

	return cached(ctx, s, "calendar", key, func() ([]CalendarEvent, error) {
		events, err := s.repo.CalendarEvents(ctx, window)
		if err != nil {
			return nil, err
		}
		for i := range events {
			events[i].Title = fmt.Sprintf("%s (%s)", events[i].MemberName, events[i].AccommodationType)
		}
		return events, nil
	})
}

// Dashboard revenue counts paid members at the current quota prices. Occupancy
// is the share of unit-nights in [today, today+window) held by confirmed bookings.
func (s *service) Dashboard(ctx context.Context) (*Dashboard, error) {
	window := calendar.Window(s.today(), s.opts.OccupancyWindowDays)
	key := "dashboard:" + window.Start.Format(calendar.DateLayout)

	return cached(ctx, s, "dashboard", key, func() (*Dashboard, error) {
		total, err := s.repo.CountMembers(ctx)
		if err != nil {
			return nil, err
		}

		revenue, err := s.revenue(ctx)
		if err != nil {
			return nil, err
		}

		units, err := s.repo.TotalUnits(ctx)
		if err != nil {
			return nil, err
		}
		nights, err := s.repo.ConfirmedNights(ctx, window)
		if err != nil {
			return nil, err
		}

		return &Dashboard{
			TotalMembers:  total,
			TotalRevenue:  revenue,
			OccupancyRate: occupancyRate(nights, units, window.Days()),
			WindowStart:   window.Start.Format(calendar.DateLayout),
			WindowEnd:     window.End.Format(calendar.DateLayout),
		}, nil
	})
}

func (s *service) revenue(ctx context.Context) (decimal.Decimal, error) {
	paid, err := s.repo.PaidMembersByQuota(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	prices, err := s.prices.QuotaPrices(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	revenue := decimal.Zero
	for _, q := range paid {
		price, ok := prices[q.QuotaType]
		if !ok {
			logger.Warn("no price for quota type", "quota_type", q.QuotaType)
			continue
		}
		revenue = revenue.Add(price.Mul(decimal.NewFromInt(int64(q.Members))))
	}
	return revenue, nil
}

func occupancyRate(nights, units, windowDays int) float64 {
	capacity := units * windowDays
	if capacity <= 0 {
		return 0
	}
	rate := float64(nights) / float64(capacity) * 100
	return math.Round(rate*100) / 100
}

func (s *service) QuotaDistribution(ctx context.Context) ([]QuotaCount, error) {
	return cached(ctx, s, "quota_distribution", "quota-distribution", func() ([]QuotaCount, error) {
		return s.repo.MembersByQuota(ctx)
	})
}

func (s *service) UpcomingCheckins(ctx context.Context) ([]Checkin, error) {
	from := s.today()
	to := from.AddDate(0, 0, s.opts.UpcomingCheckinsDays)
	key := "checkins:" + from.Format(calendar.DateLayout)

	return cached(ctx, s, "upcoming_checkins", key, func() ([]Checkin, error) {
		return s.repo.CheckinsBetween(ctx, from, to)
	})
}

// cached serves key from the snapshot cache, loading and storing it on a miss.
// A failing cache is logged and bypassed.
func cached[T any](ctx context.Context, s *service, report, key string, load func() (T, error)) (T, error) {
	if s.cache == nil || s.opts.CacheTTL <= 0 {
		return load()
	}

	var snapshot T
	hit, err := s.cache.Get(ctx, key, &snapshot)
	if err != nil {
		logger.Warn("report cache read failed", "report", report, "error", err.Error())
	}
	if hit {
		metrics.RecordReportCache(report, true)
		return snapshot, nil
	}
	metrics.RecordReportCache(report, false)

	value, err := load()
	if err != nil {
		return value, err
	}
	if err := s.cache.Set(ctx, key, value, s.opts.CacheTTL); err != nil {
		logger.Warn("report cache write failed", "report", report, "error", err.Error())
	}
	return value, nil
}
