package report

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/alvimrfg/sistema-socio-40graus/internal/apperror"
	"github.com/alvimrfg/sistema-socio-40graus/internal/calendar"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CalendarEvents(ctx context.Context, window *calendar.Interval) ([]CalendarEvent, error) {
	args := m.Called(ctx, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]CalendarEvent), args.Error(1)
}

func (m *MockRepository) CountMembers(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) PaidMembersByQuota(ctx context.Context) ([]QuotaCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]QuotaCount), args.Error(1)
}

func (m *MockRepository) MembersByQuota(ctx context.Context) ([]QuotaCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]QuotaCount), args.Error(1)
}

func (m *MockRepository) TotalUnits(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) ConfirmedNights(ctx context.Context, window calendar.Interval) (int, error) {
	args := m.Called(ctx, window)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) CheckinsBetween(ctx context.Context, from, to time.Time) ([]Checkin, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Checkin), args.Error(1)
}

type staticPrices map[string]decimal.Decimal

func (p staticPrices) QuotaPrices(ctx context.Context) (map[string]decimal.Decimal, error) {
	return p, nil
}

var (
	today    = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock    = func() time.Time { return today.Add(14 * time.Hour) }
	defaults = staticPrices{
		"simple":  decimal.RequireFromString("1400.00"),
		"premium": decimal.RequireFromString("2000.00"),
	}
)

func TestDashboard(t *testing.T) {
	repo := new(MockRepository)
	window := calendar.Window(today, 30)

	repo.On("CountMembers", mock.Anything).Return(4, nil)
	repo.On("PaidMembersByQuota", mock.Anything).Return([]QuotaCount{{"premium", 1}, {"simple", 2}}, nil)
	repo.On("TotalUnits", mock.Anything).Return(5, nil)
	repo.On("ConfirmedNights", mock.Anything, window).Return(15, nil)

	svc := NewService(repo, defaults, nil, Options{OccupancyWindowDays: 30, Now: clock})

	d, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, d.TotalMembers)
	assert.Equal(t, "4800.00", d.TotalRevenue.StringFixed(2))
	// 15 nights of 5 units x 30 days
	assert.Equal(t, 10.0, d.OccupancyRate)
	assert.Equal(t, "2026-01-01", d.WindowStart)
	assert.Equal(t, "2026-01-31", d.WindowEnd)
	repo.AssertExpectations(t)
}

func TestDashboard_NoUnits(t *testing.T) {
	repo := new(MockRepository)
	repo.On("CountMembers", mock.Anything).Return(0, nil)
	repo.On("PaidMembersByQuota", mock.Anything).Return([]QuotaCount{}, nil)
	repo.On("TotalUnits", mock.Anything).Return(0, nil)
	repo.On("ConfirmedNights", mock.Anything, mock.Anything).Return(0, nil)

	svc := NewService(repo, defaults, nil, Options{Now: clock})

	d, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Zero(t, d.OccupancyRate)
	assert.True(t, d.TotalRevenue.IsZero())
}

func TestOccupancyRate(t *testing.T) {
	assert.Equal(t, 0.0, occupancyRate(3, 0, 30))
	assert.Equal(t, 100.0, occupancyRate(150, 5, 30))
	assert.Equal(t, 6.67, occupancyRate(10, 5, 30))
}

func TestCalendarFeed_Titles(t *testing.T) {
	repo := new(MockRepository)
	repo.On("CalendarEvents", mock.Anything, (*calendar.Interval)(nil)).
		Return([]CalendarEvent{{BookingID: 1, MemberName: "Maria", AccommodationType: "Suíte Pequena"}}, nil)

	svc := NewService(repo, defaults, nil, Options{Now: clock})

	events, err := svc.CalendarFeed(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Maria (Suíte Pequena)", events[0].Title)
}

func TestUpcomingCheckins_Window(t *testing.T) {
	repo := new(MockRepository)
	repo.On("CheckinsBetween", mock.Anything, today, today.AddDate(0, 0, 7)).Return([]Checkin{{BookingID: 2}}, nil)

	svc := NewService(repo, defaults, nil, Options{UpcomingCheckinsDays: 7, Now: clock})

	checkins, err := svc.UpcomingCheckins(context.Background())
	require.NoError(t, err)
	assert.Len(t, checkins, 1)
	repo.AssertExpectations(t)
}

func TestQuotaDistribution_CacheMissThenHit(t *testing.T) {
	rdb, rmock := redismock.NewClientMock()
	repo := new(MockRepository)
	counts := []QuotaCount{{"premium", 1}, {"simple", 3}}
	repo.On("MembersByQuota", mock.Anything).Return(counts, nil).Once()

	svc := NewService(repo, defaults, NewRedisCache(rdb), Options{CacheTTL: 30 * time.Second, Now: clock})

	data, err := json.Marshal(counts)
	require.NoError(t, err)

	rmock.ExpectGet("report:quota-distribution").RedisNil()
	rmock.ExpectSet("report:quota-distribution", data, 30*time.Second).SetVal("OK")
	rmock.ExpectGet("report:quota-distribution").SetVal(string(data))

	first, err := svc.QuotaDistribution(context.Background())
	require.NoError(t, err)
	second, err := svc.QuotaDistribution(context.Background())
	require.NoError(t, err)

	assert.Equal(t, counts, first)
	assert.Equal(t, counts, second)
	repo.AssertNumberOfCalls(t, "MembersByQuota", 1)
	assert.NoError(t, rmock.ExpectationsWereMet())
}

func TestQuotaDistribution_CacheDownFallsBack(t *testing.T) {
	rdb, rmock := redismock.NewClientMock()
	repo := new(MockRepository)
	counts := []QuotaCount{{"simple", 3}}
	repo.On("MembersByQuota", mock.Anything).Return(counts, nil)

	svc := NewService(repo, defaults, NewRedisCache(rdb), Options{CacheTTL: time.Minute, Now: clock})

	data, err := json.Marshal(counts)
	require.NoError(t, err)
	rmock.ExpectGet("report:quota-distribution").SetErr(errors.New("connection refused"))
	rmock.ExpectSet("report:quota-distribution", data, time.Minute).SetErr(errors.New("connection refused"))

	got, err := svc.QuotaDistribution(context.Background())
	require.NoError(t, err)
	assert.Equal(t, counts, got)
}

func TestDashboard_StorageFailureIsNotCached(t *testing.T) {
	rdb, rmock := redismock.NewClientMock()
	repo := new(MockRepository)
	repo.On("CountMembers", mock.Anything).Return(0, apperror.Storage(errors.New("boom")))

	svc := NewService(repo, defaults, NewRedisCache(rdb), Options{CacheTTL: time.Minute, Now: clock})

	rmock.ExpectGet("report:dashboard:2026-01-01").RedisNil()

	_, err := svc.Dashboard(context.Background())
	assert.True(t, errors.Is(err, apperror.ErrStorage))
	assert.NoError(t, rmock.ExpectationsWereMet())
}
