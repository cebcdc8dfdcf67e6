package calendar

import (
	"errors"
	"testing"
	"time"

	"github.com/alvimrfg/sistema-socio-40graus/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, start, end string) Interval {
	t.Helper()
	iv, err := Parse(start, end)
	require.NoError(t, err)
	return iv
}

func TestParse(t *testing.T) {
	iv := mustParse(t, "2026-01-10", "2026-01-13")
	assert.Equal(t, 3, iv.Days())
	assert.Equal(t, "[2026-01-10, 2026-01-13)", iv.String())

	_, err := Parse("2026-01-13", "2026-01-13")
	assert.True(t, errors.Is(err, apperror.ErrInvalidInterval))

	_, err = Parse("2026-01-14", "2026-01-13")
	assert.True(t, errors.Is(err, apperror.ErrInvalidInterval))

	_, err = Parse("13/01/2026", "2026-01-14")
	assert.True(t, errors.Is(err, apperror.ErrValidation))
}

func TestNew_DropsTimeOfDay(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	iv, err := New(
		time.Date(2026, 2, 13, 22, 30, 0, 0, loc),
		time.Date(2026, 2, 18, 1, 0, 0, 0, loc),
	)
	require.NoError(t, err)
	assert.Equal(t, 5, iv.Days())
	assert.Equal(t, time.UTC, iv.Start.Location())
}

func TestOverlaps(t *testing.T) {
	base := mustParse(t, "2026-01-10", "2026-01-13")

	tests := []struct {
		name  string
		other Interval
		want  bool
	}{
		{"same range", mustParse(t, "2026-01-10", "2026-01-13"), true},
		{"inside", mustParse(t, "2026-01-11", "2026-01-12"), true},
		{"covers", mustParse(t, "2026-01-01", "2026-01-31"), true},
		{"tail overlap", mustParse(t, "2026-01-12", "2026-01-15"), true},
		{"check-out day equals check-in", mustParse(t, "2026-01-13", "2026-01-15"), false},
		{"ends on check-in day", mustParse(t, "2026-01-08", "2026-01-10"), false},
		{"far away", mustParse(t, "2026-03-01", "2026-03-05"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(base))
		})
	}
}

func TestWindow(t *testing.T) {
	window := Window(time.Date(2026, 1, 1, 15, 0, 0, 0, time.UTC), 30)
	assert.Equal(t, 30, window.Days())
	assert.Equal(t, "[2026-01-01, 2026-01-31)", window.String())
}

func TestValid_IgnoresTimeOfDay(t *testing.T) {
	sameDay := Interval{
		Start: time.Date(2026, 1, 10, 10, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 1, 10, 20, 0, 0, 0, time.UTC),
	}
	assert.False(t, sameDay.Valid())
	assert.Equal(t, 0, sameDay.Days())

	overnight := Interval{
		Start: time.Date(2026, 1, 10, 23, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 1, 11, 1, 0, 0, 0, time.UTC),
	}
	assert.True(t, overnight.Valid())
	assert.Equal(t, 1, overnight.Days())
	assert.Equal(t, mustParse(t, "2026-01-10", "2026-01-11"), overnight.Dates())
}

func TestOverlaps_IgnoresTimeOfDay(t *testing.T) {
	stay := mustParse(t, "2026-01-10", "2026-01-13")
	lateArrival := Interval{
		Start: time.Date(2026, 1, 13, 18, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC),
	}
	assert.False(t, stay.Overlaps(lateArrival))
	assert.False(t, lateArrival.Overlaps(stay))
}
