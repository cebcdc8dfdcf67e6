package booking

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alvimrfg/sistema-socio-40graus/internal/apperror"
)

func setupMock(t *testing.T) (Repository, *sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() {
		sqlxDB.Close()
	}

	return repo, sqlxDB, mock, closer
}

var (
	bookingColumns = []string{"id", "member_id", "accommodation_type", "start_date", "end_date", "status", "created_at"}
	detailColumns  = append(append([]string{}, bookingColumns...), "member_name")

	jan10 = time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	jan13 = time.Date(2026, 1, 13, 0, 0, 0, 0, time.UTC)
)

func TestInsert(t *testing.T) {
	repo, db, mock, close := setupMock(t)
	defer close()
	ctx := context.Background()
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bookings (member_id, accommodation_type, start_date, end_date, status) VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at")).
		WithArgs(1, "Suíte Pequena", jan10, jan13, "confirmed").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(10, now))

	b := &Booking{MemberID: 1, AccommodationType: "Suíte Pequena", StartDate: jan10, EndDate: jan13, Status: StatusConfirmed}
	require.NoError(t, repo.Insert(ctx, db, b))
	assert.Equal(t, 10, b.ID)
	assert.Equal(t, 3, b.Days())

	mock.ExpectQuery("INSERT INTO bookings").
		WillReturnError(&pq.Error{Code: "23503"})

	err := repo.Insert(ctx, db, &Booking{MemberID: 1, AccommodationType: "Chalé", StartDate: jan10, EndDate: jan13, Status: StatusPending})
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetForUpdate(t *testing.T) {
	repo, db, mock, close := setupMock(t)
	defer close()
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings WHERE id = $1 FOR UPDATE")).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows(bookingColumns).AddRow(10, 1, "Suíte Pequena", jan10, jan13, "pending", time.Now()))

	b, err := repo.GetForUpdate(ctx, db, 10)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, b.Status)

	mock.ExpectQuery("FOR UPDATE").WithArgs(11).WillReturnError(sql.ErrNoRows)
	_, err = repo.GetForUpdate(ctx, db, 11)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus(t *testing.T) {
	repo, db, mock, close := setupMock(t)
	defer close()
	ctx := context.Background()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET status = $2 WHERE id = $1")).
		WithArgs(5, "cancelled").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdateStatus(ctx, db, 5, StatusCancelled))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET status = $2 WHERE id = $1")).
		WithArgs(6, "cancelled").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.True(t, errors.Is(repo.UpdateStatus(ctx, db, 6, StatusCancelled), apperror.ErrNotFound))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListByMember(t *testing.T) {
	repo, _, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("JOIN members m ON b.member_id = m.id WHERE b.member_id = $1 ORDER BY b.start_date DESC")).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(detailColumns).
			AddRow(12, 1, "Suíte Média", jan13, jan13.AddDate(0, 0, 2), "confirmed", time.Now(), "Maria").
			AddRow(10, 1, "Suíte Pequena", jan10, jan13, "cancelled", time.Now(), "Maria"))

	list, err := repo.ListByMember(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Maria", list[0].MemberName)
	assert.Equal(t, StatusCancelled, list[1].Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, _, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE b.id = $1")).WithArgs(3).WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 3)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}
