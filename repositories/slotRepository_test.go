package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSlotRepo(t *testing.T) (*SlotRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newTestDB(t)
	repo := NewSlotRepository(db, newTestCache(t), 30)
	repo.now = func() time.Time { return time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC) }
	return repo, mock
}

func expectDoctorIDLookup(mock sqlmock.Sqlmock, found bool) {
	rows := sqlmock.NewRows([]string{"id"})
	if found {
		rows.AddRow(1)
	}
	mock.ExpectQuery(`SELECT "id" FROM "doctors" WHERE id = \$1`).WillReturnRows(rows)
}

func TestSlotRepositoryCreateAlignsTimestamp(t *testing.T) {
	repo, mock := newSlotRepo(t)

	expectDoctorIDLookup(mock, true)
	mock.ExpectQuery(`SELECT \* FROM "slots" WHERE doctor_id = \$1 AND start_time = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "doctor_id", "start_time", "booked"}))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "slots"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectCommit()

	slot, err := repo.Create(context.Background(), 1, time.Date(2025, 1, 1, 9, 14, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, uint(7), slot.ID)
	assert.True(t, slot.StartTime.Equal(time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)))
	assert.False(t, slot.Booked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSlotRepositoryCreateReturnsExistingSlot(t *testing.T) {
	repo, mock := newSlotRepo(t)

	start := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	expectDoctorIDLookup(mock, true)
	mock.ExpectQuery(`SELECT \* FROM "slots" WHERE doctor_id = \$1 AND start_time = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "doctor_id", "start_time", "booked"}).
			AddRow(3, 1, start, false))

	slot, err := repo.Create(context.Background(), 1, start.Add(10*time.Minute))
	require.NoError(t, err)

	assert.Equal(t, uint(3), slot.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSlotRepositoryCreateRejectsPastSlot(t *testing.T) {
	repo, mock := newSlotRepo(t)

	expectDoctorIDLookup(mock, true)

	_, err := repo.Create(context.Background(), 1, time.Date(2025, 1, 1, 7, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrPastSlot)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSlotRepositoryCreateUnknownDoctor(t *testing.T) {
	repo, mock := newSlotRepo(t)

	expectDoctorIDLookup(mock, false)

	_, err := repo.Create(context.Background(), 42, time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrDoctorNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSlotRepositoryCreateLosesInsertRace(t *testing.T) {
	repo, mock := newSlotRepo(t)

	start := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	expectDoctorIDLookup(mock, true)
	mock.ExpectQuery(`SELECT \* FROM "slots" WHERE doctor_id = \$1 AND start_time = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "doctor_id", "start_time", "booked"}))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "slots"`).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()
	mock.ExpectQuery(`SELECT \* FROM "slots" WHERE doctor_id = \$1 AND start_time = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "doctor_id", "start_time", "booked"}).
			AddRow(9, 1, start, false))

	slot, err := repo.Create(context.Background(), 1, start)
	require.NoError(t, err)

	assert.Equal(t, uint(9), slot.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSlotRepositoryGenerateRange(t *testing.T) {
	repo, mock := newSlotRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "doctors" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "specialty"}).
			AddRow(1, "Achieng Odhiambo", "Dermatology"))
	for i := 0; i < 4; i++ {
		mock.ExpectQuery(`SELECT \* FROM "slots" WHERE doctor_id = \$1 AND start_time = \$2`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "doctor_id", "start_time", "booked"}))
		mock.ExpectQuery(`INSERT INTO "slots"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(i + 1))
	}
	mock.ExpectCommit()

	start := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 1, 11, 0, 0, 0, time.UTC)
	created, err := repo.GenerateRange(context.Background(), 1, start, end, 30)
	require.NoError(t, err)

	require.Len(t, created, 4)
	assert.True(t, created[0].StartTime.Equal(start))
	assert.True(t, created[3].StartTime.Equal(time.Date(2025, 1, 1, 10, 30, 0, 0, time.UTC)))
	for _, view := range created {
		assert.Equal(t, "Achieng Odhiambo", view.DoctorName)
		assert.Equal(t, "Dermatology", view.Specialty)
		assert.False(t, view.Booked)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSlotRepositoryGenerateRangeSkipsPastAndExisting(t *testing.T) {
	repo, mock := newSlotRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "doctors" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "specialty"}).
			AddRow(1, "Achieng Odhiambo", "Dermatology"))
	// 07:00 and 07:30 are before the current time and never reach the
	// database. 08:00 already exists; 08:30 is created.
	mock.ExpectQuery(`SELECT \* FROM "slots" WHERE doctor_id = \$1 AND start_time = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "doctor_id", "start_time", "booked"}).
			AddRow(5, 1, time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC), false))
	mock.ExpectQuery(`SELECT \* FROM "slots" WHERE doctor_id = \$1 AND start_time = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "doctor_id", "start_time", "booked"}))
	mock.ExpectQuery(`INSERT INTO "slots"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(6))
	mock.ExpectCommit()

	start := time.Date(2025, 1, 1, 7, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	created, err := repo.GenerateRange(context.Background(), 1, start, end, 30)
	require.NoError(t, err)

	require.Len(t, created, 1)
	assert.True(t, created[0].StartTime.Equal(time.Date(2025, 1, 1, 8, 30, 0, 0, time.UTC)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSlotRepositoryGenerateRangeUnknownDoctor(t *testing.T) {
	repo, mock := newSlotRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "doctors" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "specialty"}))
	mock.ExpectRollback()

	start := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	_, err := repo.GenerateRange(context.Background(), 42, start, start.Add(time.Hour), 30)
	assert.ErrorIs(t, err, ErrDoctorNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSlotRepositoryListAvailable(t *testing.T) {
	repo, mock := newSlotRepo(t)

	first := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	second := time.Date(2025, 1, 1, 9, 30, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT slots\.id, slots\.doctor_id, slots\.start_time, slots\.booked, doctors\.name AS doctor_name, doctors\.specialty FROM "slots" JOIN doctors`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "doctor_id", "start_time", "booked", "doctor_name", "specialty"}).
			AddRow(1, 1, first, false, "Achieng Odhiambo", "Dermatology").
			AddRow(1, 1, first, false, "Achieng Odhiambo", "Dermatology"). // duplicate row collapses
			AddRow(2, 1, second, false, "Achieng Odhiambo", "Dermatology"))

	views, err := repo.ListAvailable(context.Background(), "Dermatology", "2025-01-01")
	require.NoError(t, err)

	require.Len(t, views, 2)
	assert.True(t, views[0].StartTime.Equal(first))
	assert.True(t, views[1].StartTime.Equal(second))

	// Second call is served from the cache, so no further query is expected.
	cached, err := repo.ListAvailable(context.Background(), "Dermatology", "2025-01-01")
	require.NoError(t, err)
	assert.Len(t, cached, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSlotRepositoryListAvailableBadDate(t *testing.T) {
	repo, mock := newSlotRepo(t)

	_, err := repo.ListAvailable(context.Background(), "", "01/01/2025")
	assert.ErrorIs(t, err, ErrInvalidDateFilter)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSlotRepositoryDeleteFutureRange(t *testing.T) {
	repo, mock := newSlotRepo(t)

	expectDoctorIDLookup(mock, true)
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "slots" WHERE doctor_id = \$1 AND start_time >= \$2 AND start_time <= \$3`).
		WillReturnResult(sqlmock.NewResult(0, 5))
	mock.ExpectCommit()

	deleted, err := repo.DeleteFutureRange(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(5), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
