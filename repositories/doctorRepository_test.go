package repositories

import (
	"CarePoint/database"
	"CarePoint/models"
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDoctorRepo(t *testing.T) (*DoctorRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newTestDB(t)

	// The create lock goes through the package-level Redis client.
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	prev := database.RedisClient
	database.RedisClient = client
	t.Cleanup(func() { database.RedisClient = prev })

	return NewDoctorRepository(db, newTestCache(t)), mock
}

func TestDoctorRepositoryCreate(t *testing.T) {
	repo, mock := newDoctorRepo(t)

	mock.ExpectQuery(`SELECT \* FROM "doctors" WHERE name = \$1 AND specialty = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "specialty"}))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "doctors"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	doctor := models.Doctor{Name: "Achieng Odhiambo", Specialty: "Dermatology"}
	err := repo.Create(context.Background(), &doctor)
	require.NoError(t, err)

	assert.Equal(t, uint(1), doctor.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoctorRepositoryCreateDuplicate(t *testing.T) {
	repo, mock := newDoctorRepo(t)

	mock.ExpectQuery(`SELECT \* FROM "doctors" WHERE name = \$1 AND specialty = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "specialty"}).
			AddRow(1, "Achieng Odhiambo", "Dermatology"))

	doctor := models.Doctor{Name: "Achieng Odhiambo", Specialty: "Dermatology"}
	err := repo.Create(context.Background(), &doctor)
	assert.ErrorIs(t, err, ErrDoctorExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoctorRepositoryGetByIDCachesResult(t *testing.T) {
	repo, mock := newDoctorRepo(t)

	mock.ExpectQuery(`SELECT \* FROM "doctors" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "specialty"}).
			AddRow(1, "Achieng Odhiambo", "Dermatology"))

	first, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Achieng Odhiambo", first.Name)

	// Second read is served from the cache.
	second, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, first.Name, second.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoctorRepositoryGetByIDNotFound(t *testing.T) {
	repo, mock := newDoctorRepo(t)

	mock.ExpectQuery(`SELECT \* FROM "doctors" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "specialty"}))

	_, err := repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrDoctorNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoctorRepositoryUpdateNotFound(t *testing.T) {
	repo, mock := newDoctorRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "doctors" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Update(context.Background(), &models.Doctor{ID: 42, Name: "X", Specialty: "Y"})
	assert.ErrorIs(t, err, ErrDoctorNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoctorRepositoryDeleteNotFound(t *testing.T) {
	repo, mock := newDoctorRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "doctors" WHERE id = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), 42)
	assert.ErrorIs(t, err, ErrDoctorNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
