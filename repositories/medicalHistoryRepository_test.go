package repositories

import (
	"CarePoint/models"
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMedicalHistoryRepositoryGetByIDScopedToPatient(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewMedicalHistoryRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "medical_history" WHERE id = \$1 AND patient_id = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "patient_id", "condition"}).
			AddRow(4, 3, "Asthma"))

	record, err := repo.GetByID(context.Background(), 3, 4)
	require.NoError(t, err)
	assert.Equal(t, "Asthma", record.Condition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMedicalHistoryRepositoryGetByIDOtherPatient(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewMedicalHistoryRepository(db)

	// The record exists but belongs to someone else, so the scoped query
	// comes back empty.
	mock.ExpectQuery(`SELECT \* FROM "medical_history" WHERE id = \$1 AND patient_id = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "patient_id", "condition"}))

	_, err := repo.GetByID(context.Background(), 99, 4)
	assert.ErrorIs(t, err, ErrHistoryNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMedicalHistoryRepositoryDeleteNotFound(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewMedicalHistoryRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "medical_history" WHERE id = \$1 AND patient_id = \$2`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), 3, 404)
	assert.ErrorIs(t, err, ErrHistoryNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMedicalHistoryRepositoryCreate(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewMedicalHistoryRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "medical_history"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))
	mock.ExpectCommit()

	record := models.MedicalHistory{PatientID: 3, Condition: "Asthma"}
	err := repo.Create(context.Background(), &record)
	require.NoError(t, err)
	assert.Equal(t, uint(4), record.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
