package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jjenkins/mateng/internal/model"
)

var applicationColumns = []string{
	"form_no", "applicant_name", "father_name", "photo_url", "roll_number",
	"class", "exam_date", "exam_time", "exam_centre", "payment_verified",
}

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestApplicationStore_FetchByFormNumber(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewApplicationStore(db, "mental_maths_applications")

	rows := sqlmock.NewRows(applicationColumns).
		AddRow("MM-1003", "Tomba Singh", "Ibohal Singh", "https://cdn.example.com/p.jpg",
			"R55", "VII", nil, "10:00", "Imphal", true)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM "mental_maths_applications"`)).
		WithArgs("MM-1003").
		WillReturnRows(rows)

	records, err := store.FetchByFormNumber(context.Background(), "MM-1003")
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, model.ApplicationRecord{
		FormNumber:      "MM-1003",
		ApplicantName:   "Tomba Singh",
		FatherName:      "Ibohal Singh",
		PhotoURL:        "https://cdn.example.com/p.jpg",
		RollNumber:      sql.NullString{String: "R55", Valid: true},
		ExamClass:       "VII",
		ExamTime:        sql.NullString{String: "10:00", Valid: true},
		ExamCentre:      sql.NullString{String: "Imphal", Valid: true},
		PaymentVerified: true,
	}, records[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationStore_FetchByFormNumber_NullPayment(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewApplicationStore(db, "mental_maths_applications")

	rows := sqlmock.NewRows(applicationColumns).
		AddRow("MM-1001", nil, nil, nil, nil, nil, nil, nil, nil, nil)
	mock.ExpectQuery(`SELECT form_no`).WithArgs("MM-1001").WillReturnRows(rows)

	records, err := store.FetchByFormNumber(context.Background(), "MM-1001")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.False(t, records[0].PaymentVerified)
	assert.False(t, records[0].RollNumber.Valid)
	assert.Empty(t, records[0].ApplicantName)
}

func TestApplicationStore_FetchByFormNumber_NoRows(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewApplicationStore(db, "applications")

	mock.ExpectQuery(`SELECT form_no`).
		WithArgs("MM-9999").
		WillReturnRows(sqlmock.NewRows(applicationColumns))

	records, err := store.FetchByFormNumber(context.Background(), "MM-9999")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestApplicationStore_FetchByFormNumber_QueryError(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewApplicationStore(db, "applications")

	cause := errors.New("connection reset")
	mock.ExpectQuery(`SELECT form_no`).WithArgs("MM-1").WillReturnError(cause)

	_, err := store.FetchByFormNumber(context.Background(), "MM-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "failed to query applications for MM-1")
}

func TestApplicationStore_FetchByFormNumber_RowError(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewApplicationStore(db, "applications")

	rows := sqlmock.NewRows(applicationColumns).
		AddRow("MM-1", "A", "B", "C", nil, "V", nil, nil, nil, false).
		RowError(0, errors.New("bad row"))
	mock.ExpectQuery(`SELECT form_no`).WithArgs("MM-1").WillReturnRows(rows)

	_, err := store.FetchByFormNumber(context.Background(), "MM-1")
	assert.Error(t, err)
}
