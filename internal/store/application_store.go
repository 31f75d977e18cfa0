package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/jjenkins/mateng/internal/model"
)

// ApplicationStore reads competition applications from PostgreSQL
type ApplicationStore struct {
	db    *sql.DB
	table string
}

// NewApplicationStore creates a new ApplicationStore reading from table
func NewApplicationStore(db *sql.DB, table string) *ApplicationStore {
	return &ApplicationStore{db: db, table: table}
}

// FetchByFormNumber retrieves the applications whose form number matches exactly
func (s *ApplicationStore) FetchByFormNumber(ctx context.Context, formNumber string) ([]model.ApplicationRecord, error) {
	query := fmt.Sprintf(`
		SELECT form_no, applicant_name, father_name, photo_url, roll_number,
		       "class", exam_date, exam_time, exam_centre, payment_verified
		FROM %s
		WHERE form_no = $1
	`, pq.QuoteIdentifier(s.table))

	rows, err := s.db.QueryContext(ctx, query, formNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to query applications for %s: %w", formNumber, err)
	}
	defer rows.Close()

	var records []model.ApplicationRecord
	for rows.Next() {
		var (
			r               model.ApplicationRecord
			applicantName   sql.NullString
			fatherName      sql.NullString
			photoURL        sql.NullString
			examClass       sql.NullString
			paymentVerified sql.NullBool
		)
		err := rows.Scan(
			&r.FormNumber,
			&applicantName,
			&fatherName,
			&photoURL,
			&r.RollNumber,
			&examClass,
			&r.ExamDate,
			&r.ExamTime,
			&r.ExamCentre,
			&paymentVerified,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		r.ApplicantName = applicantName.String
		r.FatherName = fatherName.String
		r.PhotoURL = photoURL.String
		r.ExamClass = examClass.String
		r.PaymentVerified = paymentVerified.Valid && paymentVerified.Bool
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read applications: %w", err)
	}

	return records, nil
}

// Ping checks that the database is reachable
func (s *ApplicationStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
