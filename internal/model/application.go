package model

import (
	"database/sql"
	"strings"
)

// ApplicationRecord is one row of the competition applications table.
// It is written by the application, payment and exam-logistics processes;
// this service only ever reads it.
type ApplicationRecord struct {
	FormNumber      string
	ApplicantName   string
	FatherName      string
	PhotoURL        string
	RollNumber      sql.NullString
	ExamClass       string
	ExamDate        sql.NullString
	ExamTime        sql.NullString
	ExamCentre      sql.NullString
	PaymentVerified bool
}

// Present reports whether an optional column carries a usable value.
// NULL and the empty string both count as absent.
func Present(v sql.NullString) bool {
	return v.Valid && v.String != ""
}

// NullString builds an optional column value, treating "" as NULL.
func NullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// NormalizeFormNumber trims surrounding whitespace from user input.
func NormalizeFormNumber(formNumber string) string {
	return strings.TrimSpace(formNumber)
}
