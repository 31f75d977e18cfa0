package admitcard

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jjenkins/mateng/internal/model"
)

func completeRecord() model.ApplicationRecord {
	return model.ApplicationRecord{
		FormNumber:      "MM-1004",
		ApplicantName:   "Thoibi Devi",
		FatherName:      "Ibomcha Singh",
		PhotoURL:        "https://example.com/photos/mm-1004.jpg",
		RollNumber:      model.NullString("R77"),
		ExamClass:       "VI",
		ExamDate:        model.NullString("2025-03-09"),
		ExamTime:        model.NullString("10:00"),
		ExamCentre:      model.NullString("Imphal"),
		PaymentVerified: true,
	}
}

func TestResolve_NoRecord(t *testing.T) {
	result := Resolve(nil)

	assert.Equal(t, StatusNotFound, result.Status)
	assert.Empty(t, result.StatusMessage)
	assert.Nil(t, result.Record)
	assert.False(t, result.IsReady())
}

func TestResolve_PaymentCheckedFirst(t *testing.T) {
	variants := map[string]func(r *model.ApplicationRecord){
		"complete otherwise":  func(r *model.ApplicationRecord) {},
		"no roll number":      func(r *model.ApplicationRecord) { r.RollNumber = sql.NullString{} },
		"no exam details":     func(r *model.ApplicationRecord) { r.ExamDate, r.ExamTime, r.ExamCentre = sql.NullString{}, sql.NullString{}, sql.NullString{} },
		"nothing but a form":  func(r *model.ApplicationRecord) { *r = model.ApplicationRecord{FormNumber: "MM-1"} },
		"empty string fields": func(r *model.ApplicationRecord) { r.RollNumber = sql.NullString{Valid: true} },
	}

	for name, mutate := range variants {
		t.Run(name, func(t *testing.T) {
			rec := completeRecord()
			mutate(&rec)
			rec.PaymentVerified = false

			result := Resolve(&rec)

			assert.Equal(t, StatusPaymentPending, result.Status)
			assert.Equal(t, MessagePaymentPending, result.StatusMessage)
			assert.Nil(t, result.Record)
			assert.False(t, result.IsReady())
		})
	}
}

func TestResolve_RollNumberBeforeExamDetails(t *testing.T) {
	tests := []struct {
		name string
		roll sql.NullString
		date sql.NullString
	}{
		{name: "null roll number, details present", roll: sql.NullString{}, date: model.NullString("2025-03-09")},
		{name: "null roll number, details missing", roll: sql.NullString{}, date: sql.NullString{}},
		{name: "empty roll number", roll: sql.NullString{String: "", Valid: true}, date: sql.NullString{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := completeRecord()
			rec.RollNumber = tt.roll
			rec.ExamDate = tt.date

			result := Resolve(&rec)

			assert.Equal(t, StatusRollNumberPending, result.Status)
			assert.Equal(t, MessageRollNumberPending, result.StatusMessage)
			assert.Nil(t, result.Record)
		})
	}
}

func TestResolve_MissingExamDetails(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *model.ApplicationRecord)
		missing string
	}{
		{
			name:    "date",
			mutate:  func(r *model.ApplicationRecord) { r.ExamDate = sql.NullString{} },
			missing: "exam date",
		},
		{
			name:    "time",
			mutate:  func(r *model.ApplicationRecord) { r.ExamTime = sql.NullString{} },
			missing: "exam time",
		},
		{
			name:    "centre",
			mutate:  func(r *model.ApplicationRecord) { r.ExamCentre = model.NullString("") },
			missing: "exam centre",
		},
		{
			name: "date and centre",
			mutate: func(r *model.ApplicationRecord) {
				r.ExamCentre = sql.NullString{}
				r.ExamDate = sql.NullString{}
			},
			missing: "exam date, exam centre",
		},
		{
			name: "all three",
			mutate: func(r *model.ApplicationRecord) {
				r.ExamDate, r.ExamTime, r.ExamCentre = sql.NullString{}, sql.NullString{}, sql.NullString{}
			},
			missing: "exam date, exam time, exam centre",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := completeRecord()
			tt.mutate(&rec)

			result := Resolve(&rec)

			assert.Equal(t, StatusDetailsPending, result.Status)
			assert.Equal(t,
				"Your admit card is being prepared. "+tt.missing+" information is not available yet. Please check back later.",
				result.StatusMessage)
			assert.Nil(t, result.Record)
			assert.False(t, result.IsReady())
		})
	}
}

func TestResolve_Ready(t *testing.T) {
	rec := completeRecord()

	result := Resolve(&rec)

	assert.Equal(t, StatusReady, result.Status)
	assert.Equal(t, MessageReady, result.StatusMessage)
	assert.True(t, result.IsReady())
	require.NotNil(t, result.Record)
	assert.Equal(t, rec, *result.Record)

	// the result does not alias the input
	rec.ApplicantName = "changed"
	assert.Equal(t, "Thoibi Devi", result.Record.ApplicantName)
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "payment_pending", StatusPaymentPending.String())
	assert.Equal(t, "ready", StatusReady.String())
	assert.Equal(t, "status(42)", Status(42).String())
}
