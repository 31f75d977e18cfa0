package admitcard

import (
	"fmt"
	"strings"

	"github.com/jjenkins/mateng/internal/model"
)

// Status classifies an application snapshot.
type Status int

const (
	StatusNotFound Status = iota
	StatusPaymentPending
	StatusRollNumberPending
	StatusDetailsPending
	StatusReady
)

func (s Status) String() string {
	switch s {
	case StatusNotFound:
		return "not_found"
	case StatusPaymentPending:
		return "payment_pending"
	case StatusRollNumberPending:
		return "roll_number_pending"
	case StatusDetailsPending:
		return "details_pending"
	case StatusReady:
		return "ready"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

const (
	MessagePaymentPending    = "Your payment is pending verification. Please check back later."
	MessageRollNumberPending = "Your application has been received. Roll number not assigned yet. Please check back later."
	MessageReady             = "Your admit card is ready for download."
)

// Exam detail labels, in the order they are reported.
const (
	DetailExamDate   = "exam date"
	DetailExamTime   = "exam time"
	DetailExamCentre = "exam centre"
)

// Result is what a lookup shows to the applicant. StatusMessage is empty
// when there is nothing to say (no record). Record is set only when the
// admit card can be shown.
type Result struct {
	Status        Status
	StatusMessage string
	Record        *model.ApplicationRecord
}

// IsReady reports whether the admit card can be downloaded.
func (r Result) IsReady() bool {
	return r.Status == StatusReady
}

type rule struct {
	status  Status
	applies func(rec *model.ApplicationRecord) bool
	message func(rec *model.ApplicationRecord) string
}

// rules are evaluated in order; the first match wins.
var rules = []rule{
	{
		status:  StatusPaymentPending,
		applies: func(rec *model.ApplicationRecord) bool { return !rec.PaymentVerified },
		message: fixed(MessagePaymentPending),
	},
	{
		status:  StatusRollNumberPending,
		applies: func(rec *model.ApplicationRecord) bool { return !model.Present(rec.RollNumber) },
		message: fixed(MessageRollNumberPending),
	},
	{
		status:  StatusDetailsPending,
		applies: func(rec *model.ApplicationRecord) bool { return len(MissingExamDetails(rec)) > 0 },
		message: detailsPendingMessage,
	},
}

func fixed(msg string) func(*model.ApplicationRecord) string {
	return func(*model.ApplicationRecord) string { return msg }
}

func detailsPendingMessage(rec *model.ApplicationRecord) string {
	return fmt.Sprintf("Your admit card is being prepared. %s information is not available yet. Please check back later.",
		strings.Join(MissingExamDetails(rec), ", "))
}

// MissingExamDetails lists the absent exam logistics fields in date, time,
// centre order.
func MissingExamDetails(rec *model.ApplicationRecord) []string {
	var missing []string
	if !model.Present(rec.ExamDate) {
		missing = append(missing, DetailExamDate)
	}
	if !model.Present(rec.ExamTime) {
		missing = append(missing, DetailExamTime)
	}
	if !model.Present(rec.ExamCentre) {
		missing = append(missing, DetailExamCentre)
	}
	return missing
}

// Resolve classifies an application snapshot. A nil record means the lookup
// matched nothing. Resolve never fails and never mutates rec.
func Resolve(rec *model.ApplicationRecord) Result {
	if rec == nil {
		return Result{Status: StatusNotFound}
	}

	for _, r := range rules {
		if r.applies(rec) {
			return Result{Status: r.status, StatusMessage: r.message(rec)}
		}
	}

	record := *rec
	return Result{Status: StatusReady, StatusMessage: MessageReady, Record: &record}
}
