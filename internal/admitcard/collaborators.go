package admitcard

import (
	"context"
	"time"

	"github.com/jjenkins/mateng/internal/model"
)

// Fetcher queries the applications table by exact form number.
// Zero records is not an error.
type Fetcher interface {
	FetchByFormNumber(ctx context.Context, formNumber string) ([]model.ApplicationRecord, error)
}

// Severity of a user-facing notification
type Severity string

const (
	SeverityDefault     Severity = "default"
	SeverityDestructive Severity = "destructive"
)

// Notifier delivers fire-and-forget alerts to the applicant.
type Notifier interface {
	Notify(title, message string, severity Severity)
}

// Printer renders a displayable admit card.
type Printer interface {
	Print(record model.ApplicationRecord)
}

// Recorder observes concluded lookups.
type Recorder interface {
	ObserveLookup(outcome string, elapsed time.Duration)
}

// Notifications shown by the lookup flow.
const (
	TitleRequired = "Required"
	TitleNotFound = "Not Found"
	TitleError    = "Error"

	NoticeRequired = "Please enter your form number"
	NoticeNotFound = "No application found with this form number. Please check and try again."
	NoticeError    = "An error occurred while fetching your application details."
)

type nopPrinter struct{}

func (nopPrinter) Print(model.ApplicationRecord) {}

type nopRecorder struct{}

func (nopRecorder) ObserveLookup(string, time.Duration) {}
