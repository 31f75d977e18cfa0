package admitcard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jjenkins/mateng/internal/model"
)

// State is everything the presentation layer may observe about a session.
type State struct {
	Loading       bool
	StatusMessage string
	DisplayRecord *model.ApplicationRecord
	Ready         bool
}

// Session runs admit-card lookups for one page view and holds the state
// the page renders. Each lookup takes a new request token; a response that
// arrives after a newer lookup started is dropped.
type Session struct {
	fetcher  Fetcher
	notifier Notifier
	printer  Printer
	recorder Recorder
	logger   *zap.Logger

	mu            sync.Mutex
	token         uint64
	loading       bool
	statusMessage string
	displayRecord *model.ApplicationRecord
	ready         bool
}

// NewSession creates a Session. printer, recorder and logger may be nil.
func NewSession(fetcher Fetcher, notifier Notifier, printer Printer, recorder Recorder, logger *zap.Logger) *Session {
	if printer == nil {
		printer = nopPrinter{}
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		fetcher:  fetcher,
		notifier: notifier,
		printer:  printer,
		recorder: recorder,
		logger:   logger,
	}
}

// State returns a copy of the observable state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		Loading:       s.loading,
		StatusMessage: s.statusMessage,
		Ready:         s.ready,
	}
	if s.displayRecord != nil {
		rec := *s.displayRecord
		st.DisplayRecord = &rec
	}
	return st
}

// PerformLookup fetches the application for formNumber and updates the
// session state. Failures are reported through the Notifier and never
// returned; the Outcome says how the call concluded.
func (s *Session) PerformLookup(ctx context.Context, formNumber string) Outcome {
	formNumber = model.NormalizeFormNumber(formNumber)
	if formNumber == "" {
		s.mu.Lock()
		s.token++
		s.loading = false
		s.clearLocked()
		s.mu.Unlock()

		s.notifier.Notify(TitleRequired, NoticeRequired, SeverityDestructive)
		s.recorder.ObserveLookup(OutcomeInvalid.String(), 0)
		s.logger.Debug("admit card lookup rejected", zap.Error(ErrValidation))
		return OutcomeInvalid
	}

	token := s.begin()
	start := time.Now()
	log := s.logger.With(
		zap.String("lookup_id", uuid.NewString()),
		zap.String("form_no", formNumber),
	)

	label := OutcomeSuperseded.String()
	defer func() {
		s.finish(token)
		elapsed := time.Since(start)
		s.recorder.ObserveLookup(label, elapsed)
		log.Info("admit card lookup finished",
			zap.String("outcome", label),
			zap.Duration("duration", elapsed),
		)
	}()

	records, err := s.fetcher.FetchByFormNumber(ctx, formNumber)
	if err != nil {
		terr := &TransportError{FormNumber: formNumber, Err: err}
		log.Error("admit card lookup failed", zap.Error(terr), zap.Bool("canceled", errors.Is(err, context.Canceled)))

		if !s.commit(token, func() { s.clearLocked() }) {
			return OutcomeSuperseded
		}
		s.notifier.Notify(TitleError, NoticeError, SeverityDestructive)
		label = OutcomeTransportError.String()
		return OutcomeTransportError
	}

	if len(records) == 0 {
		if !s.commit(token, func() { s.clearLocked() }) {
			return OutcomeSuperseded
		}
		s.notifier.Notify(TitleNotFound, NoticeNotFound, SeverityDestructive)
		label = OutcomeNotFound.String()
		return OutcomeNotFound
	}
	if len(records) > 1 {
		log.Warn("form number matched more than one application", zap.Int("matches", len(records)))
	}

	result := Resolve(&records[0])
	if !s.commit(token, func() {
		s.statusMessage = result.StatusMessage
		s.displayRecord = result.Record
		s.ready = result.IsReady()
	}) {
		return OutcomeSuperseded
	}
	label = result.Status.String()
	return OutcomeResolved
}

// Print hands the displayed admit card to the Printer. It does nothing
// when no card is displayable.
func (s *Session) Print() {
	s.mu.Lock()
	var rec *model.ApplicationRecord
	if s.displayRecord != nil {
		r := *s.displayRecord
		rec = &r
	}
	s.mu.Unlock()

	if rec == nil {
		return
	}
	s.printer.Print(*rec)
}

func (s *Session) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token++
	s.loading = true
	s.clearLocked()
	return s.token
}

// commit applies fn if token is still the latest lookup.
func (s *Session) commit(token uint64, fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.token {
		return false
	}
	fn()
	return true
}

func (s *Session) finish(token uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token == s.token {
		s.loading = false
	}
}

func (s *Session) clearLocked() {
	s.statusMessage = ""
	s.displayRecord = nil
	s.ready = false
}
