package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/jjenkins/mateng/internal/admitcard"
	"github.com/jjenkins/mateng/internal/model"
	"github.com/jjenkins/mateng/internal/service"
)

type stubFetcher struct {
	records map[string][]model.ApplicationRecord
	err     error
	calls   int
}

func (f *stubFetcher) FetchByFormNumber(ctx context.Context, formNumber string) ([]model.ApplicationRecord, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.records[formNumber], nil
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(ctx context.Context) error { return p.err }

func testRecords() map[string][]model.ApplicationRecord {
	return map[string][]model.ApplicationRecord{
		"MM-1001": {{FormNumber: "MM-1001", ApplicantName: "Pending Payer"}},
		"MM-1004": {{
			FormNumber:      "MM-1004",
			ApplicantName:   "Ready Applicant",
			FatherName:      "Father",
			PhotoURL:        "https://example.com/p.jpg",
			RollNumber:      model.NullString("R56"),
			ExamClass:       "VI",
			ExamDate:        model.NullString("2025-03-09"),
			ExamTime:        model.NullString("10:00"),
			ExamCentre:      model.NullString("Imphal"),
			PaymentVerified: true,
		}},
	}
}

func newTestApp(t *testing.T, fetcher admitcard.Fetcher, pinger Pinger) (*fiber.App, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	app := fiber.New()
	Register(app, Dependencies{
		Fetcher:  fetcher,
		Recorder: service.NewLookupMetrics(reg),
		Pinger:   pinger,
		Gatherer: reg,
		Logger:   zaptest.NewLogger(t),
	})
	return app, reg
}

func postLookup(t *testing.T, app *fiber.App, formNo string, htmx bool) (int, string) {
	form := url.Values{"form_no": {formNo}}
	req := httptest.NewRequest(http.MethodPost, "/admit-card", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	return do(t, app, req)
}

func do(t *testing.T, app *fiber.App, req *http.Request) (int, string) {
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestHomeHandler(t *testing.T) {
	app, _ := newTestApp(t, &stubFetcher{}, nil)

	status, body := do(t, app, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "50,000+ Successful Deliveries")
	assert.Contains(t, body, "Open Marketplace")
}

func TestAchievementRedirectHandler(t *testing.T) {
	app, _ := newTestApp(t, &stubFetcher{}, nil)

	tests := []struct {
		path     string
		status   int
		location string
	}{
		{"/achievements/1", http.StatusFound, "/delivery"},
		{"/achievements/2", http.StatusFound, "/education"},
		{"/achievements/3", http.StatusFound, "/marketplace"},
		{"/achievements/4", http.StatusNotFound, ""},
		{"/achievements/abc", http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.path, nil))
		require.NoError(t, err)
		assert.Equal(t, tt.status, resp.StatusCode, tt.path)
		assert.Equal(t, tt.location, resp.Header.Get("Location"), tt.path)
	}
}

func TestVerticalHandler(t *testing.T) {
	app, _ := newTestApp(t, &stubFetcher{}, nil)

	status, body := do(t, app, httptest.NewRequest(http.MethodGet, "/education", nil))

	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Mental Maths Competition")
}

func TestAdmitCardLookupHandler(t *testing.T) {
	tests := []struct {
		name       string
		formNo     string
		err        error
		wantStatus int
		wantBody   []string
		wantCalls  int
	}{
		{
			name:       "ready",
			formNo:     "MM-1004",
			wantStatus: http.StatusOK,
			wantBody:   []string{admitcard.MessageReady, `id="admitCard"`, "Ready Applicant"},
			wantCalls:  1,
		},
		{
			name:       "payment pending",
			formNo:     " MM-1001 ",
			wantStatus: http.StatusOK,
			wantBody:   []string{admitcard.MessagePaymentPending},
			wantCalls:  1,
		},
		{
			name:       "empty",
			formNo:     "   ",
			wantStatus: http.StatusBadRequest,
			wantBody:   []string{admitcard.NoticeRequired},
		},
		{
			name:       "not found",
			formNo:     "MM-9999",
			wantStatus: http.StatusNotFound,
			wantBody:   []string{"No application found with this form number."},
			wantCalls:  1,
		},
		{
			name:       "transport error",
			formNo:     "MM-1004",
			err:        errors.New("dial tcp: connection refused"),
			wantStatus: http.StatusBadGateway,
			wantBody:   []string{admitcard.NoticeError},
			wantCalls:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &stubFetcher{records: testRecords(), err: tt.err}
			app, _ := newTestApp(t, fetcher, nil)

			status, body := postLookup(t, app, tt.formNo, false)

			assert.Equal(t, tt.wantStatus, status)
			for _, want := range tt.wantBody {
				assert.Contains(t, body, want)
			}
			assert.Equal(t, tt.wantCalls, fetcher.calls)
			assert.NotContains(t, body, "dial tcp")
		})
	}
}

func TestAdmitCardLookupHandler_HTMXPartial(t *testing.T) {
	app, _ := newTestApp(t, &stubFetcher{records: testRecords()}, nil)

	status, body := postLookup(t, app, "MM-9999", true)

	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Not Found")
	assert.NotContains(t, body, "<html")
}

func TestAdmitCardPrintHandler(t *testing.T) {
	app, _ := newTestApp(t, &stubFetcher{records: testRecords()}, nil)

	status, body := do(t, app, httptest.NewRequest(http.MethodGet, "/admit-card/print?form_no=MM-1004", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "window.print()")
	assert.Contains(t, body, "R56")

	status, body = do(t, app, httptest.NewRequest(http.MethodGet, "/admit-card/print?form_no=MM-1001", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.NotContains(t, body, "window.print()")
	assert.Contains(t, body, admitcard.MessagePaymentPending)
}

func TestMetricsEndpoint(t *testing.T) {
	app, _ := newTestApp(t, &stubFetcher{records: testRecords()}, nil)

	postLookup(t, app, "MM-1004", false)
	postLookup(t, app, "MM-9999", false)

	status, body := do(t, app, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `admitcard_lookups_total{outcome="ready"} 1`)
	assert.Contains(t, body, `admitcard_lookups_total{outcome="not_found"} 1`)
}

func TestHealthHandler(t *testing.T) {
	app, _ := newTestApp(t, &stubFetcher{}, stubPinger{})
	status, body := do(t, app, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"ok"`)

	app, _ = newTestApp(t, &stubFetcher{}, stubPinger{err: errors.New("down")})
	status, _ = do(t, app, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, status)
}
