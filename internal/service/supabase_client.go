package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jjenkins/mateng/internal/model"
)

const (
	restPath             = "/rest/v1/"
	defaultClientTimeout = 15 * time.Second
	maxErrorBody         = 512
)

// applicationColumns is the projection requested for every lookup
var applicationColumns = []string{
	"form_no", "applicant_name", "father_name", "photo_url", "roll_number",
	"class", "exam_date", "exam_time", "exam_centre", "payment_verified",
}

// SupabaseClient reads applications from a hosted Supabase project through
// its PostgREST endpoint
type SupabaseClient struct {
	client  *http.Client
	baseURL string
	apiKey  string
	table   string
}

// NewSupabaseClient creates a client for the project at baseURL
func NewSupabaseClient(baseURL, apiKey, table string, timeout time.Duration) *SupabaseClient {
	if timeout <= 0 {
		timeout = defaultClientTimeout
	}
	return &SupabaseClient{
		client: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		table:   table,
	}
}

// applicationJSON represents a row in the PostgREST response
type applicationJSON struct {
	FormNo          string  `json:"form_no"`
	ApplicantName   *string `json:"applicant_name"`
	FatherName      *string `json:"father_name"`
	PhotoURL        *string `json:"photo_url"`
	RollNumber      *string `json:"roll_number"`
	Class           *string `json:"class"`
	ExamDate        *string `json:"exam_date"`
	ExamTime        *string `json:"exam_time"`
	ExamCentre      *string `json:"exam_centre"`
	PaymentVerified *bool   `json:"payment_verified"`
}

// FetchByFormNumber issues one equality-filtered select on form_no.
// The request is not retried.
func (c *SupabaseClient) FetchByFormNumber(ctx context.Context, formNumber string) ([]model.ApplicationRecord, error) {
	query := url.Values{}
	query.Set("select", strings.Join(applicationColumns, ","))
	query.Set("form_no", "eq."+formNumber)
	endpoint := c.baseURL + restPath + url.PathEscape(c.table) + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", c.table, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("unexpected status code %d from %s: %s", resp.StatusCode, c.table, strings.TrimSpace(string(body)))
	}

	var rows []applicationJSON
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", c.table, err)
	}

	records := make([]model.ApplicationRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, convertApplicationJSON(row))
	}

	return records, nil
}

func convertApplicationJSON(a applicationJSON) model.ApplicationRecord {
	return model.ApplicationRecord{
		FormNumber:      a.FormNo,
		ApplicantName:   deref(a.ApplicantName),
		FatherName:      deref(a.FatherName),
		PhotoURL:        deref(a.PhotoURL),
		RollNumber:      model.NullString(deref(a.RollNumber)),
		ExamClass:       deref(a.Class),
		ExamDate:        model.NullString(deref(a.ExamDate)),
		ExamTime:        model.NullString(deref(a.ExamTime)),
		ExamCentre:      model.NullString(deref(a.ExamCentre)),
		PaymentVerified: a.PaymentVerified != nil && *a.PaymentVerified,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
