package cmd

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/jjenkins/mateng/internal/admitcard"
	"github.com/jjenkins/mateng/internal/model"
)

type mapFetcher map[string][]model.ApplicationRecord

func (m mapFetcher) FetchByFormNumber(ctx context.Context, formNumber string) ([]model.ApplicationRecord, error) {
	return m[formNumber], nil
}

func TestLookupConsoleCollaborators(t *testing.T) {
	var out, errOut bytes.Buffer
	fetcher := mapFetcher{
		"MM-1004": {{
			FormNumber:      "MM-1004",
			ApplicantName:   "Thoibi Devi",
			RollNumber:      model.NullString("R56"),
			ExamDate:        model.NullString("2025-03-09"),
			ExamTime:        model.NullString("10:00"),
			ExamCentre:      model.NullString("Imphal"),
			PaymentVerified: true,
		}},
	}
	session := admitcard.NewSession(fetcher, consoleNotifier{w: &errOut}, textPrinter{w: &out}, nil, nil)

	session.PerformLookup(context.Background(), "MM-0000")
	assert.Equal(t, "Not Found: "+admitcard.NoticeNotFound+"\n", errOut.String())

	session.PerformLookup(context.Background(), "MM-1004")
	session.Print()
	assert.Contains(t, out.String(), "Roll Number:    R56")
	assert.Contains(t, out.String(), "Exam Centre:    Imphal")
}

type failingFetcher struct {
	err error
}

func (f failingFetcher) FetchByFormNumber(ctx context.Context, formNumber string) ([]model.ApplicationRecord, error) {
	return nil, f.err
}

func TestLookup_WrapsTransportCause(t *testing.T) {
	var out, errOut bytes.Buffer
	cause := errors.New("dial tcp 10.0.0.5:5432: connection refused")

	err := lookup(context.Background(), failingFetcher{err: cause}, " MM-1004 ", false, &out, &errOut, zaptest.NewLogger(t))

	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	var terr *admitcard.TransportError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "MM-1004", terr.FormNumber)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, "Error: "+admitcard.NoticeError+"\n", errOut.String())
}

func TestLookup_Outcomes(t *testing.T) {
	fetcher := mapFetcher{
		"MM-1001": {{FormNumber: "MM-1001"}},
	}

	tests := []struct {
		name    string
		formNo  string
		wantErr error
		wantOut string
	}{
		{name: "empty", formNo: "  ", wantErr: admitcard.ErrValidation},
		{name: "not found", formNo: "MM-9999"},
		{name: "pending", formNo: "MM-1001", wantOut: admitcard.MessagePaymentPending + "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			err := lookup(context.Background(), fetcher, tt.formNo, true, &out, &errOut, zaptest.NewLogger(t))

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantOut == "":
				assert.ErrorContains(t, err, "no application found for MM-9999")
			default:
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantOut, out.String())
		})
	}
}
