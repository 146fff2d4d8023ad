package writer

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/insightdelivered/credit-report-parser/internal/models"
)

func amt(v float64) *float64 { return &v }

func sampleReport() *models.Report {
	r := models.NewReport(models.BureauTransUnion)
	pulled := models.NewDate(time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC))
	r.PulledOn = &pulled
	number := "5178****"
	r.Accounts = []models.Account{
		{
			Creditor:     "CAPITAL ONE",
			MaskedNumber: &number,
			Kind:         models.KindRevolving,
			Status:       models.StatusCurrent,
			OpenedOn:     &pulled,
			CreditLimit:  amt(35000),
			Balance:      amt(1109),
			Remarks:      []string{"Account in good standing", "Paid as agreed"},
		},
		{
			Creditor: "SANTANDER",
			Kind:     models.KindInstallment,
			Status:   models.StatusPaid,
			Balance:  amt(12000),
		},
	}
	r.Inquiries = []models.Inquiry{
		{Name: "ACME AUTO", Kind: models.InquiryHard, Date: pulled},
	}
	r.Summary = models.Summary{
		TotalRevolvingLimit:   35000,
		TotalRevolvingBalance: 1109,
		Utilization:           amt(0),
		OpenCards:             1,
	}
	return r
}

func TestCSVWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{IncludeHeader: true}
	if err := w.Write(&buf, sampleReport()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()

	if !strings.Contains(output, "# Bureau,transunion") {
		t.Error("expected bureau metadata header")
	}
	if !strings.Contains(output, "# Pulled On,2024-10-01") {
		t.Error("expected pulled-on metadata")
	}
	if !strings.Contains(output, strings.Join(csvColumns, ",")) {
		t.Error("expected column headers")
	}
	if !strings.Contains(output, "CAPITAL ONE,5178****,revolving,current,2024-10-01,,35000.00,,1109.00,,,Account in good standing; Paid as agreed") {
		t.Errorf("unexpected first account row in:\n%s", output)
	}

	lines := strings.Split(strings.TrimSpace(output), "\n")
	// 5 metadata lines + 1 header + 2 accounts = 8
	if len(lines) != 8 {
		t.Errorf("expected 8 lines, got %d", len(lines))
	}
}

func TestCSVWriter_WriteNoHeader(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{IncludeHeader: false}
	if err := w.Write(&buf, sampleReport()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()

	if strings.Contains(output, "# Bureau") {
		t.Error("should not have bureau metadata when header=false")
	}
	if !strings.HasPrefix(output, "Creditor,Account Number") {
		t.Errorf("expected column headers first, got %q", output)
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		input    *float64
		expected string
	}{
		{amt(25.99), "25.99"},
		{amt(1234.56), "1234.56"},
		{amt(0), "0.00"},
		{nil, ""},
	}

	for _, tt := range tests {
		got := formatAmount(tt.input)
		if got != tt.expected {
			t.Errorf("formatAmount(%v): got %q, want %q", tt.input, got, tt.expected)
		}
	}
}
