package parser

import (
	"testing"

	"github.com/insightdelivered/credit-report-parser/internal/models"
)

func TestTransUnionHistory(t *testing.T) {
	block := `Account Information
Balance / Past Due / Scheduled Payment / Rating
Aug 2024 $1,109 $0 $35 OK

2024-07 $900 / $0 / $35 / 30
Pay Status: Current Account
Sep 2024 $1 $0 $1 OK`

	rows := transUnionHistory(block)
	if len(rows) != 2 {
		t.Fatalf("rows: got %d, want 2", len(rows))
	}
	assertRow(t, rows[0], "2024-08", f(1109), f(0), f(35), "OK")
	assertRow(t, rows[1], "2024-07", f(900), f(0), f(35), "30")

	if got := transUnionHistory("Balance: $5\nAug 2024 $1 $0 $1 OK"); len(got) != 0 {
		t.Errorf("no header: got %d rows, want 0", len(got))
	}
}

func TestExperianHistory(t *testing.T) {
	block := `Account Info
Balance Histories
Date | Balance | Scheduled Payment | Paid
Aug 2024 | $450 | $25 | Yes
2024-07  $500  $25  No
Remarks: none
Jun 2024 | $1 | $1 | Yes`

	rows := experianHistory(block)
	if len(rows) != 2 {
		t.Fatalf("rows: got %d, want 2", len(rows))
	}
	assertRow(t, rows[0], "2024-08", f(450), nil, f(25), "Yes")
	assertRow(t, rows[1], "2024-07", f(500), nil, f(25), "No")
}

func TestEquifaxGrid(t *testing.T) {
	tests := []struct {
		name   string
		block  string
		months []string
		rating []string
	}{
		{
			name:   "header with skipped cells",
			block:  "Jan Feb Mar Apr May Jun Jul Aug Sep Oct Nov Dec\n2024 OK OK -- 30 OK OK",
			months: []string{"2024-01", "2024-02", "2024-04", "2024-05", "2024-06"},
			rating: []string{"OK", "OK", "30", "OK", "OK"},
		},
		{
			name:   "pipes without header use calendar order",
			block:  "2023 | OK | ND | 60",
			months: []string{"2023-01", "2023-03"},
			rating: []string{"OK", "60"},
		},
		{
			name:   "short header is ignored",
			block:  "Jan Dec\n2022: * C",
			months: []string{"2022-02"},
			rating: []string{"C"},
		},
		{
			name:  "no year rows",
			block: "Jan Feb Mar Apr May Jun Jul Aug Sep Oct Nov Dec\nnothing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := equifaxGrid(tt.block)
			if len(rows) != len(tt.months) {
				t.Fatalf("rows: got %d, want %d", len(rows), len(tt.months))
			}
			for i, r := range rows {
				if r.Month != tt.months[i] || r.Rating != tt.rating[i] {
					t.Errorf("row %d: got %s/%s, want %s/%s", i, r.Month, r.Rating, tt.months[i], tt.rating[i])
				}
				if r.Balance != nil || r.ScheduledPayment != nil {
					t.Errorf("row %d: grid rows carry no amounts", i)
				}
			}
		})
	}
}

func assertRow(t *testing.T, r models.PaymentHistoryRow, month string, bal, past, sched *float64, rating string) {
	t.Helper()
	if r.Month != month {
		t.Errorf("month: got %q, want %q", r.Month, month)
	}
	assertAmount(t, r.Balance, bal)
	assertAmount(t, r.PastDue, past)
	assertAmount(t, r.ScheduledPayment, sched)
	if r.Rating != rating {
		t.Errorf("rating: got %q, want %q", r.Rating, rating)
	}
}
