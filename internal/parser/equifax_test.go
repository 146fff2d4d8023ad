package parser

import (
	"testing"

	"github.com/insightdelivered/credit-report-parser/internal/models"
)

const equifaxSample = `Your Credit Report Summary
Date of Report: Oct 1, 2024
Personal Information
Name: JANE Q DOE
Also Known As: JANE DOE
Date of Birth: 01/02/1980
Address: 1 MAIN ST, SPRINGFIELD
Previous Address: 9 OLD RD, SHELBYVILLE
Employer: ACME CORP
Credit Accounts
CHASE BANK USA
Account Number: xxxx1234
Owner: Individual
Loan Type: Credit Card
Date Opened: 05/01/2016
Balance: $250
Credit Limit: $1,000
High Credit: $900
Scheduled Payment Amount: $40
Status: Open
Narrative Code(s): Pays as agreed; Credit card
Jan Feb Mar Apr May Jun Jul Aug Sep Oct Nov Dec
2024 OK OK -- 30 OK OK
WELLS FARGO HOME MTG
Account Number: 5555
Loan Type: Conventional real estate mortgage
Balance: $180,000
High Credit: $220,000
Amount Past Due: $1,200
Status: Closed
Narrative Code(s): Transferred to another lender / Sold
Inquiries
DISCOVER 3/2/2024
NO DATE LENDER
Public Records
None reported
`

func TestEquifaxParser_Parse(t *testing.T) {
	p := &EquifaxParser{}
	r, err := p.Parse(equifaxSample)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Bureau != models.BureauEquifax {
		t.Errorf("bureau: got %q", r.Bureau)
	}
	if r.PulledOn == nil || r.PulledOn.String() != "2024-10-01" {
		t.Errorf("pulled on: got %v", r.PulledOn)
	}
	if r.Person["name"] != "JANE Q DOE" {
		t.Errorf("person name: got %v", r.Person["name"])
	}
	if r.Person["date_of_birth"] != "1980-01-02" {
		t.Errorf("date of birth: got %v", r.Person["date_of_birth"])
	}

	if len(r.Accounts) != 2 {
		t.Fatalf("accounts: got %d, want 2", len(r.Accounts))
	}

	a := r.Accounts[0]
	if a.Creditor != "CHASE BANK USA" {
		t.Errorf("creditor: got %q", a.Creditor)
	}
	if a.MaskedNumber == nil || *a.MaskedNumber != "xxxx1234" {
		t.Errorf("masked number: got %v", a.MaskedNumber)
	}
	if a.Kind != models.KindRevolving {
		t.Errorf("kind: got %q", a.Kind)
	}
	if a.Status != models.StatusCurrent {
		t.Errorf("status: got %q", a.Status)
	}
	if a.Responsibility == nil || *a.Responsibility != "Individual" {
		t.Errorf("responsibility: got %v", a.Responsibility)
	}
	assertAmount(t, a.Balance, f(250))
	assertAmount(t, a.CreditLimit, f(1000))
	assertAmount(t, a.HighBalance, f(900))
	assertAmount(t, a.ScheduledPayment, f(40))
	if len(a.Remarks) != 2 || a.Remarks[0] != "Pays as agreed" {
		t.Errorf("remarks: got %v", a.Remarks)
	}
	if len(a.PaymentHistory) != 5 {
		t.Fatalf("history: got %d rows, want 5", len(a.PaymentHistory))
	}
	if a.PaymentHistory[2].Month != "2024-04" || a.PaymentHistory[2].Rating != "30" {
		t.Errorf("history[2]: got %+v", a.PaymentHistory[2])
	}

	b := r.Accounts[1]
	if b.Creditor != "WELLS FARGO HOME MTG" {
		t.Errorf("creditor: got %q", b.Creditor)
	}
	if b.Kind != models.KindMortgage {
		t.Errorf("kind: got %q", b.Kind)
	}
	if b.Status != models.StatusSold {
		t.Errorf("status: got %q, want %q", b.Status, models.StatusSold)
	}
	assertAmount(t, b.CreditLimit, f(220000))
	assertAmount(t, b.PastDue, f(1200))
	if len(b.PaymentHistory) != 0 {
		t.Errorf("history: got %d rows, want 0", len(b.PaymentHistory))
	}

	if len(r.Inquiries) != 1 || r.Inquiries[0].Name != "DISCOVER" {
		t.Errorf("inquiries: got %+v", r.Inquiries)
	}
	if len(r.PublicRecords) != 0 {
		t.Errorf("public records: got %+v", r.PublicRecords)
	}
}

func TestEquifaxParser_LabelsAboveAccountNumber(t *testing.T) {
	text := `Credit Accounts
CHASE BANK USA
Loan Type: Credit Card
Status: Pays as agreed
Account Number: xxxx1234
Balance: $250
Credit Limit: $1,000
WELLS FARGO AUTO
Loan Type: Auto Loan
Status: Closed
Account Number: 5555
Balance: $9,000
`
	r, _ := (&EquifaxParser{}).Parse(text)
	if len(r.Accounts) != 2 {
		t.Fatalf("accounts: got %d, want 2", len(r.Accounts))
	}

	tests := []struct {
		creditor string
		kind     models.AccountKind
		status   models.AccountStatus
		balance  *float64
		limit    *float64
	}{
		{"CHASE BANK USA", models.KindRevolving, models.StatusCurrent, f(250), f(1000)},
		{"WELLS FARGO AUTO", models.KindInstallment, models.StatusClosed, f(9000), nil},
	}
	for i, tt := range tests {
		t.Run(tt.creditor, func(t *testing.T) {
			a := r.Accounts[i]
			if a.Creditor != tt.creditor {
				t.Errorf("creditor: got %q, want %q", a.Creditor, tt.creditor)
			}
			if a.Kind != tt.kind {
				t.Errorf("kind: got %q, want %q", a.Kind, tt.kind)
			}
			if a.Status != tt.status {
				t.Errorf("status: got %q, want %q", a.Status, tt.status)
			}
			assertAmount(t, a.Balance, tt.balance)
			assertAmount(t, a.CreditLimit, tt.limit)
		})
	}
}
