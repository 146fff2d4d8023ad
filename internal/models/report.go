package models

import (
	"encoding/json"
	"time"
)

// Bureau identifies one of the supported credit-report layouts.
type Bureau string

const (
	BureauTransUnion Bureau = "transunion"
	BureauExperian   Bureau = "experian"
	BureauEquifax    Bureau = "equifax"
)

// Bureaus lists the known bureaus in tie-break priority order.
var Bureaus = []Bureau{BureauTransUnion, BureauExperian, BureauEquifax}

// AccountKind is the closed set of tradeline categories.
type AccountKind string

const (
	KindRevolving   AccountKind = "revolving"
	KindMortgage    AccountKind = "mortgage"
	KindInstallment AccountKind = "installment"
	KindOpen        AccountKind = "open"
	KindLease       AccountKind = "lease"
	KindStudent     AccountKind = "student"
	KindOther       AccountKind = "other"
)

// AccountStatus is the closed set of tradeline states.
type AccountStatus string

const (
	StatusOpen        AccountStatus = "open"
	StatusClosed      AccountStatus = "closed"
	StatusTransferred AccountStatus = "transferred"
	StatusSold        AccountStatus = "sold"
	StatusPaid        AccountStatus = "paid"
	StatusCollection  AccountStatus = "collection"
	StatusChargeoff   AccountStatus = "chargeoff"
	StatusDelinquent  AccountStatus = "delinquent"
	StatusCurrent     AccountStatus = "current"
)

// InquiryKind distinguishes credit pulls.
type InquiryKind string

const (
	InquiryHard          InquiryKind = "hard"
	InquirySoft          InquiryKind = "soft"
	InquiryPromotional   InquiryKind = "promotional"
	InquiryAccountReview InquiryKind = "account_review"
)

// Public record type tags.
const (
	RecordBankruptcy  = "bankruptcy"
	RecordLien        = "lien"
	RecordJudgment    = "judgment"
	RecordForeclosure = "foreclosure"
	RecordGeneric     = "generic"
)

// Date is a calendar day. It marshals as "YYYY-MM-DD".
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

// NewDate truncates t to its calendar day.
func NewDate(t time.Time) Date {
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// DateOf returns a pointer to the calendar day of t, or nil when t is nil.
func DateOf(t *time.Time) *Date {
	if t == nil {
		return nil
	}
	d := NewDate(*t)
	return &d
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(dateLayout))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// PaymentHistoryRow is one month of an account's payment or balance history.
type PaymentHistoryRow struct {
	Month            string   `json:"month"` // YYYY-MM
	Balance          *float64 `json:"balance"`
	ScheduledPayment *float64 `json:"scheduled_payment"`
	PastDue          *float64 `json:"past_due"`
	Rating           string   `json:"rating"`
}

// Account is a single tradeline.
type Account struct {
	Creditor         string              `json:"creditor"`
	MaskedNumber     *string             `json:"masked_number"`
	Kind             AccountKind         `json:"kind"`
	Status           AccountStatus       `json:"status"`
	Responsibility   *string             `json:"responsibility"`
	OpenedOn         *Date               `json:"opened_on"`
	ClosedOn         *Date               `json:"closed_on"`
	CreditLimit      *float64            `json:"credit_limit"`
	HighBalance      *float64            `json:"high_balance"`
	Balance          *float64            `json:"balance"`
	ScheduledPayment *float64            `json:"scheduled_payment"`
	PastDue          *float64            `json:"past_due"`
	Terms            *string             `json:"terms,omitempty"`
	PaymentHistory   []PaymentHistoryRow `json:"payment_history"`
	Remarks          []string            `json:"remarks"`
}

// Inquiry is a credit pull. Date is always set.
type Inquiry struct {
	Name string      `json:"name"`
	Kind InquiryKind `json:"kind"`
	Date Date        `json:"date"`
}

// PublicRecord is a bankruptcy, lien, judgment or similar court record.
type PublicRecord struct {
	Type    string         `json:"type"`
	Date    *Date          `json:"date"`
	Details map[string]any `json:"details"`
}

// Summary holds portfolio metrics derived from the account list.
type Summary struct {
	TotalRevolvingLimit   float64  `json:"total_revolving_limit"`
	TotalRevolvingBalance float64  `json:"total_revolving_balance"`
	Utilization           *float64 `json:"utilization"`
	OpenCards             int      `json:"open_cards"`
	Mortgages             int      `json:"mortgages"`
	StudentLoans          int      `json:"student_loans"`
	AutoLoans             int      `json:"auto_loans"`
}

// Report is the normalized result for one credit-report document.
type Report struct {
	Bureau        Bureau         `json:"bureau"`
	BureauScores  map[Bureau]int `json:"bureau_scores,omitempty"`
	PulledOn      *Date          `json:"pulled_on"`
	Person        map[string]any `json:"person"`
	Accounts      []Account      `json:"accounts"`
	Inquiries     []Inquiry      `json:"inquiries"`
	PublicRecords []PublicRecord `json:"public_records"`
	Summary       Summary        `json:"summary"`
	RawChunks     []string       `json:"raw_chunks"`
}

// NewReport returns an empty report with non-nil collections so that
// JSON output carries [] and {} instead of null.
func NewReport(bureau Bureau) *Report {
	return &Report{
		Bureau:        bureau,
		Person:        map[string]any{},
		Accounts:      []Account{},
		Inquiries:     []Inquiry{},
		PublicRecords: []PublicRecord{},
		RawChunks:     []string{},
	}
}
