package parser

import (
	"regexp"
	"strings"

	"github.com/insightdelivered/credit-report-parser/internal/models"
	"github.com/insightdelivered/credit-report-parser/internal/normalize"
)

// ExperianParser handles Experian annual credit reports. Each account card
// opens with an "Account Info" heading and carries a "Balance Histories"
// table:
//
//	Date | Balance | Scheduled Payment | Paid
//	Aug 2024 | $1,200 | $35 | Yes
type ExperianParser struct{}

func (p *ExperianParser) BureauName() string {
	return "Experian"
}

const (
	exAccounts      = "accounts"
	exPublicRecords = "public_records"
	exHard          = "hard_inquiries"
	exSoft          = "soft_inquiries"
)

var (
	experianLayout = NewLayout(
		Anchor{Name: exAccounts, Pattern: heading(`Accounts`)},
		Anchor{Name: exPublicRecords, Pattern: heading(`Public\s+Records`)},
		Anchor{Name: exHard, Pattern: regexp.MustCompile(`(?im)^[ \t]*Hard\s+Inquiries\b.*$`)},
		Anchor{Name: exSoft, Pattern: regexp.MustCompile(`(?im)^[ \t]*Soft\s+Inquiries\b.*$`)},
	)

	experianBlocks = blockRule{
		anchor:     regexp.MustCompile(`(?i)^\s*Account Info\s*$`),
		lookBehind: 5,
		notName:    fieldLike.MatchString,
		leadLabel:  regexp.MustCompile(`(?i)^Account Name\b`),
	}
)

var (
	exAccountName    = labelled(`Account Name:?\s*([^\n]+)`)
	exAccountType    = labelled(`Account Type:?\s*([^\n]+)`)
	exResponsibility = labelled(`Responsibility:?\s*([^\n]+)`)
	exDateOpened     = labelled(`Date Opened:?\s*([\w/\-]+)`)
	exDateClosed     = labelled(`Date Closed:?\s*([\w/\-]+)`)
	exStatus         = labelled(`\bStatus:?\s*([^\n]+)`)
	exMonthlyPayment = labelled(`Monthly Payment:?\s*([$\d,.]+)`)
	exCreditLimit    = labelled(`Credit Limit:?\s*([$\d,.]+)`)
	exHighestBalance = labelled(`Highest Balance:?\s*([$\d,.]+)`)
	exAccountNumber  = labelled(`(?:Account Number|Acct\s*#|Account\s*#)\s*:?\s*([^\n]+)`)
	exPastDue        = labelled(`(?:Amount )?Past Due:?\s*([$\d,.]+)`)
)

func (p *ExperianParser) Parse(text string) (*models.Report, error) {
	report := models.NewReport(models.BureauExperian)
	report.PulledOn = pulledOn(text)

	secs := experianLayout.Segment(text)
	appendChunks(report, secs.Chunks())

	accounts, blocks := p.parseAccounts(secs.Get(exAccounts))
	report.Accounts = append(report.Accounts, accounts...)

	hardSection := secs.Get(exHard)
	hard, hardChunks := scanInquiries(hardSection, dateAnyForm, models.InquiryHard)
	if len(hard) == 0 {
		hard, hardChunks = lookAheadInquiries(hardSection)
	}
	if len(hard) == 0 && strings.TrimSpace(hardSection) != "" {
		if inq, ok := placeholderInquiry(hardSection); ok {
			hard = append(hard, inq)
			hardChunks = append(hardChunks, inq.Name+" "+inq.Date.String())
		}
	}
	soft, softChunks := scanInquiries(secs.Get(exSoft), dateAnyForm, models.InquirySoft)
	report.Inquiries = append(report.Inquiries, hard...)
	report.Inquiries = append(report.Inquiries, soft...)

	records, recordChunks := publicRecords(secs.Get(exPublicRecords))
	report.PublicRecords = append(report.PublicRecords, records...)

	appendChunks(report, blocks, recordChunks, hardChunks, softChunks)
	return report, nil
}

func (p *ExperianParser) parseAccounts(section string) ([]models.Account, []string) {
	var (
		accounts []models.Account
		chunks   []string
	)
	for _, b := range experianBlocks.split(section) {
		chunks = append(chunks, b.Window())
		accounts = append(accounts, p.parseAccount(b))
	}
	return accounts, chunks
}

func (p *ExperianParser) parseAccount(b accountBlock) models.Account {
	body := b.Body()

	creditor, ok := exAccountName(body)
	if !ok {
		creditor = b.Above()
	}

	acct := models.Account{
		Creditor:       creditor,
		MaskedNumber:   textField(exAccountNumber, body),
		Responsibility: textField(exResponsibility, body),
		OpenedOn:       dateField(exDateOpened, body),
		ClosedOn:       dateField(exDateClosed, body),
		PaymentHistory: experianHistory(body),
		Remarks:        []string{},
	}

	high := normalize.NonNegative(amountOf(exHighestBalance)(body))
	limit := normalize.ClampLimit(amountOf(exCreditLimit)(body))

	acct.Balance = normalize.NonNegative(balanceAmount(body))
	acct.HighBalance = high
	acct.CreditLimit = normalize.LimitOrHighBalance(limit, high)
	acct.ScheduledPayment = normalize.NonNegative(amountOf(exMonthlyPayment)(body))
	acct.PastDue = normalize.NonNegative(amountOf(exPastDue)(body))

	acct.Kind = kindOf(experianKinds, textField(exAccountType, body), nil)
	acct.Status = statusOf(experianStatuses, textField(exStatus, body), nil)
	return acct
}
