package parser

import (
	"regexp"
	"strings"

	"github.com/insightdelivered/credit-report-parser/internal/models"
	"github.com/insightdelivered/credit-report-parser/internal/normalize"
)

// EquifaxParser handles Equifax credit reports. Tradelines under
// "Credit Accounts" are labelled field lists starting near an
// "Account Number" line, followed by a yearly payment grid and narrative
// codes.
type EquifaxParser struct{}

func (p *EquifaxParser) BureauName() string {
	return "Equifax"
}

const (
	eqSummary       = "summary"
	eqPersonal      = "personal_information"
	eqAccounts      = "credit_accounts"
	eqInquiries     = "inquiries"
	eqPublicRecords = "public_records"
)

var (
	equifaxLayout = NewLayout(
		Anchor{Name: eqSummary, Pattern: heading(`Your Credit Report Summary`)},
		Anchor{Name: eqPersonal, Pattern: heading(`Personal Information`)},
		Anchor{Name: eqAccounts, Pattern: heading(`Credit Accounts`)},
		Anchor{Name: eqInquiries, Pattern: heading(`Inquiries`)},
		Anchor{Name: eqPublicRecords, Pattern: heading(`Public Records`)},
	)

	equifaxBlocks = blockRule{
		anchor:      regexp.MustCompile(`(?i)Account\s*Number`),
		lookBehind:  8,
		notName:     eqLabelLike.MatchString,
		labelsAbove: true,
	}

	// eqLabelLike rejects field lines when looking for the creditor name.
	eqLabelLike = regexp.MustCompile(`(?i):|Date|Balance|Status|Credit|Loan|Owner|Responsibil|Narrative|Payment|Account Type|High`)
)

var (
	eqAccountNumber    = labelled(`Account\s*Number\s*:?\s*([^\n]+)`)
	eqOwner            = labelled(`(?:Owner|Responsibility)\s*:?\s*([^\n]+)`)
	eqDateOpened       = labelled(`Date\s*Opened\s*:?\s*([\w/\-]+)`)
	eqDateClosed       = labelled(`Date\s*Closed\s*:?\s*([\w/\-]+)`)
	eqCreditLimit      = labelled(`Credit\s*Limit\s*:?\s*([$\d,.]+)`)
	eqHighCredit       = labelled(`High\s*Credit\s*:?\s*([$\d,.]+)`)
	eqLoanType         = labelled(`(?:Loan|Account)\s*Type\s*:?\s*([^\n]+)`)
	eqStatus           = labelled(`\bStatus\s*:?\s*([^\n]+)`)
	eqNarrative        = labelled(`Narrative\s*Codes?(?:\(s\))?\s*:?\s*([^\n]+)`)
	eqScheduledPayment = firstOf(
		labelled(`Scheduled\s*Payment(?:\s*Amount)?\s*:?\s*([$\d,.]+)`),
		labelled(`Monthly\s*Payment\s*:?\s*([$\d,.]+)`),
	)
	eqPastDue = labelled(`(?:Amount\s*)?Past\s*Due\s*:?\s*([$\d,.]+)`)

	eqNarrativeSplit = regexp.MustCompile(`[,;/]`)
)

func (p *EquifaxParser) Parse(text string) (*models.Report, error) {
	report := models.NewReport(models.BureauEquifax)
	report.PulledOn = pulledOn(text)

	secs := equifaxLayout.Segment(text)
	appendChunks(report, secs.Chunks())

	for k, v := range personInfo(secs.Get(eqPersonal)) {
		report.Person[k] = v
	}

	accounts, blocks := p.parseAccounts(secs.Get(eqAccounts))
	report.Accounts = append(report.Accounts, accounts...)

	inquiries, inquiryChunks := scanInquiries(secs.Get(eqInquiries), dateSlashLong, models.InquiryHard)
	report.Inquiries = append(report.Inquiries, inquiries...)

	records, recordChunks := publicRecords(secs.Get(eqPublicRecords))
	report.PublicRecords = append(report.PublicRecords, records...)

	appendChunks(report, blocks, inquiryChunks, recordChunks)
	return report, nil
}

func (p *EquifaxParser) parseAccounts(section string) ([]models.Account, []string) {
	var (
		accounts []models.Account
		chunks   []string
	)
	for _, b := range equifaxBlocks.split(section) {
		chunks = append(chunks, b.Window())
		accounts = append(accounts, p.parseAccount(b))
	}
	return accounts, chunks
}

func (p *EquifaxParser) parseAccount(b accountBlock) models.Account {
	body := b.Body()

	acct := models.Account{
		Creditor:       b.Above(),
		MaskedNumber:   textField(eqAccountNumber, body),
		Responsibility: textField(eqOwner, body),
		OpenedOn:       dateField(eqDateOpened, body),
		ClosedOn:       dateField(eqDateClosed, body),
		PaymentHistory: equifaxGrid(body),
		Remarks:        narratives(body),
	}

	high := normalize.NonNegative(amountOf(eqHighCredit)(body))
	limit := normalize.ClampLimit(amountOf(eqCreditLimit)(body))

	acct.Balance = normalize.NonNegative(balanceAmount(body))
	acct.HighBalance = high
	acct.CreditLimit = normalize.LimitOrHighBalance(limit, high)
	acct.ScheduledPayment = normalize.NonNegative(amountOf(eqScheduledPayment)(body))
	acct.PastDue = normalize.NonNegative(amountOf(eqPastDue)(body))

	acct.Kind = kindOf(equifaxKinds, textField(eqLoanType, body), nil)
	acct.Status = statusOf(equifaxStatuses, textField(eqStatus, body), acct.Remarks)
	return acct
}

// narratives splits the narrative code line into individual remarks.
func narratives(body string) []string {
	out := []string{}
	line, ok := eqNarrative(body)
	if !ok {
		return out
	}
	for _, part := range eqNarrativeSplit.Split(line, -1) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
