package parser

import (
	"regexp"

	"github.com/insightdelivered/credit-report-parser/internal/models"
	"github.com/insightdelivered/credit-report-parser/internal/normalize"
)

// TransUnionParser handles TransUnion annual credit reports.
//
// Tradelines are listed under "Satisfactory Accounts", one per
// "Account Information" heading with the creditor name on the line above:
//
//	CAPITAL ONE
//	Account Information
//	Balance: $1,109
//	Credit Limit: $35,000
//	Pay Status: Current Account
type TransUnionParser struct{}

func (p *TransUnionParser) BureauName() string {
	return "TransUnion"
}

const (
	tuAccounts      = "accounts"
	tuInquiries     = "inquiries"
	tuPromotional   = "promotional_inquiries"
	tuAccountReview = "account_review_inquiries"
)

var (
	tuAccountsHeading      = heading(`Satisfactory Accounts`)
	tuInquiriesHeading     = heading(`Inquiries`)
	tuPromotionalHeading   = heading(`Promotional Inquiries`)
	tuAccountReviewHeading = heading(`Account Review Inquiries`)
	tuPublicRecordsHeading = heading(`Public Records`)

	// Public records float anywhere in the report, so their heading closes
	// every section.
	tuRecordsEnd = []*regexp.Regexp{tuPublicRecordsHeading}

	transUnionLayout = NewLayout(
		Anchor{Name: tuAccounts, Pattern: tuAccountsHeading, Ends: tuRecordsEnd},
		Anchor{Name: tuInquiries, Pattern: tuInquiriesHeading, Ends: tuRecordsEnd},
		Anchor{Name: tuPromotional, Pattern: tuPromotionalHeading, Ends: tuRecordsEnd},
		Anchor{Name: tuAccountReview, Pattern: tuAccountReviewHeading, Ends: tuRecordsEnd},
	)

	transUnionBlocks = blockRule{
		anchor:     regexp.MustCompile(`(?i)^\s*Account Information\s*$`),
		lookBehind: 3,
		lookAhead:  20,
		notName:    fieldLike.MatchString,
	}
)

// Field probes, searched within the block body.
var (
	tuMonthlyPayment = labelled(`Monthly Payment:?\s*([$\d,.]+)`)
	tuDateOpened     = labelled(`Date Opened:?\s*([\w/\-]+)`)
	tuDateClosed     = labelled(`Date Closed:?\s*([\w/\-]+)`)
	tuResponsibility = labelled(`Responsibility:?\s*([^\n]+)`)
	tuAccountType    = labelled(`Account Type:?\s*([^\n]+)`)
	tuLoanType       = labelled(`Loan Type:?\s*([^\n]+)`)
	tuPayStatus      = labelled(`Pay Status:?\s*([^\n]+)`)
	tuTerms          = labelled(`Terms:?\s*([^\n]+)`)
	tuAccountNumber  = labelled(`(?:Account Number|Acct\s*#|Account\s*#)\s*:?\s*([^\n]+)`)
	tuRemarks        = labelled(`Remarks:?\s*([^\n]+)`)
	tuPastDue        = labelled(`Past Due:?\s*([$\d,.]+)`)
)

var tuCreditLimitLabel = regexp.MustCompile(`(?i)Credit\s*Limit`)

// tuCreditLimit is tried against the extended block, first success wins.
var tuCreditLimit = []amountStrategy{
	amountOf(labelled(`Credit Limit(?:\s*\(Hist\.\))?:?\s*([$\d,.]+)`)),
	amountOf(labelled(`Credit Limit[^\n]*?` + figure)),
	amountOf(labelled(`Credit Limit[^\n]*\n\s*` + figure)),
	amountOf(labelled(`Credit\s*Limit[\s:\-()A-Za-z/]*` + figure)),
	amountOf(labelled(`\bLimit\b[^\n]*?` + figure)),
	largestFigureAfter(tuCreditLimitLabel, 1500),
}

var tuHighBalanceHist = regexp.MustCompile(`(?i)High Balance\s*\(Hist\.\)[^\n]*`)

var tuHighBalance = []amountStrategy{
	func(text string) *float64 {
		line := tuHighBalanceHist.FindString(text)
		if line == "" {
			return nil
		}
		return normalize.LatestAmountFromLabel(line)
	},
	amountOf(labelled(`High Balance:?\s*([$\d,.]+)`)),
	amountOf(labelled(`High Balance[^\n]*?` + figure)),
	amountOf(labelled(`High Balance[^\n]*\n\s*` + figure)),
}

func (p *TransUnionParser) Parse(text string) (*models.Report, error) {
	report := models.NewReport(models.BureauTransUnion)
	report.PulledOn = pulledOn(text)

	secs := transUnionLayout.Segment(text)
	appendChunks(report, secs.Chunks())

	accounts, blocks := p.parseAccounts(secs.Get(tuAccounts))
	report.Accounts = append(report.Accounts, accounts...)

	hard, hardChunks := scanInquiries(secs.Get(tuInquiries), dateSlashLong, models.InquiryHard)
	promo, promoChunks := scanInquiries(secs.Get(tuPromotional), dateSlashLong, models.InquiryPromotional)
	review, reviewChunks := scanInquiries(secs.Get(tuAccountReview), dateSlashLong, models.InquiryAccountReview)
	report.Inquiries = append(report.Inquiries, hard...)
	report.Inquiries = append(report.Inquiries, promo...)
	report.Inquiries = append(report.Inquiries, review...)

	// Public records may sit anywhere in the report; the section ends at
	// whichever heading comes next.
	pr := FindSpan(text, tuPublicRecordsHeading, transUnionLayout.Patterns())
	records, recordChunks := publicRecords(pr.Slice(text))
	report.PublicRecords = append(report.PublicRecords, records...)

	appendChunks(report, blocks, hardChunks, promoChunks, reviewChunks, recordChunks)
	return report, nil
}

func (p *TransUnionParser) parseAccounts(section string) ([]models.Account, []string) {
	var (
		accounts []models.Account
		chunks   []string
	)
	for _, b := range transUnionBlocks.split(section) {
		chunks = append(chunks, b.Window())
		accounts = append(accounts, p.parseAccount(b))
	}
	return accounts, chunks
}

func (p *TransUnionParser) parseAccount(b accountBlock) models.Account {
	body := b.Body()
	ext := b.Extended()

	acct := models.Account{
		Creditor:       b.Above(),
		MaskedNumber:   textField(tuAccountNumber, body),
		Responsibility: textField(tuResponsibility, body),
		OpenedOn:       dateField(tuDateOpened, body),
		ClosedOn:       dateField(tuDateClosed, body),
		Terms:          textField(tuTerms, body),
		PaymentHistory: transUnionHistory(ext),
		Remarks:        []string{},
	}
	if r, ok := tuRemarks(body); ok {
		acct.Remarks = append(acct.Remarks, r)
	}

	balance := balanceAmount(body)
	limit := firstAmount(ext, tuCreditLimit...)
	if limit == nil {
		limit = recoverLimitFromLargestFigure(ext, balance)
	}
	high := normalize.NonNegative(firstAmount(ext, tuHighBalance...))

	acct.Balance = normalize.NonNegative(balance)
	acct.HighBalance = high
	acct.CreditLimit = normalize.LimitOrHighBalance(normalize.ClampLimit(limit), high)
	acct.ScheduledPayment = normalize.NonNegative(amountOf(tuMonthlyPayment)(body))
	acct.PastDue = normalize.NonNegative(amountOf(tuPastDue)(body))

	acct.Kind = kindOf(transUnionKinds, textField(tuAccountType, body), textField(tuLoanType, body))
	acct.Status = statusOf(transUnionStatuses, textField(tuPayStatus, body), acct.Remarks)
	return acct
}
