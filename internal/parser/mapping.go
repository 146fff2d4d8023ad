package parser

import (
	"regexp"
	"strings"

	"github.com/insightdelivered/credit-report-parser/internal/models"
)

// rule maps an input to a variant when its predicate holds.
type rule[In any, Out any] struct {
	when func(In) bool
	then Out
}

// firstMatch returns the variant of the first rule that holds, else def.
func firstMatch[In any, Out any](rules []rule[In, Out], in In, def Out) Out {
	for _, r := range rules {
		if r.when(in) {
			return r.then
		}
	}
	return def
}

// typeText is the lowered account-type wording of a tradeline.
type typeText struct {
	account string
	loan    string
}

func (t typeText) either(words ...string) bool {
	return containsAny(t.account, words...) || containsAny(t.loan, words...)
}

func newTypeText(account, loan *string) typeText {
	return typeText{account: lowerOf(account), loan: lowerOf(loan)}
}

// statusText is the lowered status wording. hay is the status followed by
// any remarks or narrative codes.
type statusText struct {
	status string
	hay    string
}

func newStatusText(status *string, remarks []string) statusText {
	s := lowerOf(status)
	return statusText{
		status: s,
		hay:    strings.TrimSpace(s + " " + strings.ToLower(strings.Join(remarks, " "))),
	}
}

func lowerOf(s *string) string {
	if s == nil {
		return ""
	}
	return strings.ToLower(*s)
}

var (
	currentWord = regexp.MustCompile(`\bcurrent\b`)
	soldWord    = regexp.MustCompile(`\bsold\b`)
)

var (
	chargeoffWords  = []string{"charge-off", "charge off", "chargeoff"}
	delinquentWords = []string{"30", "60", "90", "120", "late", "delinquent"}
)

func hay(words ...string) func(statusText) bool {
	return func(s statusText) bool { return containsAny(s.hay, words...) }
}

func hayAll(words ...string) func(statusText) bool {
	return func(s statusText) bool { return containsAll(s.hay, words) }
}

var transUnionKinds = []rule[typeText, models.AccountKind]{
	{func(t typeText) bool { return t.either("revolving") }, models.KindRevolving},
	{func(t typeText) bool { return t.either("mortgage") }, models.KindMortgage},
	{func(t typeText) bool { return t.either("installment") }, models.KindInstallment},
	{func(t typeText) bool { return t.either("lease") }, models.KindLease},
	{func(t typeText) bool { return t.either("student") }, models.KindStudent},
	{func(t typeText) bool {
		return strings.HasPrefix(t.account, "open") || strings.Contains(t.account, "open account")
	}, models.KindOpen},
}

var transUnionStatuses = []rule[statusText, models.AccountStatus]{
	{func(s statusText) bool {
		return strings.Contains(s.hay, "current account") || currentWord.MatchString(s.status)
	}, models.StatusCurrent},
	{hayAll("paid", "closed"), models.StatusClosed},
	{hay("transferred"), models.StatusTransferred},
	{func(s statusText) bool { return soldWord.MatchString(s.hay) }, models.StatusSold},
	{hay("collection"), models.StatusCollection},
	{hay(chargeoffWords...), models.StatusChargeoff},
	{hay(delinquentWords...), models.StatusDelinquent},
	{hay("closed"), models.StatusClosed},
}

var experianKinds = []rule[typeText, models.AccountKind]{
	{func(t typeText) bool { return t.either("credit card") }, models.KindRevolving},
	{func(t typeText) bool { return t.either("mortgage", "conventional") }, models.KindMortgage},
	{func(t typeText) bool { return t.either("education", "student") }, models.KindStudent},
	{func(t typeText) bool { return t.either("lease") }, models.KindLease},
	{func(t typeText) bool { return t.either("auto", "installment", "personal loan", "loan") }, models.KindInstallment},
	{func(t typeText) bool { return strings.HasPrefix(t.account, "open") }, models.KindOpen},
}

var experianStatuses = []rule[statusText, models.AccountStatus]{
	{hayAll("open", "never late"), models.StatusCurrent},
	{hayAll("paid", "closed"), models.StatusClosed},
	{hay("transferred"), models.StatusTransferred},
	{hay("sold"), models.StatusSold},
	{hay("collection"), models.StatusCollection},
	{hay(chargeoffWords...), models.StatusChargeoff},
	{hay(delinquentWords...), models.StatusDelinquent},
	{hay("closed"), models.StatusClosed},
	{hay("paid"), models.StatusPaid},
}

var equifaxKinds = []rule[typeText, models.AccountKind]{
	{func(t typeText) bool { return t.either("revolving", "credit card") }, models.KindRevolving},
	{func(t typeText) bool { return t.either("mortgage", "home") }, models.KindMortgage},
	{func(t typeText) bool { return t.either("student", "education") }, models.KindStudent},
	{func(t typeText) bool { return t.either("lease") }, models.KindLease},
	{func(t typeText) bool { return t.either("installment", "auto", "loan") }, models.KindInstallment},
	{func(t typeText) bool { return strings.HasPrefix(t.account, "open") }, models.KindOpen},
}

var equifaxStatuses = []rule[statusText, models.AccountStatus]{
	{func(s statusText) bool {
		return strings.Contains(s.hay, "pays as agreed") ||
			(strings.Contains(s.status, "open") && strings.Contains(s.hay, "never late"))
	}, models.StatusCurrent},
	{hayAll("paid", "closed"), models.StatusClosed},
	// Both words present: sold wins.
	{hayAll("transfer", "sold"), models.StatusSold},
	{hay("transfer"), models.StatusTransferred},
	{hay("sold"), models.StatusSold},
	{hay("collection"), models.StatusCollection},
	{hay(chargeoffWords...), models.StatusChargeoff},
	{hay(delinquentWords...), models.StatusDelinquent},
	{hay("closed"), models.StatusClosed},
	{hay("paid"), models.StatusPaid},
}

// kindOf maps account-type wording to an AccountKind.
func kindOf(rules []rule[typeText, models.AccountKind], account, loan *string) models.AccountKind {
	return firstMatch(rules, newTypeText(account, loan), models.KindOther)
}

// statusOf maps status wording and remarks to an AccountStatus.
func statusOf(rules []rule[statusText, models.AccountStatus], status *string, remarks []string) models.AccountStatus {
	return firstMatch(rules, newStatusText(status, remarks), models.StatusOpen)
}
