// Package summary derives portfolio metrics from a report's tradelines.
package summary

import (
	"slices"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/credit-report-parser/internal/models"
)

var autoWords = []string{"auto", "vehicle", "car"}

// Compute aggregates the accounts. Only open or current revolving accounts
// with a positive credit limit count towards limits, balances, utilization
// and open cards.
func Compute(accounts []models.Account) models.Summary {
	var s models.Summary
	limit := decimal.Zero
	balance := decimal.Zero

	for _, a := range accounts {
		switch a.Kind {
		case models.KindMortgage:
			s.Mortgages++
		case models.KindStudent:
			s.StudentLoans++
		case models.KindInstallment:
			if isAutoLoan(a) {
				s.AutoLoans++
			}
		}

		if !countsTowardsUtilization(a) {
			continue
		}
		s.OpenCards++
		limit = limit.Add(decimal.NewFromFloat(*a.CreditLimit))
		balance = balance.Add(decimal.NewFromFloat(currentOrLatestBalance(a)))
	}

	s.TotalRevolvingLimit = limit.InexactFloat64()
	s.TotalRevolvingBalance = balance.InexactFloat64()
	if limit.IsPositive() {
		u := roundTenths(balance.InexactFloat64() / limit.InexactFloat64())
		s.Utilization = &u
	}
	return s
}

// roundTenths rounds the exact binary value of r to one decimal, half to
// even. 0.15 is stored just below 0.15 and so rounds to 0.1.
func roundTenths(r float64) float64 {
	d, err := decimal.NewFromString(strconv.FormatFloat(r, 'f', 40, 64))
	if err != nil {
		return r
	}
	return d.RoundBank(1).InexactFloat64()
}

// Apply stores the computed summary on the report.
func Apply(r *models.Report) {
	r.Summary = Compute(r.Accounts)
}

func countsTowardsUtilization(a models.Account) bool {
	if a.Kind != models.KindRevolving {
		return false
	}
	if a.Status != models.StatusOpen && a.Status != models.StatusCurrent {
		return false
	}
	return a.CreditLimit != nil && *a.CreditLimit > 0
}

func isAutoLoan(a models.Account) bool {
	hay := strings.ToLower(a.Creditor + " " + strings.Join(a.Remarks, " "))
	for _, w := range autoWords {
		if strings.Contains(hay, w) {
			return true
		}
	}
	return false
}

// currentOrLatestBalance is the reported balance, else the balance of the
// most recent history month that has one, else zero.
func currentOrLatestBalance(a models.Account) float64 {
	if a.Balance != nil {
		return *a.Balance
	}
	if b := latestHistoryBalance(a.PaymentHistory); b != nil {
		return *b
	}
	return 0
}

func latestHistoryBalance(rows []models.PaymentHistoryRow) *float64 {
	sorted := slices.Clone(rows)
	slices.SortStableFunc(sorted, func(x, y models.PaymentHistoryRow) int {
		return strings.Compare(y.Month, x.Month)
	})
	for _, r := range sorted {
		if r.Balance != nil {
			return r.Balance
		}
	}
	return nil
}
