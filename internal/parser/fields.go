package parser

import (
	"regexp"
	"strings"

	"github.com/insightdelivered/credit-report-parser/internal/models"
	"github.com/insightdelivered/credit-report-parser/internal/normalize"
)

// probe pulls one raw field value out of a block of text.
type probe func(text string) (string, bool)

// labelled compiles a case-insensitive pattern whose first group is the value.
func labelled(pattern string) probe {
	re := regexp.MustCompile(`(?i)` + pattern)
	return func(text string) (string, bool) {
		m := re.FindStringSubmatch(text)
		if m == nil {
			return "", false
		}
		v := strings.TrimSpace(m[1])
		return v, v != ""
	}
}

// firstOf tries each probe in order.
func firstOf(probes ...probe) probe {
	return func(text string) (string, bool) {
		for _, p := range probes {
			if v, ok := p(text); ok {
				return v, true
			}
		}
		return "", false
	}
}

// textField returns the probed value, or nil.
func textField(p probe, text string) *string {
	if v, ok := p(text); ok {
		return &v
	}
	return nil
}

// dateField returns the probed value parsed as a date, or nil.
func dateField(p probe, text string) *models.Date {
	v, ok := p(text)
	if !ok {
		return nil
	}
	return models.DateOf(normalize.ParseDate(v))
}

// amountStrategy is one way of finding a figure in a block.
type amountStrategy func(text string) *float64

// amountOf parses a probed value as an amount.
func amountOf(p probe) amountStrategy {
	return func(text string) *float64 {
		v, ok := p(text)
		if !ok {
			return nil
		}
		return normalize.ParseAmount(v)
	}
}

// firstAmount runs strategies in order and keeps the first figure found.
func firstAmount(text string, strategies ...amountStrategy) *float64 {
	for _, s := range strategies {
		if v := s(text); v != nil {
			return v
		}
	}
	return nil
}

// figure matches a currency amount such as "$35,000" or "1109.50".
const figure = `(\$?\s*\d[\d,]*(?:\.\d+)?)`

var (
	figureRe = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)

	balanceLabel = regexp.MustCompile(`(?i)(?:(\w+)[ \t]+)?\bBalance[ \t]*:?\s*` + figure)
)

// balanceAmount finds the first "Balance" figure that is not a high or
// highest balance.
func balanceAmount(text string) *float64 {
	for _, m := range balanceLabel.FindAllStringSubmatch(text, -1) {
		switch strings.ToLower(m[1]) {
		case "high", "highest":
			continue
		}
		if v := normalize.ParseAmount(m[2]); v != nil {
			return v
		}
	}
	return nil
}

// largestFigure returns the largest amount in text, or nil.
func largestFigure(text string) *float64 {
	var best *float64
	for _, tok := range figureRe.FindAllString(text, -1) {
		v := normalize.ParseAmount(tok)
		if v == nil {
			continue
		}
		if best == nil || *v > *best {
			best = v
		}
	}
	return best
}

// largestFigureAfter returns the largest amount within window bytes after
// the first match of label.
func largestFigureAfter(label *regexp.Regexp, window int) amountStrategy {
	return func(text string) *float64 {
		loc := label.FindStringIndex(text)
		if loc == nil {
			return nil
		}
		end := loc[0] + window
		if end > len(text) {
			end = len(text)
		}
		return largestFigure(text[loc[0]:end])
	}
}

// recoverLimitFromLargestFigure guesses a missing credit limit: the largest
// figure in the block of at least 10,000 that is also at least
// max(1.5 x balance, 1000). Used only when every labelled strategy failed.
func recoverLimitFromLargestFigure(text string, balance *float64) *float64 {
	var best *float64
	for _, tok := range figureRe.FindAllString(text, -1) {
		v := normalize.ParseAmount(tok)
		if v == nil || *v < 10_000 {
			continue
		}
		if best == nil || *v > *best {
			best = v
		}
	}
	if best == nil {
		return nil
	}
	if balance != nil && *best < max(*balance*1.5, 1000) {
		return nil
	}
	return best
}
