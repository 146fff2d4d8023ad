package parser

import (
	"regexp"
	"testing"
)

func TestBalanceAmount(t *testing.T) {
	tests := []struct {
		name string
		text string
		want *float64
	}{
		{"plain label", "Balance: $1,109", f(1109)},
		{"skips high balance", "High Balance: $900\nBalance: $120", f(120)},
		{"skips highest balance", "Highest Balance: $3,200\nCurrent Balance $45.50", f(45.5)},
		{"only high balance", "Highest Balance: $3,200", nil},
		{"table header is not a figure", "Balance / Past Due / Scheduled Payment / Rating", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertAmount(t, balanceAmount(tt.text), tt.want)
		})
	}
}

func TestFirstAmount(t *testing.T) {
	never := func(string) *float64 { return nil }
	always := func(string) *float64 { return f(42) }
	label := amountOf(labelled(`Limit:?\s*([$\d,.]+)`))

	assertAmount(t, firstAmount("Limit: $7,500", never, label, always), f(7500))
	assertAmount(t, firstAmount("nothing", never, label, always), f(42))
	assertAmount(t, firstAmount("nothing", never, label), nil)
}

func TestLargestFigureAfter(t *testing.T) {
	strategy := largestFigureAfter(regexp.MustCompile(`(?i)Credit\s*Limit`), 1500)

	assertAmount(t, strategy("$99,999 first\nCredit Limit\nsee table\n$1,500 $12,000 $300"), f(12000))
	assertAmount(t, strategy("no label here $12,000"), nil)
}

func TestRecoverLimitFromLargestFigure(t *testing.T) {
	block := "Balance 2,000\nsomething 25,000\nother 9,999"

	tests := []struct {
		name    string
		text    string
		balance *float64
		want    *float64
	}{
		{"no balance known", block, nil, f(25000)},
		{"clears balance margin", block, f(2000), f(25000)},
		{"too close to balance", block, f(20000), nil},
		{"nothing large enough", "Balance 2,000\nother 9,999", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertAmount(t, recoverLimitFromLargestFigure(tt.text, tt.balance), tt.want)
		})
	}
}

func TestProbes(t *testing.T) {
	p := firstOf(
		labelled(`Scheduled Payment:?\s*([^\n]+)`),
		labelled(`Monthly Payment:?\s*([^\n]+)`),
	)
	if v, ok := p("Monthly Payment: $35"); !ok || v != "$35" {
		t.Errorf("got %q %v, want %q", v, ok, "$35")
	}
	if _, ok := p("Balance: $1"); ok {
		t.Error("expected no match")
	}
	if got := textField(labelled(`Terms:?\s*([^\n]*)`), "Terms:   "); got != nil {
		t.Errorf("blank value: got %q, want nil", *got)
	}
	if got := dateField(labelled(`Date Opened:?\s*([\w/\-]+)`), "Date Opened: 03/15/2019"); got == nil || got.String() != "2019-03-15" {
		t.Errorf("date field: got %v", got)
	}
}

func f(v float64) *float64 { return &v }

func assertAmount(t *testing.T, got, want *float64) {
	t.Helper()
	switch {
	case got == nil && want == nil:
	case got == nil || want == nil:
		t.Errorf("got %v, want %v", show(got), show(want))
	case *got != *want:
		t.Errorf("got %v, want %v", *got, *want)
	}
}

func show(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
