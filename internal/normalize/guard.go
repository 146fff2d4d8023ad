package normalize

// Plausible credit limit range. Figures outside it are extraction noise
// (account numbers, years, cents columns) rather than limits.
const (
	MinCreditLimit = 100.0
	MaxCreditLimit = 10_000_000.0
)

// ClampLimit discards a credit limit outside [MinCreditLimit, MaxCreditLimit].
func ClampLimit(v *float64) *float64 {
	if v == nil {
		return nil
	}
	if *v < MinCreditLimit || *v > MaxCreditLimit {
		return nil
	}
	return Float(*v)
}

// NonNegative floors a monetary value at zero.
func NonNegative(v *float64) *float64 {
	if v == nil {
		return nil
	}
	if *v < 0 {
		return Float(0)
	}
	return Float(*v)
}

// LimitOrHighBalance keeps limit when present, otherwise substitutes the
// high balance if it passes the limit guardrail.
func LimitOrHighBalance(limit, high *float64) *float64 {
	if limit != nil {
		return limit
	}
	return ClampLimit(high)
}
