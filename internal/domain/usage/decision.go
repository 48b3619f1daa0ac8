package usage

// LimitKind identifies which limit a denial was based on.
type LimitKind string

const (
	LimitNone    LimitKind = ""
	LimitDaily   LimitKind = "daily"
	LimitMonthly LimitKind = "monthly"
)

// Decision is the outcome of a quota check. A denial is a business
// decision, not an error: callers block the AI action but nothing else.
type Decision struct {
	Allowed bool      `json:"allowed"`
	Limit   LimitKind `json:"limit,omitempty"`
	Message string    `json:"message,omitempty"`
}

// Allow returns a permitting decision.
func Allow() Decision {
	return Decision{Allowed: true}
}

// Deny returns a denying decision naming the limit that was hit.
func Deny(limit LimitKind, message string) Decision {
	return Decision{Allowed: false, Limit: limit, Message: message}
}

// Evaluate applies the tier limits to the effective counters. The daily
// limit is checked before the monthly one.
func Evaluate(tier Tier, effectiveDaily, monthlyUsage int64) (Decision, bool) {
	if effectiveDaily >= tier.DailyLimit {
		return Decision{Allowed: false, Limit: LimitDaily}, false
	}
	if monthlyUsage >= tier.MonthlyLimit {
		return Decision{Allowed: false, Limit: LimitMonthly}, false
	}
	return Allow(), true
}
