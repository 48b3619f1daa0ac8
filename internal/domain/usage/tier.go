package usage

import "inkwell/internal/domain/identity"

// Tier is the {daily, monthly} token limit pair applied to an identity.
type Tier struct {
	Name         string
	DailyLimit   int64
	MonthlyLimit int64
}

// Default tier limits, in token units. Overridable through configuration.
const (
	DefaultGuestDailyLimit    = 15000
	DefaultGuestMonthlyLimit  = 50000
	DefaultMemberDailyLimit   = 30000
	DefaultMemberMonthlyLimit = 150000
)

// Tiers holds the two limit tiers. Membership is decided solely by whether
// the resolved identity is authenticated.
type Tiers struct {
	Guest  Tier
	Member Tier
}

// DefaultTiers returns the built-in limits.
func DefaultTiers() Tiers {
	return Tiers{
		Guest: Tier{
			Name:         "guest",
			DailyLimit:   DefaultGuestDailyLimit,
			MonthlyLimit: DefaultGuestMonthlyLimit,
		},
		Member: Tier{
			Name:         "member",
			DailyLimit:   DefaultMemberDailyLimit,
			MonthlyLimit: DefaultMemberMonthlyLimit,
		},
	}
}

// For returns the tier for the identity.
func (t Tiers) For(id identity.Identity) Tier {
	if id.IsAuthenticated() {
		return t.Member
	}
	return t.Guest
}
