// Package usage wires the quota ledger: the decide/record pair every
// AI-invoking operation goes through.
package usage

import (
	"context"
	"fmt"
	"time"

	"inkwell/internal/domain/identity"
	"inkwell/internal/domain/usage"
	"inkwell/internal/shared/biztime"
	"inkwell/internal/shared/logger"
)

// DecisionCache is an optional advisory cache for recent quota denials.
// It is never authoritative: a miss, a stale entry, or a failing cache must
// not change correctness, only cost.
type DecisionCache interface {
	GetDenial(ctx context.Context, scope identity.Scope) (*usage.Decision, error)
	SetDenial(ctx context.Context, scope identity.Scope, decision usage.Decision) error
}

// Status is the usage snapshot returned to clients.
type Status struct {
	Year         int   `json:"year"`
	Month        int   `json:"month"`
	Day          int   `json:"day"`
	DailyUsage   int64 `json:"daily_usage"`
	MonthlyUsage int64 `json:"monthly_usage"`
	RequestCount int64 `json:"request_count"`
	InputTokens  int64 `json:"input_tokens"`
	OutputTokens int64 `json:"output_tokens"`
}

// Ledger meters token usage per identity scope with lazy, timezone-anchored
// period rollover.
type Ledger struct {
	repo   usage.Repository
	cache  DecisionCache
	tiers  usage.Tiers
	clock  func() time.Time
	logger logger.Interface
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock overrides the time source. Tests use this to pin the current
// day.
func WithClock(clock func() time.Time) Option {
	return func(l *Ledger) {
		l.clock = clock
	}
}

// WithDecisionCache attaches an advisory denial cache.
func WithDecisionCache(cache DecisionCache) Option {
	return func(l *Ledger) {
		l.cache = cache
	}
}

// NewLedger creates a quota ledger.
func NewLedger(repo usage.Repository, tiers usage.Tiers, log logger.Interface, opts ...Option) *Ledger {
	l := &Ledger{
		repo:   repo,
		tiers:  tiers,
		clock:  biztime.NowUTC,
		logger: log,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Decide checks whether the identity may perform one more AI-invoking
// operation. Storage failures degrade to a fail-closed denial so
// quota-gated actions never run unmetered.
func (l *Ledger) Decide(ctx context.Context, id identity.Identity) usage.Decision {
	scope, ok := id.Scope()
	if !ok {
		return usage.Deny(usage.LimitNone, "no identity to meter")
	}

	now := l.clock()
	year, month, today := biztime.CivilDate(now)

	if l.cache != nil {
		if cached, err := l.cache.GetDenial(ctx, scope); err != nil {
			l.logger.Debugw("usage decision cache unavailable", "error", err)
		} else if cached != nil {
			return *cached
		}
	}

	record, err := l.repo.GetCurrent(ctx, scope, year, month)
	if err != nil {
		l.logger.Errorw("failed to load usage record, denying",
			"scope_kind", scope.Kind,
			"scope_id", scope.ID,
			"error", err)
		return usage.Deny(usage.LimitNone, "usage check unavailable, please retry")
	}

	var effectiveDaily, monthly int64
	if record != nil {
		effectiveDaily = record.EffectiveDailyUsage(today)
		monthly = record.MonthlyUsage()
	}

	tier := l.tiers.For(id)
	decision, allowed := usage.Evaluate(tier, effectiveDaily, monthly)
	if allowed {
		return decision
	}

	decision.Message = l.denialMessage(decision.Limit, now)

	if l.cache != nil {
		if err := l.cache.SetDenial(ctx, scope, decision); err != nil {
			l.logger.Debugw("failed to cache usage denial", "error", err)
		}
	}

	l.logger.Infow("usage limit reached",
		"scope_kind", scope.Kind,
		"scope_id", scope.ID,
		"tier", tier.Name,
		"limit", decision.Limit)

	return decision
}

// Record applies a usage delta for the identity. Invalid deltas are
// rejected before any storage access; an all-zero delta is a no-op with
// zero storage calls; storage failures are logged and swallowed because
// accounting must never fail the action it meters.
func (l *Ledger) Record(ctx context.Context, id identity.Identity, delta usage.Delta) error {
	if err := delta.Validate(); err != nil {
		return err
	}

	delta = delta.Normalized()
	if delta.IsZero() {
		return nil
	}

	scope, ok := id.Scope()
	if !ok {
		return fmt.Errorf("blocked identity has no usage scope")
	}

	year, month, today := biztime.CivilDate(l.clock())

	if err := l.repo.AddUsage(ctx, scope, year, month, today, delta); err != nil {
		// Best-effort: a lost increment is acceptable, a blocked user
		// action is not.
		l.logger.Errorw("failed to record usage",
			"scope_kind", scope.Kind,
			"scope_id", scope.ID,
			"total_tokens", delta.TotalTokens,
			"error", err)
	}

	return nil
}

// Status returns the identity's current usage snapshot. A missing record
// reads as all zeroes for the current period.
func (l *Ledger) Status(ctx context.Context, id identity.Identity) (*Status, error) {
	scope, ok := id.Scope()
	if !ok {
		return nil, fmt.Errorf("blocked identity has no usage scope")
	}

	now := l.clock()
	year, month, today := biztime.CivilDate(now)

	record, err := l.repo.GetCurrent(ctx, scope, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to load usage record: %w", err)
	}

	status := &Status{
		Year:  year,
		Month: int(month),
		Day:   today,
	}
	if record != nil {
		status.DailyUsage = record.EffectiveDailyUsage(today)
		status.MonthlyUsage = record.MonthlyUsage()
		status.RequestCount = record.RequestCount()
		status.InputTokens = record.InputTokens()
		status.OutputTokens = record.OutputTokens()
	}

	return status, nil
}

func (l *Ledger) denialMessage(limit usage.LimitKind, now time.Time) string {
	switch limit {
	case usage.LimitDaily:
		reset := biztime.FormatInBizTimezone(biztime.StartOfNextDayUTC(now), "Jan 2 15:04 MST")
		return fmt.Sprintf("daily token limit reached, resets at %s", reset)
	case usage.LimitMonthly:
		reset := biztime.FormatInBizTimezone(biztime.StartOfNextMonthUTC(now), "Jan 2")
		return fmt.Sprintf("monthly token limit reached, resets on %s", reset)
	default:
		return "usage limit reached"
	}
}
