package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/redis/go-redis/v9"

	"inkwell/internal/domain/identity"
	"inkwell/internal/domain/usage"
)

const (
	usageDenialPrefix    = "usage:denial:"
	baseUsageDenialTTL   = 30 * time.Second
	usageDenialTTLJitter = 15 * time.Second // TTL range: 30-45s (anti-stampede)
)

// UsageDecisionCache caches recent quota denials so hot over-limit scopes
// skip the ledger read. Entries are advisory: short TTLs bound how long a
// stale denial can outlive a period rollover, and any cache failure is
// reported to the caller to swallow.
type UsageDecisionCache struct {
	client *redis.Client
}

// NewUsageDecisionCache creates a denial cache backed by Redis.
func NewUsageDecisionCache(client *redis.Client) *UsageDecisionCache {
	return &UsageDecisionCache{client: client}
}

type cachedDenial struct {
	Limit   string `json:"limit"`
	Message string `json:"message"`
}

// GetDenial returns the cached denial for the scope, or nil on a miss.
func (c *UsageDecisionCache) GetDenial(ctx context.Context, scope identity.Scope) (*usage.Decision, error) {
	val, err := c.client.Get(ctx, denialKey(scope)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cached denial: %w", err)
	}

	var cached cachedDenial
	if err := json.Unmarshal([]byte(val), &cached); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached denial: %w", err)
	}

	return &usage.Decision{
		Allowed: false,
		Limit:   usage.LimitKind(cached.Limit),
		Message: cached.Message,
	}, nil
}

// SetDenial stores a denial. Allowed decisions are never cached; the allow
// path must always consult the ledger.
func (c *UsageDecisionCache) SetDenial(ctx context.Context, scope identity.Scope, decision usage.Decision) error {
	if decision.Allowed {
		return nil
	}

	payload, err := json.Marshal(cachedDenial{
		Limit:   string(decision.Limit),
		Message: decision.Message,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal denial: %w", err)
	}

	if err := c.client.Set(ctx, denialKey(scope), payload, denialTTLWithJitter()).Err(); err != nil {
		return fmt.Errorf("failed to store denial: %w", err)
	}

	return nil
}

func denialKey(scope identity.Scope) string {
	return usageDenialPrefix + string(scope.Kind) + ":" + scope.ID
}

// denialTTLWithJitter returns a randomized TTL to prevent cache stampede.
func denialTTLWithJitter() time.Duration {
	jitter := time.Duration(rand.Int64N(int64(usageDenialTTLJitter)))
	return baseUsageDenialTTL + jitter
}
