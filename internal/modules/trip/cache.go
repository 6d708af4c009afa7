// README: Redis cache for precomputed fare breakdowns.
package trip

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"letsgo/internal/modules/fare"
	"letsgo/internal/types"
)

const fareCacheTTL = 24 * time.Hour

// FareCache keeps each trip's computed breakdown close to the read path.
// A nil *FareCache is a no-op, so the service works without Redis.
type FareCache struct {
	redis *redis.Client
}

func NewFareCache(client *redis.Client) *FareCache {
	return &FareCache{redis: client}
}

func (c *FareCache) Get(ctx context.Context, tripID types.ID) (*fare.Breakdown, bool) {
	if c == nil || c.redis == nil {
		return nil, false
	}
	val, err := c.redis.Get(ctx, fareKey(tripID)).Bytes()
	if err != nil {
		return nil, false
	}
	var b fare.Breakdown
	if err := json.Unmarshal(val, &b); err != nil {
		return nil, false
	}
	return &b, true
}

func (c *FareCache) Set(ctx context.Context, tripID types.ID, b *fare.Breakdown) {
	if c == nil || c.redis == nil || b == nil {
		return
	}
	val, err := json.Marshal(b)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, fareKey(tripID), val, fareCacheTTL).Err()
}

func fareKey(tripID types.ID) string {
	return fmt.Sprintf("fare:trip:%s", string(tripID))
}
