package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/workshop-scheduler/internal/domain/appointment"
)

const keyPrefix = "availability"

// Client is the subset of redis.Cmdable the cache uses.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// AvailabilityCache stores the per-day occupancy counts of a workshop.
//
// Every day has a generation counter. Entries are stored under the generation
// the reader saw before it queried the store, and Invalidate bumps the
// counter, so an occupancy fetched before a write can never be served after
// it. The TTL bounds staleness from writes made outside this process.
type AvailabilityCache struct {
	client Client
	ttl    time.Duration
}

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func Ping(ctx context.Context, client *redis.Client) error {
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}
	return nil
}

func NewAvailabilityCache(client Client, ttl time.Duration) *AvailabilityCache {
	return &AvailabilityCache{client: client, ttl: ttl}
}

// Key is the day's key prefix; the generation counter and the entries live
// under it.
func Key(workshopID uuid.UUID, date string) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, workshopID, date)
}

func genKey(workshopID uuid.UUID, date string) string {
	return Key(workshopID, date) + ":gen"
}

func entryKey(workshopID uuid.UUID, date string, gen int64) string {
	return fmt.Sprintf("%s:v%d", Key(workshopID, date), gen)
}

// Get returns the day's current generation together with the entry stored
// under it. The generation is valid on a miss and must be passed to Set.
func (c *AvailabilityCache) Get(ctx context.Context, workshopID uuid.UUID, date string) (domain.Occupancy, int64, bool, error) {
	gen, err := c.client.Get(ctx, genKey(workshopID, date)).Int64()
	if errors.Is(err, redis.Nil) {
		gen, err = 0, nil
	}
	if err != nil {
		return nil, 0, false, fmt.Errorf("availability cache generation: %w", err)
	}

	raw, err := c.client.Get(ctx, entryKey(workshopID, date, gen)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, gen, false, nil
	}
	if err != nil {
		return nil, gen, false, fmt.Errorf("availability cache get: %w", err)
	}

	occ := domain.Occupancy{}
	if err := json.Unmarshal(raw, &occ); err != nil {
		return nil, gen, false, fmt.Errorf("availability cache decode: %w", err)
	}
	return occ, gen, true, nil
}

// Set stores occ under gen. If the day was invalidated since gen was read the
// entry is written under a retired generation and never served.
func (c *AvailabilityCache) Set(ctx context.Context, workshopID uuid.UUID, date string, gen int64, occ domain.Occupancy) error {
	if occ == nil {
		occ = domain.Occupancy{}
	}
	raw, err := json.Marshal(occ)
	if err != nil {
		return fmt.Errorf("availability cache encode: %w", err)
	}
	if err := c.client.Set(ctx, entryKey(workshopID, date, gen), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("availability cache set: %w", err)
	}
	return nil
}

// Invalidate retires the day's current generation. The counter outlives every
// entry written under it, so it cannot fall back to a generation that still
// has an entry.
func (c *AvailabilityCache) Invalidate(ctx context.Context, workshopID uuid.UUID, date string) error {
	key := genKey(workshopID, date)
	if err := c.client.Incr(ctx, key).Err(); err != nil {
		return fmt.Errorf("availability cache invalidate: %w", err)
	}
	if c.ttl > 0 {
		if err := c.client.Expire(ctx, key, 2*c.ttl).Err(); err != nil {
			return fmt.Errorf("availability cache invalidate: %w", err)
		}
	}
	return nil
}
