package store

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const (
	fieldTotal = "total"
	fieldLen   = "len"
)

const initRowScript = `
if redis.call("EXISTS", KEYS[1]) == 1 then
  return 0
end
redis.call("HSET", KEYS[1], "len", ARGV[1], "total", 0)
return 1
`

const incrementScript = `
if redis.call("EXISTS", KEYS[1]) == 0 then
  return -1
end
redis.call("HINCRBY", KEYS[1], ARGV[1], ARGV[2])
redis.call("HINCRBY", KEYS[1], "total", ARGV[2])
return 1
`

const resetRowScript = `
redis.call("DEL", KEYS[1])
redis.call("HSET", KEYS[1], "len", ARGV[1], "total", 0)
return 1
`

var (
	initRowLua   = redis.NewScript(initRowScript)
	incrementLua = redis.NewScript(incrementScript)
	resetRowLua  = redis.NewScript(resetRowScript)
)

// RedisStore keeps one hash per metric row: a "total" field, a "len" field
// recording the configured counter length, and one field per populated
// bucket index. Unpopulated buckets take no space; Snapshot re-inflates them
// to zeroes. The bucket+total increment runs as a single Lua script, so it is
// indivisible for every concurrent reader and writer.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

var _ CounterStore = (*RedisStore)(nil)

// NewRedisStore creates a [RedisStore] on the given client. prefix namespaces
// every row key.
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) rowKey(name string) string {
	return s.prefix + ":h:" + name
}

// Create allocates a zeroed row, failing with ErrMetricExists when present.
func (s *RedisStore) Create(ctx context.Context, name string, countsLen int) error {
	created, err := initRowLua.Run(ctx, s.client, []string{s.rowKey(name)}, countsLen).Int64()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if created == 0 {
		return fmt.Errorf("%w: %s", ErrMetricExists, name)
	}
	return nil
}

// Ensure allocates a zeroed row if absent; racing creators are all fine.
func (s *RedisStore) Ensure(ctx context.Context, name string, countsLen int) error {
	if _, err := initRowLua.Run(ctx, s.client, []string{s.rowKey(name)}, countsLen).Int64(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// Increment atomically bumps one bucket counter and the row total.
func (s *RedisStore) Increment(ctx context.Context, name string, index int, amount int64) error {
	status, err := incrementLua.Run(ctx, s.client, []string{s.rowKey(name)}, index, amount).Int64()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if status == -1 {
		return fmt.Errorf("%w: %s", ErrUnknownMetric, name)
	}
	return nil
}

// Snapshot reads the whole row in one HGETALL and inflates the sparse hash
// into a dense counter slice.
func (s *RedisStore) Snapshot(ctx context.Context, name string) (int64, []int64, bool, error) {
	fields, err := s.client.HGetAll(ctx, s.rowKey(name)).Result()
	if err != nil {
		return 0, nil, false, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if len(fields) == 0 {
		return 0, nil, false, nil
	}

	countsLen, err := strconv.Atoi(fields[fieldLen])
	if err != nil || countsLen < 0 {
		return 0, nil, false, fmt.Errorf("%w: row %s has corrupt length field %q", ErrStoreUnavailable, name, fields[fieldLen])
	}

	var total int64
	counts := make([]int64, countsLen)
	for field, raw := range fields {
		switch field {
		case fieldLen:
			continue
		case fieldTotal:
			total, err = strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return 0, nil, false, fmt.Errorf("%w: row %s has corrupt total %q", ErrStoreUnavailable, name, raw)
			}
			continue
		}
		idx, err := strconv.Atoi(field)
		if err != nil || idx < 0 || idx >= countsLen {
			return 0, nil, false, fmt.Errorf("%w: row %s has corrupt bucket field %q", ErrStoreUnavailable, name, field)
		}
		counts[idx], err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return 0, nil, false, fmt.Errorf("%w: row %s has corrupt bucket value %q", ErrStoreUnavailable, name, raw)
		}
	}
	return total, counts, true, nil
}

// Reset replaces the row with a zeroed one, creating it if absent.
func (s *RedisStore) Reset(ctx context.Context, name string, countsLen int) error {
	if _, err := resetRowLua.Run(ctx, s.client, []string{s.rowKey(name)}, countsLen).Int64(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}
