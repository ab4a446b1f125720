package viewstate

import (
	"context"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
)

// toggleScript flips membership atomically and returns 1 when the id ends
// up expanded.
var toggleScript = redis.NewScript(`
if redis.call("SISMEMBER", KEYS[1], ARGV[1]) == 1 then
  redis.call("SREM", KEYS[1], ARGV[1])
  return 0
end
redis.call("SADD", KEYS[1], ARGV[1])
redis.call("EXPIRE", KEYS[1], ARGV[2])
return 1
`)

// Redis stores each scope as a Redis set under "viewstate:<scope>" with a
// sliding TTL, so abandoned sessions clean themselves up.
type Redis struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedis(rdb *redis.Client, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Redis{rdb: rdb, ttl: ttl}
}

func key(scope string) string { return "viewstate:" + scope }

func (r *Redis) Toggle(ctx context.Context, scope, id string) (bool, error) {
	n, err := toggleScript.Run(ctx, r.rdb, []string{key(scope)}, id, int(r.ttl.Seconds())).Int()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *Redis) Expanded(ctx context.Context, scope string) ([]string, error) {
	ids, err := r.rdb.SMembers(ctx, key(scope)).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *Redis) ExpandAll(ctx context.Context, scope string, ids []string) error {
	_, err := r.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, key(scope))
		if len(ids) > 0 {
			members := make([]interface{}, len(ids))
			for i, id := range ids {
				members[i] = id
			}
			p.SAdd(ctx, key(scope), members...)
			p.Expire(ctx, key(scope), r.ttl)
		}
		return nil
	})
	return err
}

func (r *Redis) CollapseAll(ctx context.Context, scope string) error {
	return r.rdb.Del(ctx, key(scope)).Err()
}
