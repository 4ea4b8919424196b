package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ErrRedisUnavailable is an exported constant or variable used by the session engine.
var ErrRedisUnavailable = errors.New("redis unavailable")

// Store is the keyed container mapping an owner account to its single
// session. Put overwrites, never merges; Delete reports whether an
// entry existed; All returns an unfiltered snapshot. Implementations
// perform no validation beyond key uniqueness.
type Store interface {
	Get(ctx context.Context, account AccountID) (*Session, bool, error)
	Put(ctx context.Context, account AccountID, s *Session) error
	Delete(ctx context.Context, account AccountID) (bool, error)
	All(ctx context.Context) ([]Entry, error)
	Close() error
}

// deleteScript removes the session key and its index membership in one
// round-trip and reports whether the key existed.
const deleteScript = `
local existed = redis.call("EXISTS", KEYS[1])
if existed == 1 then
  redis.call("DEL", KEYS[1])
end
redis.call("SREM", KEYS[2], ARGV[1])
return existed
`

var deleteLua = redis.NewScript(deleteScript)

// RedisStore keeps one blob key per owner plus an index set used for
// iteration. Safe for concurrent use.
type RedisStore struct {
	rdb    redis.UniversalClient
	prefix string
}

// NewRedisStore creates a Redis-backed store. All keys are namespaced
// under the given prefix ("gs" when empty).
func NewRedisStore(rdb redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "gs"
	}
	return &RedisStore{rdb: rdb, prefix: prefix}
}

func (r *RedisStore) sessionKey(account AccountID) string {
	return r.prefix + ":session:" + account.String()
}

func (r *RedisStore) indexKey() string {
	return r.prefix + ":accounts"
}

// Get fetches and decodes the session stored for account.
func (r *RedisStore) Get(ctx context.Context, account AccountID) (*Session, bool, error) {
	data, err := r.rdb.Get(ctx, r.sessionKey(account)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	s, err := Decode(data)
	if err != nil {
		return nil, false, err
	}
	return s, true, nil
}

// Put overwrite-inserts the session for account and records the account
// in the iteration index.
func (r *RedisStore) Put(ctx context.Context, account AccountID, s *Session) error {
	data, err := Encode(s)
	if err != nil {
		return err
	}
	pipe := r.rdb.TxPipeline()
	pipe.Set(ctx, r.sessionKey(account), data, 0)
	pipe.SAdd(ctx, r.indexKey(), account.String())
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// Delete removes the session for account, reporting whether one existed.
func (r *RedisStore) Delete(ctx context.Context, account AccountID) (bool, error) {
	existed, err := deleteLua.Run(ctx, r.rdb,
		[]string{r.sessionKey(account), r.indexKey()}, account.String()).Int64()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return existed == 1, nil
}

// All snapshots every stored entry. Index members whose session key has
// vanished (a delete raced the SMEMBERS) are dropped from the result and
// pruned from the index.
func (r *RedisStore) All(ctx context.Context) ([]Entry, error) {
	members, err := r.rdb.SMembers(ctx, r.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	entries := make([]Entry, 0, len(members))
	for _, member := range members {
		account, err := parseAccountHex(member)
		if err != nil {
			// Foreign junk in the index set; skip it.
			continue
		}
		s, found, err := r.Get(ctx, account)
		if err != nil {
			return nil, err
		}
		if !found {
			_ = r.rdb.SRem(ctx, r.indexKey(), member).Err()
			continue
		}
		entries = append(entries, Entry{Account: account, Session: *s})
	}
	return entries, nil
}

// Close is a no-op; the caller owns the Redis client lifecycle.
func (r *RedisStore) Close() error {
	return nil
}
