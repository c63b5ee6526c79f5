package rediscache

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/trezcool/masomo-console/core/navigation"
)

// StateStore keeps each session's expanded node ids in a redis set that expires with the session.
type StateStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

var (
	_ navigation.StateStore   = (*StateStore)(nil)
	_ navigation.StateToggler = (*StateStore)(nil)
)

// toggleScript removes ARGV[1] from the set or adds it when absent, refreshes the ttl (ms) and
// returns the members left.
var toggleScript = redis.NewScript(`
local key = KEYS[1]
if redis.call('SREM', key, ARGV[1]) == 0 then
	redis.call('SADD', key, ARGV[1])
end
if tonumber(ARGV[2]) > 0 and redis.call('EXISTS', key) == 1 then
	redis.call('PEXPIRE', key, ARGV[2])
end
return redis.call('SMEMBERS', key)
`)

func NewStateStore(client redis.Cmdable, ttl time.Duration) *StateStore {
	return &StateStore{client: client, ttl: ttl}
}

func stateKey(sessionKey string) string {
	return keyPrefix + "nav:expanded:" + sessionKey
}

func (s *StateStore) LoadState(ctx context.Context, sessionKey string) (navigation.ExpandedState, error) {
	ids, err := s.client.SMembers(ctx, stateKey(sessionKey)).Result()
	if err != nil && err != redis.Nil {
		return nil, errors.Wrap(err, "reading expanded state")
	}
	return navigation.NewExpandedState(ids...), nil
}

func (s *StateStore) SaveState(ctx context.Context, sessionKey string, state navigation.ExpandedState) error {
	key := stateKey(sessionKey)
	ids := state.IDs()

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(ids) > 0 {
			members := make([]interface{}, 0, len(ids))
			for _, id := range ids {
				members = append(members, id)
			}
			pipe.SAdd(ctx, key, members...)
			if s.ttl > 0 {
				pipe.Expire(ctx, key, s.ttl)
			}
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "saving expanded state")
	}
	return nil
}

func (s *StateStore) ToggleState(ctx context.Context, sessionKey, id string) (navigation.ExpandedState, error) {
	ids, err := toggleScript.Run(ctx, s.client, []string{stateKey(sessionKey)}, id, s.ttl.Milliseconds()).StringSlice()
	if err != nil && err != redis.Nil {
		return nil, errors.Wrap(err, "toggling expanded state")
	}
	return navigation.NewExpandedState(ids...), nil
}
