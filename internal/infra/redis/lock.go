// File: internal/infra/redis/lock.go
package redis

import (
	"context"
	"time"

	"interpreter-booking/internal/domain"
	"interpreter-booking/internal/domain/ports/adapter"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

var _ adapter.Locker = (*JobLocker)(nil)

// JobLocker serializes job claims across instances. One lock per job key;
// tokens stop an expired holder from releasing someone else's lock.
type JobLocker struct {
	cli *redis.Client
}

func NewJobLocker(c *Client) *JobLocker {
	return &JobLocker{cli: c.cli}
}

func (l *JobLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (string, error) {
	token := uuid.NewString()
	for i := 0; i < 5; i++ { // 5 tries
		ok, err := l.cli.SetNX(ctx, key, token, ttl).Result()
		if err != nil {
			continue
		}
		if ok {
			return token, nil
		}
		time.Sleep(50 * time.Millisecond) // wait before retrying
	}
	return "", domain.ErrLockBusy
}

var luaUnlock = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
else
	return 0
end`)

func (l *JobLocker) Unlock(ctx context.Context, key, token string) error {
	_, err := luaUnlock.Run(ctx, l.cli, []string{key}, token).Result()
	return err
}
