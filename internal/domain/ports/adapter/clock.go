package adapter

import (
	"context"
	"time"
)

// Clock abstracts wall time so night-window decisions are testable.
type Clock interface {
	Now() time.Time
}

// Locker is a best-effort mutual exclusion primitive keyed by string,
// used to serialize concurrent acceptance attempts per job.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (token string, err error)
	Unlock(ctx context.Context, key, token string) error
}
