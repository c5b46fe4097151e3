package booking

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Locker serialises booking attempts that touch the same mentor and date.
type Locker interface {
	// Acquire blocks until key is held or ctx is done. The returned release
	// func is safe to call more than once.
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// LockKey is the lock name for one mentor's calendar day.
func LockKey(mentorID, date string) string {
	return mentorID + "|" + date
}

// LocalLocker is an in-process keyed mutex.
type LocalLocker struct {
	mu    sync.Mutex
	slots map[string]*lockSlot
}

type lockSlot struct {
	ch   chan struct{}
	refs int
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{slots: make(map[string]*lockSlot)}
}

func (l *LocalLocker) Acquire(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	if l.slots == nil {
		l.slots = make(map[string]*lockSlot)
	}
	s, ok := l.slots[key]
	if !ok {
		s = &lockSlot{ch: make(chan struct{}, 1)}
		l.slots[key] = s
	}
	s.refs++
	l.mu.Unlock()

	select {
	case s.ch <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-s.ch
				l.drop(key, s)
			})
		}, nil
	case <-ctx.Done():
		l.drop(key, s)
		return nil, ctx.Err()
	}
}

func (l *LocalLocker) drop(key string, s *lockSlot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s.refs--
	if s.refs == 0 {
		delete(l.slots, key)
	}
}

// releaseScript deletes the lock only if it still holds our token, so an
// expired holder never frees a lock that someone else has since taken.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker shares the lock table between API instances.
type RedisLocker struct {
	Client       *redis.Client
	TTL          time.Duration
	PollInterval time.Duration
	Prefix       string
	Logger       *zap.Logger
}

func NewRedisLocker(client *redis.Client, ttl time.Duration) *RedisLocker {
	return &RedisLocker{
		Client:       client,
		TTL:          ttl,
		PollInterval: 25 * time.Millisecond,
		Prefix:       "mentorly:lock:",
		Logger:       zap.NewNop(),
	}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string) (func(), error) {
	name := l.Prefix + key
	token := uuid.NewString()
	ticker := time.NewTicker(l.PollInterval)
	defer ticker.Stop()

	for {
		ok, err := l.Client.SetNX(ctx, name, token, l.TTL).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire lock %s: %w", name, err)
		}
		if ok {
			var once sync.Once
			return func() {
				once.Do(func() { l.release(name, token) })
			}, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// release drops name if token still owns it. A failure leaves the key to
// expire with its TTL.
func (l *RedisLocker) release(name, token string) {
	// The caller's ctx may already be done by the time we release.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := releaseScript.Run(ctx, l.Client, []string{name}, token).Err(); err != nil {
		log := l.Logger
		if log == nil {
			log = zap.NewNop()
		}
		log.Warn("failed to release booking lock",
			zap.String("key", name),
			zap.Duration("ttl", l.TTL),
			zap.Error(err))
	}
}
