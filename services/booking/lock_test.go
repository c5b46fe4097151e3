package booking

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var (
	_ Locker = (*LocalLocker)(nil)
	_ Locker = (*RedisLocker)(nil)
)

func TestLocalLockerSerialisesSameKey(t *testing.T) {
	l := NewLocalLocker()
	var inside, maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := l.Acquire(context.Background(), "m1|2024-05-01")
			if !assert.NoError(t, err) {
				return
			}
			n := atomic.AddInt32(&inside, 1)
			for {
				old := atomic.LoadInt32(&maxInside)
				if n <= old || atomic.CompareAndSwapInt32(&maxInside, old, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
			release()
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), maxInside)
	assert.Empty(t, l.slots)
}

func TestLocalLockerHonoursContext(t *testing.T) {
	l := NewLocalLocker()
	release, err := l.Acquire(context.Background(), "k")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = l.Acquire(ctx, "k")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// Other keys are independent.
	other, err := l.Acquire(context.Background(), "k2")
	require.NoError(t, err)
	other()

	release()
	release()
	again, err := l.Acquire(context.Background(), "k")
	require.NoError(t, err)
	again()
}

func TestRedisLocker(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	l := NewRedisLocker(client, 5*time.Second)
	l.Prefix = "mentorly:test:" + t.Name() + ":"

	release, err := l.Acquire(context.Background(), "m1|2024-05-01")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err = l.Acquire(ctx, "m1|2024-05-01")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	release()
	again, err := l.Acquire(context.Background(), "m1|2024-05-01")
	require.NoError(t, err)
	again()
}

func TestRedisLockerLogsFailedRelease(t *testing.T) {
	// Nothing listens on port 1, so the release script cannot reach Redis.
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	defer client.Close()

	core, logs := observer.New(zapcore.WarnLevel)
	l := NewRedisLocker(client, 5*time.Second)
	l.Logger = zap.New(core)

	l.release("mentorly:lock:m1|2024-05-01", "token")

	entries := logs.FilterMessage("failed to release booking lock").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "mentorly:lock:m1|2024-05-01", entries[0].ContextMap()["key"])
}
