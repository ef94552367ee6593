package lock

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal_SerializesSameKey(t *testing.T) {
	l := NewLocal()
	key := BillingKey(1, "2025-03")

	var inside, maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := l.Obtain(context.Background(), key)
			if !assert.NoError(t, err) {
				return
			}
			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxInside)
				if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
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
	assert.Zero(t, l.size())
}

func TestLocal_DifferentKeysDoNotBlock(t *testing.T) {
	l := NewLocal()
	releaseA, err := l.Obtain(context.Background(), BillingKey(1, "2025-03"))
	require.NoError(t, err)
	defer releaseA()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	releaseB, err := l.Obtain(ctx, BillingKey(2, "2025-03"))
	require.NoError(t, err)
	releaseB()
}

func TestLocal_ContextCancel(t *testing.T) {
	l := NewLocal()
	key := BillingKey(1, "2025-04")
	release, err := l.Obtain(context.Background(), key)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = l.Obtain(ctx, key)
	assert.True(t, errors.Is(err, ErrNotObtained))

	release()
	release()
	assert.Zero(t, l.size())
}
