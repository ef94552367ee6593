// Package lock serializes work per key, such as bill generation for one
// property and period.
package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrNotObtained is returned when a lock could not be acquired in time.
var ErrNotObtained = errors.New("lock not obtained")

// Locker acquires exclusive locks by key. The returned release func must be called once.
type Locker interface {
	Obtain(ctx context.Context, key string) (release func(), err error)
}

// BillingKey is the lock key for generating bills of one property and period.
func BillingKey(propertyID uint, period string) string {
	return fmt.Sprintf("lock:bills:%d:%s", propertyID, period)
}

// Local is an in-process Locker. It is enough when a single replica serves the API.
type Local struct {
	mu    sync.Mutex
	slots map[string]*slot
}

type slot struct {
	ch   chan struct{}
	refs int
}

// NewLocal creates an in-process locker.
func NewLocal() *Local {
	return &Local{slots: make(map[string]*slot)}
}

// Obtain blocks until key is free or ctx is done.
func (l *Local) Obtain(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	s, ok := l.slots[key]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		l.slots[key] = s
	}
	s.refs++
	l.mu.Unlock()

	select {
	case s.ch <- struct{}{}:
	case <-ctx.Done():
		l.drop(key, s)
		return nil, fmt.Errorf("%w: %s: %v", ErrNotObtained, key, ctx.Err())
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-s.ch
			l.drop(key, s)
		})
	}, nil
}

func (l *Local) drop(key string, s *slot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s.refs--
	if s.refs == 0 {
		delete(l.slots, key)
	}
}

// size is the number of keys currently tracked.
func (l *Local) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.slots)
}
