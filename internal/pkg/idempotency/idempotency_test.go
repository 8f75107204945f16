package idempotency

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu     sync.Mutex
	data   map[string]string
	setErr error
	getErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string]string{}}
}

func (f *fakeStore) SetNX(_ context.Context, key string, value any, _ time.Duration) *redis.BoolCmd {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.setErr != nil {
		return redis.NewBoolResult(false, f.setErr)
	}
	if _, ok := f.data[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	f.data[key] = value.(string)
	return redis.NewBoolResult(true, nil)
}

func (f *fakeStore) Get(_ context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeStore) Set(_ context.Context, key string, value any, _ time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.data[key] = value.(string)
	return redis.NewStatusResult("OK", nil)
}

func TestStateTracker_Acquire(t *testing.T) {
	tests := []struct {
		name    string
		stored  string
		setErr  error
		want    State
		wantErr error
	}{
		{name: "fresh key", want: StateNone},
		{name: "in progress", stored: "in_progress", want: StateInProgress},
		{name: "completed", stored: "completed", want: StateCompleted},
		{name: "failed", stored: "failed", want: StateFailed},
		{name: "garbage", stored: "weird", want: StateError, wantErr: ErrInvalidState},
		{name: "redis down", setErr: assert.AnError, want: StateError, wantErr: assert.AnError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newFakeStore()
			st.setErr = tt.setErr
			if tt.stored != "" {
				st.data["t:key"] = tt.stored
			}
			tracker := &StateTracker{client: st, prefix: "t:"}

			got, err := tracker.Acquire(context.Background(), "key", time.Minute)

			assert.Equal(t, tt.want, got)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestStateTracker_Exec(t *testing.T) {
	ctx := context.Background()
	st := newFakeStore()
	tracker := &StateTracker{client: st, prefix: "t:"}

	calls := 0
	fn := func(context.Context) error {
		calls++
		return nil
	}

	require.NoError(t, tracker.Exec(ctx, "create-1", fn))
	assert.Equal(t, "completed", st.data["t:create-1"])

	err := tracker.Exec(ctx, "create-1", fn)
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
	assert.Equal(t, 1, calls)

	boom := errors.New("boom")
	err = tracker.Exec(ctx, "create-2", func(context.Context) error { return boom }, WithStateTTL(time.Second))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "failed", st.data["t:create-2"])

	err = tracker.Exec(ctx, "create-2", fn)
	assert.ErrorIs(t, err, ErrAlreadyFailed)

	st.data["t:create-3"] = "in_progress"
	err = tracker.Exec(ctx, "create-3", fn, WithLockDuration(-1))
	assert.ErrorIs(t, err, ErrAlreadyInProgress)
	assert.Equal(t, 1, calls)
}

func TestNew_DefaultPrefix(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer client.Close()

	assert.Equal(t, "idempotency:", New(client, "").prefix)
	assert.Equal(t, "aq:", New(client, "aq:").prefix)
}

func TestStateTracker_AcquireExpiredBetweenCalls(t *testing.T) {
	st := &vanishingStore{fakeStore: newFakeStore()}
	st.data["t:key"] = "in_progress"
	tracker := &StateTracker{client: st, prefix: "t:"}

	got, err := tracker.Acquire(context.Background(), "key", time.Minute)

	require.NoError(t, err)
	assert.Equal(t, StateNone, got)
}

// vanishingStore drops the key on the first GET, as if it expired right after
// the SETNX lost.
type vanishingStore struct {
	*fakeStore
	gets int
}

func (v *vanishingStore) Get(ctx context.Context, key string) *redis.StringCmd {
	v.gets++
	if v.gets == 1 {
		v.mu.Lock()
		delete(v.data, key)
		v.mu.Unlock()
	}
	return v.fakeStore.Get(ctx, key)
}
