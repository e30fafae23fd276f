package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainauth "github.com/target/mindful-ui/internal/domain/auth"
)

type fakeSignOuter struct {
	mu    sync.Mutex
	calls []string
	err   error
	gate  chan struct{}
}

func (f *fakeSignOuter) Logout(_ context.Context, id string) error {
	f.mu.Lock()
	f.calls = append(f.calls, id)
	gate := f.gate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return f.err
}

func (f *fakeSignOuter) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

type lookupFunc func(ctx context.Context, id string) domainauth.SessionState

func (f lookupFunc) Lookup(ctx context.Context, id string) domainauth.SessionState { return f(ctx, id) }

func presentSession(id string) domainauth.SessionState {
	return domainauth.Present(domainauth.Session{ID: id, UserID: "u-" + id, DisplayName: "Ana", ExpiresAt: time.Now().Add(time.Hour)})
}

func waitDone(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("resolve did not finish")
	}
}

func TestStore_StartsPending(t *testing.T) {
	s := NewStore(Options{})
	assert.True(t, s.Snapshot().IsPending())
}

func TestStore_PublishNotifiesInOrder(t *testing.T) {
	s := NewStore(Options{})
	var got []string
	s.Subscribe(func(st domainauth.SessionState) { got = append(got, "a:"+st.Status.String()) })
	s.Subscribe(func(st domainauth.SessionState) { got = append(got, "b:"+st.Status.String()) })

	require.True(t, s.Publish(domainauth.Absent()))

	assert.Equal(t, []string{"a:absent", "b:absent"}, got)
	assert.True(t, s.Snapshot().IsAbsent())
}

func TestStore_SubscribeCancel(t *testing.T) {
	s := NewStore(Options{})
	var n int
	cancel := s.Subscribe(func(domainauth.SessionState) { n++ })

	s.Publish(domainauth.Absent())
	cancel()
	cancel()
	s.Publish(presentSession("x"))

	assert.Equal(t, 1, n)
}

func TestStore_ClosedIgnoresPublish(t *testing.T) {
	s := NewStore(Options{})
	var n int
	s.Subscribe(func(domainauth.SessionState) { n++ })
	s.Close()

	assert.False(t, s.Publish(domainauth.Absent()))
	assert.Equal(t, 0, n)
	assert.True(t, s.Snapshot().IsPending())

	cancel := s.Subscribe(func(domainauth.SessionState) { n++ })
	cancel()
}

func TestStore_Resolve(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		lookup Lookup
		want   domainauth.Status
	}{
		{
			name: "present",
			id:   "s1",
			lookup: lookupFunc(func(_ context.Context, id string) domainauth.SessionState {
				return presentSession(id)
			}),
			want: domainauth.StatusPresent,
		},
		{
			name: "absent on empty id",
			lookup: lookupFunc(func(context.Context, string) domainauth.SessionState {
				t.Fatal("lookup must not run without a session id")
				return domainauth.Absent()
			}),
			want: domainauth.StatusAbsent,
		},
		{
			name:   "absent on nil lookup",
			id:     "s1",
			lookup: nil,
			want:   domainauth.StatusAbsent,
		},
		{
			name: "pending result coerced to absent",
			id:   "s1",
			lookup: lookupFunc(func(context.Context, string) domainauth.SessionState {
				return domainauth.Pending()
			}),
			want: domainauth.StatusAbsent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(Options{})
			waitDone(t, s.Resolve(context.Background(), tt.lookup, tt.id))
			assert.Equal(t, tt.want, s.Snapshot().Status)
		})
	}
}

func TestStore_ResolveDoesNotOverrideSettledState(t *testing.T) {
	s := NewStore(Options{})
	s.Publish(domainauth.Absent())

	waitDone(t, s.Resolve(context.Background(), lookupFunc(func(_ context.Context, id string) domainauth.SessionState {
		return presentSession(id)
	}), "late"))

	assert.True(t, s.Snapshot().IsAbsent())
}

func TestStore_ResolveSurvivesCanceledContext(t *testing.T) {
	s := NewStore(Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	waitDone(t, s.Resolve(ctx, lookupFunc(func(lctx context.Context, id string) domainauth.SessionState {
		if lctx.Err() != nil {
			return domainauth.Absent()
		}
		return presentSession(id)
	}), "s1"))

	assert.True(t, s.Snapshot().IsPresent())
}

func TestStore_RequestSignOut_NotSignedIn(t *testing.T) {
	backend := &fakeSignOuter{}
	s := NewStore(Options{SignOuter: backend})

	assert.ErrorIs(t, s.RequestSignOut(context.Background()), ErrNotSignedIn)
	s.Publish(domainauth.Absent())
	assert.ErrorIs(t, s.RequestSignOut(context.Background()), ErrNotSignedIn)
	assert.Empty(t, backend.Calls())
}

func TestStore_RequestSignOut_Success(t *testing.T) {
	backend := &fakeSignOuter{}
	s := NewStore(Options{SignOuter: backend})
	s.Publish(presentSession("s1"))

	var seen []domainauth.Status
	s.Subscribe(func(st domainauth.SessionState) { seen = append(seen, st.Status) })

	require.NoError(t, s.RequestSignOut(context.Background()))

	assert.Equal(t, []string{"s1"}, backend.Calls())
	assert.True(t, s.Snapshot().IsAbsent())
	assert.Equal(t, []domainauth.Status{domainauth.StatusAbsent}, seen)
}

func TestStore_RequestSignOut_Failure(t *testing.T) {
	backend := &fakeSignOuter{err: errors.New("redis down")}
	s := NewStore(Options{SignOuter: backend})
	s.Publish(presentSession("s1"))

	err := s.RequestSignOut(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSignOutFailed)
	assert.Contains(t, err.Error(), "redis down")
	assert.True(t, s.Snapshot().IsPresent())
}

func TestStore_RequestSignOut_NoBackend(t *testing.T) {
	s := NewStore(Options{})
	s.Publish(presentSession("s1"))

	assert.ErrorIs(t, s.RequestSignOut(context.Background()), ErrSignOutFailed)
	assert.True(t, s.Snapshot().IsPresent())
}

func TestStore_RequestSignOut_ConcurrentCallsShareBackend(t *testing.T) {
	backend := &fakeSignOuter{gate: make(chan struct{})}
	s := NewStore(Options{SignOuter: backend})
	s.Publish(presentSession("s1"))

	var wg sync.WaitGroup
	var failures atomic.Int32
	for range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.RequestSignOut(context.Background()); err != nil && !errors.Is(err, ErrNotSignedIn) {
				failures.Add(1)
			}
		}()
	}

	require.Eventually(t, func() bool { return len(backend.Calls()) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(backend.gate)
	wg.Wait()

	assert.Len(t, backend.Calls(), 1)
	assert.Zero(t, failures.Load())
	assert.True(t, s.Snapshot().IsAbsent())
}

func TestStore_RequestSignOut_DoesNotClobberNewSession(t *testing.T) {
	backend := &fakeSignOuter{gate: make(chan struct{})}
	s := NewStore(Options{SignOuter: backend})
	s.Publish(presentSession("old"))

	done := make(chan error, 1)
	go func() { done <- s.RequestSignOut(context.Background()) }()

	require.Eventually(t, func() bool { return len(backend.Calls()) == 1 }, time.Second, 5*time.Millisecond)
	s.Publish(presentSession("new"))
	close(backend.gate)

	require.NoError(t, <-done)
	assert.Equal(t, "new", s.Snapshot().SessionID())
}
