package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	domainauth "github.com/target/mindful-ui/internal/domain/auth"
	"github.com/target/mindful-ui/internal/service"
)

type fakeGetter struct {
	calls atomic.Int32
	gate  chan struct{}
	sess  *domainauth.Session
	err   error
}

func (f *fakeGetter) GetSession(_ context.Context, _ string) (*domainauth.Session, error) {
	f.calls.Add(1)
	if f.gate != nil {
		<-f.gate
	}
	return f.sess, f.err
}

func TestResolver_Lookup(t *testing.T) {
	sess := &domainauth.Session{ID: "s1", UserID: "u1", Email: "ana@example.com"}

	tests := []struct {
		name   string
		getter SessionGetter
		id     string
		want   domainauth.Status
	}{
		{name: "present", getter: &fakeGetter{sess: sess}, id: "s1", want: domainauth.StatusPresent},
		{name: "empty id", getter: &fakeGetter{sess: sess}, id: "", want: domainauth.StatusAbsent},
		{name: "nil getter", getter: nil, id: "s1", want: domainauth.StatusAbsent},
		{name: "not found", getter: &fakeGetter{err: errors.New("session not found")}, id: "s1", want: domainauth.StatusAbsent},
		{name: "expired", getter: &fakeGetter{err: fmt.Errorf("get: %w", service.ErrSessionExpired)}, id: "s1", want: domainauth.StatusAbsent},
		{name: "nil session", getter: &fakeGetter{}, id: "s1", want: domainauth.StatusAbsent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(tt.getter, nil)
			got := r.Lookup(context.Background(), tt.id)
			assert.Equal(t, tt.want, got.Status)
			if tt.want == domainauth.StatusPresent {
				assert.Equal(t, "s1", got.SessionID())
				assert.Equal(t, "ana@example.com", got.Session.Email)
			}
		})
	}
}

func TestResolver_CollapsesConcurrentLookups(t *testing.T) {
	getter := &fakeGetter{gate: make(chan struct{}), sess: &domainauth.Session{ID: "s1"}}
	r := NewResolver(getter, nil)

	var wg sync.WaitGroup
	results := make([]domainauth.SessionState, 4)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = r.Lookup(context.Background(), "s1")
		}()
	}

	assert.Eventually(t, func() bool { return getter.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	close(getter.gate)
	wg.Wait()

	assert.Equal(t, int32(1), getter.calls.Load())
	for _, st := range results {
		assert.True(t, st.IsPresent())
	}
}
