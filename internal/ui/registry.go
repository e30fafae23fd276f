package ui

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultViewTTL is how long an untouched view stays mounted.
const DefaultViewTTL = 30 * time.Minute

// DefaultMaxViews caps mounted views when RegistryOptions.MaxViews is unset.
const DefaultMaxViews = 10000

const (
	RemovedUnmount  = "unmount"
	RemovedExpired  = "expired"
	RemovedEvicted  = "evicted"
	RemovedShutdown = "shutdown"
)

// ViewOptions describes the components to mount for one page view.
type ViewOptions struct {
	Session SessionSource
	Theme   Theme
	Path    string
	// Landing mounts a LandingView next to the header.
	Landing       bool
	Nav           []NavItem
	ToastDuration time.Duration
	Logger        *slog.Logger
	// OnDestroy runs once after the components are destroyed.
	OnDestroy func()
}

// View is the set of component instances behind one rendered page.
type View struct {
	ID       string
	Session  SessionSource
	Header   *HeaderNav
	Landing  *LandingView
	Outbox   *Outbox
	Theme    *ThemeState
	Location *Location

	onDestroy func()
	lastSeen  time.Time
	once      sync.Once
}

func (v *View) destroy() {
	v.once.Do(func() {
		v.Header.Destroy()
		if v.Landing != nil {
			v.Landing.Destroy()
		}
		if v.onDestroy != nil {
			v.onDestroy()
		}
	})
}

// RegistryOptions configures a Registry.
type RegistryOptions struct {
	TTL time.Duration
	// MaxViews bounds the registry. Mounting past it evicts the least recently used view.
	MaxViews int
	Now      func() time.Time
	Observer Observer
	Logger   *slog.Logger
}

// Registry owns mounted views keyed by an opaque ID.
type Registry struct {
	mu       sync.Mutex
	views    map[string]*View
	ttl      time.Duration
	maxViews int
	now      func() time.Time
	observer Observer
	logger   *slog.Logger
}

func NewRegistry(opts RegistryOptions) *Registry {
	r := &Registry{
		views:    make(map[string]*View),
		ttl:      opts.TTL,
		maxViews: opts.MaxViews,
		now:      opts.Now,
		observer: opts.Observer,
		logger:   opts.Logger,
	}
	if r.ttl <= 0 {
		r.ttl = DefaultViewTTL
	}
	if r.maxViews <= 0 {
		r.maxViews = DefaultMaxViews
	}
	if r.now == nil {
		r.now = time.Now
	}
	if r.observer == nil {
		r.observer = NopObserver{}
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// Mount builds and registers a view.
func (r *Registry) Mount(opts ViewOptions) (*View, error) {
	outbox := &Outbox{}
	theme := NewThemeState(opts.Theme)
	loc := NewLocation(opts.Path)

	header, err := NewHeaderNav(HeaderOptions{
		Session:       opts.Session,
		Theme:         theme,
		Route:         loc,
		Sink:          outbox,
		Nav:           opts.Nav,
		ToastDuration: opts.ToastDuration,
		Logger:        opts.Logger,
		Observer:      r.observer,
	})
	if err != nil {
		return nil, err
	}

	v := &View{
		ID:        uuid.NewString(),
		Session:   opts.Session,
		Header:    header,
		Outbox:    outbox,
		Theme:     theme,
		Location:  loc,
		onDestroy: opts.OnDestroy,
	}
	if opts.Landing {
		landing, lerr := NewLandingView(LandingOptions{
			Session:       opts.Session,
			Sink:          outbox,
			ToastDuration: opts.ToastDuration,
			Logger:        opts.Logger,
			Observer:      r.observer,
		})
		if lerr != nil {
			header.Destroy()
			return nil, lerr
		}
		v.Landing = landing
	}

	r.mu.Lock()
	var evicted []*View
	for len(r.views) >= r.maxViews {
		oldest := r.oldestLocked()
		delete(r.views, oldest.ID)
		evicted = append(evicted, oldest)
	}
	v.lastSeen = r.now()
	r.views[v.ID] = v
	r.mu.Unlock()

	for _, old := range evicted {
		old.destroy()
		r.observer.ViewRemoved(RemovedEvicted)
	}
	if len(evicted) > 0 {
		r.logger.Warn("view registry full, evicted least recently used views", "count", len(evicted), "max_views", r.maxViews)
	}
	r.observer.ViewMounted()
	return v, nil
}

// oldestLocked returns the least recently used view. r.mu must be held and
// the registry must not be empty.
func (r *Registry) oldestLocked() *View {
	var oldest *View
	for _, v := range r.views {
		if oldest == nil || v.lastSeen.Before(oldest.lastSeen) {
			oldest = v
		}
	}
	return oldest
}

// Get returns a live view and marks it as recently used.
func (r *Registry) Get(id string) (*View, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.views[id]
	if !ok {
		return nil, false
	}
	v.lastSeen = r.now()
	return v, true
}

// Unmount destroys a view. It reports whether the view existed.
func (r *Registry) Unmount(id string) bool {
	r.mu.Lock()
	v, ok := r.views[id]
	delete(r.views, id)
	r.mu.Unlock()
	if !ok {
		return false
	}
	v.destroy()
	r.observer.ViewRemoved(RemovedUnmount)
	return true
}

// Sweep destroys views idle for longer than the TTL and returns how many it removed.
func (r *Registry) Sweep(now time.Time) int {
	var expired []*View
	r.mu.Lock()
	for id, v := range r.views {
		if now.Sub(v.lastSeen) > r.ttl {
			expired = append(expired, v)
			delete(r.views, id)
		}
	}
	r.mu.Unlock()

	for _, v := range expired {
		v.destroy()
		r.observer.ViewRemoved(RemovedExpired)
	}
	return len(expired)
}

// Run sweeps every interval until ctx is done, then destroys all remaining views.
func (r *Registry) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			r.Close()
			return nil
		case <-ticker.C:
			if n := r.Sweep(r.now()); n > 0 {
				r.logger.DebugContext(ctx, "expired idle views", "count", n, "remaining", r.Len())
			}
		}
	}
}

// Close destroys every mounted view.
func (r *Registry) Close() {
	r.mu.Lock()
	views := r.views
	r.views = make(map[string]*View)
	r.mu.Unlock()
	for _, v := range views {
		v.destroy()
		r.observer.ViewRemoved(RemovedShutdown)
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}
