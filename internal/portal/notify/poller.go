// Package notify keeps the header badge's pending-request count fresh. Each
// treasury session gets one polling goroutine; the registry ties goroutine
// lifetime to session lifetime.
package notify

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/kibfin/supplier-portal/internal/portal/metrics"
	"github.com/kibfin/supplier-portal/internal/portal/upstream"
)

// Counter fetches the number of pending supplier requests. Implemented by
// the upstream client.
type Counter interface {
	PendingRequestsCount(ctx context.Context) (int64, error)
}

// Registry owns one poller per active session.
type Registry struct {
	counter  Counter
	interval time.Duration
	logger   zerolog.Logger

	mu      sync.Mutex
	pollers map[string]*poller
}

func NewRegistry(counter Counter, interval time.Duration, logger zerolog.Logger) *Registry {
	return &Registry{
		counter:  counter,
		interval: interval,
		logger:   logger,
		pollers:  make(map[string]*poller),
	}
}

// Start launches a poller for the session, replacing any previous one. The
// token rides along in the context so each poll authenticates as the session
// it serves.
func (r *Registry) Start(sid, token string) {
	p, ctx := newPoller(sid, token)

	r.mu.Lock()
	if old, ok := r.pollers[sid]; ok {
		old.cancel()
	}
	r.pollers[sid] = p
	r.mu.Unlock()

	go p.run(ctx, r.counter, r.interval, r.logger.With().Str("sid", sid).Logger())
}

// Ensure starts a poller for the session only if none is running. Lets a
// session restored from the store after a portal restart regain its badge on
// the first request instead of waiting for a fresh login.
func (r *Registry) Ensure(sid, token string) {
	r.mu.Lock()
	if _, running := r.pollers[sid]; running {
		r.mu.Unlock()
		return
	}
	p, ctx := newPoller(sid, token)
	r.pollers[sid] = p
	r.mu.Unlock()

	go p.run(ctx, r.counter, r.interval, r.logger.With().Str("sid", sid).Logger())
}

func newPoller(sid, token string) (*poller, context.Context) {
	ctx, cancel := context.WithCancel(
		upstream.WithCredentials(context.Background(), upstream.Credentials{SID: sid, Token: token}),
	)
	return &poller{cancel: cancel}, ctx
}

// Count returns the latest count polled for the session. ok is false until
// the first successful poll, and after Stop.
func (r *Registry) Count(sid string) (int64, bool) {
	r.mu.Lock()
	p, ok := r.pollers[sid]
	r.mu.Unlock()
	if !ok || !p.primed.Load() {
		return 0, false
	}
	return p.count.Load(), true
}

// Stop cancels the session's poller, if any. No further poll requests are
// issued once Stop returns.
func (r *Registry) Stop(sid string) {
	r.mu.Lock()
	p, ok := r.pollers[sid]
	if ok {
		delete(r.pollers, sid)
	}
	r.mu.Unlock()
	if ok {
		p.cancel()
	}
}

// StopAll cancels every poller. Called on portal shutdown.
func (r *Registry) StopAll() {
	r.mu.Lock()
	pollers := r.pollers
	r.pollers = make(map[string]*poller)
	r.mu.Unlock()
	for _, p := range pollers {
		p.cancel()
	}
}

type poller struct {
	cancel context.CancelFunc
	count  atomic.Int64
	primed atomic.Bool
}

func (p *poller) run(ctx context.Context, counter Counter, interval time.Duration, log zerolog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		// The ctx check comes first so a cancelled poller issues nothing.
		select {
		case <-ctx.Done():
			return
		default:
		}

		n, err := counter.PendingRequestsCount(ctx)
		switch {
		case err == nil:
			p.count.Store(n)
			p.primed.Store(true)
			metrics.PollsTotal.WithLabelValues("ok").Inc()
		case ctx.Err() != nil:
			return
		default:
			// On 401 the transport hook has already destroyed the session
			// and cancelled this context; any other error just waits for
			// the next tick.
			metrics.PollsTotal.WithLabelValues("error").Inc()
			log.Warn().Err(err).Msg("notification poll failed")
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
