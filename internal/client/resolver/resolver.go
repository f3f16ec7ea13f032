// Package resolver decides, on cold start, whether the shell shows the native
// UI, the remote content or the one-time language prompt.
//
// The initial state is computed synchronously from the settings store. When no
// content URL is cached a single gate fetch runs in the background, raced
// against a deadline; its outcome is persisted and folded into the state.
// Fetch failures are logged and counted but never surfaced or retried.
package resolver

import (
	"context"
	"sync"
	"time"

	"github.com/farmily/farmily/internal/client/gate"
	"github.com/farmily/farmily/internal/client/models"
	"github.com/farmily/farmily/internal/logging"
	"github.com/farmily/farmily/internal/racex"
)

const DefaultTimeout = 15 * time.Second

// Store is the part of the settings service the resolver reads and writes.
type Store interface {
	Token(ctx context.Context) (string, bool, error)
	Link(ctx context.Context) (string, bool, error)
	SaveCredential(ctx context.Context, cred models.GateCredential) error
	HasSeenLanguageSelection(ctx context.Context) (bool, error)
	MarkLanguageSelectionSeen(ctx context.Context) error
}

// Metrics receives fetch outcomes and state transitions.
type Metrics interface {
	RecordFetch(ctx context.Context, outcome string, elapsed time.Duration)
	RecordTransition(ctx context.Context, state string)
}

type Options struct {
	// Timeout bounds the gate fetch. Zero means DefaultTimeout.
	Timeout time.Duration
	Logger  logging.Logger
	Metrics Metrics
}

type subscriber struct {
	id int
	fn func(State)
}

// notice is one transition waiting to be delivered to its subscribers.
type notice struct {
	ctx   context.Context
	state State
	subs  []subscriber
}

type Resolver struct {
	store   Store
	fetcher gate.Client
	timeout time.Duration
	log     logging.Logger
	metrics Metrics

	mu      sync.Mutex
	state   State
	pending string
	closed  bool
	subs    []subscriber
	nextID  int

	// queue holds transitions not yet delivered. Only the goroutine that
	// set emitting drains it, so observers see transitions in order and
	// run without mu held.
	queue    []notice
	emitting bool

	cancel context.CancelFunc
	done   chan struct{}
}

// New computes the initial state and, if needed, starts the gate fetch. The
// fetch is cancelled when ctx ends or Close is called.
func New(ctx context.Context, store Store, fetcher gate.Client, opts Options) *Resolver {
	r := &Resolver{
		store:   store,
		fetcher: fetcher,
		timeout: opts.Timeout,
		log:     opts.Logger,
		metrics: opts.Metrics,
		done:    make(chan struct{}),
	}
	if r.timeout <= 0 {
		r.timeout = DefaultTimeout
	}
	if r.log == nil {
		r.log = logging.Nop()
	}
	r.log = r.log.With("component", "resolver")
	if r.metrics == nil {
		r.metrics = nopMetrics{}
	}

	token, hasToken, err := store.Token(ctx)
	if err != nil {
		r.log.Warn(ctx, "failed to read cached token", "error", err)
		hasToken = false
	}
	link, hasLink, err := store.Link(ctx)
	if err != nil {
		r.log.Warn(ctx, "failed to read cached link", "error", err)
		hasLink = false
	}

	if hasToken && hasLink && link != "" {
		r.state = State{Kind: ShowRemoteContent, URL: link}
		r.cancel = func() {}
		close(r.done)
		r.log.Info(ctx, "using cached content url")
		r.metrics.RecordTransition(ctx, r.state.Kind.String())
		return r
	}

	r.state = State{Kind: Undetermined}
	if !hasToken {
		seen, err := store.HasSeenLanguageSelection(ctx)
		if err != nil {
			r.log.Warn(ctx, "failed to read language prompt flag", "error", err)
		}
		if !seen {
			r.state = State{Kind: ShowLanguagePrompt}
		}
	}
	r.log.Info(ctx, "starting gate fetch", "state", r.state.String(), "cached_token", token != "")
	r.metrics.RecordTransition(ctx, r.state.Kind.String())

	fetchCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	go r.run(fetchCtx)

	return r
}

func (r *Resolver) run(ctx context.Context) {
	defer close(r.done)

	start := time.Now()
	cred, err := racex.WithTimeout(ctx, r.timeout, r.fetcher.FetchGate)
	elapsed := time.Since(start)
	r.metrics.RecordFetch(ctx, gate.Outcome(err), elapsed)

	if err != nil {
		r.log.Warn(ctx, "gate fetch failed", "outcome", gate.Outcome(err), "error", err, "elapsed", elapsed)
		r.settle(ctx, func(s State) (State, bool) {
			if s.Kind == Undetermined {
				return State{Kind: ShowNativeUI}, true
			}
			return s, false
		})
		return
	}

	r.log.Info(ctx, "gate fetch succeeded", "elapsed", elapsed, "has_url", cred.ContentURL != "")

	// Persist even if the caller is shutting down; the credential is valid.
	if err := r.store.SaveCredential(context.WithoutCancel(ctx), cred); err != nil {
		r.log.Error(ctx, "failed to persist gate credential", "error", err)
	}

	r.settle(ctx, func(s State) (State, bool) {
		if cred.ContentURL == "" {
			if s.Kind == Undetermined {
				return State{Kind: ShowNativeUI}, true
			}
			return s, false
		}

		switch s.Kind {
		case ShowLanguagePrompt:
			r.pending = cred.ContentURL
			return s, false
		case Undetermined, ShowNativeUI:
			return State{Kind: ShowRemoteContent, URL: cred.ContentURL}, true
		default:
			return s, false
		}
	})
}

// settle applies next under the lock and notifies observers if it reports a
// change. Nothing changes after Close.
func (r *Resolver) settle(ctx context.Context, next func(State) (State, bool)) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	s, changed := next(r.state)
	if !changed {
		r.mu.Unlock()
		return
	}
	r.transitionLocked(ctx, s)
}

// transitionLocked must be called with mu held; it releases mu. The
// transition is queued and, unless another goroutine is already delivering,
// delivered here.
func (r *Resolver) transitionLocked(ctx context.Context, s State) {
	r.state = s
	subs := make([]subscriber, len(r.subs))
	copy(subs, r.subs)
	r.queue = append(r.queue, notice{ctx: ctx, state: s, subs: subs})

	if r.emitting {
		r.mu.Unlock()
		return
	}
	r.emitting = true
	for len(r.queue) > 0 {
		n := r.queue[0]
		r.queue = r.queue[1:]
		r.mu.Unlock()
		r.emit(n)
		r.mu.Lock()
	}
	r.emitting = false
	r.mu.Unlock()
}

func (r *Resolver) emit(n notice) {
	r.log.Info(n.ctx, "state changed", "state", n.state.String())
	r.metrics.RecordTransition(n.ctx, n.state.Kind.String())
	for _, sub := range n.subs {
		sub.fn(n.state)
	}
}

// LanguagePromptDismissed records that the prompt was seen and moves on to
// the pending content URL, or to the native UI. It is a no-op unless the
// prompt is showing. The transition happens even if persisting the flag
// fails; that error is returned.
func (r *Resolver) LanguagePromptDismissed(ctx context.Context) error {
	r.mu.Lock()
	if r.state.Kind != ShowLanguagePrompt {
		r.mu.Unlock()
		return nil
	}

	next := State{Kind: ShowNativeUI}
	if r.pending != "" {
		next = State{Kind: ShowRemoteContent, URL: r.pending}
		r.pending = ""
	}
	r.transitionLocked(ctx, next)

	if err := r.store.MarkLanguageSelectionSeen(ctx); err != nil {
		r.log.Error(ctx, "failed to persist language prompt flag", "error", err)
		return err
	}
	return nil
}

func (r *Resolver) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Resolver) View() View {
	return r.State().View()
}

// PendingURL is the content URL held back while the language prompt shows.
// The shell logs it when the prompt is dismissed.
func (r *Resolver) PendingURL() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pending
}

// Subscribe registers fn for every later transition; the current state is
// not replayed. Calls to fn are serialised and ordered, and run without the
// resolver's lock, so fn may read State or View. A transition made while
// another goroutine is delivering is handed to that goroutine. fn must not
// call Close.
func (r *Resolver) Subscribe(fn func(State)) (cancel func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextID
	r.nextID++
	r.subs = append(r.subs, subscriber{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			for i, s := range r.subs {
				if s.id == id {
					r.subs = append(r.subs[:i:i], r.subs[i+1:]...)
					break
				}
			}
		})
	}
}

// Done is closed once the fetch has settled, or at construction when no fetch
// was needed.
func (r *Resolver) Done() <-chan struct{} {
	return r.done
}

// Close cancels an in-flight fetch and waits for it to finish. The state is
// frozen afterwards.
func (r *Resolver) Close() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()

	r.cancel()
	<-r.done
}

type nopMetrics struct{}

func (nopMetrics) RecordFetch(context.Context, string, time.Duration) {}
func (nopMetrics) RecordTransition(context.Context, string) {}
