// Package runner executes optimizations in the background and streams
// their progress to a polling consumer.
package runner

import (
	"context"
	"errors"
	"sync"

	"k8s.io/klog/v2"

	"sigs.k8s.io/worthsplit/pkg/optimizer/algorithms"
	"sigs.k8s.io/worthsplit/pkg/optimizer/framework"
	"sigs.k8s.io/worthsplit/pkg/optimizer/tracker"
)

// ErrRunInProgress is returned by Start while a previous run is active.
var ErrRunInProgress = errors.New("an optimization run is already in progress")

// Update is one progress message. The last update of a run has a terminal
// State and, for failed runs, Err.
type Update struct {
	Snapshot tracker.Snapshot
	Best     framework.Gene
	State    algorithms.State
	Err      error
}

// Handle controls one background run.
type Handle struct {
	id          uint64
	generations int
	cancel      context.CancelFunc
	progress    chan Update
	done        chan struct{}

	mu     sync.Mutex
	latest Update
	result algorithms.Result
	err    error
}

// Progress delivers the most recent update. Older undelivered updates are
// replaced, so a slow reader only ever sees the latest one.
func (h *Handle) Progress() <-chan Update { return h.progress }

// Poll returns the pending update without blocking.
func (h *Handle) Poll() (Update, bool) {
	select {
	case u := <-h.progress:
		return u, true
	default:
		return Update{}, false
	}
}

// Latest returns the last update published, whether or not it was read.
func (h *Handle) Latest() Update {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.latest
}

// Cancel asks the run to stop before its next generation. It does not wait.
func (h *Handle) Cancel() { h.cancel() }

// Done is closed once the run has reached a terminal state.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Wait blocks until the run ends and returns its result.
func (h *Handle) Wait() (algorithms.Result, error) {
	<-h.done
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.result, h.err
}

// Generations is the number of generations the run was configured for.
func (h *Handle) Generations() int { return h.generations }

// ID identifies the run within its Runner.
func (h *Handle) ID() uint64 { return h.id }

func (h *Handle) finished() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// publish is only called from the run goroutine, so the drain-and-send
// below never blocks.
func (h *Handle) publish(u Update) {
	h.mu.Lock()
	h.latest = u
	h.mu.Unlock()

	select {
	case h.progress <- u:
	default:
		select {
		case <-h.progress:
		default:
		}
		h.progress <- u
	}
}

// Runner allows at most one active run at a time.
type Runner struct {
	opts []algorithms.Option

	mu      sync.Mutex
	nextID  uint64
	current *Handle
}

// New returns a runner applying opts to every engine it creates.
func New(opts ...algorithms.Option) *Runner {
	return &Runner{opts: opts}
}

// Start validates the inputs and launches a run in a new goroutine. The
// problem is copied, so the caller may reuse it. The run stops when ctx is
// cancelled or Cancel is called on the returned handle. Random sources
// passed in opts must not be used by the caller afterwards.
func (r *Runner) Start(ctx context.Context, config algorithms.GAConfig, problem framework.Problem, opts ...algorithms.Option) (*Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current != nil && !r.current.finished() {
		return nil, ErrRunInProgress
	}
	return r.startLocked(ctx, config, problem, opts)
}

// Restart cancels the active run, waits for it to stop and starts a new one.
func (r *Runner) Restart(ctx context.Context, config algorithms.GAConfig, problem framework.Problem, opts ...algorithms.Option) (*Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current != nil {
		r.current.Cancel()
		<-r.current.done
	}
	return r.startLocked(ctx, config, problem, opts)
}

// Current returns the most recently started run, or nil.
func (r *Runner) Current() *Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

func (r *Runner) startLocked(ctx context.Context, config algorithms.GAConfig, problem framework.Problem, opts []algorithms.Option) (*Handle, error) {
	r.nextID++
	h := &Handle{
		id:          r.nextID,
		generations: config.Generations,
		progress:    make(chan Update, 1),
		done:        make(chan struct{}),
	}

	all := make([]algorithms.Option, 0, len(r.opts)+len(opts)+1)
	all = append(all, r.opts...)
	all = append(all, opts...)
	all = append(all, algorithms.WithGenerationHook(func(p algorithms.Progress) {
		h.publish(Update{Snapshot: p.Snapshot, Best: p.Best, State: algorithms.StateRunning})
	}))

	engine, err := algorithms.NewEngine(config, problem.DeepCopy(), all...)
	if err != nil {
		return nil, err
	}

	logger := klog.FromContext(ctx).WithValues("run", h.id)
	runCtx, cancel := context.WithCancel(klog.NewContext(ctx, logger))
	h.cancel = cancel
	r.current = h

	logger.V(2).Info("Starting background run", "generations", config.Generations)
	go func() {
		defer close(h.done)
		defer cancel()

		result, err := engine.Run(runCtx)
		final := Update{State: result.State, Best: result.Best, Err: err}
		if n := len(result.History); n > 0 {
			final.Snapshot = result.History[n-1]
		}

		h.mu.Lock()
		h.result, h.err = result, err
		h.mu.Unlock()
		h.publish(final)

		logger.V(2).Info("Background run finished", "state", result.State, "generations", result.Generations)
	}()
	return h, nil
}
