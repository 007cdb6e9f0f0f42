package proofing

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
)

// ErrRuntimeNotLoaded is returned when the CMM is used before Init succeeded
var ErrRuntimeNotLoaded = errors.New("color runtime not loaded")

// Runtime lazily loads the colour management module exactly once.
// Concurrent Init callers share one in-flight load and wait for its result.
type Runtime struct {
	load Loader

	mu       sync.Mutex
	cmm      CMM
	inflight *initCall

	loads atomic.Int64
}

type initCall struct {
	done chan struct{}
	err  error
}

// NewRuntime creates a runtime that loads its CMM with load
func NewRuntime(load Loader) *Runtime {
	return &Runtime{load: load}
}

// Init loads the CMM if needed. It is idempotent and safe for concurrent use.
// A failed load is reported to every waiter; the next Init tries again.
func (r *Runtime) Init(ctx context.Context) error {
	r.mu.Lock()
	if r.cmm != nil {
		r.mu.Unlock()
		return nil
	}
	if call := r.inflight; call != nil {
		r.mu.Unlock()
		select {
		case <-call.done:
			return call.err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	call := &initCall{done: make(chan struct{})}
	r.inflight = call
	r.mu.Unlock()

	r.run(ctx, call)
	return call.err
}

func (r *Runtime) run(ctx context.Context, call *initCall) {
	r.loads.Add(1)
	cmm, err := r.safeLoad(ctx)

	r.mu.Lock()
	if err != nil {
		call.err = fmt.Errorf("failed to load color runtime: %w", err)
		log.Printf("❌ Runtime.Init: %v", call.err)
	} else {
		r.cmm = cmm
		log.Printf("✅ Runtime.Init: color management module loaded")
	}
	r.inflight = nil
	r.mu.Unlock()
	close(call.done)
}

func (r *Runtime) safeLoad(ctx context.Context) (cmm CMM, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("loader panic: %v", rec)
		}
	}()
	cmm, err = r.load(ctx)
	if err == nil && cmm == nil {
		err = errors.New("loader returned no module")
	}
	return cmm, err
}

// CMM returns the loaded module or ErrRuntimeNotLoaded
func (r *Runtime) CMM() (CMM, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cmm == nil {
		return nil, ErrRuntimeNotLoaded
	}
	return r.cmm, nil
}

// Loads returns how many times the loader has been invoked
func (r *Runtime) Loads() int {
	return int(r.loads.Load())
}
