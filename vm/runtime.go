package vm

import (
	"runtime"
	"time"

	"github.com/dop251/goja"
)

// Runtime owns the engine's global execution state: the heap and its
// limit knobs. Every Context is bound to exactly one Runtime and must
// be closed before it.
//
// A Runtime and the Contexts bound to it are not safe for concurrent
// use; confine them to one goroutine or serialize access externally.
type Runtime struct {
	vm          *goja.Runtime
	memLimit    uint64
	gcThreshold uint64
	closed      bool
}

// NewRuntime allocates the engine's global state.
func NewRuntime() (rt *Runtime, err error) {
	defer func() {
		if recover() != nil {
			rt, err = nil, ErrRuntimeCreation
		}
	}()

	vm := goja.New()
	if vm == nil {
		return nil, ErrRuntimeCreation
	}
	return &Runtime{vm: vm}, nil
}

// SetMemoryLimit caps heap growth during evaluations, in bytes.
// Zero means unlimited. Takes effect for future evaluations.
func (r *Runtime) SetMemoryLimit(bytes uint64) {
	r.memLimit = bytes
}

// SetGCThreshold sets the heap growth, in bytes, past which a
// collection is forced during evaluation. Zero disables it.
func (r *Runtime) SetGCThreshold(bytes uint64) {
	r.gcThreshold = bytes
}

// Close releases the runtime. Idempotent. Contexts bound to this
// Runtime must be closed first.
func (r *Runtime) Close() {
	if r.closed {
		return
	}
	r.closed = true
	r.vm.ClearInterrupt()
	r.vm = nil
}

const watchdogInterval = 10 * time.Millisecond

// armWatchdog starts the limit monitor for one evaluation and returns
// the function that disarms it. With no limits configured it is a
// no-op. The monitor samples heap growth since the evaluation started:
// past the GC threshold it forces a collection, past the memory limit
// it interrupts the VM, which the eval path surfaces as
// ScriptError("out of memory").
func (r *Runtime) armWatchdog() func() {
	if r.memLimit == 0 && r.gcThreshold == 0 {
		return func() {}
	}

	var base runtime.MemStats
	runtime.ReadMemStats(&base)

	done := make(chan struct{})
	stopped := make(chan struct{})

	go func() {
		defer close(stopped)
		ticker := time.NewTicker(watchdogInterval)
		defer ticker.Stop()

		vm := r.vm
		var collected uint64
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				var ms runtime.MemStats
				runtime.ReadMemStats(&ms)
				grown := ms.HeapAlloc - base.HeapAlloc
				if ms.HeapAlloc < base.HeapAlloc {
					grown = 0
				}
				if r.gcThreshold > 0 && grown > collected+r.gcThreshold {
					runtime.GC()
					collected = grown
				}
				if r.memLimit > 0 && grown > r.memLimit {
					vm.Interrupt("out of memory")
					return
				}
			}
		}
	}()

	return func() {
		close(done)
		<-stopped
		r.vm.ClearInterrupt()
	}
}
