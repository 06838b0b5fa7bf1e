package jsbox

import (
	"github.com/jsbox-dev/jsbox/hostfunc"
	"github.com/jsbox-dev/jsbox/vm"
)

// Engine bundles one Runtime and one Context, created in that order
// and torn down in reverse. It is the unit applications instantiate;
// every operation forwards to the context unchanged.
//
// An Engine is not safe for concurrent use.
type Engine struct {
	rt     *vm.Runtime
	ctx    *vm.Context
	closed bool
}

// Option configures an Engine at creation time.
type Option func(*engineConfig)

type engineConfig struct {
	memoryLimit uint64
	gcThreshold uint64
	stdlib      bool
	consoleLog  func(string)
}

// WithMemoryLimit caps heap growth during evaluations, in bytes.
func WithMemoryLimit(bytes uint64) Option {
	return func(c *engineConfig) { c.memoryLimit = bytes }
}

// WithGCThreshold sets the heap growth past which a collection is
// forced during evaluation, in bytes.
func WithGCThreshold(bytes uint64) Option {
	return func(c *engineConfig) { c.gcThreshold = bytes }
}

// WithStdlib loads the engine's standard modules at creation.
func WithStdlib() Option {
	return func(c *engineConfig) { c.stdlib = true }
}

// WithConsole installs cb as the console.log sink at creation.
func WithConsole(cb func(string)) Option {
	return func(c *engineConfig) { c.consoleLog = cb }
}

// New creates an Engine: runtime first, then a context bound to it.
func New(opts ...Option) (*Engine, error) {
	var cfg engineConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	rt, err := vm.NewRuntime()
	if err != nil {
		return nil, err
	}
	if cfg.memoryLimit > 0 {
		rt.SetMemoryLimit(cfg.memoryLimit)
	}
	if cfg.gcThreshold > 0 {
		rt.SetGCThreshold(cfg.gcThreshold)
	}

	ctx, err := vm.NewContext(rt)
	if err != nil {
		rt.Close()
		return nil, err
	}

	e := &Engine{rt: rt, ctx: ctx}
	if cfg.stdlib {
		ctx.EnableStdlib()
	}
	if cfg.consoleLog != nil {
		if err := ctx.SetConsoleLog(cfg.consoleLog); err != nil {
			e.Close()
			return nil, err
		}
	}
	return e, nil
}

// Close tears the Engine down: context before runtime. Idempotent.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.closed = true
	e.ctx.Close()
	e.rt.Close()
}

// Runtime returns the owned runtime.
func (e *Engine) Runtime() *vm.Runtime { return e.rt }

// Context returns the owned context.
func (e *Engine) Context() *vm.Context { return e.ctx }

// Eval evaluates source under the given diagnostic label and returns
// the completion value in the engine's string form.
func (e *Engine) Eval(source, name string) (string, error) {
	return e.ctx.Eval(source, name)
}

// EvalInt evaluates source and coerces the result to an int32.
func (e *Engine) EvalInt(source, name string) (int32, error) {
	return e.ctx.EvalInt(source, name)
}

// EvalFloat evaluates source and coerces the result to a float64.
func (e *Engine) EvalFloat(source, name string) (float64, error) {
	return e.ctx.EvalFloat(source, name)
}

// EvalBool evaluates source and coerces the result to a bool.
func (e *Engine) EvalBool(source, name string) (bool, error) {
	return e.ctx.EvalBool(source, name)
}

// EvalFile evaluates the file at path.
func (e *Engine) EvalFile(path string) (string, error) {
	return e.ctx.EvalFile(path)
}

// SetGlobal installs a scalar global binding.
func (e *Engine) SetGlobal(name string, value any) error {
	return e.ctx.SetGlobal(name, value)
}

// GetGlobalString reads a global binding in string form.
func (e *Engine) GetGlobalString(name string) string {
	return e.ctx.GetGlobalString(name)
}

// Call invokes a global script function with string arguments.
func (e *Engine) Call(name string, args ...string) (string, error) {
	return e.ctx.Call(name, args...)
}

// RegisterFunc exposes fn as a script-global callable.
func (e *Engine) RegisterFunc(name string, fn hostfunc.Func) error {
	return e.ctx.RegisterFunc(name, fn)
}

// RegisterSimpleFunc exposes a zero-argument closure as a script
// global.
func (e *Engine) RegisterSimpleFunc(name string, fn hostfunc.SimpleFunc) error {
	return e.ctx.RegisterSimpleFunc(name, fn)
}

// SetConsoleLog routes console.log to cb.
func (e *Engine) SetConsoleLog(cb func(string)) error {
	return e.ctx.SetConsoleLog(cb)
}

// EnableStdlib loads the engine's standard modules.
func (e *Engine) EnableStdlib() {
	e.ctx.EnableStdlib()
}
