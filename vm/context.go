package vm

import (
	"errors"
	"fmt"
	"os"

	"github.com/dop251/goja"
	"github.com/dop251/goja_nodejs/console"
	"github.com/dop251/goja_nodejs/process"
	"github.com/dop251/goja_nodejs/require"
	"github.com/dop251/goja_nodejs/url"

	"github.com/jsbox-dev/jsbox/hostfunc"
)

// Context is one evaluation environment bound to a Runtime: the global
// object, its bindings, and the registry of host functions callable
// from script. Close the Context before its Runtime.
type Context struct {
	rt     *Runtime
	funcs  *hostfunc.Registry
	mods   *require.Registry
	closed bool
}

// NewContext binds a new evaluation environment to rt.
func NewContext(rt *Runtime) (*Context, error) {
	if rt == nil || rt.closed {
		return nil, ErrContextCreation
	}
	return &Context{
		rt:    rt,
		funcs: hostfunc.NewRegistry(),
	}, nil
}

// Close releases the context and the host closures registered on it.
// Idempotent and terminal.
func (c *Context) Close() {
	if c.closed {
		return
	}
	c.closed = true
	for _, name := range c.funcs.List() {
		c.funcs.Remove(name)
	}
}

// Funcs exposes the context's host-function registry.
func (c *Context) Funcs() *hostfunc.Registry {
	return c.funcs
}

// run executes source under the given label with the runtime's limit
// watchdog armed, and maps engine failures onto the error taxonomy.
func (c *Context) run(source, name string) (goja.Value, error) {
	disarm := c.rt.armWatchdog()
	defer disarm()

	v, err := c.rt.vm.RunScript(name, source)
	if err != nil {
		return nil, asScriptError(err)
	}
	return v, nil
}

// asScriptError converts an engine failure into a *ScriptError.
// Thrown values keep their own string form; a value with none becomes
// "Unknown error". Interrupts carry the watchdog's message.
func asScriptError(err error) error {
	var ir *goja.InterruptedError
	if errors.As(err, &ir) {
		msg := "out of memory"
		if s, ok := ir.Value().(string); ok && s != "" {
			msg = s
		}
		return &ScriptError{Message: msg}
	}

	var ex *goja.Exception
	if errors.As(err, &ex) {
		msg := "Unknown error"
		if v := ex.Value(); v != nil {
			msg = v.String()
		}
		return &ScriptError{Message: msg}
	}

	// Parse failures and other engine-level faults.
	return &ScriptError{Message: err.Error()}
}

// Eval executes source as a top-level program. The label is used only
// in diagnostics. On success the completion value is returned in the
// engine's own string form.
func (c *Context) Eval(source, name string) (string, error) {
	v, err := c.run(source, name)
	if err != nil {
		return "", err
	}
	if v == nil {
		return "", nil
	}
	return v.String(), nil
}

// EvalInt executes source and coerces the completion value to a 32-bit
// integer using the engine's own numeric coercion. Coercion of a
// non-numeric value follows ECMAScript semantics (NaN becomes 0); it
// is never an error.
func (c *Context) EvalInt(source, name string) (int32, error) {
	v, err := c.run(source, name)
	if err != nil {
		return 0, err
	}
	if v == nil {
		return 0, nil
	}
	return int32(v.ToInteger()), nil
}

// EvalFloat executes source and coerces the completion value to a
// float64 using the engine's own numeric coercion.
func (c *Context) EvalFloat(source, name string) (float64, error) {
	v, err := c.run(source, name)
	if err != nil {
		return 0, err
	}
	if v == nil {
		return 0, nil
	}
	return v.ToFloat(), nil
}

// EvalBool executes source and coerces the completion value to a bool
// using the engine's own truthiness rules.
func (c *Context) EvalBool(source, name string) (bool, error) {
	v, err := c.run(source, name)
	if err != nil {
		return false, err
	}
	if v == nil {
		return false, nil
	}
	return v.ToBoolean(), nil
}

// SetGlobal installs value as a global binding, overwriting any prior
// binding of that name. Only scalar values cross the boundary.
func (c *Context) SetGlobal(name string, value any) error {
	switch value.(type) {
	case string, bool, int, int32, int64, float64:
	default:
		return fmt.Errorf("unsupported global type %T", value)
	}
	return c.rt.vm.Set(name, value)
}

// GetGlobalString reads a global binding coerced to the engine's
// string form. An unbound name yields "undefined". Never fails.
func (c *Context) GetGlobalString(name string) string {
	v := c.rt.vm.Get(name)
	if v == nil {
		return "undefined"
	}
	return v.String()
}

// Call invokes the global function name with the global object as
// receiver. Each argument crosses the boundary as a script string; the
// result and any thrown exception are handled exactly as Eval does.
func (c *Context) Call(name string, args ...string) (string, error) {
	fn, ok := goja.AssertFunction(c.rt.vm.Get(name))
	if !ok {
		return "", &NotCallableError{Name: name}
	}

	vals := make([]goja.Value, len(args))
	for i, arg := range args {
		vals[i] = c.rt.vm.ToValue(arg)
	}

	disarm := c.rt.armWatchdog()
	defer disarm()

	v, err := fn(c.rt.vm.GlobalObject(), vals...)
	if err != nil {
		return "", asScriptError(err)
	}
	if v == nil {
		return "", nil
	}
	return v.String(), nil
}

// EvalFile reads the whole file at path and evaluates it with the path
// as the diagnostic label.
func (c *Context) EvalFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &FileOpenError{Path: path, Err: err}
	}
	return c.Eval(string(data), path)
}

// EnableStdlib loads the engine's standard modules (require, console,
// process, URL) into the context. Idempotent.
func (c *Context) EnableStdlib() {
	if c.mods != nil {
		return
	}
	reg := new(require.Registry)
	reg.Enable(c.rt.vm)
	console.Enable(c.rt.vm)
	process.Enable(c.rt.vm)
	url.Enable(c.rt.vm)
	c.mods = reg
}
