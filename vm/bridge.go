package vm

import (
	"github.com/dop251/goja"

	"github.com/jsbox-dev/jsbox/hostfunc"
)

// RegisterFunc installs fn as a script-global callable. Script
// arguments are stringified best-effort before the call; the returned
// string becomes a script string result. An error from fn is re-raised
// into the calling script frame as an exception carrying its message;
// it is never returned to the host side.
//
// The closure lives in the context's registry and the trampoline looks
// it up by the name bound here, so registering again under the same
// name replaces the previous closure.
func (c *Context) RegisterFunc(name string, fn hostfunc.Func) error {
	c.funcs.Register(name, fn)
	return c.rt.vm.Set(name, c.trampoline(name))
}

// RegisterSimpleFunc installs a zero-argument host closure. Arguments
// passed by script code are ignored.
func (c *Context) RegisterSimpleFunc(name string, fn hostfunc.SimpleFunc) error {
	return c.RegisterFunc(name, func([]string) (string, error) {
		return fn()
	})
}

// trampoline adapts the registry entry for name to the engine's native
// function shape.
func (c *Context) trampoline(name string) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		fn, ok := c.funcs.Get(name)
		if !ok {
			panic(c.rt.vm.NewTypeError("%s is not registered", name))
		}

		args := make([]string, len(call.Arguments))
		for i, arg := range call.Arguments {
			args[i] = arg.String()
		}

		result, err := fn(args)
		if err != nil {
			panic(c.rt.vm.NewGoError(err))
		}
		return c.rt.vm.ToValue(result)
	}
}

// SetConsoleLog installs a console object whose log method forwards
// its first argument, stringified, to cb. Replaces any existing
// console binding.
func (c *Context) SetConsoleLog(cb func(string)) error {
	obj := c.rt.vm.NewObject()
	err := obj.Set("log", func(call goja.FunctionCall) goja.Value {
		if cb != nil && len(call.Arguments) > 0 {
			cb(call.Argument(0).String())
		}
		return goja.Undefined()
	})
	if err != nil {
		return err
	}
	return c.rt.vm.Set("console", obj)
}
