package vm

import "errors"

var (
	// ErrRuntimeCreation is returned when the engine's global state
	// cannot be allocated.
	ErrRuntimeCreation = errors.New("failed to create runtime")

	// ErrContextCreation is returned when an evaluation context cannot
	// be bound to a runtime.
	ErrContextCreation = errors.New("failed to create context")
)

// ScriptError is a script-level failure: a thrown exception, a parse
// error, or a runtime fault inside the engine. Message is the thrown
// value's string form, or "Unknown error" when it has none.
type ScriptError struct {
	Message string
}

func (e *ScriptError) Error() string {
	return e.Message
}

// NotCallableError is returned by Call when the named global is absent
// or not invocable.
type NotCallableError struct {
	Name string
}

func (e *NotCallableError) Error() string {
	return "not a function: " + e.Name
}

// FileOpenError is returned by EvalFile when the target path cannot be
// read.
type FileOpenError struct {
	Path string
	Err  error
}

func (e *FileOpenError) Error() string {
	return "failed to open file " + e.Path + ": " + e.Err.Error()
}

func (e *FileOpenError) Unwrap() error {
	return e.Err
}
