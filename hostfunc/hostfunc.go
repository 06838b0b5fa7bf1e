package hostfunc

import "sync"

// Func is a host closure callable from script code: positional string
// arguments in, one string result out. An error return is surfaced to
// the calling script frame as a thrown exception.
type Func func(args []string) (string, error)

// SimpleFunc is the zero-argument form of Func.
type SimpleFunc func() (string, error)

// Registry maps global names to host closures. A context owns one
// Registry, tying closure lifetime to the context that can invoke
// them. Last registration under a name wins.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]Func
}

func NewRegistry() *Registry {
	return &Registry{funcs: make(map[string]Func)}
}

func (r *Registry) Register(name string, fn Func) {
	r.mu.Lock()
	r.funcs[name] = fn
	r.mu.Unlock()
}

func (r *Registry) Get(name string) (Func, bool) {
	r.mu.RLock()
	fn, ok := r.funcs[name]
	r.mu.RUnlock()
	return fn, ok
}

func (r *Registry) Remove(name string) {
	r.mu.Lock()
	delete(r.funcs, name)
	r.mu.Unlock()
}

func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	return names
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.funcs)
}
