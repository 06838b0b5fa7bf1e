package hostfunc

import (
	"sync"
	"testing"
)

func TestRegistryRegisterGet(t *testing.T) {
	r := NewRegistry()
	r.Register("echo", func(args []string) (string, error) {
		return args[0], nil
	})

	fn, ok := r.Get("echo")
	if !ok {
		t.Fatal("expected function to be registered")
	}
	got, err := fn([]string{"hello"})
	if err != nil {
		t.Fatalf("call failed: %v", err)
	}
	if got != "hello" {
		t.Errorf("expected hello, got %q", got)
	}
}

func TestRegistryGetMissing(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.Get("missing"); ok {
		t.Error("expected missing function to not be found")
	}
}

func TestRegistryLastWins(t *testing.T) {
	r := NewRegistry()
	r.Register("f", func([]string) (string, error) { return "first", nil })
	r.Register("f", func([]string) (string, error) { return "second", nil })

	fn, _ := r.Get("f")
	got, _ := fn(nil)
	if got != "second" {
		t.Errorf("expected second, got %q", got)
	}
	if r.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", r.Len())
	}
}

func TestRegistryRemove(t *testing.T) {
	r := NewRegistry()
	r.Register("f", func([]string) (string, error) { return "", nil })
	r.Remove("f")

	if _, ok := r.Get("f"); ok {
		t.Error("expected function to be removed")
	}
	if r.Len() != 0 {
		t.Errorf("expected empty registry, got %d", r.Len())
	}
}

func TestRegistryList(t *testing.T) {
	r := NewRegistry()
	r.Register("a", func([]string) (string, error) { return "", nil })
	r.Register("b", func([]string) (string, error) { return "", nil })

	names := r.List()
	if len(names) != 2 {
		t.Fatalf("expected 2 names, got %d", len(names))
	}
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			r.Register("f", func([]string) (string, error) { return "", nil })
		}()
		go func() {
			defer wg.Done()
			r.Get("f")
			r.List()
		}()
	}
	wg.Wait()
}
