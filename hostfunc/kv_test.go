package hostfunc

import (
	"strings"
	"testing"
)

func TestKVSetGet(t *testing.T) {
	kv := NewKV(DefaultKVConfig())

	if _, err := kv.Set([]string{"foo", "bar"}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, err := kv.Get([]string{"foo"})
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if val != "bar" {
		t.Errorf("expected bar, got %q", val)
	}
}

func TestKVGetMissing(t *testing.T) {
	kv := NewKV(DefaultKVConfig())

	val, err := kv.Get([]string{"missing"})
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if val != "" {
		t.Errorf("expected empty string, got %q", val)
	}
}

func TestKVDelete(t *testing.T) {
	kv := NewKV(DefaultKVConfig())

	kv.Set([]string{"foo", "bar"})
	kv.Delete([]string{"foo"})

	val, _ := kv.Get([]string{"foo"})
	if val != "" {
		t.Errorf("expected empty after delete, got %q", val)
	}
}

func TestKVKeys(t *testing.T) {
	kv := NewKV(DefaultKVConfig())

	kv.Set([]string{"b", "2"})
	kv.Set([]string{"a", "1"})

	keys, err := kv.Keys(nil)
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	if keys != "a\nb" {
		t.Errorf("expected sorted keys, got %q", keys)
	}
}

func TestKVMissingArgs(t *testing.T) {
	kv := NewKV(DefaultKVConfig())

	if _, err := kv.Get(nil); err == nil {
		t.Error("expected error for missing key")
	}
	if _, err := kv.Set([]string{"only-key"}); err == nil {
		t.Error("expected error for missing value")
	}
	if _, err := kv.Delete(nil); err == nil {
		t.Error("expected error for missing key")
	}
}

func TestKVLimits(t *testing.T) {
	kv := NewKV(KVConfig{MaxKeySize: 4, MaxValueSize: 4, MaxEntries: 2})

	if _, err := kv.Set([]string{"toolongkey", "v"}); err == nil {
		t.Error("expected key size error")
	}
	if _, err := kv.Set([]string{"k", strings.Repeat("v", 5)}); err == nil {
		t.Error("expected value size error")
	}

	kv.Set([]string{"a", "1"})
	kv.Set([]string{"b", "2"})
	if _, err := kv.Set([]string{"c", "3"}); err == nil {
		t.Error("expected store-full error")
	}

	// Overwriting an existing key is still allowed at capacity.
	if _, err := kv.Set([]string{"a", "9"}); err != nil {
		t.Errorf("overwrite at capacity failed: %v", err)
	}
}
