package hostfunc

import (
	"errors"
	"sort"
	"strings"
	"sync"
)

const (
	DefaultKVMaxKeySize   = 256
	DefaultKVMaxValueSize = 64 * 1024
	DefaultKVMaxEntries   = 1024
)

type KVConfig struct {
	MaxKeySize   int
	MaxValueSize int
	MaxEntries   int
}

func DefaultKVConfig() KVConfig {
	return KVConfig{
		MaxKeySize:   DefaultKVMaxKeySize,
		MaxValueSize: DefaultKVMaxValueSize,
		MaxEntries:   DefaultKVMaxEntries,
	}
}

// KV is an in-memory string store exposed to script code through
// registered host functions.
type KV struct {
	cfg  KVConfig
	data map[string]string
	mu   sync.RWMutex
}

func NewKV(cfg KVConfig) *KV {
	if cfg.MaxKeySize == 0 {
		cfg.MaxKeySize = DefaultKVMaxKeySize
	}
	if cfg.MaxValueSize == 0 {
		cfg.MaxValueSize = DefaultKVMaxValueSize
	}
	if cfg.MaxEntries == 0 {
		cfg.MaxEntries = DefaultKVMaxEntries
	}
	return &KV{cfg: cfg, data: make(map[string]string)}
}

// Get returns the value for args[0], or an empty string when unset.
func (s *KV) Get(args []string) (string, error) {
	if len(args) < 1 {
		return "", errors.New("key required")
	}

	s.mu.RLock()
	val := s.data[args[0]]
	s.mu.RUnlock()
	return val, nil
}

// Set stores args[1] under args[0].
func (s *KV) Set(args []string) (string, error) {
	if len(args) < 2 {
		return "", errors.New("key and value required")
	}
	key, val := args[0], args[1]
	if len(key) > s.cfg.MaxKeySize {
		return "", errors.New("key exceeds max size")
	}
	if len(val) > s.cfg.MaxValueSize {
		return "", errors.New("value exceeds max size")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[key]; !exists && len(s.data) >= s.cfg.MaxEntries {
		return "", errors.New("store full")
	}
	s.data[key] = val
	return "ok", nil
}

// Delete removes args[0].
func (s *KV) Delete(args []string) (string, error) {
	if len(args) < 1 {
		return "", errors.New("key required")
	}

	s.mu.Lock()
	delete(s.data, args[0])
	s.mu.Unlock()
	return "ok", nil
}

// Keys returns all keys, sorted, newline-separated.
func (s *KV) Keys(args []string) (string, error) {
	s.mu.RLock()
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	s.mu.RUnlock()

	sort.Strings(keys)
	return strings.Join(keys, "\n"), nil
}
