package store

import (
	"sort"
	"strings"
	"sync"
)

// Memory is an in-process store, used when no database is configured.
type Memory struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemory creates an empty store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *Memory) Keys(prefix string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var keys []string
	for k := range m.values {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// KV is the store every backend provides.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Prefixed namespaces a store, giving each player their own scores.
type Prefixed struct {
	kv     KV
	prefix string
}

// WithPrefix returns a view of kv where every key starts with prefix.
func WithPrefix(kv KV, prefix string) *Prefixed {
	return &Prefixed{kv: kv, prefix: prefix}
}

func (p *Prefixed) Get(key string) (string, bool, error) {
	return p.kv.Get(p.prefix + key)
}

func (p *Prefixed) Set(key, value string) error {
	return p.kv.Set(p.prefix+key, value)
}
