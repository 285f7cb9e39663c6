package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/alexanderramin/shutterflow/internal/kv"
)

// ErrInjected is the default error returned by FailingKV.
var ErrInjected = errors.New("injected kv failure")

// CountingKV wraps a kv.Store and records every call by method name.
type CountingKV struct {
	kv.Store

	mu    sync.Mutex
	calls map[string]int
	keys  []string
}

func NewCountingKV(inner kv.Store) *CountingKV {
	return &CountingKV{Store: inner, calls: make(map[string]int)}
}

func (c *CountingKV) record(method string, keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls[method]++
	if method != "Get" {
		c.keys = append(c.keys, keys...)
	}
}

// Calls returns how many times method was invoked.
func (c *CountingKV) Calls(method string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[method]
}

// Writes returns the number of Set, SetMany and Remove calls.
func (c *CountingKV) Writes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls["Set"] + c.calls["SetMany"] + c.calls["Remove"]
}

// WrittenKeys returns the keys passed to write calls, in call order.
func (c *CountingKV) WrittenKeys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.keys...)
}

func (c *CountingKV) Get(ctx context.Context, key string) (string, bool, error) {
	c.record("Get", key)
	return c.Store.Get(ctx, key)
}

func (c *CountingKV) Set(ctx context.Context, key, value string) error {
	c.record("Set", key)
	return c.Store.Set(ctx, key, value)
}

func (c *CountingKV) SetMany(ctx context.Context, entries map[string]string) error {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	c.record("SetMany", keys...)
	return c.Store.SetMany(ctx, entries)
}

func (c *CountingKV) Remove(ctx context.Context, keys ...string) error {
	c.record("Remove", keys...)
	return c.Store.Remove(ctx, keys...)
}

// FailingKV wraps a kv.Store and fails writes (and optionally reads) with
// Err while the corresponding flag is set.
type FailingKV struct {
	kv.Store

	mu         sync.Mutex
	failWrites bool
	failReads  bool
	Err        error
}

func NewFailingKV(inner kv.Store) *FailingKV {
	return &FailingKV{Store: inner, Err: ErrInjected}
}

func (f *FailingKV) FailWrites(on bool) {
	f.mu.Lock()
	f.failWrites = on
	f.mu.Unlock()
}

func (f *FailingKV) FailReads(on bool) {
	f.mu.Lock()
	f.failReads = on
	f.mu.Unlock()
}

func (f *FailingKV) writeErr() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrites {
		return f.Err
	}
	return nil
}

func (f *FailingKV) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	fail := f.failReads
	f.mu.Unlock()
	if fail {
		return "", false, f.Err
	}
	return f.Store.Get(ctx, key)
}

func (f *FailingKV) Set(ctx context.Context, key, value string) error {
	if err := f.writeErr(); err != nil {
		return err
	}
	return f.Store.Set(ctx, key, value)
}

func (f *FailingKV) SetMany(ctx context.Context, entries map[string]string) error {
	if err := f.writeErr(); err != nil {
		return err
	}
	return f.Store.SetMany(ctx, entries)
}

func (f *FailingKV) Remove(ctx context.Context, keys ...string) error {
	if err := f.writeErr(); err != nil {
		return err
	}
	return f.Store.Remove(ctx, keys...)
}
