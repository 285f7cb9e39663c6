// Package kv is the string key → string value persistence layer under the
// project store. Each logical bucket is one key holding one JSON document.
package kv

import (
	"context"
	"errors"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("kv: store closed")

// Store is an asynchronous-style key-value API. Get reports a missing key
// with found=false rather than an error.
type Store interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	// SetMany writes several keys together. Drivers that support it apply
	// the writes atomically.
	SetMany(ctx context.Context, entries map[string]string) error
	Remove(ctx context.Context, keys ...string) error
	Close() error
}

type prefixed struct {
	inner  Store
	prefix string
}

// WithPrefix namespaces every key of inner with prefix. Used on shared
// backends (redis, postgres) so several installations can coexist.
func WithPrefix(inner Store, prefix string) Store {
	if prefix == "" {
		return inner
	}
	return &prefixed{inner: inner, prefix: prefix}
}

func (p *prefixed) Get(ctx context.Context, key string) (string, bool, error) {
	return p.inner.Get(ctx, p.prefix+key)
}

func (p *prefixed) Set(ctx context.Context, key, value string) error {
	return p.inner.Set(ctx, p.prefix+key, value)
}

func (p *prefixed) SetMany(ctx context.Context, entries map[string]string) error {
	out := make(map[string]string, len(entries))
	for k, v := range entries {
		out[p.prefix+k] = v
	}
	return p.inner.SetMany(ctx, out)
}

func (p *prefixed) Remove(ctx context.Context, keys ...string) error {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = p.prefix + k
	}
	return p.inner.Remove(ctx, out...)
}

func (p *prefixed) Close() error { return p.inner.Close() }
