// Copyright (C) 2025 useme-com
//
// This file is part of transferwise-go.
//
// transferwise-go is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// transferwise-go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with transferwise-go.  If not, see <https://www.gnu.org/licenses/>.

package binder

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/useme-com/transferwise-go/pkg/apierror"
	"github.com/useme-com/transferwise-go/pkg/client"
)

// Kwargs are the keyword arguments of a forwarded call
type Kwargs map[string]any

// Bindings maps a method name to its bound arguments (argument name to
// source name)
type Bindings map[string]map[string]string

// MethodFunc is one forwardable method of a wrapped resource
type MethodFunc func(ctx context.Context, kwargs Kwargs) (*client.Response, error)

// Producer computes the value of a source on every call that needs it
type Producer func(ctx context.Context) (any, error)

// Factory builds the wrapped resource from the binder's construction arguments
type Factory[T any] func(cfg client.Config, opts ...client.Option) (T, error)

// Surface lists the methods a binder forwards for a resource
type Surface[T any] func(api T) map[string]MethodFunc

// Config declares one binder type
type Config[T any] struct {
	Factory  Factory[T]
	Surface  Surface[T]
	Bindings Bindings
}

// Binder wraps a resource of type T. It is safe for concurrent use.
type Binder[T any] struct {
	api      T
	methods  map[string]MethodFunc
	bindings Bindings

	mu        sync.RWMutex
	attrs     map[string]any
	producers map[string]Producer
}

// New builds the resource through cfg.Factory with clientCfg and opts, then
// wraps it
func New[T any](cfg Config[T], clientCfg client.Config, opts ...client.Option) (*Binder[T], error) {
	if cfg.Factory == nil {
		return nil, apierror.New(apierror.KindUndefinedAPI, "new binder", "no resource factory configured")
	}
	if cfg.Surface == nil {
		return nil, apierror.New(apierror.KindUndefinedAPI, "new binder", "no method surface configured")
	}

	api, err := cfg.Factory(clientCfg, opts...)
	if err != nil {
		return nil, err
	}

	return Wrap(api, cfg)
}

// Wrap binds an already constructed resource. cfg.Factory is not used.
func Wrap[T any](api T, cfg Config[T]) (*Binder[T], error) {
	if cfg.Surface == nil {
		return nil, apierror.New(apierror.KindUndefinedAPI, "new binder", "no method surface configured")
	}

	methods := cfg.Surface(api)
	if len(methods) == 0 {
		return nil, apierror.New(apierror.KindUndefinedAPI, "new binder", "resource exposes no methods")
	}
	for name := range cfg.Bindings {
		if _, ok := methods[name]; !ok {
			return nil, apierror.New(apierror.KindAttributeNotFound, "new binder",
				fmt.Sprintf("bindings name unknown method %q", name))
		}
	}

	return &Binder[T]{
		api:       api,
		methods:   methods,
		bindings:  copyBindings(cfg.Bindings),
		attrs:     make(map[string]any),
		producers: make(map[string]Producer),
	}, nil
}

// API returns the wrapped resource
func (b *Binder[T]) API() T {
	return b.api
}

// Methods returns the forwardable method names, sorted
func (b *Binder[T]) Methods() []string {
	names := make([]string, 0, len(b.methods))
	for name := range b.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether name is forwardable
func (b *Binder[T]) Has(name string) bool {
	_, ok := b.methods[name]
	return ok
}

// Set stores an attribute value. It is read at call time, so later calls see
// the new value.
func (b *Binder[T]) Set(name string, value any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.attrs[name] = value
}

// Get returns an attribute value
func (b *Binder[T]) Get(name string) (any, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	v, ok := b.attrs[name]
	return v, ok
}

// Provide registers a producer for name. A producer takes precedence over an
// attribute of the same name.
func (b *Binder[T]) Provide(name string, producer Producer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if producer == nil {
		delete(b.producers, name)
		return
	}
	b.producers[name] = producer
}

// Call forwards kwargs, completed with the bound arguments of name, to the
// wrapped method. kwargs is not modified. The result is returned as is.
func (b *Binder[T]) Call(ctx context.Context, name string, kwargs Kwargs) (*client.Response, error) {
	method, ok := b.methods[name]
	if !ok {
		return nil, apierror.New(apierror.KindAttributeNotFound, "call",
			fmt.Sprintf("%q is not a forwardable method", name))
	}

	merged, err := b.merge(ctx, name, kwargs)
	if err != nil {
		return nil, err
	}

	return method(ctx, merged)
}

func (b *Binder[T]) merge(ctx context.Context, name string, kwargs Kwargs) (Kwargs, error) {
	bound := b.bindings[name]

	merged := make(Kwargs, len(kwargs)+len(bound))
	for k, v := range kwargs {
		merged[k] = v
	}

	for arg, source := range bound {
		if _, explicit := merged[arg]; explicit {
			continue
		}

		value, err := b.resolve(ctx, source)
		if err != nil {
			return nil, err
		}
		merged[arg] = value
	}

	return merged, nil
}

func (b *Binder[T]) resolve(ctx context.Context, source string) (any, error) {
	b.mu.RLock()
	producer, hasProducer := b.producers[source]
	value, hasValue := b.attrs[source]
	b.mu.RUnlock()

	if hasProducer {
		v, err := producer(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to produce %s: %w", source, err)
		}
		return v, nil
	}
	if hasValue {
		return value, nil
	}

	return nil, apierror.New(apierror.KindAttributeNotFound, "resolve binding",
		fmt.Sprintf("no attribute or producer named %q", source))
}

func copyBindings(in Bindings) Bindings {
	out := make(Bindings, len(in))
	for method, args := range in {
		m := make(map[string]string, len(args))
		for arg, source := range args {
			m[arg] = source
		}
		out[method] = m
	}
	return out
}
