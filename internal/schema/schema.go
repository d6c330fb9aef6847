// Copyright 2026 The ChatNet Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package schema validates decoded registration responses against a JSON
// Schema reflected off their Go type, using google/jsonschema-go. The
// reflected schema enforces required fields and value types; it is
// structural validation layered on top of the type-level decode, not an
// enum check (jsonschema.ForType reflects string-backed enum types as plain
// strings, with no enum constraint).
package schema

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
)

var (
	mu    sync.Mutex
	cache = map[reflect.Type]*jsonschema.Resolved{}
)

// resolvedFor returns the (cached) resolved schema reflected from T.
func resolvedFor(t reflect.Type) (*jsonschema.Resolved, error) {
	mu.Lock()
	defer mu.Unlock()

	if r, ok := cache[t]; ok {
		return r, nil
	}
	raw, err := jsonschema.ForType(t, &jsonschema.ForOptions{IgnoreInvalidTypes: true})
	if err != nil {
		return nil, fmt.Errorf("schema: reflecting %s: %w", t, err)
	}
	resolved, err := raw.Resolve(&jsonschema.ResolveOptions{ValidateDefaults: true})
	if err != nil {
		return nil, fmt.Errorf("schema: resolving %s: %w", t, err)
	}
	cache[t] = resolved
	return resolved, nil
}

// Validate checks that instance (typically the result of unmarshaling JSON
// into a map[string]any or into *T itself) conforms to the schema reflected
// from T.
func Validate[T any](instance any) error {
	resolved, err := resolvedFor(reflect.TypeFor[T]())
	if err != nil {
		// A reflection failure is a bug in this package's schema coverage,
		// not a data problem; don't fail closed on caller data because of it.
		return nil
	}
	return resolved.Validate(instance)
}
