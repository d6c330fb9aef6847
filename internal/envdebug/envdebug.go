// Copyright 2026 The ChatNet Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package envdebug provides a mechanism to configure compatibility
// parameters via the CHATNETDEBUG environment variable.
//
// The value of CHATNETDEBUG is a comma-separated list of key=value pairs.
// For example:
//
//	CHATNETDEBUG=disablekeepalive=1,someoption=value
package envdebug

import (
	"fmt"
	"os"
	"strings"
)

const compatibilityEnvKey = "CHATNETDEBUG"

var params map[string]string

func init() {
	var err error
	params, err = parse(os.Getenv(compatibilityEnvKey))
	if err != nil {
		panic(err)
	}
}

// Value returns the value of the compatibility parameter with the given
// key, or "" if it isn't set.
func Value(key string) string {
	return params[key]
}

func parse(raw string) (map[string]string, error) {
	if raw == "" {
		return nil, nil
	}
	out := make(map[string]string)
	for _, part := range strings.Split(raw, ",") {
		k, v, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("%s: invalid format: %q", compatibilityEnvKey, part)
		}
		out[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return out, nil
}
