// Copyright 2026 The ChatNet Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package netutil holds small route-inspection helpers used by dialers
// applying per-route policy.
package netutil

import (
	"net"
	"net/netip"
	"strings"
)

// IsLoopback reports whether addr (a "host" or "host:port") resolves to a
// loopback address. Dialers use this to exempt local test servers from the
// minimum-TLS route policy.
func IsLoopback(addr string) bool {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = strings.Trim(addr, "[]")
	}
	if host == "localhost" {
		return true
	}
	ip, err := netip.ParseAddr(host)
	if err != nil {
		return false
	}
	return ip.IsLoopback()
}
