// Copyright 2026 The ChatNet Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package chat

import "testing"

func TestAckHandleTakeOnce(t *testing.T) {
	var calls int
	handle := newAckHandle(func(status int) error {
		calls++
		return nil
	})

	send, ok := handle.Take()
	if !ok {
		t.Fatal("first Take should succeed")
	}
	if err := send(200); err != nil {
		t.Fatalf("send: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}

	if _, ok := handle.Take(); ok {
		t.Fatal("second Take should fail")
	}
}

func TestAckHandleNeverTaken(t *testing.T) {
	handle := newAckHandle(func(status int) error { return nil })
	_ = handle // never calling Take is valid; nothing to assert beyond no panic.
}
