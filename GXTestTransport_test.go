package gxcan29

// --------------------------------------------------------------------------
//
//	Gurux Ltd
//
// Filename:        $HeadURL$
//
// Version:         $Revision$,
//
//	$Date$
//	$Author$
//
// # Copyright (c) Gurux Ltd
//
// ---------------------------------------------------------------------------
//
//	DESCRIPTION
//
// This file is a part of Gurux Device Framework.
//
// Gurux Device Framework is Open Source software; you can redistribute it
// and/or modify it under the terms of the GNU General Public License
// as published by the Free Software Foundation; version 2 of the License.
// Gurux Device Framework is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU General Public License for more details.
//
// More information of Gurux products: https://www.gurux.org
//
// This code is licensed under the GNU General Public License v2.
// Full text may be retrieved at http://www.gnu.org/licenses/gpl-2.0.txt
// ---------------------------------------------------------------------------

import (
	"sync"
)

// testTransport is an in-memory transport. Pushed chunks are returned
// one per Read; an empty queue reads as 0, nil.
type testTransport struct {
	mu       sync.Mutex
	inbound  [][]byte
	written  [][]byte
	readErr  error
	writeErr error
	// respond, when set, is called with every written frame and its
	// result is queued for reading.
	respond func(q GXMessage) [][]byte
}

func (t *testTransport) push(chunks ...[]byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, c := range chunks {
		t.inbound = append(t.inbound, append([]byte(nil), c...))
	}
}

func (t *testTransport) failReads(err error) {
	t.mu.Lock()
	t.readErr = err
	t.mu.Unlock()
}

func (t *testTransport) frames() [][]byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([][]byte(nil), t.written...)
}

func (t *testTransport) Read(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.readErr != nil {
		err := t.readErr
		t.readErr = nil
		return 0, err
	}
	if len(t.inbound) == 0 {
		return 0, nil
	}
	n := copy(p, t.inbound[0])
	if n == len(t.inbound[0]) {
		t.inbound = t.inbound[1:]
	} else {
		t.inbound[0] = t.inbound[0][n:]
	}
	return n, nil
}

func (t *testTransport) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.writeErr != nil {
		return 0, t.writeErr
	}
	t.written = append(t.written, append([]byte(nil), p...))
	if t.respond != nil {
		if q, err := Decode(p); err == nil {
			t.inbound = append(t.inbound, t.respond(q)...)
		}
	}
	return len(p), nil
}

// mustEncode encodes msg or panics.
func mustEncode(msg GXMessage) []byte {
	frame, err := Encode(msg)
	if err != nil {
		panic(err)
	}
	return frame
}

// recorder collects dispatched messages.
type recorder struct {
	mu   sync.Mutex
	msgs []GXMessage
}

func (r *recorder) OnMessage(bus *GXCan29, msg GXMessage) {
	r.mu.Lock()
	r.msgs = append(r.msgs, msg)
	r.mu.Unlock()
}

func (r *recorder) received() []GXMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]GXMessage(nil), r.msgs...)
}
