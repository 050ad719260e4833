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
	"reflect"
	"sync"
)

// Subscriber is notified of every decoded message. Unsubscribe finds a
// subscriber by value, which needs a comparable type (normally a
// pointer); the cancel function returned by Subscribe works for any type.
// OnMessage runs on the receive goroutine and must not call SendAndWait.
type Subscriber interface {
	OnMessage(bus *GXCan29, msg GXMessage)
}

type subscription struct {
	id uint64
	s  Subscriber
}

// componentRegistry keeps subscribers in registration order. The slice
// is replaced on every change, so dispatch iterates a stable snapshot.
type componentRegistry struct {
	mu          sync.Mutex
	nextID      uint64
	subscribers []subscription
}

// sameSubscriber compares a and b without panicking on types that
// cannot be compared.
func sameSubscriber(a, b Subscriber) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if !va.IsValid() || !vb.IsValid() || va.Type() != vb.Type() {
		return false
	}
	if !va.Comparable() || !vb.Comparable() {
		return false
	}
	return a == b
}

// subscribe adds s and returns its id. A subscriber that is already
// registered keeps its place and id.
func (r *componentRegistry) subscribe(s Subscriber) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range r.subscribers {
		if sameSubscriber(it.s, s) {
			return it.id
		}
	}
	r.nextID++
	list := make([]subscription, len(r.subscribers), len(r.subscribers)+1)
	copy(list, r.subscribers)
	r.subscribers = append(list, subscription{id: r.nextID, s: s})
	return r.nextID
}

func (r *componentRegistry) removeAt(i int) {
	list := make([]subscription, 0, len(r.subscribers)-1)
	list = append(list, r.subscribers[:i]...)
	r.subscribers = append(list, r.subscribers[i+1:]...)
}

func (r *componentRegistry) unsubscribe(s Subscriber) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, it := range r.subscribers {
		if sameSubscriber(it.s, s) {
			r.removeAt(i)
			return true
		}
	}
	return false
}

func (r *componentRegistry) remove(id uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, it := range r.subscribers {
		if it.id == id {
			r.removeAt(i)
			return true
		}
	}
	return false
}

func (r *componentRegistry) snapshot() []subscription {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.subscribers
}

func (r *componentRegistry) count() int {
	return len(r.snapshot())
}

func (r *componentRegistry) dispatch(bus *GXCan29, msg GXMessage) {
	for _, it := range r.snapshot() {
		it.s.OnMessage(bus, msg)
	}
}
