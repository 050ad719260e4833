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
	"testing"

	"github.com/stretchr/testify/assert"
)

type orderSubscriber struct {
	name  string
	log   *[]string
	onMsg func()
}

func (s *orderSubscriber) OnMessage(bus *GXCan29, msg GXMessage) {
	*s.log = append(*s.log, s.name)
	if s.onMsg != nil {
		s.onMsg()
	}
}

func TestRegistryDispatchOrder(t *testing.T) {
	var r componentRegistry
	var log []string
	a := &orderSubscriber{name: "a", log: &log}
	b := &orderSubscriber{name: "b", log: &log}
	c := &orderSubscriber{name: "c", log: &log}
	r.subscribe(a)
	r.subscribe(b)
	r.subscribe(c)
	r.subscribe(b)
	assert.Equal(t, 3, r.count())

	r.dispatch(nil, GXMessage{})
	assert.Equal(t, []string{"a", "b", "c"}, log)
}

func TestRegistryUnsubscribeDuringDispatch(t *testing.T) {
	var r componentRegistry
	var log []string
	b := &orderSubscriber{name: "b", log: &log}
	c := &orderSubscriber{name: "c", log: &log}
	a := &orderSubscriber{name: "a", log: &log}
	// a removes itself and b while the first message is dispatched.
	a.onMsg = func() {
		r.unsubscribe(a)
		r.unsubscribe(b)
	}
	r.subscribe(a)
	r.subscribe(b)
	r.subscribe(c)

	r.dispatch(nil, GXMessage{})
	assert.Equal(t, []string{"a", "b", "c"}, log)

	log = log[:0]
	r.dispatch(nil, GXMessage{})
	assert.Equal(t, []string{"c"}, log)
}

func TestRegistrySubscribeDuringDispatch(t *testing.T) {
	var r componentRegistry
	var log []string
	late := &orderSubscriber{name: "late", log: &log}
	a := &orderSubscriber{name: "a", log: &log}
	a.onMsg = func() { r.subscribe(late) }
	r.subscribe(a)

	r.dispatch(nil, GXMessage{})
	assert.Equal(t, []string{"a"}, log)

	r.dispatch(nil, GXMessage{})
	assert.Equal(t, []string{"a", "a", "late"}, log)
}

func TestRegistryUnsubscribeUnknown(t *testing.T) {
	var r componentRegistry
	var log []string
	assert.False(t, r.unsubscribe(&orderSubscriber{log: &log}))
}

func TestSubscribeCancel(t *testing.T) {
	bus := NewGXCan29(&testTransport{})
	var log []string
	s := &orderSubscriber{name: "s", log: &log}
	cancel := bus.Subscribe(s)
	assert.Equal(t, 1, bus.registry.count())
	cancel()
	assert.Zero(t, bus.registry.count())
	assert.False(t, bus.Unsubscribe(s))
}

// sliceSubscriber is not comparable.
type sliceSubscriber struct {
	seen *int
	tags []string
}

func (s sliceSubscriber) OnMessage(bus *GXCan29, msg GXMessage) {
	*s.seen++
}

// boxSubscriber is comparable by type but may hold an uncomparable value.
type boxSubscriber struct {
	seen *int
	tag  any
}

func (s boxSubscriber) OnMessage(bus *GXCan29, msg GXMessage) {
	*s.seen++
}

func TestRegistryUncomparableSubscriber(t *testing.T) {
	var r componentRegistry
	seen := 0
	s := sliceSubscriber{seen: &seen, tags: []string{"a"}}
	first := r.subscribe(s)
	second := r.subscribe(s)
	assert.NotEqual(t, first, second)
	assert.Equal(t, 2, r.count())
	assert.False(t, r.unsubscribe(s))

	box := boxSubscriber{seen: &seen, tag: []byte{1}}
	third := r.subscribe(box)
	r.subscribe(box)
	assert.Equal(t, 4, r.count())

	r.dispatch(nil, GXMessage{})
	assert.Equal(t, 4, seen)

	assert.True(t, r.remove(first))
	assert.True(t, r.remove(third))
	assert.False(t, r.remove(first))
	assert.Equal(t, 2, r.count())
}

func TestSubscribeCancelUncomparable(t *testing.T) {
	bus := NewGXCan29(&testTransport{})
	seen := 0
	cancel := bus.Subscribe(sliceSubscriber{seen: &seen, tags: []string{"a"}})
	assert.Equal(t, 1, bus.registry.count())
	cancel()
	assert.Zero(t, bus.registry.count())
}
