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
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Gurux/gxcommon-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testMedia implements the parts of IGXMedia used by GXMediaTransport.
type testMedia struct {
	gxcommon.IGXMedia

	mu      sync.Mutex
	onRecv  gxcommon.ReceivedEventHandler
	sent    [][]byte
	sendErr error
}

func (m *testMedia) SetOnReceived(value gxcommon.ReceivedEventHandler) {
	m.mu.Lock()
	m.onRecv = value
	m.mu.Unlock()
}

func (m *testMedia) Send(data any, receiver string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, append([]byte(nil), data.([]byte)...))
	return nil
}

func (m *testMedia) deliver(data []byte) {
	m.mu.Lock()
	cb := m.onRecv
	m.mu.Unlock()
	cb(m, *gxcommon.NewReceiveEventArgs(data, "test"))
}

func TestReceiveBufferRead(t *testing.T) {
	b := newReceiveBuffer()
	buf := make([]byte, 4)
	assert.Zero(t, b.Read(buf, 0))

	b.Append([]byte{1, 2, 3, 4, 5, 6})
	assert.Equal(t, 4, b.Read(buf, 0))
	assert.Equal(t, []byte{1, 2, 3, 4}, buf)
	assert.Equal(t, 2, b.Len())
	assert.Equal(t, 2, b.Read(buf, 0))
	assert.Equal(t, []byte{5, 6}, buf[:2])
	assert.Zero(t, b.Len())
}

func TestReceiveBufferWaits(t *testing.T) {
	b := newReceiveBuffer()
	go func() {
		time.Sleep(10 * time.Millisecond)
		b.Append([]byte{7})
	}()
	buf := make([]byte, 4)
	assert.Equal(t, 1, b.Read(buf, time.Second))
	assert.Equal(t, byte(7), buf[0])

	start := time.Now()
	assert.Zero(t, b.Read(buf, 20*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestMediaTransport(t *testing.T) {
	media := &testMedia{}
	tr := NewGXMediaTransport(media, 20*time.Millisecond)
	assert.Same(t, media, tr.Media())

	n, err := tr.Write([]byte{1, 2})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, [][]byte{{1, 2}}, media.sent)

	buf := make([]byte, 8)
	n, err = tr.Read(buf)
	require.NoError(t, err)
	assert.Zero(t, n)

	media.deliver([]byte{3, 4, 5})
	n, err = tr.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, []byte{3, 4, 5}, buf[:n])

	media.sendErr = errors.New("closed")
	_, err = tr.Write([]byte{1})
	assert.EqualError(t, err, "closed")
}

func TestBusOverMediaTransport(t *testing.T) {
	media := &testMedia{}
	bus := NewGXCan29(NewGXMediaTransport(media, 10*time.Millisecond))
	require.NoError(t, bus.Start())
	defer bus.Stop()

	q := NewGXMessage(1, 0, 0x05, 2, 0, 1, nil)
	go func() {
		assert.Eventually(t, func() bool {
			media.mu.Lock()
			defer media.mu.Unlock()
			return len(media.sent) == 1
		}, time.Second, time.Millisecond)
		frame := mustEncode(answerFor(q, []byte{0x00, 0x00, 0x00, 0x2A}))
		// The media may deliver a frame in pieces.
		media.deliver(frame[:5])
		media.deliver(frame[5:])
	}()
	a, err := bus.SendAndWait(q, time.Second)
	require.NoError(t, err)
	v, err := GetUInt32(a.Payload, 0)
	require.NoError(t, err)
	assert.Equal(t, uint32(42), v)
}
