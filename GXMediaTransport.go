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
	"encoding/binary"
	"sync"
	"time"

	"github.com/Gurux/gxcommon-go"
)

// DefaultMediaReadTimeout bounds a single GXMediaTransport read.
const DefaultMediaReadTimeout = 100 * time.Millisecond

// receiveBuffer collects data pushed by the media until it is read.
type receiveBuffer struct {
	mu   sync.Mutex
	buf  []byte
	wait chan struct{}
}

func newReceiveBuffer() *receiveBuffer {
	return &receiveBuffer{wait: make(chan struct{})}
}

func (b *receiveBuffer) Append(p []byte) {
	if len(p) == 0 {
		return
	}
	b.mu.Lock()
	b.buf = append(b.buf, p...)
	old := b.wait
	b.wait = make(chan struct{})
	b.mu.Unlock()
	close(old)
}

// Read copies buffered data into p, waiting up to maxWait for data to
// arrive. It returns 0 when nothing arrived in time.
func (b *receiveBuffer) Read(p []byte, maxWait time.Duration) int {
	var timer *time.Timer
	for {
		b.mu.Lock()
		if len(b.buf) != 0 {
			n := copy(p, b.buf)
			//Move the remaining bytes to the start of the buffer.
			b.buf = b.buf[:copy(b.buf, b.buf[n:])]
			b.mu.Unlock()
			if timer != nil {
				timer.Stop()
			}
			return n
		}
		ch := b.wait
		b.mu.Unlock()

		if maxWait <= 0 {
			return 0
		}
		if timer == nil {
			timer = time.NewTimer(maxWait)
		}
		select {
		case <-ch:
			continue
		case <-timer.C:
			return 0
		}
	}
}

// Len returns the number of buffered bytes.
func (b *receiveBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.buf)
}

// GXMediaTransport reads and writes CAN29 frames through a Gurux media
// such as gxserial.GXSerial or gxnet.GXNet. The media must be opened
// and closed by the caller.
type GXMediaTransport struct {
	media       gxcommon.IGXMedia
	readTimeout time.Duration
	received    *receiveBuffer

	mu  sync.Mutex
	err error
}

// NewGXMediaTransport installs a receive handler on media. Reads wait
// at most readTimeout; 0 uses DefaultMediaReadTimeout.
func NewGXMediaTransport(media gxcommon.IGXMedia, readTimeout time.Duration) *GXMediaTransport {
	if readTimeout <= 0 {
		readTimeout = DefaultMediaReadTimeout
	}
	t := &GXMediaTransport{media: media, readTimeout: readTimeout, received: newReceiveBuffer()}
	media.SetOnReceived(t.onReceived)
	return t
}

// Media returns the wrapped media.
func (t *GXMediaTransport) Media() gxcommon.IGXMedia {
	return t.media
}

func (t *GXMediaTransport) onReceived(m gxcommon.IGXMedia, e gxcommon.ReceiveEventArgs) {
	data, err := gxcommon.ToBytes(e.Data(), binary.BigEndian)
	if err != nil {
		t.mu.Lock()
		t.err = err
		t.mu.Unlock()
		return
	}
	t.received.Append(data)
}

// Read implements io.Reader. It returns 0, nil when no data arrived
// within the read timeout. A conversion failure of received data is
// returned once by the next Read.
func (t *GXMediaTransport) Read(p []byte) (int, error) {
	t.mu.Lock()
	err := t.err
	t.err = nil
	t.mu.Unlock()
	if err != nil {
		return 0, err
	}
	if len(p) == 0 {
		return 0, nil
	}
	return t.received.Read(p, t.readTimeout), nil
}

// Write implements io.Writer.
func (t *GXMediaTransport) Write(p []byte) (int, error) {
	if err := t.media.Send(p, ""); err != nil {
		return 0, err
	}
	return len(p), nil
}
