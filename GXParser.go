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
	"fmt"
)

// Header bytes before ProcID: dest, src, length, class, number.
const headerSize = 5

// maxFrameSize is the longest unescaped frame the length byte can declare.
const maxFrameSize = headerSize + 255

type parserState int

const (
	stateSeeking parserState = iota
	stateInFrame
	stateSawEscape
)

// GXParser reassembles CAN29 frames from a byte stream delivered in
// arbitrary chunks. The zero value is ready for use. GXParser is not
// safe for concurrent use.
type GXParser struct {
	state parserState
	// inFrame tells whether a DLE seen in stateSawEscape belongs to a frame.
	inFrame bool
	buf     []byte
}

// Feed consumes data and returns every frame completed by it. Bytes of
// an unfinished frame are kept for the next call. Discarded frames are
// reported as MalformedFrameError values joined into the returned error;
// the returned messages are valid even when the error is not nil.
func (p *GXParser) Feed(data []byte) ([]GXMessage, error) {
	var (
		msgs []GXMessage
		errs []error
	)
	for _, b := range data {
		switch p.state {
		case stateSeeking:
			// Anything before a start marker is noise.
			if b == DLE {
				p.state = stateSawEscape
				p.inFrame = false
			}
		case stateInFrame:
			if b == DLE {
				p.state = stateSawEscape
				continue
			}
			if len(p.buf) == maxFrameSize {
				errs = append(errs, p.discard("frame too long"))
				continue
			}
			p.buf = append(p.buf, b)
		case stateSawEscape:
			esc, err := DecodeEscape(b)
			if !p.inFrame {
				switch {
				case err == nil && esc == EscapeStart:
					p.begin()
				case b == DLE:
					// A stray DLE; this one may start the marker.
				default:
					p.state = stateSeeking
				}
				continue
			}
			if err != nil {
				errs = append(errs, p.discard(fmt.Sprintf("invalid escape 0x%02X", b)))
				continue
			}
			switch esc {
			case EscapeStart:
				errs = append(errs, p.discard("frame restarted"))
				p.begin()
			case EscapeEnd:
				msg, err := p.complete()
				if err != nil {
					errs = append(errs, err)
				} else {
					msgs = append(msgs, msg)
				}
			case EscapeLiteral:
				p.state = stateInFrame
				if len(p.buf) == maxFrameSize {
					errs = append(errs, p.discard("frame too long"))
					continue
				}
				p.buf = append(p.buf, b)
			}
		}
	}
	return msgs, errors.Join(errs...)
}

// Buffered returns the number of unescaped bytes held for an unfinished frame.
func (p *GXParser) Buffered() int {
	if p.state == stateSeeking {
		return 0
	}
	return len(p.buf)
}

// Reset drops any unfinished frame.
func (p *GXParser) Reset() {
	p.state = stateSeeking
	p.inFrame = false
	p.buf = p.buf[:0]
}

func (p *GXParser) begin() {
	p.state = stateInFrame
	p.inFrame = true
	p.buf = p.buf[:0]
}

// discard drops the current frame and goes back to seeking.
func (p *GXParser) discard(reason string) error {
	err := &MalformedFrameError{Reason: reason, Data: append([]byte(nil), p.buf...)}
	p.Reset()
	return err
}

func (p *GXParser) complete() (GXMessage, error) {
	raw := p.buf
	if len(raw) < headerSize+2 {
		return GXMessage{}, p.discard(fmt.Sprintf("frame has %d bytes", len(raw)))
	}
	n := int(raw[2])
	if n < 2 {
		return GXMessage{}, p.discard(fmt.Sprintf("declared length %d", n))
	}
	if len(raw) != headerSize+n {
		return GXMessage{}, p.discard(fmt.Sprintf("declared length %d, got %d", n, len(raw)-headerSize))
	}
	msg := GXMessage{
		Dest:      raw[0],
		Src:       raw[1],
		CmdClass:  raw[3],
		CmdNumber: raw[4],
		ProcID:    raw[5],
		SubID:     raw[6],
	}
	if n > 2 {
		msg.Payload = append([]byte(nil), raw[headerSize+2:]...)
	}
	p.Reset()
	return msg, nil
}
