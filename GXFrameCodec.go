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
	"fmt"
)

// Wire constants.
const (
	// DLE precedes markers and escaped data bytes.
	DLE byte = 0x10
	// STX follows DLE at the start of a frame.
	STX byte = 0x02
	// ETX follows DLE at the end of a frame.
	ETX byte = 0x03
	// CR is escaped because the bus treats it as a line terminator.
	CR byte = 0x0D
)

// Escape is the meaning of the byte that follows DLE.
type Escape int

const (
	// EscapeStart marks the start of a frame.
	EscapeStart Escape = iota
	// EscapeEnd marks the end of a frame.
	EscapeEnd
	// EscapeLiteral means the byte is data.
	EscapeLiteral
)

func needsEscape(b byte) bool {
	return b == DLE || b == CR
}

func appendEscaped(dst []byte, b byte) []byte {
	if needsEscape(b) {
		dst = append(dst, DLE)
	}
	return append(dst, b)
}

// Encode returns the escaped wire form of msg.
func Encode(msg GXMessage) ([]byte, error) {
	if len(msg.Payload) > MaxPayloadSize {
		return nil, fmt.Errorf("%w: %d bytes, max %d", ErrPayloadTooLarge, len(msg.Payload), MaxPayloadSize)
	}
	// Worst case every data byte is escaped.
	out := make([]byte, 0, 4+2*(7+len(msg.Payload)))
	out = append(out, DLE, STX)
	out = appendEscaped(out, msg.Dest)
	out = appendEscaped(out, msg.Src)
	out = appendEscaped(out, byte(len(msg.Payload)+2))
	out = appendEscaped(out, msg.CmdClass)
	out = appendEscaped(out, msg.CmdNumber)
	out = appendEscaped(out, msg.ProcID)
	out = appendEscaped(out, msg.SubID)
	for _, b := range msg.Payload {
		out = appendEscaped(out, b)
	}
	return append(out, DLE, ETX), nil
}

// DecodeEscape interprets the byte that followed DLE.
func DecodeEscape(b byte) (Escape, error) {
	switch b {
	case STX:
		return EscapeStart, nil
	case ETX:
		return EscapeEnd, nil
	case DLE, CR:
		return EscapeLiteral, nil
	}
	return 0, &MalformedFrameError{Reason: fmt.Sprintf("invalid escape 0x%02X", b)}
}

// Decode parses exactly one complete wire frame.
func Decode(frame []byte) (GXMessage, error) {
	var p GXParser
	msgs, err := p.Feed(frame)
	if len(msgs) == 1 && err == nil && p.Buffered() == 0 {
		return msgs[0], nil
	}
	if err != nil {
		return GXMessage{}, err
	}
	return GXMessage{}, &MalformedFrameError{Reason: fmt.Sprintf("expected one frame, got %d", len(msgs)), Data: frame}
}
