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
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// MaxPayloadSize is the largest payload a single frame can carry.
// The length byte also counts ProcID and SubID.
const MaxPayloadSize = 253

// GXMessage is one decoded CAN29 frame.
type GXMessage struct {
	// Dest is the destination device address.
	Dest uint8
	// Src is the source device address.
	Src uint8
	// CmdClass is the command class.
	CmdClass uint8
	// CmdNumber is the command number inside the class.
	CmdNumber uint8
	// ProcID is the process identifier.
	ProcID uint8
	// SubID is the sub-command identifier.
	SubID uint8
	// Payload holds the command data.
	Payload []byte
}

// NewGXMessage returns a message with a copy of the given payload.
func NewGXMessage(dest, src, cmdClass, cmdNumber, procID, subID uint8, payload []byte) GXMessage {
	m := GXMessage{Dest: dest, Src: src, CmdClass: cmdClass, CmdNumber: cmdNumber, ProcID: procID, SubID: subID}
	if len(payload) != 0 {
		m.Payload = append([]byte(nil), payload...)
	}
	return m
}

// Equal reports whether two messages have the same field values.
// Nil and empty payloads are equal.
func (m GXMessage) Equal(other GXMessage) bool {
	return m.Dest == other.Dest &&
		m.Src == other.Src &&
		m.CmdClass == other.CmdClass &&
		m.CmdNumber == other.CmdNumber &&
		m.ProcID == other.ProcID &&
		m.SubID == other.SubID &&
		bytes.Equal(m.Payload, other.Payload)
}

// Encode returns the escaped wire form of the message.
func (m GXMessage) Encode() ([]byte, error) {
	return Encode(m)
}

// String implements fmt.Stringer.
func (m GXMessage) String() string {
	return fmt.Sprintf("dest:%d src:%d class:0x%02X cmd:%d proc:%d sub:%d data:[% X]",
		m.Dest, m.Src, m.CmdClass, m.CmdNumber, m.ProcID, m.SubID, m.Payload)
}

func checkIndex(payload []byte, index, size int) error {
	if index < 0 || index+size > len(payload) {
		return fmt.Errorf("%w: %d bytes at %d, payload has %d", ErrPayloadIndex, size, index, len(payload))
	}
	return nil
}

// GetUInt8 returns the byte at index.
func GetUInt8(payload []byte, index int) (uint8, error) {
	if err := checkIndex(payload, index, 1); err != nil {
		return 0, err
	}
	return payload[index], nil
}

// GetUInt16 returns the big-endian uint16 at index.
func GetUInt16(payload []byte, index int) (uint16, error) {
	if err := checkIndex(payload, index, 2); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(payload[index:]), nil
}

// GetUInt32 returns the big-endian uint32 at index.
func GetUInt32(payload []byte, index int) (uint32, error) {
	if err := checkIndex(payload, index, 4); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(payload[index:]), nil
}

// GetInt16 returns the big-endian int16 at index.
func GetInt16(payload []byte, index int) (int16, error) {
	v, err := GetUInt16(payload, index)
	return int16(v), err
}

// GetInt32 returns the big-endian int32 at index.
func GetInt32(payload []byte, index int) (int32, error) {
	v, err := GetUInt32(payload, index)
	return int32(v), err
}

// GetFloat32 returns the big-endian IEEE 754 float at index.
func GetFloat32(payload []byte, index int) (float32, error) {
	v, err := GetUInt32(payload, index)
	return math.Float32frombits(v), err
}

// AppendUInt16 appends value in big-endian order.
func AppendUInt16(payload []byte, value uint16) []byte {
	return binary.BigEndian.AppendUint16(payload, value)
}

// AppendUInt32 appends value in big-endian order.
func AppendUInt32(payload []byte, value uint32) []byte {
	return binary.BigEndian.AppendUint32(payload, value)
}

// AppendFloat32 appends value as a big-endian IEEE 754 float.
func AppendFloat32(payload []byte, value float32) []byte {
	return binary.BigEndian.AppendUint32(payload, math.Float32bits(value))
}
