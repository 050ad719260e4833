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
	"github.com/stretchr/testify/require"
)

func TestGetUInt32(t *testing.T) {
	v, err := GetUInt32([]byte{0x00, 0x00, 0x00, 0x2A}, 0)
	require.NoError(t, err)
	assert.Equal(t, uint32(42), v)

	v, err = GetUInt32([]byte{0xFF, 0x12, 0x34, 0x56, 0x78}, 1)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x12345678), v)
}

func TestPayloadIndexOutOfRange(t *testing.T) {
	payload := []byte{1, 2, 3}
	_, err := GetUInt32(payload, 0)
	assert.ErrorIs(t, err, ErrPayloadIndex)
	_, err = GetUInt16(payload, 2)
	assert.ErrorIs(t, err, ErrPayloadIndex)
	_, err = GetUInt8(payload, -1)
	assert.ErrorIs(t, err, ErrPayloadIndex)
	_, err = GetUInt8(nil, 0)
	assert.ErrorIs(t, err, ErrPayloadIndex)
}

func TestSignedAndFloatAccessors(t *testing.T) {
	payload := AppendUInt16(nil, 0xFFFE)
	payload = AppendUInt32(payload, 0xFFFFFFFF)
	payload = AppendFloat32(payload, 21.5)

	i16, err := GetInt16(payload, 0)
	require.NoError(t, err)
	assert.Equal(t, int16(-2), i16)

	i32, err := GetInt32(payload, 2)
	require.NoError(t, err)
	assert.Equal(t, int32(-1), i32)

	f, err := GetFloat32(payload, 6)
	require.NoError(t, err)
	assert.Equal(t, float32(21.5), f)

	b, err := GetUInt8(payload, 1)
	require.NoError(t, err)
	assert.Equal(t, uint8(0xFE), b)
}

func TestMessageEqual(t *testing.T) {
	a := NewGXMessage(1, 2, 3, 4, 5, 6, nil)
	b := GXMessage{Dest: 1, Src: 2, CmdClass: 3, CmdNumber: 4, ProcID: 5, SubID: 6, Payload: []byte{}}
	assert.True(t, a.Equal(b))

	b.Payload = []byte{0}
	assert.False(t, a.Equal(b))

	c := a
	c.ProcID = 7
	assert.False(t, a.Equal(c))
}

func TestNewMessageCopiesPayload(t *testing.T) {
	payload := []byte{1, 2}
	msg := NewGXMessage(0, 0, 0, 0, 0, 0, payload)
	payload[0] = 9
	assert.Equal(t, []byte{1, 2}, msg.Payload)
}

func TestMessageString(t *testing.T) {
	msg := NewGXMessage(1, 0, 0x05, 2, 0, 1, []byte{0x10, 0x0D})
	assert.Equal(t, "dest:1 src:0 class:0x05 cmd:2 proc:0 sub:1 data:[10 0D]", msg.String())
}
