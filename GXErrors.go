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

var (
	// ErrTimeout is returned when no answer arrives before the deadline.
	ErrTimeout = errors.New("can29: answer not received before timeout")
	// ErrMalformedFrame is the sentinel behind every MalformedFrameError.
	ErrMalformedFrame = errors.New("can29: malformed frame")
	// ErrPayloadTooLarge is returned when a payload does not fit in one frame.
	ErrPayloadTooLarge = errors.New("can29: payload too large")
	// ErrPayloadIndex is returned when a payload accessor runs past the data.
	ErrPayloadIndex = errors.New("can29: payload index out of range")
	// ErrNotRunning is returned by SendAndWait when the receive loop is stopped.
	ErrNotRunning = errors.New("can29: receive loop not running")
)

// IOError wraps a failure at the transport boundary.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("can29: %s failed: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// MalformedFrameError describes bytes the parser discarded.
type MalformedFrameError struct {
	Reason string
	// Data holds the unescaped bytes of the discarded frame.
	Data []byte
}

func (e *MalformedFrameError) Error() string {
	return fmt.Sprintf("can29: malformed frame: %s [% X]", e.Reason, e.Data)
}

func (e *MalformedFrameError) Unwrap() error {
	return ErrMalformedFrame
}
