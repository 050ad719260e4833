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
	"io"
	"time"

	"github.com/tarm/serial"
)

// DefaultSerialReadTimeout bounds a single GXSerialTransport read.
const DefaultSerialReadTimeout = 100 * time.Millisecond

// GXSerialTransport is a CAN29 transport on a directly opened serial port.
type GXSerialTransport struct {
	port io.ReadWriteCloser
	name string
}

// OpenSerialTransport opens the port described by cfg. A missing read
// timeout is replaced with DefaultSerialReadTimeout so the receive loop
// can always be stopped.
func OpenSerialTransport(cfg *serial.Config) (*GXSerialTransport, error) {
	if cfg == nil || cfg.Name == "" {
		return nil, errors.New("no serial port selected")
	}
	c := *cfg
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = DefaultSerialReadTimeout
	}
	port, err := serial.OpenPort(&c)
	if err != nil {
		return nil, err
	}
	return newGXSerialTransport(port, c.Name), nil
}

func newGXSerialTransport(port io.ReadWriteCloser, name string) *GXSerialTransport {
	return &GXSerialTransport{port: port, name: name}
}

// String returns the port name.
func (t *GXSerialTransport) String() string {
	return t.name
}

// Read implements io.Reader. A read timeout is reported as 0, nil.
func (t *GXSerialTransport) Read(p []byte) (int, error) {
	n, err := t.port.Read(p)
	if errors.Is(err, io.EOF) {
		// The port reports an expired read timeout as EOF.
		return n, nil
	}
	return n, err
}

// Write implements io.Writer.
func (t *GXSerialTransport) Write(p []byte) (int, error) {
	return t.port.Write(p)
}

// Close closes the port.
func (t *GXSerialTransport) Close() error {
	return t.port.Close()
}
