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
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Gurux/gxcommon-go"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// DefaultTimeout is used by SendAndWait when no timeout is given.
	DefaultTimeout = time.Second
	// DefaultIdleInterval is the pause after a read that returned no data.
	DefaultIdleInterval = 10 * time.Millisecond
	// DefaultReadBufferSize is the size of a single transport read.
	DefaultReadBufferSize = 1024
)

// TraceEventHandler receives trace text. Debug is set for frame dumps.
type TraceEventHandler func(debug bool, text string)

// ErrorEventHandler receives errors found by the receive goroutine.
type ErrorEventHandler func(bus *GXCan29, err error)

// GXCan29 runs the CAN29 protocol over a byte transport.
type GXCan29 struct {
	transport io.ReadWriter

	timeout        time.Duration
	idleInterval   time.Duration
	readBufferSize int
	// The trace level specifies which types of trace messages are emitted.
	traceLevel gxcommon.TraceLevel

	// mu guards settings and handlers.
	mu sync.RWMutex
	// state serializes Start and Stop.
	state   sync.Mutex
	wg      sync.WaitGroup
	stop    chan struct{}
	running atomic.Bool

	// writeMu serializes frames on the write side.
	writeMu sync.Mutex

	bytesSent     atomic.Uint64
	bytesReceived atomic.Uint64

	//Called when the bus is sending or receiving data.
	onTrace TraceEventHandler

	//Called when the receive goroutine fails.
	onErr ErrorEventHandler

	// parser is owned by the receive goroutine.
	parser     GXParser
	registry   componentRegistry
	correlator correlator
	metrics    *Metrics

	// Printer for localized messages.
	p *message.Printer
}

// NewGXCan29 creates a bus on top of transport. Read must return within
// a bounded time; 0 bytes with a nil error means no data is available.
func NewGXCan29(transport io.ReadWriter) *GXCan29 {
	g := &GXCan29{
		transport:      transport,
		timeout:        DefaultTimeout,
		idleInterval:   DefaultIdleInterval,
		readBufferSize: DefaultReadBufferSize,
	}
	g.Localize(language.AmericanEnglish)
	return g
}

// Timeout returns the default SendAndWait timeout.
func (g *GXCan29) Timeout() time.Duration {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.timeout
}

// SetTimeout sets the default SendAndWait timeout.
func (g *GXCan29) SetTimeout(value time.Duration) error {
	if value <= 0 {
		return fmt.Errorf("invalid timeout: %v", value)
	}
	g.mu.Lock()
	g.timeout = value
	g.mu.Unlock()
	return nil
}

// IdleInterval returns the pause after an empty read.
func (g *GXCan29) IdleInterval() time.Duration {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.idleInterval
}

// SetIdleInterval sets the pause after an empty read. It is applied
// when the receive loop is started.
func (g *GXCan29) SetIdleInterval(value time.Duration) error {
	if value <= 0 {
		return fmt.Errorf("invalid idle interval: %v", value)
	}
	g.mu.Lock()
	g.idleInterval = value
	g.mu.Unlock()
	return nil
}

// ReadBufferSize returns the size of one transport read.
func (g *GXCan29) ReadBufferSize() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.readBufferSize
}

// SetReadBufferSize sets the size of one transport read. It is applied
// when the receive loop is started.
func (g *GXCan29) SetReadBufferSize(value int) error {
	if value <= 0 {
		return fmt.Errorf("invalid read buffer size: %d", value)
	}
	g.mu.Lock()
	g.readBufferSize = value
	g.mu.Unlock()
	return nil
}

// GetTrace returns the trace level.
func (g *GXCan29) GetTrace() gxcommon.TraceLevel {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.traceLevel
}

// SetTrace sets the trace level.
func (g *GXCan29) SetTrace(traceLevel gxcommon.TraceLevel) error {
	g.mu.Lock()
	g.traceLevel = traceLevel
	g.mu.Unlock()
	return nil
}

// SetOnTrace sets the trace handler.
func (g *GXCan29) SetOnTrace(value TraceEventHandler) {
	g.mu.Lock()
	g.onTrace = value
	g.mu.Unlock()
}

// SetOnError sets the error handler.
func (g *GXCan29) SetOnError(value ErrorEventHandler) {
	g.mu.Lock()
	g.onErr = value
	g.mu.Unlock()
}

// SetMetrics sets the Prometheus counters. Nil disables metrics.
func (g *GXCan29) SetMetrics(value *Metrics) {
	g.mu.Lock()
	g.metrics = value
	g.mu.Unlock()
}

func (g *GXCan29) getMetrics() *Metrics {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.metrics
}

// GetBytesSent returns the number of bytes written.
func (g *GXCan29) GetBytesSent() uint64 {
	return g.bytesSent.Load()
}

// GetBytesReceived returns the number of bytes read.
func (g *GXCan29) GetBytesReceived() uint64 {
	return g.bytesReceived.Load()
}

// ResetByteCounters clears the byte counters.
func (g *GXCan29) ResetByteCounters() {
	g.bytesSent.Store(0)
	g.bytesReceived.Store(0)
}

// String implements fmt.Stringer.
func (g *GXCan29) String() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return fmt.Sprintf("CAN29 timeout %v idle %v buffer %d", g.timeout, g.idleInterval, g.readBufferSize)
}

func xmlEscape(s string) string {
	var buf bytes.Buffer
	if err := xml.EscapeText(&buf, []byte(s)); err != nil {
		return s
	}
	return buf.String()
}

// GetSettings returns the settings as XML elements.
func (g *GXCan29) GetSettings() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var b strings.Builder
	if g.timeout != DefaultTimeout {
		fmt.Fprintf(&b, "<Timeout>%d</Timeout>\n", g.timeout.Milliseconds())
	}
	if g.idleInterval != DefaultIdleInterval {
		fmt.Fprintf(&b, "<IdleInterval>%d</IdleInterval>\n", g.idleInterval.Milliseconds())
	}
	if g.readBufferSize != DefaultReadBufferSize {
		fmt.Fprintf(&b, "<ReadBuffer>%d</ReadBuffer>\n", g.readBufferSize)
	}
	if g.traceLevel != 0 {
		fmt.Fprintf(&b, "<Trace>%s</Trace>\n", xmlEscape(g.traceLevel.String()))
	}
	return b.String()
}

func parseMilliseconds(name, value string) (time.Duration, error) {
	v, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %v", name, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("invalid %s value: %d", name, v)
	}
	return time.Duration(v) * time.Millisecond, nil
}

// SetSettings reads settings written by GetSettings.
func (g *GXCan29) SetSettings(value string) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	dec := xml.NewDecoder(strings.NewReader("<root>" + value + "</root>"))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if se.Name.Local == "root" {
			continue
		}
		var v string
		if err := dec.DecodeElement(&v, &se); err != nil {
			return err
		}
		switch se.Name.Local {
		case "Timeout":
			d, err := parseMilliseconds("Timeout", v)
			if err != nil {
				return err
			}
			_ = g.SetTimeout(d)
		case "IdleInterval":
			d, err := parseMilliseconds("IdleInterval", v)
			if err != nil {
				return err
			}
			_ = g.SetIdleInterval(d)
		case "ReadBuffer":
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("invalid ReadBuffer value: %v", err)
			}
			if err := g.SetReadBufferSize(n); err != nil {
				return err
			}
		case "Trace":
			tl, err := gxcommon.TraceLevelParse(strings.TrimSpace(v))
			if err != nil {
				return err
			}
			_ = g.SetTrace(tl)
		}
	}
	return nil
}

// Validate checks that the bus can be started.
func (g *GXCan29) Validate() error {
	if g.transport == nil {
		return errors.New(g.printer().Sprintf("msg.no_transport"))
	}
	return nil
}

// Subscribe adds s to the subscribers and returns a function that
// removes it again. Subscribing the same comparable value twice has no
// effect; values of other types are added every time.
func (g *GXCan29) Subscribe(s Subscriber) func() {
	id := g.registry.subscribe(s)
	return func() {
		g.registry.remove(id)
	}
}

// Unsubscribe removes s. It is safe to call from OnMessage; the
// subscribers of the current message are not affected. A subscriber of
// a type that cannot be compared is never found; use the function
// returned by Subscribe instead.
func (g *GXCan29) Unsubscribe(s Subscriber) bool {
	return g.registry.unsubscribe(s)
}

// IsRunning reports whether the receive loop is running.
func (g *GXCan29) IsRunning() bool {
	return g.running.Load()
}

// Start launches the receive loop. Starting a running bus does nothing.
func (g *GXCan29) Start() error {
	g.state.Lock()
	defer g.state.Unlock()
	if g.running.Load() {
		return nil
	}
	if err := g.Validate(); err != nil {
		return err
	}
	g.mu.RLock()
	idle, size := g.idleInterval, g.readBufferSize
	g.mu.RUnlock()
	g.parser.Reset()
	g.stop = make(chan struct{})
	g.running.Store(true)
	g.wg.Add(1)
	go g.reader(g.stop, idle, size)
	g.trace(true, gxcommon.TraceTypesInfo, g.printer().Sprintf("msg.started"))
	return nil
}

// Stop ends the receive loop and waits for it. It may be called many times.
func (g *GXCan29) Stop() error {
	g.state.Lock()
	defer g.state.Unlock()
	if !g.running.Load() {
		return nil
	}
	g.running.Store(false)
	close(g.stop)
	g.wg.Wait()
	g.trace(true, gxcommon.TraceTypesInfo, g.printer().Sprintf("msg.stopped"))
	return nil
}

func (g *GXCan29) stopChan() <-chan struct{} {
	g.state.Lock()
	defer g.state.Unlock()
	return g.stop
}

// Send writes msg without waiting for an answer.
func (g *GXCan29) Send(msg GXMessage) error {
	frame, err := Encode(msg)
	if err != nil {
		return err
	}
	return g.write(msg, frame)
}

// SendAndWait writes msg and waits for its answer (see IsAnswer).
// A timeout of 0 uses Timeout(). Only one request is tracked at a
// time: a second call replaces the first, which then times out, so
// callers must serialize their synchronous requests. SendAndWait must
// not be called from a subscriber.
func (g *GXCan29) SendAndWait(msg GXMessage, timeout time.Duration) (GXMessage, error) {
	stop := g.stopChan()
	if !g.running.Load() || stop == nil {
		return GXMessage{}, ErrNotRunning
	}
	frame, err := Encode(msg)
	if err != nil {
		return GXMessage{}, err
	}
	if timeout <= 0 {
		timeout = g.Timeout()
	}
	// Register before writing so a fast answer is not missed.
	req := g.correlator.expect(msg)
	if err := g.write(msg, frame); err != nil {
		g.correlator.cancel(req)
		return GXMessage{}, err
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case answer := <-req.answer:
		g.getMetrics().answered()
		return answer, nil
	case <-stop:
		g.correlator.cancel(req)
		return GXMessage{}, ErrNotRunning
	case <-timer.C:
	}
	g.correlator.cancel(req)
	// The answer may have arrived together with the deadline.
	select {
	case answer := <-req.answer:
		g.getMetrics().answered()
		return answer, nil
	default:
	}
	g.getMetrics().timedOut()
	g.trace(true, gxcommon.TraceTypesError, g.printer().Sprintf("msg.request_timeout", msg.String(), timeout))
	return GXMessage{}, fmt.Errorf("%w: %s (%v)", ErrTimeout, msg, timeout)
}

func (g *GXCan29) write(msg GXMessage, frame []byte) error {
	g.writeMu.Lock()
	defer g.writeMu.Unlock()
	g.tracef(true, gxcommon.TraceTypesSent, "TX: %s [% X]", msg, frame)
	for data := frame; len(data) != 0; {
		n, err := g.transport.Write(data)
		if err == nil && n == 0 {
			err = io.ErrShortWrite
		}
		if err != nil {
			g.getMetrics().writeError()
			g.trace(true, gxcommon.TraceTypesError, g.printer().Sprintf("msg.write_failed", err))
			return &IOError{Op: "write", Err: err}
		}
		data = data[n:]
	}
	g.bytesSent.Add(uint64(len(frame)))
	g.getMetrics().sent(len(frame))
	return nil
}

// reader owns the transport read side and the parser.
func (g *GXCan29) reader(stop <-chan struct{}, idle time.Duration, size int) {
	defer g.wg.Done()
	buf := make([]byte, size)
	for {
		select {
		case <-stop:
			return
		default:
		}
		n, err := g.transport.Read(buf)
		if n > 0 {
			g.bytesReceived.Add(uint64(n))
			g.getMetrics().read(n)
			g.handleData(buf[:n])
		}
		if err != nil {
			// Read errors are never fatal. Recovery is up to the host.
			g.getMetrics().readError()
			g.trace(true, gxcommon.TraceTypesError, g.printer().Sprintf("msg.read_failed", err))
			g.errorf(true, &IOError{Op: "read", Err: err})
		}
		if n == 0 || err != nil {
			if !sleep(stop, idle) {
				return
			}
		}
	}
}

// sleep waits for d and returns false if stop was closed first.
func sleep(stop <-chan struct{}, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-stop:
		return false
	case <-timer.C:
		return true
	}
}

func (g *GXCan29) handleData(data []byte) {
	msgs, err := g.parser.Feed(data)
	if err != nil {
		for _, e := range unwrapJoined(err) {
			g.getMetrics().malformed()
			g.trace(true, gxcommon.TraceTypesError, g.printer().Sprintf("msg.malformed_frame", e))
			g.errorf(true, e)
		}
	}
	for _, msg := range msgs {
		g.getMetrics().received()
		g.tracef(true, gxcommon.TraceTypesReceived, "RX: %s", msg)
		g.correlator.offer(msg)
		g.registry.dispatch(g, msg)
	}
}

func unwrapJoined(err error) []error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}

func (g *GXCan29) errorf(lock bool, err error) {
	var cb ErrorEventHandler
	if lock {
		g.mu.RLock()
		cb = g.onErr
		g.mu.RUnlock()
	} else {
		cb = g.onErr
	}
	if cb != nil {
		cb(g, err)
	}
}

func (g *GXCan29) tracef(lock bool, traceType gxcommon.TraceTypes, fmtStr string, a ...any) {
	cb := g.traceHandler(lock, traceType)
	if cb != nil {
		cb(isDebug(traceType), fmt.Sprintf(fmtStr, a...))
	}
}

func (g *GXCan29) trace(lock bool, traceType gxcommon.TraceTypes, message string) {
	cb := g.traceHandler(lock, traceType)
	if cb != nil {
		cb(isDebug(traceType), message)
	}
}

// traceHandler returns the handler if traceType passes the trace level.
func (g *GXCan29) traceHandler(lock bool, traceType gxcommon.TraceTypes) TraceEventHandler {
	var cb TraceEventHandler
	trace := false
	if lock {
		g.mu.RLock()
		trace = !(int(g.traceLevel) < int(traceType))
		cb = g.onTrace
		g.mu.RUnlock()
	} else {
		trace = !(int(g.traceLevel) < int(traceType))
		cb = g.onTrace
	}
	if !trace {
		return nil
	}
	return cb
}

// Frame dumps are debug output.
func isDebug(traceType gxcommon.TraceTypes) bool {
	return traceType == gxcommon.TraceTypesSent || traceType == gxcommon.TraceTypesReceived
}

func (g *GXCan29) printer() *message.Printer {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.p
}

// Localize messages for the specified language.
// It can be called while the receive loop is running.
// No errors is returned if language is not supported.
func (g *GXCan29) Localize(language language.Tag) {
	g.mu.Lock()
	g.p = message.NewPrinter(language)
	g.mu.Unlock()
}
