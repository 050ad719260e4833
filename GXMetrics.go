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
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters of one bus. A nil *Metrics
// records nothing.
type Metrics struct {
	framesSent      prometheus.Counter
	framesReceived  prometheus.Counter
	bytesSent       prometheus.Counter
	bytesReceived   prometheus.Counter
	malformedFrames prometheus.Counter
	readErrors      prometheus.Counter
	writeErrors     prometheus.Counter
	answers         prometheus.Counter
	timeouts        prometheus.Counter
}

func newCounter(name, help string) prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gurux",
		Subsystem: "can29",
		Name:      name,
		Help:      help,
	})
}

// NewMetrics creates the bus counters and registers them with reg.
// A nil registerer returns nil metrics.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		return nil, nil
	}
	m := &Metrics{
		framesSent:      newCounter("frames_sent_total", "Frames written to the transport"),
		framesReceived:  newCounter("frames_received_total", "Frames decoded from the transport"),
		bytesSent:       newCounter("bytes_sent_total", "Bytes written to the transport"),
		bytesReceived:   newCounter("bytes_received_total", "Bytes read from the transport"),
		malformedFrames: newCounter("malformed_frames_total", "Frames discarded by the parser"),
		readErrors:      newCounter("read_errors_total", "Transport read failures"),
		writeErrors:     newCounter("write_errors_total", "Transport write failures"),
		answers:         newCounter("answers_total", "Synchronous requests that got an answer"),
		timeouts:        newCounter("timeouts_total", "Synchronous requests that timed out"),
	}
	for _, c := range []prometheus.Collector{
		m.framesSent, m.framesReceived, m.bytesSent, m.bytesReceived,
		m.malformedFrames, m.readErrors, m.writeErrors, m.answers, m.timeouts,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) sent(frameSize int) {
	if m == nil {
		return
	}
	m.framesSent.Inc()
	m.bytesSent.Add(float64(frameSize))
}

func (m *Metrics) read(n int) {
	if m == nil {
		return
	}
	m.bytesReceived.Add(float64(n))
}

func (m *Metrics) received() {
	if m == nil {
		return
	}
	m.framesReceived.Inc()
}

func (m *Metrics) malformed() {
	if m == nil {
		return
	}
	m.malformedFrames.Inc()
}

func (m *Metrics) readError() {
	if m == nil {
		return
	}
	m.readErrors.Inc()
}

func (m *Metrics) writeError() {
	if m == nil {
		return
	}
	m.writeErrors.Inc()
}

func (m *Metrics) answered() {
	if m == nil {
		return
	}
	m.answers.Inc()
}

func (m *Metrics) timedOut() {
	if m == nil {
		return
	}
	m.timeouts.Inc()
}
