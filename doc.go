// Package gxcan29 implements the CAN29 framed protocol used to talk to
// devices sharing one serial bus. It frames and escapes messages,
// reassembles frames from arbitrarily split reads, runs a background
// receive loop and pairs requests with their answers.
//
// Features
//
//   - Framing: DLE STX ... DLE ETX with DLE escaping of 0x10 and 0x0D.
//   - Reassembly: frames may arrive split over any number of reads.
//   - Resynchronization: noise and broken frames are dropped and reported.
//   - Requests: SendAndWait blocks until the matching answer or a timeout.
//   - Events: every decoded message is dispatched to the subscribers.
//   - Tracing: configurable trace level for sent/received/error/info.
//   - Metrics: optional Prometheus counters.
//
// # Construction
//
// Use NewGXCan29 with any io.ReadWriter whose Read returns within a
// bounded time. GXMediaTransport adapts a Gurux media, GXSerialTransport
// opens a port directly.
//
// Example
//
//	media := gxserial.NewGXSerial("/dev/ttyUSB0", gxcommon.BaudRate(9600), 8, gxcommon.ParityNone, gxcommon.StopBitsOne)
//	if err := media.Open(); err != nil {
//	    // handle connect error
//	}
//	defer media.Close()
//
//	bus := gxcan29.NewGXCan29(gxcan29.NewGXMediaTransport(media, 0))
//	if err := bus.Start(); err != nil {
//	    // handle error
//	}
//	defer bus.Stop()
//
//	q := gxcan29.NewGXMessage(1, 0, 0x05, 2, 0, 1, nil)
//	a, err := bus.SendAndWait(q, time.Second)
//	if err == nil {
//	    v, _ := gxcan29.GetUInt32(a.Payload, 0)
//	}
//
// # Requests
//
// Only one synchronous request is tracked at a time. Calling
// SendAndWait again before the first returns replaces the first
// request, which then ends with ErrTimeout. Callers serialize their own
// synchronous requests.
//
// # Notes
//
// The zero value of GXCan29 is not ready for use; always construct via
// NewGXCan29. Subscribers run on the receive goroutine; long-running
// work, SendAndWait and Stop must be offloaded to another goroutine.
package gxcan29
