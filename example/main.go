package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Gurux/gxcan29-go"
	"github.com/Gurux/gxcommon-go"
	"github.com/Gurux/gxserial-go"
	"golang.org/x/text/language"
)

var (
	port      = flag.String("S", "", "Port name")
	baudRate  = flag.Int("b", 9600, "Baud rate")
	dataBits  = flag.Int("d", 8, "DataBits (5, 6, 7, 8)")
	parity    = flag.String("p", "None", "Parity (None, Odd, Even, Mark, Space)")
	t         = flag.String("t", "", "Trace level.")
	w         = flag.Int("w", 1000, "WaitTime in milliseconds.")
	lang      = flag.String("lang", "", "Used language.")
	dest      = flag.Uint("dest", 1, "Destination address")
	src       = flag.Uint("src", 0, "Source address")
	cmdClass  = flag.Uint("class", 0x05, "Command class")
	cmdNumber = flag.Uint("cmd", 2, "Command number")
	procID    = flag.Uint("proc", 0, "Process ID")
	subID     = flag.Uint("sub", 1, "Sub ID")
	data      = flag.String("data", "", "Payload as hex")
)

// printer prints every message seen on the bus.
type printer struct{}

func (printer) OnMessage(bus *gxcan29.GXCan29, msg gxcan29.GXMessage) {
	fmt.Printf("Async message: %s\n", msg)
}

func main() {
	flag.Parse()
	if *port == "" {
		flag.PrintDefaults()
		return
	}
	payload, err := hex.DecodeString(strings.ReplaceAll(*data, " ", ""))
	if err != nil {
		fmt.Fprintln(os.Stderr, "error parsing data:", err)
		return
	}

	br := gxcommon.BaudRate(*baudRate)
	Parity, err := gxcommon.ParityParse(*parity)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error parsing parity:", err)
		return
	}

	media := gxserial.NewGXSerial(*port, br, *dataBits, Parity, gxcommon.StopBitsOne)
	bus := gxcan29.NewGXCan29(gxcan29.NewGXMediaTransport(media, 0))
	if *lang != "" {
		tag, err := language.Parse(*lang)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error parsing language:", err)
			return
		}
		media.Localize(tag)
		bus.Localize(tag)
	}

	bus.SetOnError(func(b *gxcan29.GXCan29, err error) {
		fmt.Fprintln(os.Stderr, "error:", err)
	})
	bus.SetOnTrace(func(debug bool, text string) {
		fmt.Printf("Trace: %s\n", text)
	})
	bus.Subscribe(printer{})

	err = media.Validate()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return
	}
	if *t != "" {
		tl, err := gxcommon.TraceLevelParse(*t)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			return
		}
		_ = bus.SetTrace(tl)
	}
	fmt.Printf("Host port: %s\n", *port)
	fmt.Printf("Trace level %s\n", bus.GetTrace().String())
	err = media.Open()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error returned:", err)
		ret, err := gxserial.GetPortNames()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Failed to get available serial ports: ", err)
			return
		}
		fmt.Fprintln(os.Stderr, "Available serial ports: "+strings.Join(ret, ","))
		return
	}
	//Close the connection.
	defer func() {
		if err := media.Close(); err != nil {
			fmt.Fprintln(os.Stderr, "close failed:", err)
		}
	}()
	if err := bus.Start(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return
	}
	defer bus.Stop()

	q := gxcan29.NewGXMessage(uint8(*dest), uint8(*src), uint8(*cmdClass), uint8(*cmdNumber),
		uint8(*procID), uint8(*subID), payload)
	fmt.Printf("Request: %s\n", q)
	a, err := bus.SendAndWait(q, time.Duration(*w)*time.Millisecond)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error returned:", err)
		return
	}
	fmt.Printf("Answer: %s\n", a)
	if v, err := gxcan29.GetUInt32(a.Payload, 0); err == nil {
		fmt.Printf("Value: %d\n", v)
	}
	fmt.Printf("Exit\n")
}
