/*
Package main contains a command-line example for gxcan29.

The example shows how to:
  - configure a serial connection from command-line flags
  - run the CAN29 bus on top of the serial media
  - print every received message through a subscriber
  - send a request and wait for its answer
*/
package main
