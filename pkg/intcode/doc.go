// Package intcode implements the Intcode virtual machine: a loader for the
// comma separated program text, a growable zero-filled memory, the
// instruction decoder and the fetch-decode-execute engine.
//
// An engine talks to the outside world only through two injected
// capabilities, an InputSource and an OutputSink. Unbound engines fall back
// to the interactive console; engines wired into a topology use links
// (NewLink) or plain Go channels (ChanInput, ChanOutput).
//
// Key operations:
// - Parse/Load/New: build a Machine from program text or an image
// - Get/Set: inspect or patch memory before and after a run
// - BindInput/BindOutput: one-shot wiring before Run
// - Run: execute until halt or fault
// - Disassemble: render a program image as mnemonics
//
// For multi-engine topologies see package circuit.
package intcode
