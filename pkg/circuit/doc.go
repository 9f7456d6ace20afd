// Package circuit wires Intcode machines into topologies and runs each
// machine on its own goroutine. It owns the policy the VM leaves to its
// callers: deciding whether a closed link is an expected shutdown or a
// genuine fault.
//
// Key constructs:
// - Result: success, failure, stop (expected shutdown) or cancel
// - Spawn: run one machine in the background and classify its exit
// - Chain/Ring: linear and feedback amplifier pipelines
// - MaxSignal: search every phase order across a pool of workers
// - Loop: sensor/actuator loop driven by a Controller
// - Session: request/response access to a running machine
// - RunBatch: run to completion on the caller's goroutine
package circuit
