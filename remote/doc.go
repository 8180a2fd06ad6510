// Package remote carries the editor widget's exchange with the execution
// service: the configuration shapes sent to it, the connection states
// reported back, and a JSON-over-WebSocket connection with an ordered
// outbound queue.
//
// It is a transport, not a protocol state machine. There are no retries,
// resynchronisation or message versioning.
package remote
