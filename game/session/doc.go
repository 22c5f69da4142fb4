// Package session provides per-room game orchestration for snakes and
// ladders.
//
// The session package implements:
//   - Session: one room's game, wrapping the board engine with room-level
//     configuration (admin identity, house rules, started flag)
//   - Registry: the process-wide room-to-session map enforcing at most one
//     concurrent game per room
//   - Scheduler: cancellable deferred execution for the dice animation delay
//   - SessionPersistence: durable snapshots with file and Redis backends
//
// Concurrency:
//
// Each session serializes all of its mutations behind its own mutex, so two
// near-simultaneous events for the same room cannot interleave. The registry
// map is guarded separately; create and destroy for the same room id are
// atomic with respect to each other. Sessions of different rooms never share
// state.
//
// Deferred rolls:
//
// A dice roll is staged as a RollTicket and committed after a delay, so a
// client-side animation can finish first. Only one ticket may be outstanding
// per room; a second roll arriving before the first resolves is rejected.
// Commit re-validates the ticket at execution time, so a session killed or
// altered during the delay turns the commit into a silent no-op instead of a
// corruption.
package session
