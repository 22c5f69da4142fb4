package session

import "time"

// Scheduler defers execution of a function. The returned cancel function
// stops the callback from running if it has not fired yet; cancelling an
// already-fired task is a no-op.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) (cancel func())
}

// TimerScheduler runs deferred tasks on real timers.
type TimerScheduler struct{}

// Schedule arms a timer that invokes fn after delay.
func (TimerScheduler) Schedule(delay time.Duration, fn func()) func() {
	timer := time.AfterFunc(delay, fn)
	return func() { timer.Stop() }
}

// ImmediateScheduler runs tasks synchronously, with no delay. Useful in tests
// and in transports that handle animation delays on the client side.
type ImmediateScheduler struct{}

// Schedule invokes fn before returning. The returned cancel is a no-op.
func (ImmediateScheduler) Schedule(_ time.Duration, fn func()) func() {
	fn()
	return func() {}
}
