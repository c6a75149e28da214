// Package dispatch runs page state on a single goroutine. HTTP handlers hand
// it closures and wait; animation timers post deferred continuations back
// into the same queue, so no component needs a lock.
package dispatch

import (
	"context"
	"errors"
	"log"
	"time"
)

var ErrStopped = errors.New("dispatch loop stopped")

type Loop struct {
	cmds chan func()
	done chan struct{}
}

func New(buffer int) *Loop {
	return &Loop{
		cmds: make(chan func(), buffer),
		done: make(chan struct{}),
	}
}

// Run executes posted commands one at a time until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) {
	defer close(l.done)
	for {
		select {
		case <-ctx.Done():
			return
		case fn := <-l.cmds:
			l.exec(fn)
		}
	}
}

func (l *Loop) exec(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("dispatch: command panicked: %v", r)
		}
	}()
	fn()
}

// Do runs fn on the loop and waits for it to return.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	wrapped := func() {
		defer close(finished)
		fn()
	}
	select {
	case l.cmds <- wrapped:
	case <-l.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-finished:
		return nil
	case <-l.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Post queues fn without waiting. It is dropped if the loop has stopped.
func (l *Loop) Post(fn func()) {
	select {
	case l.cmds <- fn:
	case <-l.done:
	}
}

// After queues fn once d has elapsed. This is how state changes wait for an
// animation to finish without blocking the loop.
func (l *Loop) After(d time.Duration, fn func()) *time.Timer {
	return time.AfterFunc(d, func() { l.Post(fn) })
}
