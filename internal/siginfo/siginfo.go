// Copyright © 2014 Lawrence E. Bakst. All rights reserved.

// Package siginfo calls a function when the user asks for status with ^T.
// Linux has no SIGINFO, there the hook is SIGUSR1 (kill -USR1 <pid>).
package siginfo

import (
	"os"
	"os/signal"
)

// Signal is the status signal on this system, nil if there is none.
var Signal os.Signal = sigInfo

// SetHandler calls f each time Signal arrives until stop is called.
func SetHandler(f func()) (stop func()) {
	if Signal == nil {
		return func() {}
	}
	ch := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(ch, Signal)

	go func() {
		for {
			select {
			case <-ch:
				f()
			case <-done:
				return
			}
		}
	}()
	return func() {
		signal.Stop(ch)
		close(done)
	}
}
