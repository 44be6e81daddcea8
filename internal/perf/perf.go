// Copyright © 2014-2017 Lawrence E. Bakst. All rights reserved.

// Package perf reads hardware performance counters for the calling thread
// and the process CPU clock. Counters are Linux only; elsewhere, or without
// permission (see /proc/sys/kernel/perf_event_paranoid), Open returns ErrUnsupported.
//
// Counters count the OS thread that called Open, so the caller should hold
// runtime.LockOSThread from Open until Read.
package perf

import (
	"errors"
	"fmt"
)

var ErrUnsupported = errors.New("perf: counters unsupported")

type Event int

const (
	Instructions Event = iota
	Cycles
	CacheMisses
	L1DReadMisses
)

// Events is every event in report order.
var Events = []Event{Instructions, Cycles, CacheMisses, L1DReadMisses}

func (e Event) String() string {
	switch e {
	case Instructions:
		return "instructions"
	case Cycles:
		return "cycles"
	case CacheMisses:
		return "cache_misses"
	case L1DReadMisses:
		return "l1d_read_misses"
	}
	return fmt.Sprintf("event(%d)", int(e))
}

// Counters is a set of open counters, one per event.
type Counters struct {
	events []Event
	fds    []int
}

func (c *Counters) Events() []Event {
	return c.events
}
