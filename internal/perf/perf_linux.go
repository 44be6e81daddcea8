// Copyright © 2014-2017 Lawrence E. Bakst. All rights reserved.

package perf

import (
	"encoding/binary"
	"fmt"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

func attr(e Event) *unix.PerfEventAttr {
	a := &unix.PerfEventAttr{Type: unix.PERF_TYPE_HARDWARE}
	switch e {
	case Instructions:
		a.Config = unix.PERF_COUNT_HW_INSTRUCTIONS
	case Cycles:
		a.Config = unix.PERF_COUNT_HW_CPU_CYCLES
	case CacheMisses:
		a.Config = unix.PERF_COUNT_HW_CACHE_MISSES
	case L1DReadMisses:
		a.Type = unix.PERF_TYPE_HW_CACHE
		a.Config = unix.PERF_COUNT_HW_CACHE_L1D |
			unix.PERF_COUNT_HW_CACHE_OP_READ<<8 |
			unix.PERF_COUNT_HW_CACHE_RESULT_MISS<<16
	default:
		return nil
	}
	a.Size = uint32(unsafe.Sizeof(*a))
	a.Bits = unix.PerfBitDisabled | unix.PerfBitExcludeKernel | unix.PerfBitExcludeHv
	return a
}

// Open opens one disabled counter per event for the calling thread.
// If any counter cannot be opened the others are closed and the error wraps ErrUnsupported.
func Open(events ...Event) (*Counters, error) {
	c := &Counters{}
	for _, e := range events {
		a := attr(e)
		if a == nil {
			c.Close()
			return nil, fmt.Errorf("%w: %v", ErrUnsupported, e)
		}
		fd, err := unix.PerfEventOpen(a, 0, -1, -1, unix.PERF_FLAG_FD_CLOEXEC)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("%w: %v: %v", ErrUnsupported, e, err)
		}
		c.events = append(c.events, e)
		c.fds = append(c.fds, fd)
	}
	return c, nil
}

func (c *Counters) ioctl(req uint) error {
	for i, fd := range c.fds {
		if err := unix.IoctlSetInt(fd, req, 0); err != nil {
			return fmt.Errorf("perf: %v: %w", c.events[i], err)
		}
	}
	return nil
}

// Start resets and enables every counter.
func (c *Counters) Start() error {
	if err := c.ioctl(unix.PERF_EVENT_IOC_RESET); err != nil {
		return err
	}
	return c.ioctl(unix.PERF_EVENT_IOC_ENABLE)
}

func (c *Counters) Stop() error {
	return c.ioctl(unix.PERF_EVENT_IOC_DISABLE)
}

// Read returns the counts in the order of Events.
func (c *Counters) Read() ([]uint64, error) {
	vals := make([]uint64, len(c.fds))
	var b [8]byte
	for i, fd := range c.fds {
		n, err := unix.Read(fd, b[:])
		if err != nil {
			return nil, fmt.Errorf("perf: read %v: %w", c.events[i], err)
		}
		if n != len(b) {
			return nil, fmt.Errorf("perf: read %v: short read %d", c.events[i], n)
		}
		vals[i] = binary.NativeEndian.Uint64(b[:])
	}
	return vals, nil
}

func (c *Counters) Close() error {
	var first error
	for _, fd := range c.fds {
		if err := unix.Close(fd); err != nil && first == nil {
			first = err
		}
	}
	c.fds, c.events = nil, nil
	return first
}

// CPUTime returns the CPU time consumed by the process, CLOCK_PROCESS_CPUTIME_ID.
func CPUTime() (time.Duration, error) {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_PROCESS_CPUTIME_ID, &ts); err != nil {
		return 0, fmt.Errorf("perf: cpu time: %w", err)
	}
	return time.Duration(ts.Nano()), nil
}
