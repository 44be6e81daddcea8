// Copyright © 2014-2017 Lawrence E. Bakst. All rights reserved.

//go:build !linux

package perf

import "time"

func Open(events ...Event) (*Counters, error) {
	return nil, ErrUnsupported
}

func (c *Counters) Start() error            { return ErrUnsupported }
func (c *Counters) Stop() error             { return ErrUnsupported }
func (c *Counters) Read() ([]uint64, error) { return nil, ErrUnsupported }
func (c *Counters) Close() error            { return nil }

func CPUTime() (time.Duration, error) {
	return 0, ErrUnsupported
}
