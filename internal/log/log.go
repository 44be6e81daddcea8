// Copyright © 2014-2017 Lawrence E. Bakst. All rights reserved.

// Package log builds the logr.Logger the harness logs through.
package log

import (
	"context"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
)

// New returns a stdr backed logger named "hfbench" and sets the verbosity.
// v is 0 for info, 1 for debug (stash events), 2 for trace.
// Anything else is treated as 0.
func New(v int) logr.Logger {
	logger := stdr.New(nil).WithName("hfbench")
	if v > 2 || v < 0 {
		v = 0
		logger.Info("invalid verbosity, logging info messages only")
	}
	stdr.SetVerbosity(v)
	return logger
}

// FromContext returns the logger carried by ctx, or a fresh info level one, named name.
func FromContext(ctx context.Context, name string) logr.Logger {
	logger, err := logr.FromContext(ctx)
	if err != nil {
		logger = New(0)
	}
	if name != "" {
		return logger.WithName(name)
	}
	return logger
}
