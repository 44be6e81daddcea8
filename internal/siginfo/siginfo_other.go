// Copyright © 2014 Lawrence E. Bakst. All rights reserved.

//go:build !linux && !darwin && !dragonfly && !freebsd && !netbsd && !openbsd

package siginfo

import "os"

var sigInfo os.Signal
