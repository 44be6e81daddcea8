// Copyright © 2014 Lawrence E. Bakst. All rights reserved.

//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package siginfo

import "syscall"

// SIGINFO is 29 on the BSDs
var sigInfo = syscall.Signal(29)
