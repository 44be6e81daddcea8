// Copyright © 2014 Lawrence E. Bakst. All rights reserved.

package siginfo

import "syscall"

// 29 is SIGIO here
var sigInfo = syscall.SIGUSR1
