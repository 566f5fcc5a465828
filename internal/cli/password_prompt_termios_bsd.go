//go:build darwin || freebsd || netbsd || openbsd || dragonfly

package cli

import "golang.org/x/sys/unix"

// Terminal ioctl requests used to toggle echo while reading passwords.
const (
	echoGetRequest = unix.TIOCGETA
	echoSetRequest = unix.TIOCSETA
)
