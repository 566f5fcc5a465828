//go:build linux

package cli

import "golang.org/x/sys/unix"

// Terminal ioctl requests used to toggle echo while reading passwords.
const (
	echoGetRequest = unix.TCGETS
	echoSetRequest = unix.TCSETS
)
