//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package cli

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

func disableEcho(stdin *os.File) (func(), error) {
	fd := int(stdin.Fd())
	termios, err := unix.IoctlGetTermios(fd, echoGetRequest)
	if err != nil {
		if errors.Is(err, unix.ENOTTY) || errors.Is(err, unix.EINVAL) {
			return nil, errNotTerminal
		}
		return nil, err
	}

	original := *termios
	silent := original
	silent.Lflag &^= unix.ECHO
	if err := unix.IoctlSetTermios(fd, echoSetRequest, &silent); err != nil {
		return nil, err
	}
	return func() {
		_ = unix.IoctlSetTermios(fd, echoSetRequest, &original)
	}, nil
}
