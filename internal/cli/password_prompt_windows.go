//go:build windows

package cli

import (
	"os"

	"golang.org/x/sys/windows"
)

func disableEcho(stdin *os.File) (func(), error) {
	handle := windows.Handle(stdin.Fd())
	var original uint32
	if err := windows.GetConsoleMode(handle, &original); err != nil {
		return nil, errNotTerminal
	}

	if err := windows.SetConsoleMode(handle, original&^windows.ENABLE_ECHO_INPUT); err != nil {
		return nil, err
	}
	return func() {
		_ = windows.SetConsoleMode(handle, original)
	}, nil
}
