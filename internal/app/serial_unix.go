//go:build linux || darwin

package app

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// pollable re-opens an open serial port on a non-blocking duplicate of
// its descriptor, so the runtime poller owns it and Close interrupts a
// pending Read. go-serial leaves the descriptor in blocking mode.
func pollable(port io.ReadWriteCloser) (io.ReadWriteCloser, error) {
	f, ok := port.(*os.File)
	if !ok {
		return port, nil
	}
	defer f.Close()

	fd, err := unix.Dup(int(f.Fd()))
	if err != nil {
		return nil, fmt.Errorf("dup serial fd: %w", err)
	}
	if err := unix.SetNonblock(fd, true); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("set serial fd non-blocking: %w", err)
	}
	return os.NewFile(uintptr(fd), f.Name()), nil
}
