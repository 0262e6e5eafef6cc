//go:build !linux && !darwin

package app

import "io"

func pollable(port io.ReadWriteCloser) (io.ReadWriteCloser, error) {
	return port, nil
}
