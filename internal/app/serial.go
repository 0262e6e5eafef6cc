package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	serial "github.com/jacobsa/go-serial/serial"
	"go.uber.org/zap"
)

// RunSerial reads newline-delimited JSON commands from a serial-attached
// device. The port gets a single session for as long as it stays open.
func RunSerial(ctx context.Context, engine *Engine, portName string, baud uint) error {
	serialOpts := serial.OpenOptions{
		PortName:              portName,
		BaudRate:              baud,
		DataBits:              8,
		StopBits:              1,
		MinimumReadSize:       1,
		ParityMode:            serial.PARITY_NONE,
		InterCharacterTimeout: 0,
	}

	raw, err := serial.Open(serialOpts)
	if err != nil {
		return fmt.Errorf("open serial %s: %w", portName, err)
	}
	port, err := pollable(raw)
	if err != nil {
		raw.Close()
		return fmt.Errorf("open serial %s: %w", portName, err)
	}
	engine.logger.Info("serial port opened", zap.String("port", portName), zap.Uint("baud", baud))

	// closing the port is what ends a Read waiting on an idle device
	stop := context.AfterFunc(ctx, func() { port.Close() })
	defer func() {
		if stop() {
			port.Close()
		}
	}()

	id := "serial:" + portName
	engine.Open(id)
	defer engine.Close(id)

	return engine.serveLines(ctx, port, id)
}

// serveLines dispatches every non-blank line of r to session id until
// EOF or ctx is done. A read error after ctx is done is the caller
// closing r and is not reported.
func (e *Engine) serveLines(ctx context.Context, r io.Reader, id string) error {
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if ctx.Err() != nil {
			return nil
		}
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			e.Dispatch(id, []byte(trimmed))
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("serial read: %w", err)
		}
	}
}
