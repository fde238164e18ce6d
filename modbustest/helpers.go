// Package modbustest provides helpers for testing Modbus RTU slaves without real serial hardware.
package modbustest

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	modbus "github.com/aldas/go-modbus-slave"
)

// frameGap is how long endpoint Read waits for data before reporting inter-frame silence
const frameGap = 5 * time.Millisecond

// Pipe creates connected pair of in-memory endpoints behaving like serial ports with read
// timeout configured: Read returns (0, nil) when no data arrives within the inter-frame gap
// and io.EOF after the other side is closed. Writes on one endpoint are read from the other.
func Pipe() (io.ReadWriteCloser, io.ReadWriteCloser) {
	aToB := make(chan []byte, 16)
	bToA := make(chan []byte, 16)
	done := make(chan struct{})
	var closeOnce sync.Once
	closeFunc := func() error {
		closeOnce.Do(func() { close(done) })
		return nil
	}
	a := &pipeEndpoint{in: bToA, out: aToB, done: done, close: closeFunc}
	b := &pipeEndpoint{in: aToB, out: bToA, done: done, close: closeFunc}
	return a, b
}

type pipeEndpoint struct {
	in      chan []byte
	out     chan []byte
	done    chan struct{}
	close   func() error
	pending []byte
}

func (p *pipeEndpoint) Read(b []byte) (int, error) {
	if len(p.pending) == 0 {
		select {
		case data := <-p.in:
			p.pending = data
		case <-p.done:
			return 0, io.EOF
		case <-time.After(frameGap):
			return 0, nil // inter-frame silence
		}
	}
	n := copy(b, p.pending)
	p.pending = p.pending[n:]
	return n, nil
}

func (p *pipeEndpoint) Write(b []byte) (int, error) {
	data := make([]byte, len(b))
	copy(data, b)
	select {
	case p.out <- data:
		return len(b), nil
	case <-p.done:
		return 0, io.ErrClosedPipe
	}
}

func (p *pipeEndpoint) Close() error {
	return p.close()
}

// RunSlaveOnPipe starts SerialServer for given slave in separate goroutine and returns the
// master side endpoint to send request frames to. Server runs until given context is cancelled
// or returned endpoint is closed.
func RunSlaveOnPipe(ctx context.Context, slave *modbus.Slave) io.ReadWriteCloser {
	master, port := Pipe()
	server := modbus.NewSerialServer(slave)
	go func() {
		_ = server.Serve(ctx, port)
	}()
	return master
}

// RequestResponse writes single request frame to given port and reads back the complete reply
// frame. Returns error when no reply bytes arrive within given timeout (e.g. for broadcasts).
func RequestResponse(port io.ReadWriter, request []byte, timeout time.Duration) ([]byte, error) {
	if _, err := port.Write(request); err != nil {
		return nil, err
	}

	deadline := time.Now().Add(timeout)
	received := make([]byte, 300)
	frame := make([]byte, 0, 300)
	for {
		n, err := port.Read(received)
		if n > 0 {
			frame = append(frame, received[:n]...)
			continue
		}
		if err != nil {
			return nil, err
		}
		if len(frame) > 0 {
			return frame, nil // silence after data marks end of frame
		}
		if time.Now().After(deadline) {
			return nil, errors.New("timeout when waiting for response frame")
		}
	}
}
