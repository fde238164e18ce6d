package modbus

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aldas/go-modbus-slave/packet"
	"go.uber.org/zap"
)

// SerialServer serves single Slave over serial port (or any other io.ReadWriteCloser).
//
// RTU frame boundaries are detected by read timeouts: the port implementation must be
// configured with a read timeout in the order of the 3.5 character inter-frame silence
// (e.g. `serial.Config.ReadTimeout` of tarm/serial). A read returning no data while
// previous reads have buffered bytes marks the end of a frame candidate.
type SerialServer struct {
	slave  *Slave
	logger *zap.Logger
}

// SerialServerOptionFunc is options type for NewSerialServer function
type SerialServerOptionFunc func(s *SerialServer)

// WithLogger is option to set logger for SerialServer. Defaults to zap.NewNop().
func WithLogger(logger *zap.Logger) SerialServerOptionFunc {
	return func(s *SerialServer) {
		s.logger = logger
	}
}

// NewSerialServer creates new instance of SerialServer for given slave
func NewSerialServer(slave *Slave, opts ...SerialServerOptionFunc) *SerialServer {
	server := &SerialServer{
		slave:  slave,
		logger: zap.NewNop(),
	}
	for _, o := range opts {
		o(server)
	}
	return server
}

// Serve reads frame candidates from given port and transmits replies until context is cancelled
// or port read fails. Replies are produced synchronously, one frame at a time. Transmit errors
// are logged and dropped, they do not end serving.
func (s *SerialServer) Serve(ctx context.Context, port io.ReadWriteCloser) error {
	received := make([]byte, 300)
	frame := make([]byte, 0, packet.MaxRTUFrameLength)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, err := port.Read(received)
		if n > 0 {
			frame = append(frame, received[:n]...)
			if len(frame) > packet.MaxRTUFrameLength {
				s.logger.Warn("discarding oversized frame", zap.Int("length", len(frame)))
				frame = frame[:0]
			}
		}
		if err != nil && !errors.Is(err, os.ErrDeadlineExceeded) {
			if errors.Is(err, io.EOF) {
				if len(frame) > 0 {
					s.serveFrame(port, frame)
				}
				return nil // port was closed
			}
			return fmt.Errorf("serial port read error: %w", err)
		}
		if n > 0 {
			continue // keep buffering until inter-frame silence
		}
		if len(frame) == 0 {
			continue
		}
		s.serveFrame(port, frame)
		frame = frame[:0]
	}
}

func (s *SerialServer) serveFrame(port io.Writer, frame []byte) {
	s.logger.Debug("received frame", zap.Binary("frame", frame))
	response, err := s.slave.ProcessMessage(frame)
	if err != nil {
		s.logger.Warn("dropped frame", zap.Error(err), zap.Binary("frame", frame))
		return
	}
	if response == nil {
		return // broadcast or frame for another server
	}
	s.logger.Debug("sending response", zap.Binary("response", response))
	if _, err := port.Write(response); err != nil {
		// transmit errors are not propagated to the wire
		s.logger.Error("response transmit failed", zap.Error(err))
	}
}
