package modbus

import (
	"errors"
)

var (
	// ErrFunctionNotImplemented is returned by Handler when it does not implement requested
	// function. Server answers with exception code 1 (illegal function).
	ErrFunctionNotImplemented = errors.New("function not implemented")
	// ErrRegisterNotImplemented is returned by Handler when requested register/coil range is not
	// implemented by the device. Server answers with exception code 2 (illegal data address).
	ErrRegisterNotImplemented = errors.New("register not implemented")
)

// Handler is the application side data callback of the Slave. Read is called for FC01/02/03/04
// requests with transaction payload to be filled, Write for FC05/06/15/16 requests with payload
// already holding the values to apply.
//
// Any returned error other than ErrFunctionNotImplemented and ErrRegisterNotImplemented is
// answered with exception code 4 (server device failure).
//
// Both methods are called synchronously from Slave.ProcessMessage and must not block.
type Handler interface {
	Read(t *Transaction) error
	Write(t *Transaction) error
}
