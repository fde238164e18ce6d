package packet

import (
	"fmt"
)

// ErrCode is enumeration for exception response error codes
type ErrCode uint8

const (
	// ErrUnknown is catchall error code
	ErrUnknown = 0
	// ErrIllegalFunction is The function code received in the query is not an allowable action for the server.
	// Quote from: `MODBUS Application Protocol Specification V1.1b3`, page 48
	ErrIllegalFunction = 1
	// ErrIllegalDataAddress is The data address received in the query is not an allowable address for the server.
	// More specifically, the combination of reference number and transfer length is invalid.
	// Quote from: `MODBUS Application Protocol Specification V1.1b3`, page 48
	ErrIllegalDataAddress = 2
	// ErrIllegalDataValue is A value contained in the query data field is not an allowable value for server.
	// This indicates a fault in the structure of the remainder of a complex request, such as that the implied
	// length is incorrect.
	// Quote from: `MODBUS Application Protocol Specification V1.1b3`, page 48
	ErrIllegalDataValue = 3
	// ErrServerFailure is An unrecoverable error occurred while the server was attempting to perform the
	// requested action.
	// Quote from: `MODBUS Application Protocol Specification V1.1b3`, page 48
	ErrServerFailure = 4
	// ErrAcknowledge is Specialized use in conjunction with programming commands. The server has accepted
	// the request and is processing it, but a long duration of time will be required to do so.
	// Quote from: `MODBUS Application Protocol Specification V1.1b3`, page 48
	ErrAcknowledge = 5
	// ErrServerBusy is Specialized use in conjunction with programming commands. The server is engaged in
	// processing a long duration program command.
	// Quote from: `MODBUS Application Protocol Specification V1.1b3`, page 48
	ErrServerBusy = 6
	// ErrMemoryParityError is Specialized use in conjunction with function codes 20 and 21, indicates that
	// the extended file area failed to pass a consistency check.
	// Quote from: `MODBUS Application Protocol Specification V1.1b3`, page 48
	ErrMemoryParityError = 8
	// ErrGatewayPathUnavailable is Specialized use in conjunction with gateways, indicates that the gateway
	// was unable to allocate an internal communication path for processing the request.
	// Quote from: `MODBUS Application Protocol Specification V1.1b3`, page 49
	ErrGatewayPathUnavailable = 10
	// ErrGatewayTargetedDeviceResponse is Specialized use in conjunction with gateways, indicates that no
	// response was obtained from the target device.
	// Quote from: `MODBUS Application Protocol Specification V1.1b3`, page 49
	ErrGatewayTargetedDeviceResponse = 11
)

func errorText(code uint8) string {
	switch code {
	case ErrIllegalFunction:
		return "Illegal function"
	case ErrIllegalDataAddress:
		return "Illegal data address"
	case ErrIllegalDataValue:
		return "Illegal data value"
	case ErrServerFailure:
		return "Server failure"
	case ErrAcknowledge:
		return "Acknowledge"
	case ErrServerBusy:
		return "Server busy"
	case ErrMemoryParityError:
		return "Memory parity error"
	case ErrGatewayPathUnavailable:
		return "Gateway path unavailable"
	case ErrGatewayTargetedDeviceResponse:
		return "Gateway targeted device failed to respond"
	case ErrUnknown:
		fallthrough
	default:
		return fmt.Sprintf("Unknown error code: %v", code)
	}
}

// NewErrorParseRTU creates new instance of parsing error that can be sent to the client
func NewErrorParseRTU(code uint8, message string) *ErrorParseRTU {
	return &ErrorParseRTU{
		Message: message,
		Packet: ErrorResponseRTU{
			UnitID:   0,
			Function: 0,
			Code:     code,
		},
	}
}

// ErrorParseRTU is parsing error that can be sent to the client
type ErrorParseRTU struct {
	Message string
	Packet  ErrorResponseRTU
}

// Error translates error code to error message.
func (e ErrorParseRTU) Error() string {
	return e.Message
}

// Bytes returns ErrorParseRTU packet as bytes form
func (e ErrorParseRTU) Bytes() []byte {
	return e.Packet.Bytes()
}

// ErrorResponseRTU is RTU exception response sent by server to client.
// The function code is transmitted with its high bit (0x80) set.
//
// Example packet: 0x12 0x83 0x02 0x31 0x34
// 0x12 - unit id (0)
// 0x83 - function code 0x03 + 128 (error bitmask) (1)
// 0x02 - error code (2)
// 0x31 0x34 - CRC16 (3,4)
type ErrorResponseRTU struct {
	UnitID   uint8
	Function uint8
	Code     uint8
}

// Error translates error code to error message.
func (re ErrorResponseRTU) Error() string {
	return errorText(re.Code)
}

// Bytes returns ErrorResponseRTU packet as bytes form
func (re ErrorResponseRTU) Bytes() []byte {
	result := make([]byte, 5)

	result[0] = re.UnitID
	result[1] = re.Function | functionCodeErrorBitmask
	result[2] = re.Code
	putCRC16(result)

	return result
}

// FunctionCode returns function code to which error response originates from / was responded to
func (re ErrorResponseRTU) FunctionCode() uint8 {
	return re.Function
}
