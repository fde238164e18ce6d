package packet

// Request is common interface of modbus RTU request packets
type Request interface {
	// FunctionCode returns function code of this request
	FunctionCode() uint8
	// Bytes returns packet as bytes form (with CRC)
	Bytes() []byte
}
