package packet

// Response is common interface of modbus RTU response packets
type Response interface {
	// FunctionCode returns function code of this response
	FunctionCode() uint8
	// Bytes returns packet as bytes form (with CRC)
	Bytes() []byte
}
