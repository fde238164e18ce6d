package packet

import (
	"encoding/binary"
	"errors"
)

// ReadHoldingRegistersResponseRTU is RTU Response for Read Holding Registers (FC=03)
//
// Example packet: 0x11 0x03 0x06 0xAE 0x41 0x56 0x52 0x43 0x40 0x49 0xAD
// 0x11 - unit id (0)
// 0x03 - function code (1)
// 0x06 - registers byte count (2)
// 0xAE 0x41 0x56 0x52 0x43 0x40 - registers data (3,4, ...)
// 0x49 0xAD - CRC16 (n-2,n-1)
type ReadHoldingRegistersResponseRTU struct {
	UnitID uint8
	Data   []byte
}

// ParseReadHoldingRegistersResponseRTU parses given bytes into ReadHoldingRegistersResponseRTU. Does not check CRC.
func ParseReadHoldingRegistersResponseRTU(data []byte) (*ReadHoldingRegistersResponseRTU, error) {
	dLen := len(data)
	if dLen < 7 {
		return nil, errors.New("received data length too short to be valid packet")
	}
	byteLen := data[2]
	if byteLen%2 != 0 || dLen != 3+int(byteLen)+2 {
		return nil, errors.New("received data length does not match byte len in packet")
	}
	return &ReadHoldingRegistersResponseRTU{
		UnitID: data[0],
		// function code = data[1]
		Data: data[3 : 3+byteLen],
	}, nil
}

// FunctionCode returns function code of this response
func (r ReadHoldingRegistersResponseRTU) FunctionCode() uint8 {
	return FunctionReadHoldingRegisters
}

// Bytes returns ReadHoldingRegistersResponseRTU packet as bytes form
func (r ReadHoldingRegistersResponseRTU) Bytes() []byte {
	registersByteLen := len(r.Data)
	result := make([]byte, 3+registersByteLen+2)
	result[0] = r.UnitID
	result[1] = FunctionReadHoldingRegisters
	result[2] = uint8(registersByteLen)
	copy(result[3:3+registersByteLen], r.Data)
	putCRC16(result)
	return result
}

// Register returns register data at given index (0-based) as uint16
func (r ReadHoldingRegistersResponseRTU) Register(index int) (uint16, error) {
	offset := index * 2
	if index < 0 || offset+2 > len(r.Data) {
		return 0, errors.New("register index out of range")
	}
	return binary.BigEndian.Uint16(r.Data[offset : offset+2]), nil
}
