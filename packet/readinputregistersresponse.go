package packet

import (
	"encoding/binary"
	"errors"
)

// ReadInputRegistersResponseRTU is RTU Response for Read Input Registers (FC=04)
//
// Example packet: 0x01 0x04 0x04 0x27 0x10 0xC3 0x50 0xA0 0x39
// 0x01 - unit id (0)
// 0x04 - function code (1)
// 0x04 - registers byte count (2)
// 0x27 0x10 0xC3 0x50 - registers data (3,4, ...)
// 0xA0 0x39 - CRC16 (n-2,n-1)
type ReadInputRegistersResponseRTU struct {
	UnitID uint8
	Data   []byte
}

// ParseReadInputRegistersResponseRTU parses given bytes into ReadInputRegistersResponseRTU. Does not check CRC.
func ParseReadInputRegistersResponseRTU(data []byte) (*ReadInputRegistersResponseRTU, error) {
	dLen := len(data)
	if dLen < 7 {
		return nil, errors.New("received data length too short to be valid packet")
	}
	byteLen := data[2]
	if byteLen%2 != 0 || dLen != 3+int(byteLen)+2 {
		return nil, errors.New("received data length does not match byte len in packet")
	}
	return &ReadInputRegistersResponseRTU{
		UnitID: data[0],
		// function code = data[1]
		Data: data[3 : 3+byteLen],
	}, nil
}

// FunctionCode returns function code of this response
func (r ReadInputRegistersResponseRTU) FunctionCode() uint8 {
	return FunctionReadInputRegisters
}

// Bytes returns ReadInputRegistersResponseRTU packet as bytes form
func (r ReadInputRegistersResponseRTU) Bytes() []byte {
	registersByteLen := len(r.Data)
	result := make([]byte, 3+registersByteLen+2)
	result[0] = r.UnitID
	result[1] = FunctionReadInputRegisters
	result[2] = uint8(registersByteLen)
	copy(result[3:3+registersByteLen], r.Data)
	putCRC16(result)
	return result
}

// Register returns register data at given index (0-based) as uint16
func (r ReadInputRegistersResponseRTU) Register(index int) (uint16, error) {
	offset := index * 2
	if index < 0 || offset+2 > len(r.Data) {
		return 0, errors.New("register index out of range")
	}
	return binary.BigEndian.Uint16(r.Data[offset : offset+2]), nil
}
