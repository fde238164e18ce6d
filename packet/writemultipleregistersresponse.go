package packet

import (
	"encoding/binary"
	"errors"
)

// WriteMultipleRegistersResponseRTU is RTU Response for Write Multiple Registers (FC=16)
//
// Example packet: 0x11 0x10 0x00 0x01 0x00 0x02 0x12 0x98
// 0x11 - unit id (0)
// 0x10 - function code (1)
// 0x00 0x01 - start address (2,3)
// 0x00 0x02 - count of registers written (4,5)
// 0x12 0x98 - CRC16 (6,7)
type WriteMultipleRegistersResponseRTU struct {
	UnitID        uint8
	StartAddress  uint16
	RegisterCount uint16
}

// ParseWriteMultipleRegistersResponseRTU parses given bytes into WriteMultipleRegistersResponseRTU. Does not check CRC.
func ParseWriteMultipleRegistersResponseRTU(data []byte) (*WriteMultipleRegistersResponseRTU, error) {
	if len(data) != 8 {
		return nil, errors.New("received data length does not match write multiple registers response length")
	}
	return &WriteMultipleRegistersResponseRTU{
		UnitID: data[0],
		// function code = data[1]
		StartAddress:  binary.BigEndian.Uint16(data[2:4]),
		RegisterCount: binary.BigEndian.Uint16(data[4:6]),
	}, nil
}

// FunctionCode returns function code of this response
func (r WriteMultipleRegistersResponseRTU) FunctionCode() uint8 {
	return FunctionWriteMultipleRegisters
}

// Bytes returns WriteMultipleRegistersResponseRTU packet as bytes form
func (r WriteMultipleRegistersResponseRTU) Bytes() []byte {
	result := make([]byte, 6+2)
	result[0] = r.UnitID
	result[1] = FunctionWriteMultipleRegisters
	binary.BigEndian.PutUint16(result[2:4], r.StartAddress)
	binary.BigEndian.PutUint16(result[4:6], r.RegisterCount)
	putCRC16(result)
	return result
}
