package packet

import (
	"encoding/binary"
	"errors"
)

// WriteMultipleCoilsResponseRTU is RTU Response for Write Multiple Coils (FC=15)
//
// Example packet: 0x11 0x0F 0x04 0x10 0x00 0x03 0x17 0xaf
// 0x11 - unit id (0)
// 0x0F - function code (1)
// 0x04 0x10 - start address (2,3)
// 0x00 0x03 - count of coils written (4,5)
// 0x17 0xaf - CRC16 (6,7)
type WriteMultipleCoilsResponseRTU struct {
	UnitID       uint8
	StartAddress uint16
	CoilCount    uint16
}

// ParseWriteMultipleCoilsResponseRTU parses given bytes into WriteMultipleCoilsResponseRTU. Does not check CRC.
func ParseWriteMultipleCoilsResponseRTU(data []byte) (*WriteMultipleCoilsResponseRTU, error) {
	if len(data) != 8 {
		return nil, errors.New("received data length does not match write multiple coils response length")
	}
	return &WriteMultipleCoilsResponseRTU{
		UnitID: data[0],
		// function code = data[1]
		StartAddress: binary.BigEndian.Uint16(data[2:4]),
		CoilCount:    binary.BigEndian.Uint16(data[4:6]),
	}, nil
}

// FunctionCode returns function code of this response
func (r WriteMultipleCoilsResponseRTU) FunctionCode() uint8 {
	return FunctionWriteMultipleCoils
}

// Bytes returns WriteMultipleCoilsResponseRTU packet as bytes form
func (r WriteMultipleCoilsResponseRTU) Bytes() []byte {
	result := make([]byte, 6+2)
	result[0] = r.UnitID
	result[1] = FunctionWriteMultipleCoils
	binary.BigEndian.PutUint16(result[2:4], r.StartAddress)
	binary.BigEndian.PutUint16(result[4:6], r.CoilCount)
	putCRC16(result)
	return result
}
