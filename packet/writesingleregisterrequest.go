package packet

import (
	"encoding/binary"
	"fmt"
)

// WriteSingleRegisterRequestRTU is RTU Request for Write Single Register (FC=06)
//
// Example packet: 0x11 0x06 0x00 0x01 0x00 0x03 0x9a 0x9b
// 0x11 - unit id (0)
// 0x06 - function code (1)
// 0x00 0x01 - register address (2,3)
// 0x00 0x03 - register data (4,5)
// 0x9a 0x9b - CRC16 (6,7)
type WriteSingleRegisterRequestRTU struct {
	UnitID  uint8
	Address uint16
	Value   uint16
}

// NewWriteSingleRegisterRequestRTU creates new instance of Write Single Register RTU request
func NewWriteSingleRegisterRequestRTU(unitID uint8, address uint16, value uint16) (*WriteSingleRegisterRequestRTU, error) {
	return &WriteSingleRegisterRequestRTU{
		UnitID: unitID,
		// function code is added by Bytes()
		Address: address,
		Value:   value,
	}, nil
}

// ParseWriteSingleRegisterRequestRTU parses given bytes into WriteSingleRegisterRequestRTU. Does not check CRC.
func ParseWriteSingleRegisterRequestRTU(data []byte) (*WriteSingleRegisterRequestRTU, error) {
	dLen := len(data)
	if dLen != 8 && dLen != 6 { // with or without CRC bytes
		return nil, fmt.Errorf("%w: invalid Write Single Register request length: %v", ErrInvalidFrame, dLen)
	}
	return &WriteSingleRegisterRequestRTU{
		UnitID: data[0],
		// function code = data[1]
		Address: binary.BigEndian.Uint16(data[2:4]),
		Value:   binary.BigEndian.Uint16(data[4:6]),
	}, nil
}

// FunctionCode returns function code of this request
func (r WriteSingleRegisterRequestRTU) FunctionCode() uint8 {
	return FunctionWriteSingleRegister
}

// Bytes returns WriteSingleRegisterRequestRTU packet as bytes form
func (r WriteSingleRegisterRequestRTU) Bytes() []byte {
	result := make([]byte, 6+2)
	result[0] = r.UnitID
	result[1] = FunctionWriteSingleRegister
	binary.BigEndian.PutUint16(result[2:4], r.Address)
	binary.BigEndian.PutUint16(result[4:6], r.Value)
	putCRC16(result)
	return result
}
