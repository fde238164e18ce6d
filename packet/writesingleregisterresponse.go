package packet

import (
	"encoding/binary"
	"errors"
)

// WriteSingleRegisterResponseRTU is RTU Response for Write Single Register (FC=06).
// Normal response is an echo of the request.
//
// Example packet: 0x11 0x06 0x00 0x01 0x00 0x03 0x9a 0x9b
// 0x11 - unit id (0)
// 0x06 - function code (1)
// 0x00 0x01 - register address (2,3)
// 0x00 0x03 - register data (4,5)
// 0x9a 0x9b - CRC16 (6,7)
type WriteSingleRegisterResponseRTU struct {
	UnitID  uint8
	Address uint16
	Value   uint16
}

// ParseWriteSingleRegisterResponseRTU parses given bytes into WriteSingleRegisterResponseRTU. Does not check CRC.
func ParseWriteSingleRegisterResponseRTU(data []byte) (*WriteSingleRegisterResponseRTU, error) {
	if len(data) != 8 {
		return nil, errors.New("received data length does not match write single register response length")
	}
	return &WriteSingleRegisterResponseRTU{
		UnitID: data[0],
		// function code = data[1]
		Address: binary.BigEndian.Uint16(data[2:4]),
		Value:   binary.BigEndian.Uint16(data[4:6]),
	}, nil
}

// FunctionCode returns function code of this response
func (r WriteSingleRegisterResponseRTU) FunctionCode() uint8 {
	return FunctionWriteSingleRegister
}

// Bytes returns WriteSingleRegisterResponseRTU packet as bytes form
func (r WriteSingleRegisterResponseRTU) Bytes() []byte {
	result := make([]byte, 6+2)
	result[0] = r.UnitID
	result[1] = FunctionWriteSingleRegister
	binary.BigEndian.PutUint16(result[2:4], r.Address)
	binary.BigEndian.PutUint16(result[4:6], r.Value)
	putCRC16(result)
	return result
}
