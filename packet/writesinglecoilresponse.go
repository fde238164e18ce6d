package packet

import (
	"encoding/binary"
	"errors"
)

// WriteSingleCoilResponseRTU is RTU Response for Write Single Coil (FC=05).
// Normal response is an echo of the request.
//
// Example packet: 0x11 0x05 0x00 0xAC 0xFF 0x00 0x4e 0x8b
// 0x11 - unit id (0)
// 0x05 - function code (1)
// 0x00 0xAC - coil address (2,3)
// 0xFF 0x00 - coil data (0xFF00 = on, 0x0000 = off) (4,5)
// 0x4e 0x8b - CRC16 (6,7)
type WriteSingleCoilResponseRTU struct {
	UnitID    uint8
	Address   uint16
	CoilState bool
}

// ParseWriteSingleCoilResponseRTU parses given bytes into WriteSingleCoilResponseRTU. Does not check CRC.
func ParseWriteSingleCoilResponseRTU(data []byte) (*WriteSingleCoilResponseRTU, error) {
	if len(data) != 8 {
		return nil, errors.New("received data length does not match write single coil response length")
	}
	return &WriteSingleCoilResponseRTU{
		UnitID: data[0],
		// function code = data[1]
		Address:   binary.BigEndian.Uint16(data[2:4]),
		CoilState: binary.BigEndian.Uint16(data[4:6]) == writeCoilOn,
	}, nil
}

// FunctionCode returns function code of this response
func (r WriteSingleCoilResponseRTU) FunctionCode() uint8 {
	return FunctionWriteSingleCoil
}

// Bytes returns WriteSingleCoilResponseRTU packet as bytes form
func (r WriteSingleCoilResponseRTU) Bytes() []byte {
	result := make([]byte, 6+2)
	result[0] = r.UnitID
	result[1] = FunctionWriteSingleCoil
	binary.BigEndian.PutUint16(result[2:4], r.Address)
	value := writeCoilOff
	if r.CoilState {
		value = writeCoilOn
	}
	binary.BigEndian.PutUint16(result[4:6], value)
	putCRC16(result)
	return result
}
