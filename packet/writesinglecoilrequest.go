package packet

import (
	"encoding/binary"
	"fmt"
)

const (
	writeCoilOn  = uint16(0xFF00)
	writeCoilOff = uint16(0x0000)
)

// WriteSingleCoilRequestRTU is RTU Request for Write Single Coil (FC=05)
//
// Example packet: 0x11 0x05 0x00 0xAC 0xFF 0x00 0x4e 0x8b
// 0x11 - unit id (0)
// 0x05 - function code (1)
// 0x00 0xAC - coil address (2,3)
// 0xFF 0x00 - coil data (0xFF00 = on, 0x0000 = off) (4,5)
// 0x4e 0x8b - CRC16 (6,7)
type WriteSingleCoilRequestRTU struct {
	UnitID    uint8
	Address   uint16
	CoilState bool
}

// NewWriteSingleCoilRequestRTU creates new instance of Write Single Coil RTU request
func NewWriteSingleCoilRequestRTU(unitID uint8, address uint16, coilState bool) (*WriteSingleCoilRequestRTU, error) {
	return &WriteSingleCoilRequestRTU{
		UnitID: unitID,
		// function code is added by Bytes()
		Address:   address,
		CoilState: coilState,
	}, nil
}

// ParseWriteSingleCoilRequestRTU parses given bytes into WriteSingleCoilRequestRTU. Does not check CRC.
func ParseWriteSingleCoilRequestRTU(data []byte) (*WriteSingleCoilRequestRTU, error) {
	dLen := len(data)
	if dLen != 8 && dLen != 6 { // with or without CRC bytes
		return nil, fmt.Errorf("%w: invalid Write Single Coil request length: %v", ErrInvalidFrame, dLen)
	}
	unitID := data[0]
	value := binary.BigEndian.Uint16(data[4:6])
	if value != writeCoilOn && value != writeCoilOff {
		tmpErr := NewErrorParseRTU(ErrIllegalDataValue, "coil state is not 0xFF00 or 0x0000")
		tmpErr.Packet.UnitID = unitID
		tmpErr.Packet.Function = FunctionWriteSingleCoil
		return nil, tmpErr
	}
	return &WriteSingleCoilRequestRTU{
		UnitID: unitID,
		// function code = data[1]
		Address:   binary.BigEndian.Uint16(data[2:4]),
		CoilState: value == writeCoilOn,
	}, nil
}

// FunctionCode returns function code of this request
func (r WriteSingleCoilRequestRTU) FunctionCode() uint8 {
	return FunctionWriteSingleCoil
}

// Bytes returns WriteSingleCoilRequestRTU packet as bytes form
func (r WriteSingleCoilRequestRTU) Bytes() []byte {
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
