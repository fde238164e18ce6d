package packet

import (
	"encoding/binary"
	"fmt"
)

// ReadInputRegistersRequestRTU is RTU Request for Read Input Registers (FC=04)
//
// Example packet: 0x01 0x04 0x00 0xC8 0x00 0x02 0xf0 0x35
// 0x01 - unit id (0)
// 0x04 - function code (1)
// 0x00 0xC8 - start address (2,3)
// 0x00 0x02 - input registers quantity to return (4,5)
// 0xf0 0x35 - CRC16 (6,7)
type ReadInputRegistersRequestRTU struct {
	UnitID       uint8
	StartAddress uint16
	Quantity     uint16
}

// NewReadInputRegistersRequestRTU creates new instance of Read Input Registers RTU request
func NewReadInputRegistersRequestRTU(unitID uint8, startAddress uint16, quantity uint16) (*ReadInputRegistersRequestRTU, error) {
	if quantity == 0 || quantity > MaxRegistersInRead {
		return nil, fmt.Errorf("quantity is out of range (1-125): %v", quantity)
	}

	return &ReadInputRegistersRequestRTU{
		UnitID: unitID,
		// function code is added by Bytes()
		StartAddress: startAddress,
		Quantity:     quantity,
	}, nil
}

// ParseReadInputRegistersRequestRTU parses given bytes into ReadInputRegistersRequestRTU. Does not check CRC.
func ParseReadInputRegistersRequestRTU(data []byte) (*ReadInputRegistersRequestRTU, error) {
	dLen := len(data)
	if dLen != 8 && dLen != 6 { // with or without CRC bytes
		return nil, fmt.Errorf("%w: invalid Read Input Registers request length: %v", ErrInvalidFrame, dLen)
	}
	unitID := data[0]
	quantity := binary.BigEndian.Uint16(data[4:6])
	if quantity == 0 || quantity > MaxRegistersInRead { // 0x0001 to 0x007d
		tmpErr := NewErrorParseRTU(ErrIllegalDataValue, "invalid quantity. valid range 1..125")
		tmpErr.Packet.UnitID = unitID
		tmpErr.Packet.Function = FunctionReadInputRegisters
		return nil, tmpErr
	}
	return &ReadInputRegistersRequestRTU{
		UnitID: unitID,
		// function code = data[1]
		StartAddress: binary.BigEndian.Uint16(data[2:4]),
		Quantity:     quantity,
	}, nil
}

// FunctionCode returns function code of this request
func (r ReadInputRegistersRequestRTU) FunctionCode() uint8 {
	return FunctionReadInputRegisters
}

// Bytes returns ReadInputRegistersRequestRTU packet as bytes form
func (r ReadInputRegistersRequestRTU) Bytes() []byte {
	result := make([]byte, 6+2)
	putReadRequestBytes(result, r.UnitID, FunctionReadInputRegisters, r.StartAddress, r.Quantity)
	putCRC16(result)
	return result
}
