package packet

import (
	"encoding/binary"
	"fmt"
)

// ReadHoldingRegistersRequestRTU is RTU Request for Read Holding Registers (FC=03)
//
// Example packet: 0x11 0x03 0x00 0x6B 0x00 0x03 0x76 0x87
// 0x11 - unit id (0)
// 0x03 - function code (1)
// 0x00 0x6B - start address (2,3)
// 0x00 0x03 - holding registers quantity to return (4,5)
// 0x76 0x87 - CRC16 (6,7)
type ReadHoldingRegistersRequestRTU struct {
	UnitID       uint8
	StartAddress uint16
	Quantity     uint16
}

// NewReadHoldingRegistersRequestRTU creates new instance of Read Holding Registers RTU request
func NewReadHoldingRegistersRequestRTU(unitID uint8, startAddress uint16, quantity uint16) (*ReadHoldingRegistersRequestRTU, error) {
	if quantity == 0 || quantity > MaxRegistersInRead {
		return nil, fmt.Errorf("quantity is out of range (1-125): %v", quantity)
	}

	return &ReadHoldingRegistersRequestRTU{
		UnitID: unitID,
		// function code is added by Bytes()
		StartAddress: startAddress,
		Quantity:     quantity,
	}, nil
}

// ParseReadHoldingRegistersRequestRTU parses given bytes into ReadHoldingRegistersRequestRTU. Does not check CRC.
func ParseReadHoldingRegistersRequestRTU(data []byte) (*ReadHoldingRegistersRequestRTU, error) {
	dLen := len(data)
	if dLen != 8 && dLen != 6 { // with or without CRC bytes
		return nil, fmt.Errorf("%w: invalid Read Holding Registers request length: %v", ErrInvalidFrame, dLen)
	}
	unitID := data[0]
	quantity := binary.BigEndian.Uint16(data[4:6])
	if quantity == 0 || quantity > MaxRegistersInRead { // 0x0001 to 0x007d
		tmpErr := NewErrorParseRTU(ErrIllegalDataValue, "invalid quantity. valid range 1..125")
		tmpErr.Packet.UnitID = unitID
		tmpErr.Packet.Function = FunctionReadHoldingRegisters
		return nil, tmpErr
	}
	return &ReadHoldingRegistersRequestRTU{
		UnitID: unitID,
		// function code = data[1]
		StartAddress: binary.BigEndian.Uint16(data[2:4]),
		Quantity:     quantity,
	}, nil
}

// FunctionCode returns function code of this request
func (r ReadHoldingRegistersRequestRTU) FunctionCode() uint8 {
	return FunctionReadHoldingRegisters
}

// Bytes returns ReadHoldingRegistersRequestRTU packet as bytes form
func (r ReadHoldingRegistersRequestRTU) Bytes() []byte {
	result := make([]byte, 6+2)
	putReadRequestBytes(result, r.UnitID, FunctionReadHoldingRegisters, r.StartAddress, r.Quantity)
	putCRC16(result)
	return result
}
