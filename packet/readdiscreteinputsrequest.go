package packet

import (
	"encoding/binary"
	"fmt"
	"math"
)

// ReadDiscreteInputsRequestRTU is RTU Request for Read Discrete Inputs function (FC=02)
//
// Example packet: 0x10 0x02 0x00 0x6B 0x00 0x03 0x4a 0x96
// 0x10 - unit id (0)
// 0x02 - function code (1)
// 0x00 0x6B - start address (2,3)
// 0x00 0x03 - discrete inputs quantity to return (4,5)
// 0x4a 0x96 - CRC16 (6,7)
type ReadDiscreteInputsRequestRTU struct {
	UnitID       uint8
	StartAddress uint16
	Quantity     uint16
}

// NewReadDiscreteInputsRequestRTU creates new instance of Read Discrete Inputs RTU request
func NewReadDiscreteInputsRequestRTU(unitID uint8, startAddress uint16, quantity uint16) (*ReadDiscreteInputsRequestRTU, error) {
	if quantity == 0 || quantity > MaxCoilsInRead {
		return nil, fmt.Errorf("quantity is out of range (1-2000): %v", quantity)
	}

	return &ReadDiscreteInputsRequestRTU{
		UnitID: unitID,
		// function code is added by Bytes()
		StartAddress: startAddress,
		Quantity:     quantity,
	}, nil
}

// ParseReadDiscreteInputsRequestRTU parses given bytes into ReadDiscreteInputsRequestRTU. Does not check CRC.
func ParseReadDiscreteInputsRequestRTU(data []byte) (*ReadDiscreteInputsRequestRTU, error) {
	dLen := len(data)
	if dLen != 8 && dLen != 6 { // with or without CRC bytes
		return nil, fmt.Errorf("%w: invalid Read Discrete Inputs request length: %v", ErrInvalidFrame, dLen)
	}
	unitID := data[0]
	quantity := binary.BigEndian.Uint16(data[4:6])
	if quantity == 0 || quantity > MaxCoilsInRead { // 0x0001 to 0x07d0
		tmpErr := NewErrorParseRTU(ErrIllegalDataValue, "invalid quantity. valid range 1..2000")
		tmpErr.Packet.UnitID = unitID
		tmpErr.Packet.Function = FunctionReadDiscreteInputs
		return nil, tmpErr
	}
	return &ReadDiscreteInputsRequestRTU{
		UnitID: unitID,
		// function code = data[1]
		StartAddress: binary.BigEndian.Uint16(data[2:4]),
		Quantity:     quantity,
	}, nil
}

// FunctionCode returns function code of this request
func (r ReadDiscreteInputsRequestRTU) FunctionCode() uint8 {
	return FunctionReadDiscreteInputs
}

// InputByteLength returns length of discrete inputs data in bytes that response to this request contains
func (r ReadDiscreteInputsRequestRTU) InputByteLength() int {
	return int(math.Ceil(float64(r.Quantity) / 8))
}

// Bytes returns ReadDiscreteInputsRequestRTU packet as bytes form
func (r ReadDiscreteInputsRequestRTU) Bytes() []byte {
	result := make([]byte, 6+2)
	putReadRequestBytes(result, r.UnitID, FunctionReadDiscreteInputs, r.StartAddress, r.Quantity)
	putCRC16(result)
	return result
}
