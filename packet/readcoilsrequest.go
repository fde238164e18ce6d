package packet

import (
	"encoding/binary"
	"fmt"
	"math"
)

// ReadCoilsRequestRTU is RTU Request for Read Coils function (FC=01)
//
// Example packet: 0x10 0x01 0x00 0x6B 0x00 0x03 0x0e 0x96
// 0x10 - unit id (0)
// 0x01 - function code (1)
// 0x00 0x6B - start address (2,3)
// 0x00 0x03 - coils quantity to return (4,5)
// 0x0e 0x96 - CRC16 (6,7)
type ReadCoilsRequestRTU struct {
	UnitID       uint8
	StartAddress uint16
	Quantity     uint16
}

// NewReadCoilsRequestRTU creates new instance of Read Coils RTU request
func NewReadCoilsRequestRTU(unitID uint8, startAddress uint16, quantity uint16) (*ReadCoilsRequestRTU, error) {
	if quantity == 0 || quantity > MaxCoilsInRead {
		// 2000 coils is due that in response data size field is 1 byte so max 250*8=2000 coils can be returned
		return nil, fmt.Errorf("quantity is out of range (1-2000): %v", quantity)
	}

	return &ReadCoilsRequestRTU{
		UnitID: unitID,
		// function code is added by Bytes()
		StartAddress: startAddress,
		Quantity:     quantity,
	}, nil
}

// ParseReadCoilsRequestRTU parses given bytes into ReadCoilsRequestRTU. Does not check CRC.
func ParseReadCoilsRequestRTU(data []byte) (*ReadCoilsRequestRTU, error) {
	dLen := len(data)
	if dLen != 8 && dLen != 6 { // with or without CRC bytes
		return nil, fmt.Errorf("%w: invalid Read Coils request length: %v", ErrInvalidFrame, dLen)
	}
	unitID := data[0]
	quantity := binary.BigEndian.Uint16(data[4:6])
	if quantity == 0 || quantity > MaxCoilsInRead { // 0x0001 to 0x07d0
		tmpErr := NewErrorParseRTU(ErrIllegalDataValue, "invalid quantity. valid range 1..2000")
		tmpErr.Packet.UnitID = unitID
		tmpErr.Packet.Function = FunctionReadCoils
		return nil, tmpErr
	}
	return &ReadCoilsRequestRTU{
		UnitID: unitID,
		// function code = data[1]
		StartAddress: binary.BigEndian.Uint16(data[2:4]),
		Quantity:     quantity,
	}, nil
}

// FunctionCode returns function code of this request
func (r ReadCoilsRequestRTU) FunctionCode() uint8 {
	return FunctionReadCoils
}

// CoilByteLength returns length of coils data in bytes that response to this request contains
func (r ReadCoilsRequestRTU) CoilByteLength() int {
	return int(math.Ceil(float64(r.Quantity) / 8))
}

// Bytes returns ReadCoilsRequestRTU packet as bytes form
func (r ReadCoilsRequestRTU) Bytes() []byte {
	result := make([]byte, 6+2)
	putReadRequestBytes(result, r.UnitID, FunctionReadCoils, r.StartAddress, r.Quantity)
	putCRC16(result)
	return result
}
