package packet

import (
	"errors"
)

// ReadCoilsResponseRTU is RTU Response for Read Coils (FC=01)
//
// Example packet: 0x03 0x01 0x02 0xCD 0x6B 0xd5 0x43
// 0x03 - unit id (0)
// 0x01 - function code (1)
// 0x02 - coils byte count (2)
// 0xCD 0x6B - coils data (2 bytes = 2 // 8 coils) (3,4, ...)
// 0xd5 0x43 - CRC16 (n-2,n-1)
type ReadCoilsResponseRTU struct {
	UnitID uint8
	Data   []byte
}

// ParseReadCoilsResponseRTU parses given bytes into ReadCoilsResponseRTU. Does not check CRC.
func ParseReadCoilsResponseRTU(data []byte) (*ReadCoilsResponseRTU, error) {
	dLen := len(data)
	if dLen < 6 {
		return nil, errors.New("received data length too short to be valid packet")
	}
	byteLen := data[2]
	if dLen != 3+int(byteLen)+2 {
		return nil, errors.New("received data length does not match byte len in packet")
	}
	return &ReadCoilsResponseRTU{
		UnitID: data[0],
		// function code = data[1]
		Data: data[3 : 3+byteLen],
	}, nil
}

// FunctionCode returns function code of this response
func (r ReadCoilsResponseRTU) FunctionCode() uint8 {
	return FunctionReadCoils
}

// Bytes returns ReadCoilsResponseRTU packet as bytes form
func (r ReadCoilsResponseRTU) Bytes() []byte {
	coilsByteLen := len(r.Data)
	result := make([]byte, 3+coilsByteLen+2)
	result[0] = r.UnitID
	result[1] = FunctionReadCoils
	result[2] = uint8(coilsByteLen)
	copy(result[3:3+coilsByteLen], r.Data)
	putCRC16(result)
	return result
}

// IsCoilSet checks if N-th coil is set in response data. Coils are counted from `startAddress`
// (see ReadCoilsRequestRTU) and right to left.
func (r ReadCoilsResponseRTU) IsCoilSet(startAddress uint16, coilAddress uint16) (bool, error) {
	return isBitSet(r.Data, startAddress, coilAddress)
}

// isBitSet checks if N-th bit is set in data. NB: Bits are counted from `startBit` and left to right (bytes).
func isBitSet(data []byte, startBit uint16, bit uint16) (bool, error) {
	targetBit := int(bit) - int(startBit)
	if bit < startBit {
		return false, errors.New("bit can not be before startBit")
	}
	if len(data)*8 <= targetBit {
		return false, errors.New("bit value more than data contains bits")
	}
	b := data[targetBit/8]
	return b&(1<<(targetBit%8)) != 0, nil
}
