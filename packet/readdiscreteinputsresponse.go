package packet

import (
	"errors"
)

// ReadDiscreteInputsResponseRTU is RTU Response for Read Discrete Inputs (FC=02)
//
// Example packet: 0x03 0x02 0x02 0xCD 0x6B 0xd5 0x07
// 0x03 - unit id (0)
// 0x02 - function code (1)
// 0x02 - inputs byte count (2)
// 0xCD 0x6B - inputs data (2 bytes = 2 // 8 inputs) (3,4, ...)
// 0xd5 0x07 - CRC16 (n-2,n-1)
type ReadDiscreteInputsResponseRTU struct {
	UnitID uint8
	Data   []byte
}

// ParseReadDiscreteInputsResponseRTU parses given bytes into ReadDiscreteInputsResponseRTU. Does not check CRC.
func ParseReadDiscreteInputsResponseRTU(data []byte) (*ReadDiscreteInputsResponseRTU, error) {
	dLen := len(data)
	if dLen < 6 {
		return nil, errors.New("received data length too short to be valid packet")
	}
	byteLen := data[2]
	if dLen != 3+int(byteLen)+2 {
		return nil, errors.New("received data length does not match byte len in packet")
	}
	return &ReadDiscreteInputsResponseRTU{
		UnitID: data[0],
		// function code = data[1]
		Data: data[3 : 3+byteLen],
	}, nil
}

// FunctionCode returns function code of this response
func (r ReadDiscreteInputsResponseRTU) FunctionCode() uint8 {
	return FunctionReadDiscreteInputs
}

// Bytes returns ReadDiscreteInputsResponseRTU packet as bytes form
func (r ReadDiscreteInputsResponseRTU) Bytes() []byte {
	inputsByteLen := len(r.Data)
	result := make([]byte, 3+inputsByteLen+2)
	result[0] = r.UnitID
	result[1] = FunctionReadDiscreteInputs
	result[2] = uint8(inputsByteLen)
	copy(result[3:3+inputsByteLen], r.Data)
	putCRC16(result)
	return result
}

// IsInputSet checks if N-th discrete input is set in response data. Inputs are counted from
// `startAddress` (see ReadDiscreteInputsRequestRTU) and right to left.
func (r ReadDiscreteInputsResponseRTU) IsInputSet(startAddress uint16, inputAddress uint16) (bool, error) {
	return isBitSet(r.Data, startAddress, inputAddress)
}
