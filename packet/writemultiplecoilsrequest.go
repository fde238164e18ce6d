package packet

import (
	"encoding/binary"
	"fmt"
)

// WriteMultipleCoilsRequestRTU is RTU Request for Write Multiple Coils (FC=15)
//
// Example packet: 0x11 0x0F 0x04 0x10 0x00 0x03 0x01 0x05 0x8e 0x1f
// 0x11 - unit id (0)
// 0x0F - function code (1)
// 0x04 0x10 - start address (2,3)
// 0x00 0x03 - count of coils to write (4,5)
// 0x01 - coils byte count (6)
// 0x05 - coils data (7, ...)
// 0x8e 0x1f - CRC16 (n-2,n-1)
type WriteMultipleCoilsRequestRTU struct {
	UnitID       uint8
	StartAddress uint16
	CoilCount    uint16
	Data         []byte
}

// NewWriteMultipleCoilsRequestRTU creates new instance of Write Multiple Coils RTU request
func NewWriteMultipleCoilsRequestRTU(unitID uint8, startAddress uint16, coils []bool) (*WriteMultipleCoilsRequestRTU, error) {
	coilCount := len(coils)
	if coilCount == 0 || coilCount > int(MaxCoilsInWrite) {
		// 1968 coils is due that coils byte len size field is 1 byte so max 246*8=1968 coils can be sent
		return nil, fmt.Errorf("coils count is out of range (1-1968): %v", coilCount)
	}

	return &WriteMultipleCoilsRequestRTU{
		UnitID: unitID,
		// function code is added by Bytes()
		StartAddress: startAddress,
		CoilCount:    uint16(coilCount),
		Data:         CoilsToBytes(coils),
	}, nil
}

// ParseWriteMultipleCoilsRequestRTU parses given bytes into WriteMultipleCoilsRequestRTU. Does not check CRC.
func ParseWriteMultipleCoilsRequestRTU(data []byte) (*WriteMultipleCoilsRequestRTU, error) {
	dLen := len(data)
	if dLen < 7 {
		return nil, fmt.Errorf("%w: invalid Write Multiple Coils request length: %v", ErrInvalidFrame, dLen)
	}
	unitID := data[0]
	coilCount := binary.BigEndian.Uint16(data[4:6])
	coilBytesCount := data[6]
	if coilCount == 0 || coilCount > MaxCoilsInWrite || // 0x0001 to 0x07b0
		int(coilBytesCount) != (int(coilCount)+7)/8 {
		tmpErr := NewErrorParseRTU(ErrIllegalDataValue, "invalid coils count or byte count")
		tmpErr.Packet.UnitID = unitID
		tmpErr.Packet.Function = FunctionWriteMultipleCoils
		return nil, tmpErr
	}
	expectedLen := 7 + int(coilBytesCount)
	if dLen != expectedLen && dLen != expectedLen+2 { // without crc and with crc
		return nil, fmt.Errorf("%w: write multiple coils data length does not match byte count", ErrInvalidFrame)
	}
	var coilsData []byte
	if coilBytesCount > 0 {
		coilsData = make([]byte, coilBytesCount)
		copy(coilsData, data[7:7+coilBytesCount])
	}
	return &WriteMultipleCoilsRequestRTU{
		UnitID: unitID,
		// function code = data[1]
		StartAddress: binary.BigEndian.Uint16(data[2:4]),
		CoilCount:    coilCount,
		Data:         coilsData,
	}, nil
}

// FunctionCode returns function code of this request
func (r WriteMultipleCoilsRequestRTU) FunctionCode() uint8 {
	return FunctionWriteMultipleCoils
}

// Bytes returns WriteMultipleCoilsRequestRTU packet as bytes form
func (r WriteMultipleCoilsRequestRTU) Bytes() []byte {
	dataLen := len(r.Data)
	result := make([]byte, 7+dataLen+2)
	result[0] = r.UnitID
	result[1] = FunctionWriteMultipleCoils
	binary.BigEndian.PutUint16(result[2:4], r.StartAddress)
	binary.BigEndian.PutUint16(result[4:6], r.CoilCount)
	result[6] = uint8(dataLen)
	copy(result[7:], r.Data)
	putCRC16(result)
	return result
}

// CoilsToBytes converts slice of coil states (as bool values) to byte slice.
func CoilsToBytes(coils []bool) []byte {
	cLen := len(coils)
	cnt := cLen / 8
	if cLen%8 != 0 {
		cnt++
	}
	result := make([]byte, cnt)
	for i := 0; i < cLen; i++ {
		if coils[i] {
			result[i/8] |= 1 << (i % 8)
		}
	}
	return result
}
