package packet

import (
	"encoding/binary"
	"fmt"
)

// WriteMultipleRegistersRequestRTU is RTU Request for Write Multiple Registers (FC=16)
//
// Example packet: 0x11 0x10 0x00 0x01 0x00 0x02 0x04 0x00 0x0A 0x01 0x02 0xc6 0xf0
// 0x11 - unit id (0)
// 0x10 - function code (1)
// 0x00 0x01 - start address (2,3)
// 0x00 0x02 - count of registers to write (4,5)
// 0x04 - registers byte count (6)
// 0x00 0x0A 0x01 0x02 - registers data (7, ...)
// 0xc6 0xf0 - CRC16 (n-2,n-1)
type WriteMultipleRegistersRequestRTU struct {
	UnitID        uint8
	StartAddress  uint16
	RegisterCount uint16
	Data          []byte
}

// NewWriteMultipleRegistersRequestRTU creates new instance of Write Multiple Registers RTU request
func NewWriteMultipleRegistersRequestRTU(unitID uint8, startAddress uint16, data []byte) (*WriteMultipleRegistersRequestRTU, error) {
	dataLen := len(data)
	registerCount := dataLen / 2
	if dataLen%2 != 0 || registerCount == 0 || registerCount > int(MaxRegistersInWrite) {
		return nil, fmt.Errorf("data length must be even number of bytes for 1 to 123 registers: %v", dataLen)
	}

	return &WriteMultipleRegistersRequestRTU{
		UnitID: unitID,
		// function code is added by Bytes()
		StartAddress:  startAddress,
		RegisterCount: uint16(registerCount),
		Data:          data,
	}, nil
}

// ParseWriteMultipleRegistersRequestRTU parses given bytes into WriteMultipleRegistersRequestRTU. Does not check CRC.
func ParseWriteMultipleRegistersRequestRTU(data []byte) (*WriteMultipleRegistersRequestRTU, error) {
	dLen := len(data)
	if dLen < 7 {
		return nil, fmt.Errorf("%w: invalid Write Multiple Registers request length: %v", ErrInvalidFrame, dLen)
	}
	unitID := data[0]
	registerCount := binary.BigEndian.Uint16(data[4:6])
	registerBytesCount := data[6]
	if registerCount == 0 || registerCount > MaxRegistersInWrite || // 0x0001 to 0x007b
		int(registerBytesCount) != 2*int(registerCount) {
		tmpErr := NewErrorParseRTU(ErrIllegalDataValue, "invalid register count or byte count")
		tmpErr.Packet.UnitID = unitID
		tmpErr.Packet.Function = FunctionWriteMultipleRegisters
		return nil, tmpErr
	}
	expectedLen := 7 + int(registerBytesCount)
	if dLen != expectedLen && dLen != expectedLen+2 { // without crc and with crc
		return nil, fmt.Errorf("%w: write multiple registers data length does not match byte count", ErrInvalidFrame)
	}
	registersData := make([]byte, registerBytesCount)
	copy(registersData, data[7:7+registerBytesCount])
	return &WriteMultipleRegistersRequestRTU{
		UnitID: unitID,
		// function code = data[1]
		StartAddress:  binary.BigEndian.Uint16(data[2:4]),
		RegisterCount: registerCount,
		Data:          registersData,
	}, nil
}

// FunctionCode returns function code of this request
func (r WriteMultipleRegistersRequestRTU) FunctionCode() uint8 {
	return FunctionWriteMultipleRegisters
}

// Bytes returns WriteMultipleRegistersRequestRTU packet as bytes form
func (r WriteMultipleRegistersRequestRTU) Bytes() []byte {
	dataLen := len(r.Data)
	result := make([]byte, 7+dataLen+2)
	result[0] = r.UnitID
	result[1] = FunctionWriteMultipleRegisters
	binary.BigEndian.PutUint16(result[2:4], r.StartAddress)
	binary.BigEndian.PutUint16(result[4:6], r.RegisterCount)
	result[6] = uint8(dataLen)
	copy(result[7:], r.Data)
	putCRC16(result)
	return result
}
