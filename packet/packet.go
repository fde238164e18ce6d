package packet

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	functionCodeErrorBitmask = uint8(128)

	// MinRTUFrameLength is shortest possible RTU frame: address + function code + CRC16
	MinRTUFrameLength = 4
	// MaxRTUFrameLength is maximum length of RTU frame as per `Modbus over Serial Line` specification
	MaxRTUFrameLength = 256

	// MaxRegistersInRead is maximum quantity of registers that single read request (fc03/fc04) can target
	MaxRegistersInRead = uint16(125)
	// MaxCoilsInRead is maximum quantity of discretes/coils that single read request (fc01/fc02) can target
	MaxCoilsInRead = uint16(2000) // 2000/8=250 bytes
	// MaxCoilsInWrite is maximum quantity of coils that single write request (fc15) can carry
	MaxCoilsInWrite = uint16(1968) // 1968/8=246 bytes
	// MaxRegistersInWrite is maximum quantity of registers that single write request (fc16) can carry
	MaxRegistersInWrite = uint16(123)

	// BroadcastAddress is server address that every server accepts but never responds to
	BroadcastAddress = uint8(0)
	// MaxServerAddress is last assignable server address. Addresses 248-255 are reserved.
	MaxServerAddress = uint8(247)
)

const (
	// FunctionReadCoils is function code for Read Coils (FC01)
	FunctionReadCoils = uint8(1) // 0x01
	// FunctionReadDiscreteInputs is function code for Read Discrete Inputs (FC02)
	FunctionReadDiscreteInputs = uint8(2) // 0x02
	// FunctionReadHoldingRegisters is function code for Read Holding Registers (FC03)
	FunctionReadHoldingRegisters = uint8(3) // 0x03
	// FunctionReadInputRegisters is function code for Read Input Registers (FC04)
	FunctionReadInputRegisters = uint8(4) // 0x04
	// FunctionWriteSingleCoil is function code for Write Single Coil (FC05)
	FunctionWriteSingleCoil = uint8(5) // 0x05
	// FunctionWriteSingleRegister is function code for Write Single Register (FC06)
	FunctionWriteSingleRegister = uint8(6) // 0x06
	// FunctionWriteMultipleCoils is function code for Write Multiple Coils (FC15)
	FunctionWriteMultipleCoils = uint8(15) // 0x0f
	// FunctionWriteMultipleRegisters is function code for Write Multiple Registers (FC16)
	FunctionWriteMultipleRegisters = uint8(16) // 0x10
	// FunctionReadDeviceIdentification is function code of the Modbus Encapsulated Interface
	// transporting Read Device Identification (FC43)
	FunctionReadDeviceIdentification = uint8(43) // 0x2b
)

// MEITypeReadDeviceIdentification is MEI type for Read Device Identification requests inside FC43
const MEITypeReadDeviceIdentification = uint8(14) // 0x0e

var (
	// ErrInvalidCRC is returned when frame CRC does not match frame bytes
	ErrInvalidCRC = errors.New("frame cyclic redundancy check does not match frame bytes")
	// ErrFrameTooShort is returned when received data is shorter than minimal RTU frame
	ErrFrameTooShort = errors.New("data is too short to be a Modbus RTU frame")
	// ErrFrameTooLong is returned when received data exceeds maximum RTU frame size
	ErrFrameTooLong = errors.New("data exceeds maximum Modbus RTU frame size")
	// ErrInvalidFrame is returned when frame bytes are structurally inconsistent with their
	// function code, for example a truncated write payload. Such frames are dropped without reply.
	ErrInvalidFrame = errors.New("invalid Modbus RTU frame")
	// ErrUnknownMEIType is returned when FC43 frame carries MEI type other than 0x0e.
	// Such frames are dropped without reply.
	ErrUnknownMEIType = errors.New("unknown MEI type in Read Device Identification frame")
)

// ValidateRTUFrame checks that data is a plausible RTU frame: length within bounds and
// trailing CRC16 (transmitted low byte first) matching the preceding bytes
func ValidateRTUFrame(data []byte) error {
	dLen := len(data)
	if dLen < MinRTUFrameLength {
		return ErrFrameTooShort
	}
	if dLen > MaxRTUFrameLength {
		return ErrFrameTooLong
	}
	packetCRC := binary.LittleEndian.Uint16(data[dLen-2:])
	if packetCRC != CRC16(data[:dLen-2]) {
		return ErrInvalidCRC
	}
	return nil
}

// ParseRTURequest parses given RTU frame (with trailing CRC bytes) into typed request packet.
// CRC value is not re-checked here, use ValidateRTUFrame before parsing. Frames with unsupported
// function code result in ErrorParseRTU with ErrIllegalFunction code.
func ParseRTURequest(data []byte) (Request, error) {
	if len(data) < MinRTUFrameLength {
		return nil, ErrFrameTooShort
	}
	data = data[:len(data)-2] // trailing CRC is not part of the PDU
	functionCode := data[1]
	switch functionCode {
	case FunctionReadCoils: // 0x01
		return ParseReadCoilsRequestRTU(data)
	case FunctionReadDiscreteInputs: // 0x02
		return ParseReadDiscreteInputsRequestRTU(data)
	case FunctionReadHoldingRegisters: // 0x03
		return ParseReadHoldingRegistersRequestRTU(data)
	case FunctionReadInputRegisters: // 0x04
		return ParseReadInputRegistersRequestRTU(data)
	case FunctionWriteSingleCoil: // 0x05
		return ParseWriteSingleCoilRequestRTU(data)
	case FunctionWriteSingleRegister: // 0x06
		return ParseWriteSingleRegisterRequestRTU(data)
	case FunctionWriteMultipleCoils: // 0x0f
		return ParseWriteMultipleCoilsRequestRTU(data)
	case FunctionWriteMultipleRegisters: // 0x10
		return ParseWriteMultipleRegistersRequestRTU(data)
	case FunctionReadDeviceIdentification: // 0x2b
		return ParseReadDeviceIdentificationRequestRTU(data)
	default:
		tmpErr := NewErrorParseRTU(ErrIllegalFunction, fmt.Sprintf("unsupported function code: %v", functionCode))
		tmpErr.Packet.UnitID = data[0]
		tmpErr.Packet.Function = functionCode
		return nil, tmpErr
	}
}

func putReadRequestBytes(dst []byte, unitID uint8, functionCode uint8, startAddress uint16, quantity uint16) {
	dst[0] = unitID
	dst[1] = functionCode
	binary.BigEndian.PutUint16(dst[2:4], startAddress)
	binary.BigEndian.PutUint16(dst[4:6], quantity)
}

func putCRC16(frame []byte) {
	crc := CRC16(frame[:len(frame)-2])
	frame[len(frame)-2] = uint8(crc)
	frame[len(frame)-1] = uint8(crc >> 8)
}
