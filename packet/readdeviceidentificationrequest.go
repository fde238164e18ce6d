package packet

import (
	"fmt"
)

const (
	// ReadDeviceIDCodeBasic requests stream access to the basic identification objects (0x00-0x02)
	ReadDeviceIDCodeBasic = uint8(1)
	// ReadDeviceIDCodeRegular requests stream access to the regular identification objects (0x00-0x06)
	ReadDeviceIDCodeRegular = uint8(2)
	// ReadDeviceIDCodeExtended requests stream access to the extended identification objects (0x00-0xFF)
	ReadDeviceIDCodeExtended = uint8(3)
	// ReadDeviceIDCodeIndividual requests individual access to one specific identification object
	ReadDeviceIDCodeIndividual = uint8(4)
)

// ReadDeviceIdentificationRequestRTU is RTU Request for Read Device Identification (FC=43, MEI type=14)
//
// Example packet: 0x10 0x2B 0x0E 0x01 0x00 0x8c 0x74
// 0x10 - unit id (0)
// 0x2B - function code (1)
// 0x0E - MEI type (2)
// 0x01 - read device id code (3)
// 0x00 - object id (4)
// 0x8c 0x74 - CRC16 (5,6)
type ReadDeviceIdentificationRequestRTU struct {
	UnitID           uint8
	ReadDeviceIDCode uint8
	ObjectID         uint8
}

// NewReadDeviceIdentificationRequestRTU creates new instance of Read Device Identification RTU request
func NewReadDeviceIdentificationRequestRTU(unitID uint8, readDeviceIDCode uint8, objectID uint8) (*ReadDeviceIdentificationRequestRTU, error) {
	if readDeviceIDCode < ReadDeviceIDCodeBasic || readDeviceIDCode > ReadDeviceIDCodeIndividual {
		return nil, fmt.Errorf("read device id code is out of range (1-4): %v", readDeviceIDCode)
	}

	return &ReadDeviceIdentificationRequestRTU{
		UnitID: unitID,
		// function code and MEI type are added by Bytes()
		ReadDeviceIDCode: readDeviceIDCode,
		ObjectID:         objectID,
	}, nil
}

// ParseReadDeviceIdentificationRequestRTU parses given bytes into ReadDeviceIdentificationRequestRTU.
// Does not check CRC. Frames with MEI type other than 0x0e result in ErrUnknownMEIType and must be
// dropped without reply.
func ParseReadDeviceIdentificationRequestRTU(data []byte) (*ReadDeviceIdentificationRequestRTU, error) {
	dLen := len(data)
	if dLen != 7 && dLen != 5 { // with or without CRC bytes
		return nil, fmt.Errorf("%w: invalid Read Device Identification request length: %v", ErrInvalidFrame, dLen)
	}
	unitID := data[0]
	if data[2] != MEITypeReadDeviceIdentification {
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownMEIType, data[2])
	}
	readDeviceIDCode := data[3]
	if readDeviceIDCode < ReadDeviceIDCodeBasic || readDeviceIDCode > ReadDeviceIDCodeIndividual {
		tmpErr := NewErrorParseRTU(ErrIllegalDataValue, "invalid read device id code. valid range 1..4")
		tmpErr.Packet.UnitID = unitID
		tmpErr.Packet.Function = FunctionReadDeviceIdentification
		return nil, tmpErr
	}
	return &ReadDeviceIdentificationRequestRTU{
		UnitID: unitID,
		// function code = data[1], MEI type = data[2]
		ReadDeviceIDCode: readDeviceIDCode,
		ObjectID:         data[4],
	}, nil
}

// FunctionCode returns function code of this request
func (r ReadDeviceIdentificationRequestRTU) FunctionCode() uint8 {
	return FunctionReadDeviceIdentification
}

// Bytes returns ReadDeviceIdentificationRequestRTU packet as bytes form
func (r ReadDeviceIdentificationRequestRTU) Bytes() []byte {
	result := make([]byte, 5+2)
	result[0] = r.UnitID
	result[1] = FunctionReadDeviceIdentification
	result[2] = MEITypeReadDeviceIdentification
	result[3] = r.ReadDeviceIDCode
	result[4] = r.ObjectID
	putCRC16(result)
	return result
}
