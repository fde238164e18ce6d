package packet

import (
	"errors"
)

const (
	// ConformityLevelBasicStream means objects 0x00-0x02 are implemented
	ConformityLevelBasicStream = uint8(0x01)
	// ConformityLevelRegularStream means some of objects 0x03-0x06 are implemented in addition to basic ones
	ConformityLevelRegularStream = uint8(0x02)
	// ConformityLevelExtendedStream means some of objects 0x80-0xFF are implemented in addition to regular ones
	ConformityLevelExtendedStream = uint8(0x03)
	// ConformityLevelIndividualBitmask is OR-ed into conformity level when server supports individual
	// object access in addition to stream access
	ConformityLevelIndividualBitmask = uint8(0x80)

	// MoreFollows indicates that response did not fit all requested objects and transfer continues
	// from NextObjectID
	MoreFollows = uint8(0xFF)
	// NoMoreFollows indicates that response contains all remaining requested objects
	NoMoreFollows = uint8(0x00)

	// MaxObjectBytesInResponse is maximum size of packed `[id][length][value]` object list in single
	// response. RTU frame maximum of 256 bytes leaves 252 bytes of PDU after server address, function
	// code and CRC, of which 6 bytes are taken by the device identification response header.
	MaxObjectBytesInResponse = 246
)

// DeviceIdentificationObject is single device identification object transferred by FC43/14 responses
type DeviceIdentificationObject struct {
	ID    uint8
	Value []byte
}

// ReadDeviceIdentificationResponseRTU is RTU Response for Read Device Identification (FC=43, MEI type=14)
//
// Example packet: 0x10 0x2B 0x0E 0x01 0x81 0x00 0x00 0x01 0x00 0x07 0x41 0x63 0x6D 0x65 0x20 0x43 0x6F 0xdb 0xb8
// 0x10 - unit id (0)
// 0x2B - function code (1)
// 0x0E - MEI type (2)
// 0x01 - read device id code (3)
// 0x81 - conformity level (4)
// 0x00 - more follows (5)
// 0x00 - next object id (6)
// 0x01 - number of objects (7)
// 0x00 0x07 0x41 ... - object id, object length, object value (8, ...)
// 0xdb 0xb8 - CRC16 (n-2,n-1)
type ReadDeviceIdentificationResponseRTU struct {
	UnitID           uint8
	ReadDeviceIDCode uint8
	ConformityLevel  uint8
	MoreFollows      uint8
	NextObjectID     uint8
	Objects          []DeviceIdentificationObject
}

// ParseReadDeviceIdentificationResponseRTU parses given bytes into ReadDeviceIdentificationResponseRTU.
// Does not check CRC.
func ParseReadDeviceIdentificationResponseRTU(data []byte) (*ReadDeviceIdentificationResponseRTU, error) {
	dLen := len(data)
	if dLen < 8+2 {
		return nil, errors.New("received data length too short to be valid packet")
	}
	if data[2] != MEITypeReadDeviceIdentification {
		return nil, errors.New("received MEI type in packet is not 0x0e")
	}
	objectCount := int(data[7])
	objects := make([]DeviceIdentificationObject, 0, objectCount)
	offset := 8
	for i := 0; i < objectCount; i++ {
		if offset+2 > dLen-2 {
			return nil, errors.New("received data length does not match object count in packet")
		}
		id := data[offset]
		valueLen := int(data[offset+1])
		offset += 2
		if offset+valueLen > dLen-2 {
			return nil, errors.New("received data length does not match object length in packet")
		}
		objects = append(objects, DeviceIdentificationObject{
			ID:    id,
			Value: data[offset : offset+valueLen],
		})
		offset += valueLen
	}
	return &ReadDeviceIdentificationResponseRTU{
		UnitID: data[0],
		// function code = data[1], MEI type = data[2]
		ReadDeviceIDCode: data[3],
		ConformityLevel:  data[4],
		MoreFollows:      data[5],
		NextObjectID:     data[6],
		Objects:          objects,
	}, nil
}

// FunctionCode returns function code of this response
func (r ReadDeviceIdentificationResponseRTU) FunctionCode() uint8 {
	return FunctionReadDeviceIdentification
}

// Bytes returns ReadDeviceIdentificationResponseRTU packet as bytes form
func (r ReadDeviceIdentificationResponseRTU) Bytes() []byte {
	objectsLen := 0
	for _, o := range r.Objects {
		objectsLen += 2 + len(o.Value)
	}
	result := make([]byte, 8+objectsLen+2)
	result[0] = r.UnitID
	result[1] = FunctionReadDeviceIdentification
	result[2] = MEITypeReadDeviceIdentification
	result[3] = r.ReadDeviceIDCode
	result[4] = r.ConformityLevel
	result[5] = r.MoreFollows
	result[6] = r.NextObjectID
	result[7] = uint8(len(r.Objects))
	offset := 8
	for _, o := range r.Objects {
		result[offset] = o.ID
		result[offset+1] = uint8(len(o.Value))
		offset += 2
		copy(result[offset:], o.Value)
		offset += len(o.Value)
	}
	putCRC16(result)
	return result
}
