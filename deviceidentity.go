package modbus

import (
	"errors"
	"fmt"

	"github.com/aldas/go-modbus-slave/packet"
)

// Device identification object ids as per `MODBUS Application Protocol Specification V1.1b3`,
// section 6.21. Objects 0x00-0x02 are mandatory "basic" category, 0x03-0x06 are optional
// "regular" category. Extended objects (0x80-0xFF) are not supported.
const (
	// DeviceIDObjectVendorName is id of mandatory VendorName object
	DeviceIDObjectVendorName = uint8(0x00)
	// DeviceIDObjectProductCode is id of mandatory ProductCode object
	DeviceIDObjectProductCode = uint8(0x01)
	// DeviceIDObjectMajorMinorRevision is id of mandatory MajorMinorRevision object
	DeviceIDObjectMajorMinorRevision = uint8(0x02)
	// DeviceIDObjectVendorURL is id of optional VendorUrl object
	DeviceIDObjectVendorURL = uint8(0x03)
	// DeviceIDObjectProductName is id of optional ProductName object
	DeviceIDObjectProductName = uint8(0x04)
	// DeviceIDObjectModelName is id of optional ModelName object
	DeviceIDObjectModelName = uint8(0x05)
	// DeviceIDObjectUserApplicationName is id of optional UserApplicationName object
	DeviceIDObjectUserApplicationName = uint8(0x06)
)

// maxObjectValueLength is longest object value that still fits into single response together
// with its 2 byte id+length prefix
const maxObjectValueLength = packet.MaxObjectBytesInResponse - 2

// DeviceIdentity is set of identification strings the server reports through Read Device
// Identification (FC43/14). VendorName, ProductCode and MajorMinorRevision are mandatory,
// the rest are optional.
type DeviceIdentity struct {
	VendorName          string
	ProductCode         string
	MajorMinorRevision  string
	VendorURL           string
	ProductName         string
	ModelName           string
	UserApplicationName string
}

func (d DeviceIdentity) objects() []packet.DeviceIdentificationObject {
	values := []string{
		d.VendorName,
		d.ProductCode,
		d.MajorMinorRevision,
		d.VendorURL,
		d.ProductName,
		d.ModelName,
		d.UserApplicationName,
	}
	last := int(DeviceIDObjectMajorMinorRevision)
	for i, v := range values {
		if i > last && v != "" {
			last = i
		}
	}
	objects := make([]packet.DeviceIdentificationObject, 0, last+1)
	for i := 0; i <= last; i++ {
		objects = append(objects, packet.DeviceIdentificationObject{
			ID:    uint8(i),
			Value: []byte(values[i]),
		})
	}
	return objects
}

func (d DeviceIdentity) conformity() uint8 {
	level := packet.ConformityLevelBasicStream
	if d.VendorURL != "" || d.ProductName != "" || d.ModelName != "" || d.UserApplicationName != "" {
		level = packet.ConformityLevelRegularStream
	}
	// individual object access is always supported in addition to stream access
	return level | packet.ConformityLevelIndividualBitmask
}

// RegisterDeviceIdentity registers device identification to be served through Read Device
// Identification requests. Identity missing any of the three mandatory basic objects is rejected.
func (s *Slave) RegisterDeviceIdentity(identity DeviceIdentity) error {
	if identity.VendorName == "" || identity.ProductCode == "" || identity.MajorMinorRevision == "" {
		return errors.New("device identity must have VendorName, ProductCode and MajorMinorRevision")
	}
	objects := identity.objects()
	for _, o := range objects {
		if len(o.Value) > maxObjectValueLength {
			return fmt.Errorf("device identity object %v value is too long: %v", o.ID, len(o.Value))
		}
	}
	s.identity = objects
	s.conformityLevel = identity.conformity()
	return nil
}

func (s *Slave) handleReadDeviceIdentification(req *packet.ReadDeviceIdentificationRequestRTU) packet.Response {
	if s.identity == nil {
		return s.exception(packet.FunctionReadDeviceIdentification, packet.ErrIllegalDataValue)
	}
	lastObjectID := len(s.identity) - 1
	if int(req.ObjectID) > lastObjectID {
		return s.exception(packet.FunctionReadDeviceIdentification, packet.ErrIllegalDataAddress)
	}

	resp := &packet.ReadDeviceIdentificationResponseRTU{
		UnitID:           s.address,
		ReadDeviceIDCode: req.ReadDeviceIDCode,
		ConformityLevel:  s.conformityLevel,
		MoreFollows:      packet.NoMoreFollows,
		NextObjectID:     0,
	}
	if req.ReadDeviceIDCode == packet.ReadDeviceIDCodeIndividual {
		resp.Objects = []packet.DeviceIdentificationObject{s.identity[req.ObjectID]}
		return resp
	}

	if req.ReadDeviceIDCode == packet.ReadDeviceIDCodeBasic {
		lastObjectID = int(DeviceIDObjectMajorMinorRevision)
	}
	// server is stateless between fragments, master echoes NextObjectID back in follow-up request
	packedBytes := 0
	for i := int(req.ObjectID); i <= lastObjectID; i++ {
		size := 2 + len(s.identity[i].Value)
		if packedBytes+size > packet.MaxObjectBytesInResponse {
			resp.MoreFollows = packet.MoreFollows
			resp.NextObjectID = uint8(i)
			break
		}
		resp.Objects = append(resp.Objects, s.identity[i])
		packedBytes += size
	}
	return resp
}
