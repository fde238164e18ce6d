package modbus

import (
	"strings"
	"testing"

	"github.com/aldas/go-modbus-slave/packet"
	"github.com/stretchr/testify/assert"
)

func TestSlave_RegisterDeviceIdentity(t *testing.T) {
	var testCases = []struct {
		name         string
		whenIdentity DeviceIdentity
		expectError  string
	}{
		{
			name: "ok, basic objects only",
			whenIdentity: DeviceIdentity{
				VendorName:         "Acme Co",
				ProductCode:        "TH-22",
				MajorMinorRevision: "1.2.0",
			},
		},
		{
			name: "nok, missing vendor name",
			whenIdentity: DeviceIdentity{
				ProductCode:        "TH-22",
				MajorMinorRevision: "1.2.0",
			},
			expectError: "device identity must have VendorName, ProductCode and MajorMinorRevision",
		},
		{
			name: "nok, missing revision",
			whenIdentity: DeviceIdentity{
				VendorName:  "Acme Co",
				ProductCode: "TH-22",
			},
			expectError: "device identity must have VendorName, ProductCode and MajorMinorRevision",
		},
		{
			name: "nok, object value too long",
			whenIdentity: DeviceIdentity{
				VendorName:         "Acme Co",
				ProductCode:        strings.Repeat("x", 245),
				MajorMinorRevision: "1.2.0",
			},
			expectError: "device identity object 1 value is too long: 245",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			slave, _ := NewSlave(0x11, &mockHandler{})

			err := slave.RegisterDeviceIdentity(tc.whenIdentity)

			if tc.expectError != "" {
				assert.EqualError(t, err, tc.expectError)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDeviceIdentity_conformity(t *testing.T) {
	basic := DeviceIdentity{
		VendorName:         "Acme Co",
		ProductCode:        "TH-22",
		MajorMinorRevision: "1.2.0",
	}
	assert.Equal(t, uint8(0x81), basic.conformity())

	regular := basic
	regular.ProductName = "Thermo Hygrometer"
	assert.Equal(t, uint8(0x82), regular.conformity())
}

func TestDeviceIdentity_objects(t *testing.T) {
	identity := DeviceIdentity{
		VendorName:         "Acme Co",
		ProductCode:        "TH-22",
		MajorMinorRevision: "1.2.0",
		ModelName:          "TH",
	}

	objects := identity.objects()

	// objects run from 0 to last non-empty one, gaps are zero length values
	assert.Len(t, objects, 6)
	assert.Equal(t, []byte("Acme Co"), objects[0].Value)
	assert.Equal(t, []byte("1.2.0"), objects[2].Value)
	assert.Equal(t, []byte{}, objects[3].Value)
	assert.Equal(t, []byte("TH"), objects[5].Value)
	assert.Equal(t, uint8(5), objects[5].ID)
}

func registeredSlave(t *testing.T, identity DeviceIdentity) *Slave {
	slave, err := NewSlave(0x11, &mockHandler{})
	assert.NoError(t, err)
	assert.NoError(t, slave.RegisterDeviceIdentity(identity))
	return slave
}

func processAndParseDeviceID(t *testing.T, slave *Slave, frame []byte) *packet.ReadDeviceIdentificationResponseRTU {
	response, err := slave.ProcessMessage(frame)
	assert.NoError(t, err)
	assert.NoError(t, packet.ValidateRTUFrame(response))

	parsed, err := packet.ParseReadDeviceIdentificationResponseRTU(response)
	assert.NoError(t, err)
	return parsed
}

func TestSlave_ProcessMessage_deviceIdentification_basicStream(t *testing.T) {
	slave := registeredSlave(t, DeviceIdentity{
		VendorName:         "Acme Co",
		ProductCode:        "TH-22",
		MajorMinorRevision: "1.2.0",
	})

	parsed := processAndParseDeviceID(t, slave, []byte{0x11, 0x2B, 0x0E, 0x01, 0x00, 0xb1, 0xb4})

	assert.Equal(t, uint8(0x11), parsed.UnitID)
	assert.Equal(t, uint8(1), parsed.ReadDeviceIDCode)
	assert.Equal(t, uint8(0x81), parsed.ConformityLevel)
	assert.Equal(t, packet.NoMoreFollows, parsed.MoreFollows)
	assert.Equal(t, uint8(0), parsed.NextObjectID)
	assert.Equal(t, []packet.DeviceIdentificationObject{
		{ID: 0, Value: []byte("Acme Co")},
		{ID: 1, Value: []byte("TH-22")},
		{ID: 2, Value: []byte("1.2.0")},
	}, parsed.Objects)
}

func TestSlave_ProcessMessage_deviceIdentification_regularStream(t *testing.T) {
	slave := registeredSlave(t, DeviceIdentity{
		VendorName:         "Acme Co",
		ProductCode:        "TH-22",
		MajorMinorRevision: "1.2.0",
		ProductName:        "Thermo Hygrometer",
	})

	parsed := processAndParseDeviceID(t, slave, []byte{0x11, 0x2B, 0x0E, 0x02, 0x00, 0xb1, 0x44})

	assert.Equal(t, uint8(0x82), parsed.ConformityLevel)
	assert.Len(t, parsed.Objects, 5)
	assert.Equal(t, []byte("Thermo Hygrometer"), parsed.Objects[4].Value)
	// basic stream request still returns only objects 0-2
	parsedBasic := processAndParseDeviceID(t, slave, []byte{0x11, 0x2B, 0x0E, 0x01, 0x00, 0xb1, 0xb4})
	assert.Len(t, parsedBasic.Objects, 3)
}

func TestSlave_ProcessMessage_deviceIdentification_individualAccess(t *testing.T) {
	slave := registeredSlave(t, DeviceIdentity{
		VendorName:         "Acme Co",
		ProductCode:        "TH-22",
		MajorMinorRevision: "1.2.0",
	})

	parsed := processAndParseDeviceID(t, slave, []byte{0x11, 0x2B, 0x0E, 0x04, 0x01, 0x73, 0x24})

	assert.Equal(t, packet.NoMoreFollows, parsed.MoreFollows)
	assert.Equal(t, []packet.DeviceIdentificationObject{
		{ID: 1, Value: []byte("TH-22")},
	}, parsed.Objects)
}

func TestSlave_ProcessMessage_deviceIdentification_fragmentation(t *testing.T) {
	// four long regular objects can not fit single response, transfer continues from NextObjectID
	slave := registeredSlave(t, DeviceIdentity{
		VendorName:          "Acme Co",
		ProductCode:         "TH-22",
		MajorMinorRevision:  "1.2.0",
		VendorURL:           strings.Repeat("u", 120),
		ProductName:         strings.Repeat("p", 120),
		ModelName:           strings.Repeat("m", 120),
		UserApplicationName: strings.Repeat("a", 120),
	})

	first := processAndParseDeviceID(t, slave, []byte{0x11, 0x2B, 0x0E, 0x02, 0x00, 0xb1, 0x44})

	assert.Equal(t, packet.MoreFollows, first.MoreFollows)
	// objects 0-3 take 9+7+7+122=145 bytes, object 4 (122 bytes) does not fit anymore
	assert.Equal(t, uint8(4), first.NextObjectID)
	assert.Len(t, first.Objects, 4)

	// master carries NextObjectID back and server resumes packing from there
	continuation := packet.ReadDeviceIdentificationRequestRTU{
		UnitID:           0x11,
		ReadDeviceIDCode: packet.ReadDeviceIDCodeRegular,
		ObjectID:         first.NextObjectID,
	}
	second := processAndParseDeviceID(t, slave, continuation.Bytes())

	// objects 4 and 5 take 122+122=244 bytes, object 6 still does not fit
	assert.Equal(t, packet.MoreFollows, second.MoreFollows)
	assert.Equal(t, uint8(6), second.NextObjectID)
	assert.Len(t, second.Objects, 2)
	assert.Equal(t, uint8(4), second.Objects[0].ID)
	assert.Equal(t, uint8(5), second.Objects[1].ID)

	continuation.ObjectID = second.NextObjectID
	third := processAndParseDeviceID(t, slave, continuation.Bytes())

	assert.Equal(t, packet.NoMoreFollows, third.MoreFollows)
	assert.Len(t, third.Objects, 1)
	assert.Equal(t, uint8(6), third.Objects[0].ID)
}

func TestSlave_ProcessMessage_deviceIdentification_exceptions(t *testing.T) {
	t.Run("nok, no identity registered", func(t *testing.T) {
		slave, _ := NewSlave(0x11, &mockHandler{})

		response, err := slave.ProcessMessage([]byte{0x11, 0x2B, 0x0E, 0x01, 0x00, 0xb1, 0xb4})

		assert.NoError(t, err)
		assert.Equal(t, []byte{0x11, 0xAB, 0x03, 0x1e, 0xf4}, response)
	})

	t.Run("nok, invalid read device id code", func(t *testing.T) {
		slave := registeredSlave(t, DeviceIdentity{
			VendorName:         "Acme Co",
			ProductCode:        "TH-22",
			MajorMinorRevision: "1.2.0",
		})

		response, err := slave.ProcessMessage([]byte{0x11, 0x2B, 0x0E, 0x05, 0x00, 0xb3, 0x74})

		assert.NoError(t, err)
		assert.Equal(t, []byte{0x11, 0xAB, 0x03, 0x1e, 0xf4}, response)
	})

	t.Run("nok, object id past last implemented object", func(t *testing.T) {
		slave := registeredSlave(t, DeviceIdentity{
			VendorName:         "Acme Co",
			ProductCode:        "TH-22",
			MajorMinorRevision: "1.2.0",
		})

		response, err := slave.ProcessMessage([]byte{0x11, 0x2B, 0x0E, 0x01, 0x05, 0x71, 0xb7})

		assert.NoError(t, err)
		assert.Equal(t, []byte{0x11, 0xAB, 0x02, 0xdf, 0x34}, response)
	})

	t.Run("nok, unknown MEI type is dropped without reply", func(t *testing.T) {
		slave := registeredSlave(t, DeviceIdentity{
			VendorName:         "Acme Co",
			ProductCode:        "TH-22",
			MajorMinorRevision: "1.2.0",
		})

		response, err := slave.ProcessMessage([]byte{0x11, 0x2B, 0x0D, 0x01, 0x00, 0x41, 0xb4})

		assert.ErrorIs(t, err, packet.ErrUnknownMEIType)
		assert.Nil(t, response)
	})
}
