package packet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadHoldingRegistersResponseRTU_Bytes(t *testing.T) {
	given := ReadHoldingRegistersResponseRTU{
		UnitID: 0x11,
		Data:   []byte{0xAE, 0x41, 0x56, 0x52, 0x43, 0x40},
	}

	assert.Equal(t, []byte{0x11, 0x03, 0x06, 0xAE, 0x41, 0x56, 0x52, 0x43, 0x40, 0x49, 0xAD}, given.Bytes())
	assert.Equal(t, uint8(0x03), given.FunctionCode())
}

func TestParseReadHoldingRegistersResponseRTU(t *testing.T) {
	var testCases = []struct {
		name        string
		when        []byte
		expect      *ReadHoldingRegistersResponseRTU
		expectError string
	}{
		{
			name: "ok",
			when: []byte{0x11, 0x03, 0x06, 0xAE, 0x41, 0x56, 0x52, 0x43, 0x40, 0x49, 0xAD},
			expect: &ReadHoldingRegistersResponseRTU{
				UnitID: 0x11,
				Data:   []byte{0xAE, 0x41, 0x56, 0x52, 0x43, 0x40},
			},
		},
		{
			name:        "nok, too short",
			when:        []byte{0x11, 0x03, 0x06, 0xAE},
			expectError: "received data length too short to be valid packet",
		},
		{
			name:        "nok, odd byte count",
			when:        []byte{0x11, 0x03, 0x03, 0xAE, 0x41, 0x56, 0x49, 0xAD},
			expectError: "received data length does not match byte len in packet",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			packet, err := ParseReadHoldingRegistersResponseRTU(tc.when)

			assert.Equal(t, tc.expect, packet)
			if tc.expectError != "" {
				assert.EqualError(t, err, tc.expectError)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestReadHoldingRegistersResponseRTU_Register(t *testing.T) {
	given := ReadHoldingRegistersResponseRTU{
		UnitID: 0x11,
		Data:   []byte{0xAE, 0x41, 0x56, 0x52, 0x43, 0x40},
	}

	value, err := given.Register(0)
	assert.NoError(t, err)
	assert.Equal(t, uint16(0xAE41), value)

	value, err = given.Register(2)
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x4340), value)

	_, err = given.Register(3)
	assert.EqualError(t, err, "register index out of range")
}
