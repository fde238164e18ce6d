package packet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteSingleCoilResponseRTU_Bytes(t *testing.T) {
	given := WriteSingleCoilResponseRTU{UnitID: 0x11, Address: 0xac, CoilState: true}

	assert.Equal(t, []byte{0x11, 0x05, 0x00, 0xAC, 0xFF, 0x00, 0x4e, 0x8b}, given.Bytes())
	assert.Equal(t, uint8(0x05), given.FunctionCode())
}

func TestParseWriteSingleCoilResponseRTU(t *testing.T) {
	var testCases = []struct {
		name        string
		when        []byte
		expect      *WriteSingleCoilResponseRTU
		expectError string
	}{
		{
			name:   "ok",
			when:   []byte{0x11, 0x05, 0x00, 0xAC, 0xFF, 0x00, 0x4e, 0x8b},
			expect: &WriteSingleCoilResponseRTU{UnitID: 0x11, Address: 0xac, CoilState: true},
		},
		{
			name:        "nok, invalid length",
			when:        []byte{0x11, 0x05, 0x00, 0xAC, 0xFF, 0x00, 0x4e},
			expectError: "received data length does not match write single coil response length",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			packet, err := ParseWriteSingleCoilResponseRTU(tc.when)

			assert.Equal(t, tc.expect, packet)
			if tc.expectError != "" {
				assert.EqualError(t, err, tc.expectError)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
