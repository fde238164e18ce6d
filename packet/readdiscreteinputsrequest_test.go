package packet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewReadDiscreteInputsRequestRTU(t *testing.T) {
	packet, err := NewReadDiscreteInputsRequestRTU(0x10, 0x6b, 3)

	assert.NoError(t, err)
	assert.Equal(t, &ReadDiscreteInputsRequestRTU{UnitID: 0x10, StartAddress: 0x6b, Quantity: 3}, packet)
	assert.Equal(t, []byte{0x10, 0x02, 0x00, 0x6B, 0x00, 0x03, 0x4a, 0x96}, packet.Bytes())
	assert.Equal(t, uint8(0x02), packet.FunctionCode())
	assert.Equal(t, 1, packet.InputByteLength())
}

func TestNewReadDiscreteInputsRequestRTU_invalidQuantity(t *testing.T) {
	packet, err := NewReadDiscreteInputsRequestRTU(0x10, 0x6b, 2001)

	assert.Nil(t, packet)
	assert.EqualError(t, err, "quantity is out of range (1-2000): 2001")
}

func TestParseReadDiscreteInputsRequestRTU(t *testing.T) {
	var testCases = []struct {
		name        string
		when        []byte
		expect      *ReadDiscreteInputsRequestRTU
		expectError error
	}{
		{
			name:   "ok",
			when:   []byte{0x10, 0x02, 0x00, 0x6B, 0x00, 0x03, 0x4a, 0x96},
			expect: &ReadDiscreteInputsRequestRTU{UnitID: 0x10, StartAddress: 0x6b, Quantity: 3},
		},
		{
			name:        "nok, invalid length",
			when:        []byte{0x10, 0x02, 0x00, 0x6B, 0x00, 0x03, 0x4a, 0x96, 0xFF},
			expectError: ErrInvalidFrame,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			packet, err := ParseReadDiscreteInputsRequestRTU(tc.when)

			assert.Equal(t, tc.expect, packet)
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseReadDiscreteInputsRequestRTU_invalidQuantity(t *testing.T) {
	packet, err := ParseReadDiscreteInputsRequestRTU([]byte{0x10, 0x02, 0x00, 0x6B, 0x00, 0x00})

	assert.Nil(t, packet)
	var target *ErrorParseRTU
	assert.ErrorAs(t, err, &target)
	assert.Equal(t, uint8(ErrIllegalDataValue), target.Packet.Code)
	assert.Equal(t, uint8(FunctionReadDiscreteInputs), target.Packet.Function)
}
