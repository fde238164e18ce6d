package packet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorResponseRTU_Bytes(t *testing.T) {
	var testCases = []struct {
		name   string
		given  ErrorResponseRTU
		expect []byte
	}{
		{
			name:   "ok, illegal data address",
			given:  ErrorResponseRTU{UnitID: 0x12, Function: 0x03, Code: ErrIllegalDataAddress},
			expect: []byte{0x12, 0x83, 0x02, 0x31, 0x34},
		},
		{
			name:   "ok, illegal function for unknown function code",
			given:  ErrorResponseRTU{UnitID: 0x03, Function: 0x42, Code: ErrIllegalFunction},
			expect: []byte{0x03, 0xC2, 0x01, 0x11, 0x60},
		},
		{
			name:   "ok, illegal data value",
			given:  ErrorResponseRTU{UnitID: 0x11, Function: 0x03, Code: ErrIllegalDataValue},
			expect: []byte{0x11, 0x83, 0x03, 0x00, 0xf4},
		},
		{
			name:   "ok, server failure",
			given:  ErrorResponseRTU{UnitID: 0x11, Function: 0x03, Code: ErrServerFailure},
			expect: []byte{0x11, 0x83, 0x04, 0x41, 0x36},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, tc.given.Bytes())
		})
	}
}

func TestErrorResponseRTU_Error(t *testing.T) {
	var testCases = []struct {
		name   string
		given  uint8
		expect string
	}{
		{name: "ok, illegal function", given: ErrIllegalFunction, expect: "Illegal function"},
		{name: "ok, illegal data address", given: ErrIllegalDataAddress, expect: "Illegal data address"},
		{name: "ok, illegal data value", given: ErrIllegalDataValue, expect: "Illegal data value"},
		{name: "ok, server failure", given: ErrServerFailure, expect: "Server failure"},
		{name: "ok, acknowledge", given: ErrAcknowledge, expect: "Acknowledge"},
		{name: "ok, server busy", given: ErrServerBusy, expect: "Server busy"},
		{name: "ok, memory parity error", given: ErrMemoryParityError, expect: "Memory parity error"},
		{name: "ok, gateway path unavailable", given: ErrGatewayPathUnavailable, expect: "Gateway path unavailable"},
		{name: "ok, gateway target", given: ErrGatewayTargetedDeviceResponse, expect: "Gateway targeted device failed to respond"},
		{name: "ok, unknown code", given: 200, expect: "Unknown error code: 200"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ErrorResponseRTU{UnitID: 0x01, Function: 0x03, Code: tc.given}
			assert.Equal(t, tc.expect, err.Error())
		})
	}
}

func TestNewErrorParseRTU(t *testing.T) {
	err := NewErrorParseRTU(ErrIllegalDataValue, "invalid quantity")

	assert.Equal(t, "invalid quantity", err.Error())
	assert.Equal(t, uint8(ErrIllegalDataValue), err.Packet.Code)

	err.Packet.UnitID = 0x11
	err.Packet.Function = FunctionReadHoldingRegisters
	assert.Equal(t, []byte{0x11, 0x83, 0x03, 0x00, 0xf4}, err.Bytes())
	assert.Equal(t, uint8(0x03), err.Packet.FunctionCode())
}
