package modbus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterNumber(t *testing.T) {
	var testCases = []struct {
		name             string
		whenFunctionCode uint8
		whenAddress      uint16
		expect           uint32
	}{
		{name: "ok, read coils", whenFunctionCode: 1, whenAddress: 0, expect: 1},
		{name: "ok, write single coil", whenFunctionCode: 5, whenAddress: 9998, expect: 9999},
		{name: "ok, write multiple coils", whenFunctionCode: 15, whenAddress: 100, expect: 101},
		{name: "ok, read discrete inputs", whenFunctionCode: 2, whenAddress: 0, expect: 10001},
		{name: "ok, read discrete inputs end", whenFunctionCode: 2, whenAddress: 9998, expect: 19999},
		{name: "ok, read input registers", whenFunctionCode: 4, whenAddress: 200, expect: 30201},
		{name: "ok, read holding registers", whenFunctionCode: 3, whenAddress: 0x6b, expect: 40108},
		{name: "ok, write single register", whenFunctionCode: 6, whenAddress: 0, expect: 40001},
		{name: "ok, write multiple registers", whenFunctionCode: 16, whenAddress: 9998, expect: 49999},
		{name: "ok, no register space for device identification", whenFunctionCode: 43, whenAddress: 0, expect: 0},
		{name: "ok, no register space for unknown code", whenFunctionCode: 66, whenAddress: 0, expect: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, RegisterNumber(tc.whenFunctionCode, tc.whenAddress))
		})
	}
}

func TestTransaction_registerAccess(t *testing.T) {
	tx := Transaction{}

	tx.SetRegister(0, 0xAE41)
	tx.SetRegister(124, 0xCAFE)

	assert.Equal(t, uint16(0xAE41), tx.Register(0))
	assert.Equal(t, uint16(0xCAFE), tx.Register(124))
	assert.Equal(t, uint8(0xAE), tx.data[0])
	assert.Equal(t, uint8(0x41), tx.data[1])

	// out of range access does nothing
	tx.SetRegister(125, 0xFFFF)
	tx.SetRegister(-1, 0xFFFF)
	assert.Equal(t, uint16(0), tx.Register(125))
	assert.Equal(t, uint16(0), tx.Register(-1))
}

func TestTransaction_coilAccess(t *testing.T) {
	tx := Transaction{}

	tx.SetCoil(0, true)
	tx.SetCoil(9, true)
	tx.SetCoil(1999, true)

	assert.True(t, tx.Coil(0))
	assert.False(t, tx.Coil(1))
	assert.True(t, tx.Coil(9))
	assert.True(t, tx.Coil(1999))
	assert.Equal(t, uint8(0x01), tx.data[0])
	assert.Equal(t, uint8(0x02), tx.data[1])

	tx.SetCoil(9, false)
	assert.False(t, tx.Coil(9))

	// out of range access does nothing
	tx.SetCoil(2000, true)
	tx.SetCoil(-1, true)
	assert.False(t, tx.Coil(2000))
	assert.False(t, tx.Coil(-1))
}
