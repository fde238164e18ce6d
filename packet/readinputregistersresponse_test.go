package packet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadInputRegistersResponseRTU_Bytes(t *testing.T) {
	given := ReadInputRegistersResponseRTU{UnitID: 0x01, Data: []byte{0x27, 0x10, 0xC3, 0x50}}

	assert.Equal(t, []byte{0x01, 0x04, 0x04, 0x27, 0x10, 0xC3, 0x50, 0xA0, 0x39}, given.Bytes())
	assert.Equal(t, uint8(0x04), given.FunctionCode())
}

func TestParseReadInputRegistersResponseRTU(t *testing.T) {
	packet, err := ParseReadInputRegistersResponseRTU([]byte{0x01, 0x04, 0x04, 0x27, 0x10, 0xC3, 0x50, 0xA0, 0x39})

	assert.NoError(t, err)
	assert.Equal(t, &ReadInputRegistersResponseRTU{UnitID: 0x01, Data: []byte{0x27, 0x10, 0xC3, 0x50}}, packet)

	value, err := packet.Register(0)
	assert.NoError(t, err)
	assert.Equal(t, uint16(10000), value)

	value, err = packet.Register(1)
	assert.NoError(t, err)
	assert.Equal(t, uint16(50000), value)
}
