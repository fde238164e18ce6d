package modbus

import (
	"encoding/binary"

	"github.com/aldas/go-modbus-slave/packet"
)

// Canonical one-based register numbering. Wire addresses are zero-based offsets inside one of
// these four disjoint spaces, function code selects the space.
const (
	// CoilStartNumber is first discrete output coil number
	CoilStartNumber = uint32(1)
	// CoilEndNumber is last discrete output coil number
	CoilEndNumber = uint32(9999)
	// DiscreteInputStartNumber is first discrete input contact number
	DiscreteInputStartNumber = uint32(10001)
	// DiscreteInputEndNumber is last discrete input contact number
	DiscreteInputEndNumber = uint32(19999)
	// InputRegisterStartNumber is first analog input register number
	InputRegisterStartNumber = uint32(30001)
	// InputRegisterEndNumber is last analog input register number
	InputRegisterEndNumber = uint32(39999)
	// HoldingRegisterStartNumber is first analog output (holding) register number
	HoldingRegisterStartNumber = uint32(40001)
	// HoldingRegisterEndNumber is last analog output (holding) register number
	HoldingRegisterEndNumber = uint32(49999)
)

// RegisterNumber translates function code and zero-based wire address into canonical one-based
// register number (coils 1-9999, discrete inputs 10001-19999, input registers 30001-39999,
// holding registers 40001-49999). Returns 0 for function codes that do not target a register space.
func RegisterNumber(functionCode uint8, registerAddress uint16) uint32 {
	switch functionCode {
	case packet.FunctionReadCoils, packet.FunctionWriteSingleCoil, packet.FunctionWriteMultipleCoils:
		return CoilStartNumber + uint32(registerAddress)
	case packet.FunctionReadDiscreteInputs:
		return DiscreteInputStartNumber + uint32(registerAddress)
	case packet.FunctionReadInputRegisters:
		return InputRegisterStartNumber + uint32(registerAddress)
	case packet.FunctionReadHoldingRegisters, packet.FunctionWriteSingleRegister, packet.FunctionWriteMultipleRegisters:
		return HoldingRegisterStartNumber + uint32(registerAddress)
	default:
		return 0
	}
}

// payloadLength is size of transaction payload buffer. Large enough for biggest possible
// response data: 125 registers (250 bytes) or 2000 coils (250 bytes).
const payloadLength = 250

// Transaction is working record of single request/response cycle that the Slave hands to the
// application Handler. For read requests the Handler fills the payload, for write requests
// the Handler applies payload values to its outputs.
//
// Payload is accessed with Register/SetRegister (16bit, big-endian on the wire) or
// Coil/SetCoil (single bit, packed LSB first) methods, indexed 0 to RegisterCount-1.
type Transaction struct {
	// FunctionCode is function code of the request being processed
	FunctionCode uint8
	// Broadcast is true when request was sent to the broadcast address 0. Broadcast requests
	// are applied but never answered.
	Broadcast bool
	// RegisterAddress is zero-based wire address of first targeted register/coil
	RegisterAddress uint16
	// RegisterNumber is canonical one-based number of first targeted register/coil
	RegisterNumber uint32
	// RegisterCount is number of registers/coils to be read or written
	RegisterCount uint16

	data [payloadLength]byte
}

// Register returns 16bit register value at given payload index (0-based). Out of range index
// returns 0.
func (t *Transaction) Register(index int) uint16 {
	offset := index * 2
	if index < 0 || offset+2 > payloadLength {
		return 0
	}
	return binary.BigEndian.Uint16(t.data[offset : offset+2])
}

// SetRegister sets 16bit register value at given payload index (0-based). Out of range index
// is ignored.
func (t *Transaction) SetRegister(index int, value uint16) {
	offset := index * 2
	if index < 0 || offset+2 > payloadLength {
		return
	}
	binary.BigEndian.PutUint16(t.data[offset:offset+2], value)
}

// Coil returns coil/discrete input state at given payload index (0-based). Out of range index
// returns false.
func (t *Transaction) Coil(index int) bool {
	if index < 0 || index >= payloadLength*8 {
		return false
	}
	return t.data[index/8]&(1<<(index%8)) != 0
}

// SetCoil sets coil/discrete input state at given payload index (0-based). Out of range index
// is ignored.
func (t *Transaction) SetCoil(index int, state bool) {
	if index < 0 || index >= payloadLength*8 {
		return
	}
	if state {
		t.data[index/8] |= 1 << (index % 8)
	} else {
		t.data[index/8] &^= 1 << (index % 8)
	}
}
