package modbus

import (
	"sync"

	"github.com/aldas/go-modbus-slave/packet"
)

// MemoryHandler is Handler implementation backed by in-memory maps keyed by canonical register
// numbers. Only registers/coils that the application has declared with Set* methods exist,
// requests targeting anything else are answered with exception code 2 (illegal data address).
//
// MemoryHandler is safe for concurrent use so the application can update input values from
// another goroutine while the slave is serving requests.
type MemoryHandler struct {
	mu               sync.RWMutex
	coils            map[uint32]bool
	discreteInputs   map[uint32]bool
	inputRegisters   map[uint32]uint16
	holdingRegisters map[uint32]uint16
}

// NewMemoryHandler creates new instance of empty MemoryHandler
func NewMemoryHandler() *MemoryHandler {
	return &MemoryHandler{
		coils:            make(map[uint32]bool),
		discreteInputs:   make(map[uint32]bool),
		inputRegisters:   make(map[uint32]uint16),
		holdingRegisters: make(map[uint32]uint16),
	}
}

// SetCoil declares/updates coil with given canonical number (1-9999)
func (h *MemoryHandler) SetCoil(number uint32, state bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.coils[number] = state
}

// Coil returns state of coil with given canonical number (1-9999)
func (h *MemoryHandler) Coil(number uint32) (bool, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	state, ok := h.coils[number]
	return state, ok
}

// SetDiscreteInput declares/updates discrete input with given canonical number (10001-19999)
func (h *MemoryHandler) SetDiscreteInput(number uint32, state bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.discreteInputs[number] = state
}

// SetInputRegister declares/updates input register with given canonical number (30001-39999)
func (h *MemoryHandler) SetInputRegister(number uint32, value uint16) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.inputRegisters[number] = value
}

// SetHoldingRegister declares/updates holding register with given canonical number (40001-49999)
func (h *MemoryHandler) SetHoldingRegister(number uint32, value uint16) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.holdingRegisters[number] = value
}

// HoldingRegister returns value of holding register with given canonical number (40001-49999)
func (h *MemoryHandler) HoldingRegister(number uint32) (uint16, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	value, ok := h.holdingRegisters[number]
	return value, ok
}

// Read implements Handler by filling transaction payload from stored values
func (h *MemoryHandler) Read(t *Transaction) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	switch t.FunctionCode {
	case packet.FunctionReadCoils:
		return readBits(t, h.coils)
	case packet.FunctionReadDiscreteInputs:
		return readBits(t, h.discreteInputs)
	case packet.FunctionReadInputRegisters:
		return readRegisters(t, h.inputRegisters)
	case packet.FunctionReadHoldingRegisters:
		return readRegisters(t, h.holdingRegisters)
	default:
		return ErrFunctionNotImplemented
	}
}

// Write implements Handler by applying transaction payload to stored values
func (h *MemoryHandler) Write(t *Transaction) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch t.FunctionCode {
	case packet.FunctionWriteSingleCoil, packet.FunctionWriteMultipleCoils:
		for i := 0; i < int(t.RegisterCount); i++ {
			if _, ok := h.coils[t.RegisterNumber+uint32(i)]; !ok {
				return ErrRegisterNotImplemented
			}
		}
		for i := 0; i < int(t.RegisterCount); i++ {
			h.coils[t.RegisterNumber+uint32(i)] = t.Coil(i)
		}
		return nil
	case packet.FunctionWriteSingleRegister, packet.FunctionWriteMultipleRegisters:
		for i := 0; i < int(t.RegisterCount); i++ {
			if _, ok := h.holdingRegisters[t.RegisterNumber+uint32(i)]; !ok {
				return ErrRegisterNotImplemented
			}
		}
		for i := 0; i < int(t.RegisterCount); i++ {
			h.holdingRegisters[t.RegisterNumber+uint32(i)] = t.Register(i)
		}
		return nil
	default:
		return ErrFunctionNotImplemented
	}
}

func readBits(t *Transaction, bits map[uint32]bool) error {
	for i := 0; i < int(t.RegisterCount); i++ {
		state, ok := bits[t.RegisterNumber+uint32(i)]
		if !ok {
			return ErrRegisterNotImplemented
		}
		t.SetCoil(i, state)
	}
	return nil
}

func readRegisters(t *Transaction, registers map[uint32]uint16) error {
	for i := 0; i < int(t.RegisterCount); i++ {
		value, ok := registers[t.RegisterNumber+uint32(i)]
		if !ok {
			return ErrRegisterNotImplemented
		}
		t.SetRegister(i, value)
	}
	return nil
}
