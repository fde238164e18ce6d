package modbus

import (
	"errors"
	"fmt"

	"github.com/aldas/go-modbus-slave/packet"
)

// Slave is Modbus RTU server side protocol engine. It parses request frames addressed to it,
// dispatches data access to the application Handler and serializes response frames.
//
// Slave processes one frame at a time and performs no I/O of its own. Receiving frame bytes
// with correct inter-frame silence and transmitting replies belongs to the transport
// (see SerialServer). Slave is not safe for concurrent use.
type Slave struct {
	address uint8
	handler Handler

	identity        []packet.DeviceIdentificationObject
	conformityLevel uint8
}

// NewSlave creates new instance of Modbus RTU slave with given server address. Address must be
// in range 1-247, address 0 is the broadcast address and 248-255 are reserved.
func NewSlave(address uint8, handler Handler) (*Slave, error) {
	if handler == nil {
		return nil, errors.New("handler can not be nil")
	}
	if err := checkServerAddress(address); err != nil {
		return nil, err
	}
	return &Slave{
		address: address,
		handler: handler,
	}, nil
}

func checkServerAddress(address uint8) error {
	if address == packet.BroadcastAddress {
		return errors.New("broadcast address 0 can not be used as server address")
	}
	if address > packet.MaxServerAddress {
		return fmt.Errorf("server addresses 248-255 are reserved: %v", address)
	}
	return nil
}

// Address returns current server address
func (s *Slave) Address() uint8 {
	return s.address
}

// SetAddress changes server address. Setting the broadcast address 0 or reserved addresses
// 248-255 is rejected and current address stays unchanged.
func (s *Slave) SetAddress(address uint8) error {
	if err := checkServerAddress(address); err != nil {
		return err
	}
	s.address = address
	return nil
}

// ProcessMessage processes single received frame candidate and returns the reply frame to be
// transmitted. Reply is nil when no bytes must be sent: frame was addressed to another server,
// request was a broadcast, or frame was dropped as invalid (in which case error describes why).
func (s *Slave) ProcessMessage(frame []byte) ([]byte, error) {
	if err := packet.ValidateRTUFrame(frame); err != nil {
		return nil, err
	}
	address := frame[0]
	if address != s.address && address != packet.BroadcastAddress {
		return nil, nil // frame is for another server
	}
	broadcast := address == packet.BroadcastAddress

	req, err := packet.ParseRTURequest(frame)
	if err != nil {
		var parseErr *packet.ErrorParseRTU
		if errors.As(err, &parseErr) {
			if broadcast {
				return nil, nil
			}
			parseErr.Packet.UnitID = s.address
			return parseErr.Packet.Bytes(), nil
		}
		// structurally invalid frames and unknown MEI types are dropped without reply
		return nil, err
	}

	resp := s.handle(req, broadcast)
	if broadcast {
		return nil, nil
	}
	return resp.Bytes(), nil
}

func (s *Slave) handle(req packet.Request, broadcast bool) packet.Response {
	switch req := req.(type) {
	case *packet.ReadCoilsRequestRTU:
		return s.handleReadBits(req.FunctionCode(), req.StartAddress, req.Quantity, broadcast)
	case *packet.ReadDiscreteInputsRequestRTU:
		return s.handleReadBits(req.FunctionCode(), req.StartAddress, req.Quantity, broadcast)
	case *packet.ReadHoldingRegistersRequestRTU:
		return s.handleReadRegisters(req.FunctionCode(), req.StartAddress, req.Quantity, broadcast)
	case *packet.ReadInputRegistersRequestRTU:
		return s.handleReadRegisters(req.FunctionCode(), req.StartAddress, req.Quantity, broadcast)
	case *packet.WriteSingleCoilRequestRTU:
		return s.handleWriteSingleCoil(req, broadcast)
	case *packet.WriteSingleRegisterRequestRTU:
		return s.handleWriteSingleRegister(req, broadcast)
	case *packet.WriteMultipleCoilsRequestRTU:
		return s.handleWriteMultipleCoils(req, broadcast)
	case *packet.WriteMultipleRegistersRequestRTU:
		return s.handleWriteMultipleRegisters(req, broadcast)
	case *packet.ReadDeviceIdentificationRequestRTU:
		return s.handleReadDeviceIdentification(req)
	default:
		return s.exception(req.FunctionCode(), packet.ErrIllegalFunction)
	}
}

func (s *Slave) exception(functionCode uint8, code uint8) packet.Response {
	return &packet.ErrorResponseRTU{
		UnitID:   s.address,
		Function: functionCode,
		Code:     code,
	}
}

func exceptionCode(err error) uint8 {
	switch {
	case errors.Is(err, ErrFunctionNotImplemented):
		return packet.ErrIllegalFunction
	case errors.Is(err, ErrRegisterNotImplemented):
		return packet.ErrIllegalDataAddress
	default:
		return packet.ErrServerFailure
	}
}

func newTransaction(functionCode uint8, startAddress uint16, count uint16, broadcast bool) *Transaction {
	return &Transaction{
		FunctionCode:    functionCode,
		Broadcast:       broadcast,
		RegisterAddress: startAddress,
		RegisterNumber:  RegisterNumber(functionCode, startAddress),
		RegisterCount:   count,
	}
}

func (s *Slave) handleReadBits(functionCode uint8, startAddress uint16, quantity uint16, broadcast bool) packet.Response {
	t := newTransaction(functionCode, startAddress, quantity, broadcast)
	if err := s.handler.Read(t); err != nil {
		return s.exception(functionCode, exceptionCode(err))
	}
	data := make([]byte, (int(quantity)+7)/8)
	copy(data, t.data[:len(data)])
	if functionCode == packet.FunctionReadDiscreteInputs {
		return &packet.ReadDiscreteInputsResponseRTU{UnitID: s.address, Data: data}
	}
	return &packet.ReadCoilsResponseRTU{UnitID: s.address, Data: data}
}

func (s *Slave) handleReadRegisters(functionCode uint8, startAddress uint16, quantity uint16, broadcast bool) packet.Response {
	t := newTransaction(functionCode, startAddress, quantity, broadcast)
	if err := s.handler.Read(t); err != nil {
		return s.exception(functionCode, exceptionCode(err))
	}
	data := make([]byte, 2*int(quantity))
	copy(data, t.data[:len(data)])
	if functionCode == packet.FunctionReadInputRegisters {
		return &packet.ReadInputRegistersResponseRTU{UnitID: s.address, Data: data}
	}
	return &packet.ReadHoldingRegistersResponseRTU{UnitID: s.address, Data: data}
}

func (s *Slave) handleWriteSingleCoil(req *packet.WriteSingleCoilRequestRTU, broadcast bool) packet.Response {
	t := newTransaction(req.FunctionCode(), req.Address, 1, broadcast)
	t.SetCoil(0, req.CoilState)
	if err := s.handler.Write(t); err != nil {
		return s.exception(req.FunctionCode(), exceptionCode(err))
	}
	// normal response echoes the request
	return &packet.WriteSingleCoilResponseRTU{
		UnitID:    s.address,
		Address:   req.Address,
		CoilState: req.CoilState,
	}
}

func (s *Slave) handleWriteSingleRegister(req *packet.WriteSingleRegisterRequestRTU, broadcast bool) packet.Response {
	t := newTransaction(req.FunctionCode(), req.Address, 1, broadcast)
	t.SetRegister(0, req.Value)
	if err := s.handler.Write(t); err != nil {
		return s.exception(req.FunctionCode(), exceptionCode(err))
	}
	// normal response echoes the request
	return &packet.WriteSingleRegisterResponseRTU{
		UnitID:  s.address,
		Address: req.Address,
		Value:   req.Value,
	}
}

func (s *Slave) handleWriteMultipleCoils(req *packet.WriteMultipleCoilsRequestRTU, broadcast bool) packet.Response {
	t := newTransaction(req.FunctionCode(), req.StartAddress, req.CoilCount, broadcast)
	copy(t.data[:], req.Data)
	if err := s.handler.Write(t); err != nil {
		return s.exception(req.FunctionCode(), exceptionCode(err))
	}
	return &packet.WriteMultipleCoilsResponseRTU{
		UnitID:       s.address,
		StartAddress: req.StartAddress,
		CoilCount:    req.CoilCount,
	}
}

func (s *Slave) handleWriteMultipleRegisters(req *packet.WriteMultipleRegistersRequestRTU, broadcast bool) packet.Response {
	t := newTransaction(req.FunctionCode(), req.StartAddress, req.RegisterCount, broadcast)
	copy(t.data[:], req.Data)
	if err := s.handler.Write(t); err != nil {
		return s.exception(req.FunctionCode(), exceptionCode(err))
	}
	return &packet.WriteMultipleRegistersResponseRTU{
		UnitID:        s.address,
		StartAddress:  req.StartAddress,
		RegisterCount: req.RegisterCount,
	}
}
