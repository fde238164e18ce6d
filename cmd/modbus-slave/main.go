package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"time"

	modbus "github.com/aldas/go-modbus-slave"
	"github.com/tarm/serial"
	"go.uber.org/zap"
)

/*
Example `config.json` content for a slave at address 22 serving one coil, two input registers and one
holding register:

{
  "device": "/dev/ttyUSB0",
  "baud": 19200,
  "address": 22,
  "identity": {
    "vendor_name": "ACME",
    "product_code": "TH-22",
    "major_minor_revision": "1.2.0"
  },
  "coils": [
    {"number": 100, "state": false}
  ],
  "input_registers": [
    {"number": 30101, "value": 0},
    {"number": 30102, "value": 0}
  ],
  "holding_registers": [
    {"number": 40001, "value": 1000}
  ]
}
*/

type config struct {
	Device   string    `json:"device"`
	Baud     int       `json:"baud"`
	Address  uint8     `json:"address"`
	Identity *identity `json:"identity,omitempty"`

	Coils            []bitPoint      `json:"coils,omitempty"`
	DiscreteInputs   []bitPoint      `json:"discrete_inputs,omitempty"`
	InputRegisters   []registerPoint `json:"input_registers,omitempty"`
	HoldingRegisters []registerPoint `json:"holding_registers,omitempty"`
}

type identity struct {
	VendorName          string `json:"vendor_name"`
	ProductCode         string `json:"product_code"`
	MajorMinorRevision  string `json:"major_minor_revision"`
	VendorURL           string `json:"vendor_url,omitempty"`
	ProductName         string `json:"product_name,omitempty"`
	ModelName           string `json:"model_name,omitempty"`
	UserApplicationName string `json:"user_application_name,omitempty"`
}

type bitPoint struct {
	Number uint32 `json:"number"`
	State  bool   `json:"state"`
}

type registerPoint struct {
	Number uint32 `json:"number"`
	Value  uint16 `json:"value"`
}

// usage: ./modbus-slave -config=config.json
func main() {
	var configLoc string
	flag.StringVar(&configLoc, "config", "config.json", "path to json configuration")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	rawConfig, err := os.ReadFile(configLoc) // #nosec G304
	if err != nil {
		logger.Fatal("reading config failed", zap.Error(err))
	}
	var conf config
	if err := json.Unmarshal(rawConfig, &conf); err != nil {
		logger.Fatal("config json unmarshalling failed", zap.Error(err))
	}

	handler := modbus.NewMemoryHandler()
	for _, p := range conf.Coils {
		handler.SetCoil(p.Number, p.State)
	}
	for _, p := range conf.DiscreteInputs {
		handler.SetDiscreteInput(p.Number, p.State)
	}
	for _, p := range conf.InputRegisters {
		handler.SetInputRegister(p.Number, p.Value)
	}
	for _, p := range conf.HoldingRegisters {
		handler.SetHoldingRegister(p.Number, p.Value)
	}

	slave, err := modbus.NewSlave(conf.Address, handler)
	if err != nil {
		logger.Fatal("slave creation failed", zap.Error(err))
	}
	if conf.Identity != nil {
		err := slave.RegisterDeviceIdentity(modbus.DeviceIdentity{
			VendorName:          conf.Identity.VendorName,
			ProductCode:         conf.Identity.ProductCode,
			MajorMinorRevision:  conf.Identity.MajorMinorRevision,
			VendorURL:           conf.Identity.VendorURL,
			ProductName:         conf.Identity.ProductName,
			ModelName:           conf.Identity.ModelName,
			UserApplicationName: conf.Identity.UserApplicationName,
		})
		if err != nil {
			logger.Fatal("device identity registration failed", zap.Error(err))
		}
	}

	// read timeout doubles as end of frame detection. NB: serial package rounds timeouts
	// below 100ms up, so this is far above the standard 3.5 character silence interval.
	port, err := serial.OpenPort(&serial.Config{
		Name:        conf.Device,
		Baud:        conf.Baud,
		ReadTimeout: 100 * time.Millisecond,
	})
	if err != nil {
		logger.Fatal("serial port open failed", zap.Error(err), zap.String("device", conf.Device))
	}
	defer port.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	logger.Info("serving modbus slave",
		zap.String("device", conf.Device),
		zap.Int("baud", conf.Baud),
		zap.Uint8("address", conf.Address),
	)
	server := modbus.NewSerialServer(slave, modbus.WithLogger(logger))
	if err := server.Serve(ctx, port); err != nil && ctx.Err() == nil {
		logger.Fatal("serving failed", zap.Error(err))
	}
}
