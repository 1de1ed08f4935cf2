package gameconfig

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"

	"github.com/osse101/RewardEngine_Go/internal/domain"
	"github.com/osse101/RewardEngine_Go/internal/validation"
)

//go:embed defaults/*.json
var defaultsFS embed.FS

//go:embed schemas/*.json
var schemasFS embed.FS

// Schema names, relative to Schemas()
const (
	SchemaSlotMachine = "slot_machine.schema.json"
	SchemaJackpot     = "jackpot.schema.json"
)

const (
	defaultSlotMachineFile = "defaults/slot_machine.json"
	defaultJackpotFile     = "defaults/jackpot.json"
)

// Schemas exposes the embedded configuration schemas
func Schemas() fs.FS {
	sub, err := fs.Sub(schemasFS, "schemas")
	if err != nil {
		panic(err)
	}
	return sub
}

// NewValidator returns a schema validator for the embedded schemas
func NewValidator() validation.SchemaValidator {
	return validation.NewSchemaValidator(Schemas())
}

// DefaultSlotMachine returns the built-in slot machine
func DefaultSlotMachine(v validation.SchemaValidator) (domain.SlotMachineConfig, error) {
	var cfg domain.SlotMachineConfig
	err := decodeDefault(v, defaultSlotMachineFile, SchemaSlotMachine, &cfg)
	return cfg, err
}

// DefaultJackpot returns the built-in jackpot table
func DefaultJackpot(v validation.SchemaValidator) (domain.JackpotConfig, error) {
	var cfg domain.JackpotConfig
	err := decodeDefault(v, defaultJackpotFile, SchemaJackpot, &cfg)
	return cfg, err
}

func decodeDefault(v validation.SchemaValidator, file, schema string, out any) error {
	data, err := defaultsFS.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", file, err)
	}
	if err := v.ValidateBytes(data, schema); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidConfiguration, file, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", file, err)
	}
	return nil
}
