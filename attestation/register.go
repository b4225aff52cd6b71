package attestation

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/gowebpki/jcs"
)

// Register is a single measurement register. Most platforms report a hex
// string; some report a structured value, which is kept in its canonical
// JSON encoding.
type Register struct {
	hex        string
	structured []byte
}

// HexRegister returns a register holding a hex string
func HexRegister(s string) Register {
	return Register{hex: s}
}

// StructuredRegister returns a register holding a structured JSON value
func StructuredRegister(raw []byte) (Register, error) {
	canonical, err := jcs.Transform(raw)
	if err != nil {
		return Register{}, fmt.Errorf("canonicalizing register: %w", err)
	}
	return Register{structured: canonical}, nil
}

// HexRegisters wraps a list of hex strings
func HexRegisters(values ...string) []Register {
	regs := make([]Register, len(values))
	for i, v := range values {
		regs[i] = HexRegister(v)
	}
	return regs
}

func (r Register) IsStructured() bool {
	return r.structured != nil
}

// String returns the hex string, or the canonical encoding of a structured register
func (r Register) String() string {
	if r.structured != nil {
		return string(r.structured)
	}
	return r.hex
}

func (r Register) Equal(other Register) bool {
	if r.IsStructured() != other.IsStructured() {
		return false
	}
	if r.IsStructured() {
		return bytes.Equal(r.structured, other.structured)
	}
	return r.hex == other.hex
}

func (r Register) MarshalJSON() ([]byte, error) {
	if r.structured != nil {
		return r.structured, nil
	}
	return json.Marshal(r.hex)
}

func (r *Register) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = HexRegister(s)
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		*r = Register{}
		return nil
	}

	reg, err := StructuredRegister(data)
	if err != nil {
		return err
	}
	*r = reg
	return nil
}
