package attestation

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

type PredicateType string

const (
	SevGuestV1            PredicateType = "https://tinfoil.sh/predicate/sev-snp-guest/v1"
	SevGuestV2            PredicateType = "https://tinfoil.sh/predicate/sev-snp-guest/v2"
	TdxGuestV1            PredicateType = "https://tinfoil.sh/predicate/tdx-guest/v1"
	TdxGuestV2            PredicateType = "https://tinfoil.sh/predicate/tdx-guest/v2"
	SnpTdxMultiPlatformV1 PredicateType = "https://tinfoil.sh/predicate/snp-tdx-multiplatform/v1"
)

// Measurement is an attestation measurement: a predicate type plus its ordered registers
type Measurement struct {
	Type      PredicateType `json:"type"`
	Registers []Register    `json:"registers"`
}

// Response is the enclave side of the attestation as reported to the UI
type Response struct {
	Measurement             Measurement `json:"measurement"`
	TLSPublicKeyFingerprint string      `json:"tlsPublicKeyFingerprint,omitempty"`
	HPKEPublicKey           string      `json:"hpkePublicKey,omitempty"`
}

// Strings returns the display encoding of every register
func (m *Measurement) Strings() []string {
	out := make([]string, len(m.Registers))
	for i, r := range m.Registers {
		out[i] = r.String()
	}
	return out
}

// IsEmpty reports whether the measurement carries neither a type nor registers
func (m *Measurement) IsEmpty() bool {
	return m == nil || (m.Type == "" && len(m.Registers) == 0)
}

// Fingerprint computes the SHA-256 hash of all measurements, or returns the single measurement if there is only one
func (m *Measurement) Fingerprint() string {
	if len(m.Registers) == 1 {
		return m.Registers[0].String()
	}

	all := string(m.Type) + strings.Join(m.Strings(), "")
	return fmt.Sprintf("%x", sha256.Sum256([]byte(all)))
}

// IsSEV reports whether the measurement was produced by an AMD SEV-SNP guest
func (m *Measurement) IsSEV() bool {
	switch m.Type {
	case SevGuestV1, SevGuestV2:
		return true
	}
	return false
}

// IsTDX reports whether the measurement was produced by an Intel TDX guest.
// Multi-platform measurements carry TDX registers.
func (m *Measurement) IsTDX() bool {
	switch m.Type {
	case TdxGuestV1, TdxGuestV2, SnpTdxMultiPlatformV1:
		return true
	}
	return false
}

func (m *Measurement) String() string {
	return fmt.Sprintf("%s(%s)", m.Type, strings.Join(m.Strings(), ", "))
}

// RegisterDiff is one row of a source/runtime register comparison
type RegisterDiff struct {
	Index   int    `json:"index"`
	Source  string `json:"source"`
	Runtime string `json:"runtime"`
	Match   bool   `json:"match"`
}

// Diff compares source and runtime registers index by index.
// Rows cover the longer of the two lists; a missing side is empty and never matches.
func Diff(source, runtime *Measurement) []RegisterDiff {
	var src, rt []Register
	if source != nil {
		src = source.Registers
	}
	if runtime != nil {
		rt = runtime.Registers
	}

	n := max(len(src), len(rt))
	diffs := make([]RegisterDiff, n)
	for i := 0; i < n; i++ {
		d := RegisterDiff{Index: i}
		if i < len(src) {
			d.Source = src[i].String()
		}
		if i < len(rt) {
			d.Runtime = rt[i].String()
		}
		d.Match = i < len(src) && i < len(rt) && src[i].Equal(rt[i])
		diffs[i] = d
	}
	return diffs
}
