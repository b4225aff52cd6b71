package attestation

import "strings"

// HardwareMeasurement represents the measurement values for a single platform from the hardware measurement repo
type HardwareMeasurement struct {
	ID    string `json:"ID"` // platform@digest
	MRTD  string `json:"MRTD"`
	RTMR0 string `json:"RTMR0"`
}

// Platform returns the platform part of the ID
func (h *HardwareMeasurement) Platform() string {
	platform, _ := h.split()
	return platform
}

// Digest returns the digest part of the ID, empty if the ID has none
func (h *HardwareMeasurement) Digest() string {
	_, digest := h.split()
	return digest
}

func (h *HardwareMeasurement) split() (string, string) {
	if i := strings.LastIndex(h.ID, "@"); i >= 0 {
		return h.ID[:i], h.ID[i+1:]
	}
	return h.ID, ""
}
