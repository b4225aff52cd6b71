package verification

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"github.com/gowebpki/jcs"

	"github.com/tinfoilsh/verification-center/attestation"
)

// Status is the outcome of a single verification step. The zero value is pending.
type Status int

const (
	StatusPending Status = iota
	StatusSuccess
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "failed"
	default:
		return "pending"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText never fails: anything other than success or failed is pending
func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "success":
		*s = StatusSuccess
	case "failed":
		*s = StatusFailed
	default:
		*s = StatusPending
	}
	return nil
}

// StepState is one verification step's outcome. Error is only set when the step failed.
type StepState struct {
	Status Status `json:"status"`
	Error  string `json:"error,omitempty"`
}

func Pending() StepState {
	return StepState{Status: StatusPending}
}

func Succeeded() StepState {
	return StepState{Status: StatusSuccess}
}

func Failed(msg string) StepState {
	return StepState{Status: StatusFailed, Error: msg}
}

func (s StepState) IsFailed() bool {
	return s.Status == StatusFailed
}

func (s *StepState) UnmarshalJSON(data []byte) error {
	type raw StepState
	var r raw
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*s = StepState(r)
	if s.Status != StatusFailed {
		s.Error = ""
	}
	return nil
}

// StepName identifies a verification step
type StepName string

const (
	StepFetchDigest         StepName = "fetchDigest"
	StepVerifyCode          StepName = "verifyCode"
	StepVerifyEnclave       StepName = "verifyEnclave"
	StepCompareMeasurements StepName = "compareMeasurements"
	StepCreateTransport     StepName = "createTransport"
	StepVerifyHPKEKey       StepName = "verifyHPKEKey"
	StepOtherError          StepName = "otherError"
)

// ErrorPriority is the order in which failed steps are scanned for the root-cause message
var ErrorPriority = []StepName{
	StepFetchDigest,
	StepVerifyCode,
	StepVerifyEnclave,
	StepCompareMeasurements,
	StepCreateTransport,
	StepVerifyHPKEKey,
	StepOtherError,
}

// IsRequired reports whether the step is always present in a document
func (n StepName) IsRequired() bool {
	switch n {
	case StepFetchDigest, StepVerifyCode, StepVerifyEnclave, StepCompareMeasurements:
		return true
	}
	return false
}

// Steps holds every step state. Optional steps are nil until the producer reaches them.
type Steps struct {
	FetchDigest         StepState  `json:"fetchDigest"`
	VerifyCode          StepState  `json:"verifyCode"`
	VerifyEnclave       StepState  `json:"verifyEnclave"`
	CompareMeasurements StepState  `json:"compareMeasurements"`
	CreateTransport     *StepState `json:"createTransport,omitempty"`
	VerifyHPKEKey       *StepState `json:"verifyHPKEKey,omitempty"`
	OtherError          *StepState `json:"otherError,omitempty"`
}

// Get returns the state of a step and whether it is present. Required steps are always present.
func (s *Steps) Get(name StepName) (StepState, bool) {
	switch name {
	case StepFetchDigest:
		return s.FetchDigest, true
	case StepVerifyCode:
		return s.VerifyCode, true
	case StepVerifyEnclave:
		return s.VerifyEnclave, true
	case StepCompareMeasurements:
		return s.CompareMeasurements, true
	case StepCreateTransport:
		return optional(s.CreateTransport)
	case StepVerifyHPKEKey:
		return optional(s.VerifyHPKEKey)
	case StepOtherError:
		return optional(s.OtherError)
	}
	return StepState{}, false
}

// Set records the state of a step, marking optional steps as reached
func (s *Steps) Set(name StepName, state StepState) {
	if state.Status != StatusFailed {
		state.Error = ""
	}
	switch name {
	case StepFetchDigest:
		s.FetchDigest = state
	case StepVerifyCode:
		s.VerifyCode = state
	case StepVerifyEnclave:
		s.VerifyEnclave = state
	case StepCompareMeasurements:
		s.CompareMeasurements = state
	case StepCreateTransport:
		s.CreateTransport = &state
	case StepVerifyHPKEKey:
		s.VerifyHPKEKey = &state
	case StepOtherError:
		s.OtherError = &state
	}
}

func optional(s *StepState) (StepState, bool) {
	if s == nil {
		return StepState{}, false
	}
	return *s, true
}

// Document is the complete record of one verification run, as produced by the verification client
type Document struct {
	ConfigRepo             string                           `json:"configRepo"`
	EnclaveHost            string                           `json:"enclaveHost"`
	ReleaseDigest          string                           `json:"releaseDigest"`
	CodeMeasurement        attestation.Measurement          `json:"codeMeasurement"`
	EnclaveMeasurement     attestation.Response             `json:"enclaveMeasurement"`
	TLSPublicKey           string                           `json:"tlsPublicKey"`
	HPKEPublicKey          string                           `json:"hpkePublicKey"`
	HardwareMeasurement    *attestation.HardwareMeasurement `json:"hardwareMeasurement,omitempty"`
	CodeFingerprint        string                           `json:"codeFingerprint"`
	EnclaveFingerprint     string                           `json:"enclaveFingerprint"`
	SelectedRouterEndpoint string                           `json:"selectedRouterEndpoint"`
	SecurityVerified       bool                             `json:"securityVerified"`
	Steps                  Steps                            `json:"steps"`
}

// Placeholder returns the all-pending document shown before the first real one arrives
func Placeholder() *Document {
	return &Document{
		CodeMeasurement: attestation.Measurement{Registers: []attestation.Register{}},
		EnclaveMeasurement: attestation.Response{
			Measurement: attestation.Measurement{Registers: []attestation.Register{}},
		},
	}
}

// Parse decodes a document from JSON
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing verification document: %w", err)
	}
	return &doc, nil
}

// Digest returns the hex SHA-256 of the document's canonical JSON encoding
func (d *Document) Digest() (string, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return "", err
	}
	canonical, err := jcs.Transform(data)
	if err != nil {
		return "", fmt.Errorf("canonicalizing document: %w", err)
	}
	return fmt.Sprintf("%x", sha256.Sum256(canonical)), nil
}
