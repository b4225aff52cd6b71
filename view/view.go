// Package view derives the presentation model of the verification center
// from a verification document. Everything here is a pure function of the
// document and the display options.
package view

import (
	"github.com/tinfoilsh/verification-center/attestation"
	"github.com/tinfoilsh/verification-center/github"
	"github.com/tinfoilsh/verification-center/sigstore"
	"github.com/tinfoilsh/verification-center/verification"
)

// DisplayStatus is how a single step row is presented
type DisplayStatus string

const (
	DisplayPending DisplayStatus = "pending"
	DisplaySuccess DisplayStatus = "success"
	DisplayError   DisplayStatus = "error"
	DisplaySkipped DisplayStatus = "skipped"
)

// Kind identifies a row of the detailed view
type Kind string

const (
	KindRuntime   Kind = "runtime"
	KindCode      Kind = "code"
	KindSecurity  Kind = "security"
	KindHardware  Kind = "hardware"
	KindHPKE      Kind = "hpke"
	KindTransport Kind = "transport"
	KindOther     Kind = "other"
)

type Options struct {
	// Loading is set while a fresh document is being fetched
	Loading bool
	// Compact hides the hardware, key and connection rows
	Compact bool
}

type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// MeasurementDiff compares the source and runtime measurements
type MeasurementDiff struct {
	SourceFingerprint  string                     `json:"sourceFingerprint"`
	RuntimeFingerprint string                     `json:"runtimeFingerprint"`
	Verified           bool                       `json:"verified"`
	Loading            bool                       `json:"loading"`
	Registers          []attestation.RegisterDiff `json:"registers,omitempty"`
}

// Step is one row of the detailed view
type Step struct {
	Kind        Kind                             `json:"kind"`
	Step        verification.StepName            `json:"step,omitempty"`
	Title       string                           `json:"title"`
	Description string                           `json:"description"`
	Status      DisplayStatus                    `json:"status"`
	Error       string                           `json:"error,omitempty"`
	Measurement *attestation.Measurement         `json:"measurement,omitempty"`
	Diff        *MeasurementDiff                 `json:"diff,omitempty"`
	Hardware    *attestation.HardwareMeasurement `json:"hardware,omitempty"`
	Links       []Link                           `json:"links,omitempty"`
}

type titles struct {
	pending, success, failed string
}

func (t titles) forStatus(s DisplayStatus) string {
	switch s {
	case DisplaySuccess:
		return t.success
	case DisplayError:
		return t.failed
	default:
		return t.pending
	}
}

var stepTitles = map[Kind]titles{
	KindRuntime:   {"Runtime Verification", "Runtime Verified", "Runtime Verification Failed"},
	KindCode:      {"Source Code Verification", "Source Code Verified", "Source Code Verification Failed"},
	KindSecurity:  {"Fingerprint Verification", "Fingerprints Verified", "Fingerprint Verification Failed"},
	KindHPKE:      {"Encryption Key Validation", "Encryption Key Validated", "Encryption Key Validation Failed"},
	KindTransport: {"Connection", "Connection Established", "Connection Failed"},
	KindHardware:  {"Hardware Platform Verification", "Hardware Platform Verified", "Hardware Platform Verification Failed"},
	KindOther:     {"Initialization Error", "Initialization Error", "Initialization Error"},
}

var descriptions = map[Kind]string{
	KindRuntime:   "This step verifies the secure hardware environment. The verifier receives a signed measurement from a combination of NVIDIA, AMD, and Intel certifying the enclave environment and the digest of the binary (i.e., code) actively running inside it.",
	KindCode:      "This step verifies that the source code published publicly on GitHub was correctly built through GitHub Actions and that the resulting binary is available on the Sigstore transparency log.",
	KindSecurity:  "This step verifies that the binary built from the source code matches the binary running in the secure enclave by comparing the fingerprints from the enclave and the expected fingerprints from the transparency log.",
	KindHardware:  "This step verifies the TDX platform measurements to ensure the hardware is genuine and unmodified.",
	KindHPKE:      "This step verifies the Hybrid Public Key Encryption (HPKE) key used for secure communication with the enclave is part of the attestation report.",
	KindTransport: "This step establishes a secure encrypted connection with the verified enclave using the attested encryption key.",
	KindOther:     "An unexpected error occurred during the verification process.",
}

type rowBuilder struct {
	doc  *verification.Document
	opts Options
}

// status maps a recorded step to its display status. Loading and skipping
// take precedence over whatever the document records.
func (b rowBuilder) status(name verification.StepName, absentAsSuccess bool) DisplayStatus {
	if b.opts.Loading {
		return DisplayPending
	}
	if verification.ShouldBeSkipped(b.doc, name) {
		return DisplaySkipped
	}
	state, present := b.doc.Steps.Get(name)
	if !present {
		if absentAsSuccess {
			return DisplaySuccess
		}
		return DisplayPending
	}
	switch state.Status {
	case verification.StatusSuccess:
		return DisplaySuccess
	case verification.StatusFailed:
		return DisplayError
	default:
		return DisplayPending
	}
}

func (b rowBuilder) row(kind Kind, name verification.StepName, absentAsSuccess bool) Step {
	status := b.status(name, absentAsSuccess)
	step := Step{
		Kind:        kind,
		Step:        name,
		Title:       stepTitles[kind].forStatus(status),
		Description: descriptions[kind],
		Status:      status,
	}
	if status == DisplayError {
		state, _ := b.doc.Steps.Get(name)
		step.Error = state.Error
	}
	return step
}

// Steps builds the rows of the detailed view, in display order
func Steps(doc *verification.Document, opts Options) []Step {
	if doc == nil {
		doc = verification.Placeholder()
		opts.Loading = true
	}
	b := rowBuilder{doc: doc, opts: opts}

	var rows []Step

	runtime := b.row(KindRuntime, verification.StepVerifyEnclave, false)
	if !opts.Loading && !doc.EnclaveMeasurement.Measurement.IsEmpty() {
		m := doc.EnclaveMeasurement.Measurement
		runtime.Measurement = &m
	}
	if runtime.Status != DisplayPending {
		runtime.Links = attesterLinks(&doc.EnclaveMeasurement.Measurement)
	}
	rows = append(rows, runtime)

	code := b.row(KindCode, verification.StepVerifyCode, false)
	if code.Status != DisplaySkipped {
		if !opts.Loading && !doc.CodeMeasurement.IsEmpty() {
			m := doc.CodeMeasurement
			code.Measurement = &m
		}
		code.Links = codeLinks(doc)
	}
	rows = append(rows, code)

	security := b.row(KindSecurity, verification.StepCompareMeasurements, false)
	if security.Status != DisplaySkipped {
		security.Diff = measurementDiff(doc, opts.Loading)
	}
	rows = append(rows, security)

	if !opts.Compact && doc.HardwareMeasurement != nil {
		rows = append(rows, hardwareRow(doc, opts.Loading))
	}

	if !opts.Compact {
		rows = append(rows,
			b.row(KindHPKE, verification.StepVerifyHPKEKey, true),
			b.row(KindTransport, verification.StepCreateTransport, true),
		)
	}

	if _, ok := doc.Steps.Get(verification.StepOtherError); ok {
		rows = append(rows, b.row(KindOther, verification.StepOtherError, false))
	}

	return rows
}

// hardwareRow shows the platform measurement the producer matched the
// enclave against. The match itself is part of the enclave step.
func hardwareRow(doc *verification.Document, loading bool) Step {
	hw := *doc.HardwareMeasurement
	step := Step{
		Kind:        KindHardware,
		Description: descriptions[KindHardware],
		Status:      DisplaySuccess,
		Hardware:    &hw,
	}
	switch {
	case loading:
		step.Status = DisplayPending
	case verification.ShouldBeSkipped(doc, verification.StepVerifyCode):
		step.Status = DisplaySkipped
	}
	step.Title = stepTitles[KindHardware].forStatus(step.Status)
	return step
}

// attesterLinks names the vendors that signed the runtime measurement
func attesterLinks(m *attestation.Measurement) []Link {
	links := []Link{{Label: "NVIDIA Attestation", URL: "https://docs.nvidia.com/attestation/index.html"}}
	if m.IsSEV() {
		links = append(links, Link{Label: "AMD SEV", URL: "https://www.amd.com/en/developer/sev.html"})
	}
	if m.IsTDX() {
		links = append(links, Link{Label: "Intel TDX", URL: "https://www.intel.com/content/www/us/en/developer/tools/trust-domain-extensions/overview.html"})
	}
	return links
}

func codeLinks(doc *verification.Document) []Link {
	var links []Link
	if u := github.RepoURL(doc.ConfigRepo); u != "" {
		links = append(links, Link{Label: "GitHub", URL: u})
	}
	if u := sigstore.SearchURL(doc.ReleaseDigest); u != "" {
		links = append(links, Link{Label: "Sigstore", URL: u})
	}
	return links
}

func measurementDiff(doc *verification.Document, loading bool) *MeasurementDiff {
	source := &doc.CodeMeasurement
	runtime := &doc.EnclaveMeasurement.Measurement

	diff := &MeasurementDiff{
		SourceFingerprint:  doc.CodeFingerprint,
		RuntimeFingerprint: doc.EnclaveFingerprint,
		Verified:           doc.SecurityVerified,
		Loading:            loading || source.IsEmpty() || runtime.IsEmpty(),
	}
	if !diff.Loading {
		diff.Registers = attestation.Diff(source, runtime)
		if diff.SourceFingerprint == "" {
			diff.SourceFingerprint = source.Fingerprint()
		}
		if diff.RuntimeFingerprint == "" {
			diff.RuntimeFingerprint = runtime.Fingerprint()
		}
	}
	return diff
}
