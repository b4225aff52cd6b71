package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tinfoilsh/verification-center/attestation"
	"github.com/tinfoilsh/verification-center/verification"
	"github.com/tinfoilsh/verification-center/view"
)

func TestRenderStatus(t *testing.T) {
	doc := verification.Placeholder()
	doc.Steps.Set(verification.StepVerifyEnclave, verification.Failed("bad quote"))

	out := renderStatus(verification.ComputeStatus(doc, false))
	assert.Contains(t, out, verification.MessageError)
	assert.Contains(t, out, "bad quote")

	out = renderStatus(verification.ComputeStatus(doc, true))
	assert.Contains(t, out, verification.MessageProgress)
	assert.NotContains(t, out, "bad quote")
}

func TestRenderBadge(t *testing.T) {
	out := renderBadge(verification.ComputeBadgeStatus(nil, verification.BadgeLoading))
	assert.Contains(t, out, "Verifying...")
}

func TestRenderSteps(t *testing.T) {
	doc := verification.Placeholder()
	doc.ConfigRepo = "tinfoilsh/confidential-llama"
	doc.CodeMeasurement = attestation.Measurement{Type: attestation.TdxGuestV1, Registers: attestation.HexRegisters("aa", "bb")}
	doc.EnclaveMeasurement.Measurement = attestation.Measurement{Type: attestation.TdxGuestV1, Registers: attestation.HexRegisters("aa", "cc")}
	doc.Steps.Set(verification.StepVerifyEnclave, verification.Succeeded())
	doc.Steps.Set(verification.StepVerifyCode, verification.Succeeded())
	doc.Steps.Set(verification.StepCompareMeasurements, verification.Failed("measurements do not match"))

	out := renderSteps(view.Steps(doc, view.Options{Compact: true}))
	assert.Contains(t, out, "Runtime Verified")
	assert.Contains(t, out, "Fingerprint Verification Failed")
	assert.Contains(t, out, "measurements do not match")
	assert.Contains(t, out, "[1] bb cc")
	assert.Contains(t, out, "GitHub: https://github.com/tinfoilsh/confidential-llama")
}
