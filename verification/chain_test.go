package verification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShouldBeSkipped(t *testing.T) {
	t.Run("enclave failure skips everything downstream", func(t *testing.T) {
		doc := allSucceeded()
		doc.Steps.VerifyEnclave = Failed("bad quote")
		doc.Steps.CompareMeasurements = Pending()
		doc.Steps.CreateTransport = ptr(Succeeded())

		assert.False(t, ShouldBeSkipped(doc, StepVerifyEnclave))
		assert.True(t, ShouldBeSkipped(doc, StepVerifyCode))
		assert.True(t, ShouldBeSkipped(doc, StepCompareMeasurements))
		assert.True(t, ShouldBeSkipped(doc, StepVerifyHPKEKey))
		assert.True(t, ShouldBeSkipped(doc, StepCreateTransport))
		assert.Equal(t, []StepName{
			StepVerifyCode,
			StepCompareMeasurements,
			StepVerifyHPKEKey,
			StepCreateTransport,
		}, SkippedSteps(doc))
	})

	t.Run("comparison failure skips key and transport", func(t *testing.T) {
		doc := allSucceeded()
		doc.Steps.CompareMeasurements = Failed("mismatch")

		assert.False(t, ShouldBeSkipped(doc, StepVerifyCode))
		assert.False(t, ShouldBeSkipped(doc, StepCompareMeasurements))
		assert.Equal(t, []StepName{StepVerifyHPKEKey, StepCreateTransport}, SkippedSteps(doc))
	})

	t.Run("hpke failure skips transport", func(t *testing.T) {
		doc := allSucceeded()
		doc.Steps.VerifyHPKEKey = ptr(Failed("key mismatch"))
		assert.Equal(t, []StepName{StepCreateTransport}, SkippedSteps(doc))
	})

	t.Run("transport failure skips nothing", func(t *testing.T) {
		doc := allSucceeded()
		doc.Steps.CreateTransport = ptr(Failed("timeout"))
		assert.Empty(t, SkippedSteps(doc))
	})

	t.Run("steps outside the chain are never skipped", func(t *testing.T) {
		doc := allSucceeded()
		doc.Steps.VerifyEnclave = Failed("bad quote")
		assert.False(t, ShouldBeSkipped(doc, StepFetchDigest))
		assert.False(t, ShouldBeSkipped(doc, StepOtherError))
	})

	t.Run("fetch digest failure does not propagate", func(t *testing.T) {
		doc := allSucceeded()
		doc.Steps.FetchDigest = Failed("no release")
		assert.Empty(t, SkippedSteps(doc))
	})

	t.Run("nil document", func(t *testing.T) {
		assert.False(t, ShouldBeSkipped(nil, StepVerifyCode))
		assert.Empty(t, SkippedSteps(nil))
	})
}
