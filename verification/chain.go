package verification

// Chain is the dependency order of the verification steps. A failure
// anywhere in the chain means every later step will never run.
var Chain = []StepName{
	StepVerifyEnclave,
	StepVerifyCode,
	StepCompareMeasurements,
	StepVerifyHPKEKey,
	StepCreateTransport,
}

func chainIndex(name StepName) int {
	for i, n := range Chain {
		if n == name {
			return i
		}
	}
	return -1
}

// ShouldBeSkipped reports whether an earlier step in the chain failed.
// The step's own recorded status is ignored. Steps outside the chain are never skipped.
func ShouldBeSkipped(doc *Document, name StepName) bool {
	if doc == nil {
		return false
	}
	idx := chainIndex(name)
	for _, earlier := range Chain[:max(idx, 0)] {
		if state, ok := doc.Steps.Get(earlier); ok && state.IsFailed() {
			return true
		}
	}
	return false
}

// SkippedSteps lists the chain steps that must be presented as not attempted
func SkippedSteps(doc *Document) []StepName {
	var skipped []StepName
	for _, name := range Chain {
		if ShouldBeSkipped(doc, name) {
			skipped = append(skipped, name)
		}
	}
	return skipped
}
