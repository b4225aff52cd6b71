package verification

// SummaryStatus is the overall banner state
type SummaryStatus string

const (
	SummaryProgress SummaryStatus = "progress"
	SummaryError    SummaryStatus = "error"
	SummarySuccess  SummaryStatus = "success"
)

const (
	MessageProgress = "Security verification in progress..."
	MessageError    = "Enclave security verification failed"
	MessageSuccess  = "Security verified: The AI model is running in a secure hardware enclave. The source code is open-source and available on GitHub."

	// FallbackErrorMessage is reported for a failed step that carries no error text
	FallbackErrorMessage = "Verification failed"
)

// VerificationStatus is the derived state shared by every view of a document.
// AllSuccess and HasError are independent: both false means progress.
type VerificationStatus struct {
	AllSuccess        bool          `json:"allSuccess"`
	HasError          bool          `json:"hasError"`
	SummaryStatus     SummaryStatus `json:"summaryStatus"`
	SummaryMessage    string        `json:"summaryMessage"`
	FirstErrorMessage string        `json:"firstErrorMessage,omitempty"`
}

func inProgress() VerificationStatus {
	return VerificationStatus{
		SummaryStatus:  SummaryProgress,
		SummaryMessage: MessageProgress,
	}
}

// ComputeStatus derives the overall status of a document.
// A nil document or an outstanding fetch always reports progress.
func ComputeStatus(doc *Document, isLoading bool) VerificationStatus {
	if doc == nil || isLoading {
		return inProgress()
	}

	steps := &doc.Steps
	status := VerificationStatus{
		AllSuccess: allSuccess(steps),
	}

	failed := FailedSteps(doc)
	status.HasError = len(failed) > 0

	switch {
	case status.HasError:
		status.SummaryStatus = SummaryError
		status.SummaryMessage = MessageError
		state, _ := steps.Get(failed[0])
		status.FirstErrorMessage = state.Error
		if status.FirstErrorMessage == "" {
			status.FirstErrorMessage = FallbackErrorMessage
		}
	case status.AllSuccess:
		status.SummaryStatus = SummarySuccess
		status.SummaryMessage = MessageSuccess
	default:
		status.SummaryStatus = SummaryProgress
		status.SummaryMessage = MessageProgress
	}
	return status
}

func allSuccess(steps *Steps) bool {
	for _, name := range ErrorPriority {
		state, present := steps.Get(name)
		switch {
		case name == StepOtherError:
			if present && state.IsFailed() {
				return false
			}
		case name.IsRequired() || present:
			if state.Status != StatusSuccess {
				return false
			}
		}
	}
	return true
}
