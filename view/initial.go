package view

import (
	"github.com/tinfoilsh/verification-center/verification"
)

// InitialStatus is the state of the compact first screen
type InitialStatus string

const (
	InitialVerifying InitialStatus = "verifying"
	InitialSuccess   InitialStatus = "success"
	InitialError     InitialStatus = "error"
)

type TabID string

const (
	TabKey   TabID = "key"
	TabCode  TabID = "code"
	TabChip  TabID = "chip"
	TabOther TabID = "other"
)

// Tab is one of the summary chips on the first screen
type Tab struct {
	ID     TabID         `json:"id"`
	Prefix string        `json:"prefix"`
	Label  string        `json:"label"`
	Status DisplayStatus `json:"status"`
}

type InitialState struct {
	Status       InitialStatus `json:"status"`
	ErrorMessage string        `json:"errorMessage,omitempty"`
	Tabs         []Tab         `json:"tabs"`
}

// Initial builds the first screen. The other tab only appears when the
// connection or an unexpected step failed.
func Initial(doc *verification.Document, loading bool) InitialState {
	status := verification.ComputeStatus(doc, loading)

	state := InitialState{Status: InitialVerifying}
	switch {
	case status.HasError:
		state.Status = InitialError
		state.ErrorMessage = status.FirstErrorMessage
	case status.AllSuccess:
		state.Status = InitialSuccess
	}

	tabStatus := func(name verification.StepName, absentAsSuccess bool) DisplayStatus {
		if loading || doc == nil {
			return DisplayPending
		}
		s, present := doc.Steps.Get(name)
		switch {
		case !present && absentAsSuccess:
			return DisplaySuccess
		case s.Status == verification.StatusSuccess:
			return DisplaySuccess
		case s.Status == verification.StatusFailed:
			return DisplayError
		}
		return DisplayPending
	}

	state.Tabs = []Tab{
		{ID: TabKey, Prefix: "Encrypted", Label: "Key", Status: tabStatus(verification.StepVerifyHPKEKey, true)},
		{ID: TabCode, Prefix: "Verified", Label: "Code", Status: tabStatus(verification.StepVerifyCode, false)},
		{ID: TabChip, Prefix: "Confidential", Label: "Chip", Status: tabStatus(verification.StepVerifyEnclave, false)},
	}
	if !loading && hasOtherError(doc) {
		state.Tabs = append(state.Tabs, Tab{ID: TabOther, Prefix: "Other", Label: "Error", Status: DisplayError})
	}
	return state
}

func hasOtherError(doc *verification.Document) bool {
	if doc == nil {
		return false
	}
	for _, name := range []verification.StepName{verification.StepCreateTransport, verification.StepOtherError} {
		if s, ok := doc.Steps.Get(name); ok && s.IsFailed() {
			return true
		}
	}
	return false
}
