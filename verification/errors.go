package verification

import "fmt"

// ErrorKind classifies a step failure
type ErrorKind string

const (
	ErrorKindFetchDigest         ErrorKind = "fetch-digest-error"
	ErrorKindVerifyCode          ErrorKind = "verify-code-error"
	ErrorKindVerifyEnclave       ErrorKind = "verify-enclave-error"
	ErrorKindCompareMeasurements ErrorKind = "compare-measurements-error"
	ErrorKindCreateTransport     ErrorKind = "create-transport-error"
	ErrorKindVerifyHPKEKey       ErrorKind = "verify-hpke-key-error"
	ErrorKindOther               ErrorKind = "other-error"
)

var errorKinds = map[StepName]ErrorKind{
	StepFetchDigest:         ErrorKindFetchDigest,
	StepVerifyCode:          ErrorKindVerifyCode,
	StepVerifyEnclave:       ErrorKindVerifyEnclave,
	StepCompareMeasurements: ErrorKindCompareMeasurements,
	StepCreateTransport:     ErrorKindCreateTransport,
	StepVerifyHPKEKey:       ErrorKindVerifyHPKEKey,
	StepOtherError:          ErrorKindOther,
}

// ErrorKindOf returns the failure classification of a step
func ErrorKindOf(name StepName) ErrorKind {
	if kind, ok := errorKinds[name]; ok {
		return kind
	}
	return ErrorKindOther
}

// StepError is a failed step expressed as a Go error
type StepError struct {
	Step    StepName
	Kind    ErrorKind
	Message string
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// SecurityCritical reports whether the failure is a measurement mismatch
func (e *StepError) SecurityCritical() bool {
	return e.Kind == ErrorKindCompareMeasurements
}

// FailedSteps lists every failed step in error priority order
func FailedSteps(doc *Document) []StepName {
	if doc == nil {
		return nil
	}
	var failed []StepName
	for _, name := range ErrorPriority {
		if state, ok := doc.Steps.Get(name); ok && state.IsFailed() {
			failed = append(failed, name)
		}
	}
	return failed
}

// Errors returns a StepError for every failed step, in error priority order
func (d *Document) Errors() []*StepError {
	var errs []*StepError
	for _, name := range FailedSteps(d) {
		state, _ := d.Steps.Get(name)
		msg := state.Error
		if msg == "" {
			msg = FallbackErrorMessage
		}
		errs = append(errs, &StepError{
			Step:    name,
			Kind:    ErrorKindOf(name),
			Message: msg,
		})
	}
	return errs
}

// Err returns the root-cause failure of the document, or nil if no step failed
func (d *Document) Err() error {
	errs := d.Errors()
	if len(errs) == 0 {
		return nil
	}
	return errs[0]
}
