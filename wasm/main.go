//go:build js && wasm

package main

import (
	"encoding/json"
	"fmt"
	"syscall/js"

	"github.com/tinfoilsh/verification-center/verification"
	"github.com/tinfoilsh/verification-center/view"
)

func arg(args []js.Value, i int) js.Value {
	if i < len(args) {
		return args[i]
	}
	return js.Undefined()
}

// parseDocument treats a missing, null or undefined argument as no document
func parseDocument(v js.Value) (*verification.Document, error) {
	if v.IsNull() || v.IsUndefined() {
		return nil, nil
	}
	if v.Type() != js.TypeString {
		return nil, fmt.Errorf("document must be a JSON string, got %s", v.Type())
	}
	return verification.Parse([]byte(v.String()))
}

func toJSON(v any) string {
	out, err := json.Marshal(v)
	if err != nil {
		return errorJSON(err)
	}
	return string(out)
}

func errorJSON(err error) string {
	out, _ := json.Marshal(map[string]string{"error": err.Error()})
	return string(out)
}

// export wraps fn so that a bad document is reported to the caller as {"error": ...}
func export(fn func(doc *verification.Document, args []js.Value) any) js.Func {
	return js.FuncOf(func(this js.Value, args []js.Value) any {
		doc, err := parseDocument(arg(args, 0))
		if err != nil {
			return errorJSON(err)
		}
		return toJSON(fn(doc, args))
	})
}

func computeVerificationStatus() js.Func {
	return export(func(doc *verification.Document, args []js.Value) any {
		return verification.ComputeStatus(doc, arg(args, 1).Truthy())
	})
}

func computeBadgeStatus() js.Func {
	return export(func(doc *verification.Document, args []js.Value) any {
		fallback := verification.BadgeIdle
		if v := arg(args, 1); v.Type() == js.TypeString {
			fallback = verification.ParseBadgeState(v.String())
		}
		return verification.ComputeBadgeStatus(doc, fallback)
	})
}

func verificationSteps() js.Func {
	return export(func(doc *verification.Document, args []js.Value) any {
		return view.Steps(doc, view.Options{
			Loading: arg(args, 1).Truthy(),
			Compact: arg(args, 2).Truthy(),
		})
	})
}

func main() {
	js.Global().Set("computeVerificationStatus", computeVerificationStatus())
	js.Global().Set("computeBadgeStatus", computeBadgeStatus())
	js.Global().Set("verificationSteps", verificationSteps())
	<-make(chan struct{})
}
