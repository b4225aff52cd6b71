// Package bridge carries verification documents between a host application
// and the verification center: the message envelope, the current document
// store and the center's lifecycle.
package bridge

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tinfoilsh/verification-center/verification"
)

type Kind string

const (
	KindDocument        Kind = "TINFOIL_VERIFICATION_DOCUMENT"
	KindRequestDocument Kind = "TINFOIL_REQUEST_VERIFICATION_DOCUMENT"
	KindReady           Kind = "TINFOIL_VERIFICATION_CENTER_READY"
	KindOpen            Kind = "TINFOIL_VERIFICATION_CENTER_OPEN"
	KindClose           Kind = "TINFOIL_VERIFICATION_CENTER_CLOSE"
	KindClosed          Kind = "TINFOIL_VERIFICATION_CENTER_CLOSED"
)

var (
	ErrUnknownKind       = errors.New("unknown message type")
	ErrMissingDocument   = errors.New("document message carries no document")
	ErrVersionNotAllowed = errors.New("verifier version not allowed")
)

func (k Kind) valid() bool {
	switch k {
	case KindDocument, KindRequestDocument, KindReady, KindOpen, KindClose, KindClosed:
		return true
	}
	return false
}

// Message is the envelope exchanged with the host
type Message struct {
	Type            Kind                   `json:"type"`
	Document        *verification.Document `json:"document,omitempty"`
	VerifierVersion string                 `json:"verifierVersion,omitempty"`
}

func (m Message) validate() error {
	if !m.Type.valid() {
		return fmt.Errorf("%w: %q", ErrUnknownKind, m.Type)
	}
	if m.Type == KindDocument && m.Document == nil {
		return ErrMissingDocument
	}
	return nil
}

// Decode parses and validates an envelope
func Decode(data []byte) (Message, error) {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return Message{}, fmt.Errorf("decoding message: %w", err)
	}
	if err := m.validate(); err != nil {
		return Message{}, err
	}
	return m, nil
}

// Encode validates and serializes an envelope
func Encode(m Message) ([]byte, error) {
	if err := m.validate(); err != nil {
		return nil, err
	}
	return json.Marshal(m)
}

// DocumentMessage wraps a document for delivery to the center
func DocumentMessage(doc *verification.Document, verifierVersion string) Message {
	return Message{Type: KindDocument, Document: doc, VerifierVersion: verifierVersion}
}
