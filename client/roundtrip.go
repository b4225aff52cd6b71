package client

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"net/http"
)

var (
	ErrNoTLS              = errors.New("no TLS connection")
	ErrCertMismatch       = errors.New("certificate fingerprint mismatch")
	ErrNoValidCertificate = errors.New("no valid certificate")
)

// TLSBoundRoundTripper only accepts responses from a server presenting the certificate with the expected SHA-256 fingerprint
type TLSBoundRoundTripper struct {
	ExpectedCertFP []byte
	// Base performs the request, http.DefaultTransport if nil
	Base http.RoundTripper
}

var _ http.RoundTripper = &TLSBoundRoundTripper{}

func (t *TLSBoundRoundTripper) RoundTrip(r *http.Request) (*http.Response, error) {
	if len(t.ExpectedCertFP) == 0 {
		return nil, ErrNoValidCertificate
	}

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	resp, err := base.RoundTrip(r)
	if err != nil {
		return nil, err
	}

	if resp.TLS == nil || len(resp.TLS.PeerCertificates) == 0 {
		resp.Body.Close()
		return nil, ErrNoTLS
	}

	certFP := sha256.Sum256(resp.TLS.PeerCertificates[0].Raw)
	if !bytes.Equal(t.ExpectedCertFP, certFP[:]) {
		resp.Body.Close()
		return nil, ErrCertMismatch
	}

	return resp, nil
}
