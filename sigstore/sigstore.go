package sigstore

import (
	"net/url"
	"strings"
)

const searchURL = "https://search.sigstore.dev/"

// SearchURL returns the Sigstore transparency log search page for a release digest.
// Digests may carry a "sha256:" prefix.
func SearchURL(digest string) string {
	digest = NormalizeDigest(digest)
	if digest == "" {
		return ""
	}
	q := url.Values{}
	q.Set("hash", digest)
	return searchURL + "?" + q.Encode()
}

// NormalizeDigest strips whitespace and the algorithm prefix and lowercases the hex digest
func NormalizeDigest(digest string) string {
	digest = strings.ToLower(strings.TrimSpace(digest))
	return strings.TrimPrefix(digest, "sha256:")
}
