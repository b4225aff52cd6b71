package sigstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchURL(t *testing.T) {
	const digest = "fe03832f4045909235b2c4f62a2dcfce4212383e48d111f65eb3971af264a9bc"

	assert.Equal(t, "https://search.sigstore.dev/?hash="+digest, SearchURL(digest))
	assert.Equal(t, "https://search.sigstore.dev/?hash="+digest, SearchURL("sha256:"+digest))
	assert.Equal(t, "https://search.sigstore.dev/?hash="+digest, SearchURL(" SHA256:"+digest))
	assert.Empty(t, SearchURL(""))
	assert.Empty(t, SearchURL("sha256:"))
}
