package client

import (
	"context"
	"crypto/sha256"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinfoilsh/verification-center/bridge"
	"github.com/tinfoilsh/verification-center/config"
	"github.com/tinfoilsh/verification-center/server"
	"github.com/tinfoilsh/verification-center/verification"
)

func verifiedDocument() *verification.Document {
	doc := verification.Placeholder()
	doc.EnclaveHost = "llama3-3-70b.model.tinfoil.sh"
	doc.ConfigRepo = "tinfoilsh/confidential-llama3-3-70b"
	for _, name := range verification.ErrorPriority {
		if name.IsRequired() {
			doc.Steps.Set(name, verification.Succeeded())
		}
	}
	return doc
}

func newTestServer(t *testing.T, tls bool) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg, err := config.Parse(`allowed: ">= 0.10.0"`)
	require.NoError(t, err)
	logger := log.New(io.Discard)
	router := server.NewRouter(bridge.NewCenter(bridge.NewStore(), cfg, logger), cfg, logger)

	var ts *httptest.Server
	if tls {
		ts = httptest.NewTLSServer(router)
	} else {
		ts = httptest.NewServer(router)
	}
	t.Cleanup(ts.Close)
	return ts
}

func TestClientRoundTrip(t *testing.T) {
	ts := newTestServer(t, false)
	c := New(ts.URL + "/")
	ctx := context.Background()

	badge, err := c.Badge(ctx, verification.BadgeIdle)
	require.NoError(t, err)
	assert.Equal(t, verification.BadgeIdle, badge.State)

	_, _, err = c.Document(ctx, "")
	assert.ErrorIs(t, err, ErrNoDocument)

	require.NoError(t, c.PushDocument(ctx, verifiedDocument(), "0.10.1"))

	status, err := c.Status(ctx, false)
	require.NoError(t, err)
	assert.True(t, status.AllSuccess)
	assert.Equal(t, verification.MessageSuccess, status.SummaryMessage)

	status, err = c.Status(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, verification.SummaryProgress, status.SummaryStatus)

	doc, etag, err := c.Document(ctx, "")
	require.NoError(t, err)
	assert.NotEmpty(t, etag)
	assert.Equal(t, "llama3-3-70b.model.tinfoil.sh", doc.EnclaveHost)

	_, same, err := c.Document(ctx, etag)
	assert.ErrorIs(t, err, ErrNotModified)
	assert.Equal(t, etag, same)
}

func TestClientSend(t *testing.T) {
	ts := newTestServer(t, false)
	c := New(ts.URL)
	ctx := context.Background()

	out, err := c.Send(ctx, bridge.Message{Type: bridge.KindRequestDocument})
	require.NoError(t, err)
	assert.Equal(t, []bridge.Message{{Type: bridge.KindRequestDocument}}, out)

	err = c.PushDocument(ctx, verifiedDocument(), "0.9.0")
	assert.ErrorIs(t, err, bridge.ErrVersionNotAllowed)

	_, err = c.Send(ctx, bridge.Message{Type: "BOGUS"})
	assert.ErrorIs(t, err, bridge.ErrUnknownKind)
}

func TestPinnedCertificate(t *testing.T) {
	ts := newTestServer(t, true)
	ctx := context.Background()
	fp := sha256.Sum256(ts.Certificate().Raw)

	t.Run("matching certificate", func(t *testing.T) {
		c := New(ts.URL, WithHTTPClient(ts.Client()), WithPinnedCertificate(fp[:]))
		_, err := c.Badge(ctx, verification.BadgeIdle)
		assert.NoError(t, err)
	})

	t.Run("other certificate", func(t *testing.T) {
		other := sha256.Sum256([]byte("other"))
		c := New(ts.URL, WithHTTPClient(ts.Client()), WithPinnedCertificate(other[:]))
		_, err := c.Badge(ctx, verification.BadgeIdle)
		assert.ErrorIs(t, err, ErrCertMismatch)
	})

	t.Run("plain http", func(t *testing.T) {
		plain := newTestServer(t, false)
		c := New(plain.URL, WithPinnedCertificate(fp[:]))
		_, err := c.Badge(ctx, verification.BadgeIdle)
		assert.ErrorIs(t, err, ErrNoTLS)
	})

	t.Run("no fingerprint", func(t *testing.T) {
		c := New(ts.URL, WithHTTPClient(ts.Client()), WithPinnedCertificate(nil))
		_, err := c.Badge(ctx, verification.BadgeIdle)
		assert.ErrorIs(t, err, ErrNoValidCertificate)
	})
}
