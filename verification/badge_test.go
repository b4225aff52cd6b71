package verification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeBadgeStatus(t *testing.T) {
	failed := allSucceeded()
	failed.Steps.VerifyCode = Failed("bad bundle")

	pendingOptional := allSucceeded()
	pendingOptional.Steps.CreateTransport = ptr(Pending())

	tests := []struct {
		name     string
		doc      *Document
		fallback BadgeState
		want     BadgeStatus
	}{
		{"no document idle", nil, BadgeIdle, BadgeStatus{BadgeIdle, "Verify request"}},
		{"no document loading", nil, BadgeLoading, BadgeStatus{BadgeLoading, "Verifying..."}},
		{"no document success", nil, BadgeSuccess, BadgeStatus{BadgeSuccess, "Security verified"}},
		{"no document error", nil, BadgeError, BadgeStatus{BadgeError, "Verification failed"}},
		{"no document unknown fallback", nil, "bogus", BadgeStatus{BadgeIdle, "Verify request"}},
		{"success", allSucceeded(), BadgeIdle, BadgeStatus{BadgeSuccess, "Security verified"}},
		{"error", failed, BadgeSuccess, BadgeStatus{BadgeError, "Verification failed"}},
		{"incomplete", pendingOptional, BadgeIdle, BadgeStatus{BadgeLoading, "Verifying..."}},
		{"placeholder is never idle", Placeholder(), BadgeIdle, BadgeStatus{BadgeLoading, "Verifying..."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeBadgeStatus(tt.doc, tt.fallback))
		})
	}
}

func TestParseBadgeState(t *testing.T) {
	assert.Equal(t, BadgeError, ParseBadgeState("error"))
	assert.Equal(t, BadgeIdle, ParseBadgeState(""))
}
