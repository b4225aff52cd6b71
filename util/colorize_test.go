package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorizef(t *testing.T) {
	assert.Equal(t, "\033[32mok 1\033[0m", Colorizef(ColorGreen, "ok %d", 1))
}

func TestStatusColor(t *testing.T) {
	tests := []struct {
		status string
		color  string
		mark   string
	}{
		{"success", ColorGreen, "✓"},
		{"error", ColorRed, "✗"},
		{"failed", ColorRed, "✗"},
		{"skipped", ColorGrey, "-"},
		{"pending", ColorYellow, "…"},
		{"progress", ColorYellow, "…"},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			assert.Equal(t, tt.color, StatusColor(tt.status))
			assert.Equal(t, tt.mark, StatusMark(tt.status))
		})
	}
}
