package rendering

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsStatusMessage(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		rendered string
		expected bool
	}{
		{"me message", "/me waves", "<p>/me waves</p>", true},
		{"plain message", "hello", "<p>hello</p>", false},
		{"me without argument", "/me", "<p>/me</p>", false},
		{"me on several lines", "/me waves\nand leaves", "<p>/me waves<br>\nand leaves</p>", false},
		{"rendered as something else", "/me waves", "<div>/me waves</div>", false},
		{"me in the middle", "I said /me waves", "<p>I said /me waves</p>", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, IsStatusMessage(tt.content, tt.rendered))
		})
	}
}

func TestStatusMessageText(t *testing.T) {
	req := require.New(t)
	req.Equal("waves", StatusMessageText("<p>/me waves</p>"))
	req.Equal("is <strong>back</strong>", StatusMessageText("<p>/me is <strong>back</strong></p>"))
	req.Equal("", StatusMessageText("<p>/me </p>"))
	req.Equal("", StatusMessageText("<p></p>"))
	req.Equal("", StatusMessageText(""))
}
