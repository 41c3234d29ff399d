package layout

import (
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func TestIsTooSmall(t *testing.T) {
	assert.True(t, IsTooSmall(MinWidth-1, MinHeight))
	assert.True(t, IsTooSmall(MinWidth, MinHeight-1))
	assert.False(t, IsTooSmall(MinWidth, MinHeight))
}

func TestRenderFrameFillsHeight(t *testing.T) {
	header := RenderHeader("Level 2", "Score 1/0   0:42", 80)
	footer := RenderFooter([]KeyHint{{Key: "Enter", Description: "Submit"}, {Key: "Esc", Description: "End game"}}, 80)
	frame := RenderFrame(header, "body", footer, 80, 24)

	assert.Equal(t, 24, lipgloss.Height(frame))
	assert.Contains(t, frame, "body")
}

func TestRenderHeaderShowsTitleAndStatus(t *testing.T) {
	header := RenderHeader("Level 2", "Score 1/0", 80)

	assert.Contains(t, header, "MindSpeed")
	assert.Contains(t, header, "Level 2")
	assert.Contains(t, header, "Score 1/0")
	assert.Equal(t, 3, lipgloss.Height(header))
}

func TestRenderFooterListsHints(t *testing.T) {
	footer := RenderFooter([]KeyHint{{Key: "Enter", Description: "Submit"}, {Key: "Esc", Description: "End game"}}, 80)

	assert.Contains(t, footer, "Submit")
	assert.Contains(t, footer, "End game")
}

func TestRenderMinSizeMessage(t *testing.T) {
	msg := RenderMinSizeMessage(40, 12)
	assert.Contains(t, msg, "Terminal too small")
	assert.Contains(t, msg, "Current: 40 x 12")
}

func TestFormatSeconds(t *testing.T) {
	tests := map[int]string{0: "0:00", 5: "0:05", 65: "1:05", 600: "10:00", -3: "0:00"}
	for in, want := range tests {
		assert.Equal(t, want, FormatSeconds(in))
	}
}
