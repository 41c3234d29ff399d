package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindspeed/internal/screen"
	"github.com/abhisek/mindspeed/internal/session"
	"github.com/abhisek/mindspeed/internal/ui/layout"
	"github.com/abhisek/mindspeed/internal/ui/theme"
)

// SummaryScreen displays the end-of-game summary.
type SummaryScreen struct {
	summary *session.EndResult
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary *session.EndResult) *SummaryScreen {
	return &SummaryScreen{summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Game Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Quit"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc", "q":
			return s, tea.Quit
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	centered := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString(centered.Foreground(theme.Primary).Bold(true).
		Render(fmt.Sprintf("Well played, %s!", sum.Name)))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Level: %d        Score: %s        Time: %s",
		sum.Difficulty, sum.CurrentScore, layout.FormatSeconds(sum.TotalTimeSpent))
	b.WriteString(centered.Foreground(theme.Text).Render(statsLine))
	b.WriteString("\n\n")

	if best := sum.BestScore; best != nil {
		b.WriteString(centered.Render(
			theme.Score.Render("Fastest: ") +
				theme.Body.Render(fmt.Sprintf("%s = %s in %ds", best.Question, formatAnswer(best.Answer), best.TimeTaken))))
	} else {
		b.WriteString(centered.Render(theme.Hint.Render("No correct answers this time")))
	}
	b.WriteString("\n\n")

	if len(sum.History) == 0 {
		return b.String()
	}

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", max(min(width-8, 60), 0)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("History")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n")

	// Show the most recent answers that fit.
	rows := sum.History
	if room := height - lipgloss.Height(b.String()) - 1; room > 0 && len(rows) > room {
		rows = rows[len(rows)-room:]
	}
	for _, h := range rows {
		mark, style := "✓", theme.Correct
		if !h.Correct {
			mark, style = "✗", theme.Incorrect
		}
		line := fmt.Sprintf("%s  %s = %s  (%ds)", mark, h.Question, formatAnswer(h.Answer), h.TimeTaken)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}

// formatAnswer prints a 2-dp value without trailing zeros.
func formatAnswer(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
