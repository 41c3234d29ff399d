package game

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindspeed/internal/ui/theme"
)

func (s *GameScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return renderError(width, height, s.errMsg)
	case s.gameID == "":
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("Starting game..."))
	case s.confirm:
		return renderConfirm(width, height)
	}
	return s.renderQuestion(width, height)
}

func (s *GameScreen) renderQuestion(width, height int) string {
	centered := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString(centered.Foreground(theme.TextDim).Render(
		fmt.Sprintf("Player %s   Question %d", s.name, s.answered+1)))
	b.WriteString("\n\n")

	card := theme.Card.Render(theme.Equation.Render(s.question + " = ?"))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card))
	b.WriteString("\n\n")

	b.WriteString(centered.Render("Answer: " + s.input.View()))
	b.WriteString("\n\n")

	if s.inputErr != "" {
		b.WriteString(centered.Render(theme.Incorrect.Render(s.inputErr)))
	} else if s.last != nil {
		style := theme.Incorrect
		if s.last.Correct {
			style = theme.Correct
		}
		line := style.Render(s.last.Result) +
			theme.Hint.Render(fmt.Sprintf("  %ds", s.last.TimeTaken))
		b.WriteString(centered.Render(line))
	}

	return lipgloss.PlaceVertical(height, lipgloss.Center, b.String())
}

func renderConfirm(width, height int) string {
	box := theme.Card.Render(
		theme.Title.Render("End this game?") + "\n\n" +
			theme.Subtitle.Render("Y to see your summary, N to keep going"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

func renderError(width, height int, msg string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		theme.Incorrect.Render("Something went wrong")+"\n\n"+theme.Body.Render(msg))
}
