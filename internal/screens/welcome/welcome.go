package welcome

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindspeed/internal/problemgen"
	"github.com/abhisek/mindspeed/internal/router"
	"github.com/abhisek/mindspeed/internal/screen"
	"github.com/abhisek/mindspeed/internal/ui/components"
	"github.com/abhisek/mindspeed/internal/ui/layout"
	"github.com/abhisek/mindspeed/internal/ui/theme"
)

const maxNameLen = 100

type step int

const (
	stepName step = iota
	stepDifficulty
)

// GameFactory builds the screen that plays a game for the chosen player.
type GameFactory func(name string, difficulty int) screen.Screen

type levelChosenMsg struct{ difficulty int }

// WelcomeScreen asks for the player's name, then a difficulty level, and
// hands over to the game screen.
type WelcomeScreen struct {
	gameFactory  GameFactory
	step         step
	input        components.TextInput
	menu         components.Menu
	name         string
	nameErr      string
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)
var _ screen.KeyHintProvider = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that starts games through gameFactory.
func New(gameFactory GameFactory) *WelcomeScreen {
	w := &WelcomeScreen{
		gameFactory: gameFactory,
		input:       components.NewTextInput("Your name", false, maxNameLen),
	}
	w.menu = components.NewMenu(levelItems())
	return w
}

func levelItems() []components.MenuItem {
	var items []components.MenuItem
	for d := problemgen.MinDifficulty; d <= problemgen.MaxDifficulty; d++ {
		s := problemgen.SettingsFor(d)
		items = append(items, components.MenuItem{
			Label:  fmt.Sprintf("Level %d", d),
			Detail: fmt.Sprintf("%d numbers, %d digit%s each", s.OperandCount, s.DigitLength, plural(s.DigitLength)),
			Action: func() tea.Cmd {
				return func() tea.Msg { return levelChosenMsg{difficulty: d} }
			},
		})
	}
	return items
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return w.input.Init()
}

func (w *WelcomeScreen) KeyHints() []layout.KeyHint {
	if w.step == stepName {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "1-4", Description: "Pick level"},
		{Key: "Esc", Description: "Back"},
	}
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(levelChosenMsg); ok {
		return w, w.transition(msg.difficulty)
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if w.step == stepName {
			var cmd tea.Cmd
			w.input, cmd = w.input.Update(msg)
			return w, cmd
		}
		return w, nil
	}

	switch w.step {
	case stepName:
		if kmsg.String() == "enter" {
			name := strings.TrimSpace(w.input.Value())
			if name == "" {
				w.nameErr = "Please enter a name"
				return w, nil
			}
			w.name = name
			w.nameErr = ""
			w.step = stepDifficulty
			return w, nil
		}
		w.nameErr = ""
		var cmd tea.Cmd
		w.input, cmd = w.input.Update(msg)
		return w, cmd

	case stepDifficulty:
		if kmsg.String() == "esc" {
			w.step = stepName
			return w, nil
		}
		var cmd tea.Cmd
		w.menu, cmd = w.menu.Update(msg)
		return w, cmd
	}

	return w, nil
}

func (w *WelcomeScreen) transition(difficulty int) tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	game := w.gameFactory(w.name, difficulty)
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: game}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	sections := []string{
		RenderBanner(width),
		"",
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("How fast can you do the math?"),
		"",
	}

	switch w.step {
	case stepName:
		sections = append(sections, theme.Body.Render("What's your name?"), "", w.input.View())
		if w.nameErr != "" {
			sections = append(sections, "", lipgloss.NewStyle().Foreground(theme.Error).Render(w.nameErr))
		}
	case stepDifficulty:
		sections = append(sections,
			theme.Body.Render(fmt.Sprintf("Hi %s, pick a level:", w.name)),
			"",
			w.menu.View(),
		)
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
