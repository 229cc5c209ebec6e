package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/huh"
)

// FormKeyMap is the huh keymap used by every form: esc cancels, since
// ctrl+c quits the application.
func FormKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	)
	return km
}

// NewForm builds a huh form sized for the content area with FormKeyMap.
func NewForm(width, height int, groups ...*huh.Group) *huh.Form {
	return huh.NewForm(groups...).
		WithKeyMap(FormKeyMap()).
		WithWidth(FormWidth(width)).
		WithHeight(FormHeight(height))
}

// FormWidth clamps a form width to a readable range.
func FormWidth(width int) int {
	w := width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

// FormHeight leaves room for the page title above a form.
func FormHeight(height int) int {
	h := height - 4
	if h < 10 {
		h = 10
	}
	return h
}
