package landing_test

import (
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/admin-panel/internal/i18n"
	"github.com/nhle/admin-panel/internal/ui/landing"
)

func TestUpdate_OpensForms(t *testing.T) {
	m := landing.New(i18n.MustNew(), i18n.English, 100, 30)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")})
	require.NotNil(t, cmd)
	assert.Equal(t, landing.LoginMsg{}, cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	require.NotNil(t, cmd)
	assert.Equal(t, landing.SignupMsg{}, cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Nil(t, cmd)
}

func TestView_TranslatesAndShowsYear(t *testing.T) {
	m := landing.New(i18n.MustNew(), i18n.Indonesian, 120, 30)

	view := m.View()
	assert.Contains(t, view, "Kelola bisnis Anda dari satu panel")
	assert.Contains(t, view, fmt.Sprint(time.Now().Year()))
}
