package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		return m.handleKeyPress(key)
	}
	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		if m.Stage != StageDone {
			m.Cancelled = true
		}
		return m, tea.Quit
	case "up", "k":
		if m.Stage != StageDone && m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Stage != StageDone && m.Cursor < len(m.options())-1 {
			m.Cursor++
		}
	case "esc", "backspace":
		if m.Stage == StageDuration {
			m.Stage = StagePreset
			m.Cursor = indexOf(m.presets, m.Preset)
		}
	case "enter":
		return m.handleSelect()
	}
	return m, nil
}

func (m Model) handleSelect() (tea.Model, tea.Cmd) {
	switch m.Stage {
	case StagePreset:
		m.Preset = m.presets[m.Cursor]
		m.Stage = StageDuration
		m.Cursor = indexOf(m.durations, m.cfg.Duration)
	case StageDuration:
		m.Duration = m.durations[m.Cursor]
		m.Format, m.Err = m.resolver.Resolve(m.Request())
		m.Stage = StageDone
		return m, tea.Quit
	}
	return m, nil
}
