package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/eleven-am/latentfmt/internal/config"
	"github.com/eleven-am/latentfmt/internal/domain"
	"github.com/eleven-am/latentfmt/internal/duration"
	"github.com/eleven-am/latentfmt/internal/preset"
)

type Stage string

const (
	StagePreset   Stage = "preset"
	StageDuration Stage = "duration"
	StageDone     Stage = "done"
)

type Resolver interface {
	Resolve(req domain.Request) (domain.Format, error)
}

// Model walks the user through a preset and a duration choice and resolves
// the pair with the configured custom values.
type Model struct {
	resolver Resolver
	cfg      config.Config

	presets   []string
	durations []string

	Stage    Stage
	Cursor   int
	Preset   string
	Duration string

	Format    domain.Format
	Err       error
	Cancelled bool
}

func NewModel(resolver Resolver, cfg config.Config) Model {
	m := Model{
		resolver:  resolver,
		cfg:       cfg,
		presets:   preset.Names(),
		durations: duration.Labels(),
		Stage:     StagePreset,
	}
	m.Cursor = indexOf(m.presets, cfg.Preset)
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) options() []string {
	if m.Stage == StageDuration {
		return m.durations
	}
	return m.presets
}

// Request returns the selection made so far with the configured custom values.
func (m Model) Request() domain.Request {
	return domain.Request{
		Preset:       m.Preset,
		CustomWidth:  m.cfg.CustomWidth,
		CustomHeight: m.cfg.CustomHeight,
		Duration:     m.Duration,
		CustomFrames: m.cfg.CustomFrames,
		BatchSize:    m.cfg.BatchSize,
	}
}

func indexOf(items []string, want string) int {
	for i, item := range items {
		if item == want {
			return i
		}
	}
	return 0
}
