package tui

import (
	"fmt"
	"strings"

	"github.com/eleven-am/latentfmt/internal/duration"
	"github.com/eleven-am/latentfmt/internal/preset"
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("📽️ Video Format Selector"))
	b.WriteString("\n")

	switch m.Stage {
	case StagePreset:
		b.WriteString(HintStyle.Render("Choose a format preset"))
		b.WriteString("\n\n")
		for i, name := range m.presets {
			b.WriteString(m.renderOption(i, name, m.presetHint(name)))
		}
	case StageDuration:
		b.WriteString(ChosenStyle.Render("Format: " + m.Preset))
		b.WriteString("\n")
		b.WriteString(HintStyle.Render("Choose a duration"))
		b.WriteString("\n\n")
		for i, label := range m.durations {
			b.WriteString(m.renderOption(i, label, ""))
		}
	case StageDone:
		if m.Err != nil {
			b.WriteString(WarnStyle.Render(fmt.Sprintf("❌ Error: %v", m.Err)))
		} else {
			b.WriteString(SummaryStyle.Render(FormatSummary(m.Format.Preset, m.Format.Width, m.Format.Height, m.Format.Frames, m.Format.BatchSize)))
		}
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString("\n")
	b.WriteString(HintStyle.Render("↑/↓ move | enter select | esc back | q quit"))
	return b.String()
}

func (m Model) renderOption(i int, label, hint string) string {
	if hint != "" {
		label = fmt.Sprintf("%s  %s", label, HintStyle.Render(hint))
	}
	if i == m.Cursor {
		return CursorStyle.Render("> "+label) + "\n"
	}
	return "  " + label + "\n"
}

func (m Model) presetHint(name string) string {
	if d, ok := preset.Lookup(name); ok {
		return fmt.Sprintf("%dx%d", d.Width, d.Height)
	}
	return fmt.Sprintf("%dx%d (custom)", m.cfg.CustomWidth, m.cfg.CustomHeight)
}

// FormatSummary renders a resolved format as a few plain lines.
func FormatSummary(name string, width, height, frames, batch int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Format:     %s\n", name)
	fmt.Fprintf(&b, "Dimensions: %dx%d\n", width, height)
	fmt.Fprintf(&b, "Latent:     [%d, 4, %d, %d]\n", batch, height/preset.Alignment, width/preset.Alignment)
	fmt.Fprintf(&b, "Frames:     %d (%s)\n", frames, duration.FormatSeconds(frames))
	fmt.Fprintf(&b, "Batch size: %d", batch)
	return b.String()
}
