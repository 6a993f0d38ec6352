// Command latentfmt resolves video format presets from the command line and
// prints the node contracts a graph host loads.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/eleven-am/latentfmt"
	"github.com/eleven-am/latentfmt/internal/config"
	"github.com/eleven-am/latentfmt/internal/duration"
	"github.com/eleven-am/latentfmt/internal/info"
	"github.com/eleven-am/latentfmt/internal/logging"
	"github.com/eleven-am/latentfmt/internal/node"
	"github.com/eleven-am/latentfmt/internal/preset"
	"github.com/eleven-am/latentfmt/internal/tui"
)

// version is set at build time via -ldflags.
var version = "0.1.0-dev"

const usage = `latentfmt %s

Usage:
  latentfmt <command> [flags]

Commands:
  resolve     resolve a preset and allocate the empty latent
  presets     list format presets
  durations   list duration presets
  info        show platform guidance or frame conversions
  nodes       print node object-info JSON
  pick        choose a preset interactively

Defaults are read from .env and LATENTFMT_* variables.
`

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "latentfmt: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	cfg, err := config.Load(os.Getenv("LATENTFMT_ENV_FILE"))
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	applyColorMode(cfg.ColorMode)

	selector := latentfmt.NewSelector(latentfmt.Options{
		Logger:   logging.NewDevelopment(os.Stderr, level),
		Defaults: &cfg,
	})

	if len(args) == 0 {
		fmt.Fprintf(out, usage, version)
		return nil
	}

	// -h on a subcommand has already printed that command's flags
	err = runCommand(selector, cfg, args, out)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	return err
}

func runCommand(selector *latentfmt.Selector, cfg config.Config, args []string, out io.Writer) error {
	switch args[0] {
	case "resolve":
		return runResolve(selector, cfg, args[1:], out)
	case "presets":
		return runPresets(cfg, out)
	case "durations":
		return runDurations(out)
	case "info":
		return runInfo(selector, args[1:], out)
	case "nodes":
		b, err := selector.ObjectInfo()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(b))
		return err
	case "pick":
		return runPick(selector, cfg, out)
	case "version", "--version", "-v":
		_, err := fmt.Fprintf(out, "latentfmt %s\n", version)
		return err
	case "help", "--help", "-h":
		fmt.Fprintf(out, usage, version)
		return nil
	}
	return fmt.Errorf("unknown command %q (run 'latentfmt help')", args[0])
}

func applyColorMode(mode config.ColorMode) {
	switch mode {
	case config.ColorNever:
		lipgloss.SetColorProfile(termenv.Ascii)
	case config.ColorAlways:
		lipgloss.SetColorProfile(termenv.TrueColor)
	}
}

func runResolve(selector *latentfmt.Selector, cfg config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("resolve", flag.ContinueOnError)
	fs.SetOutput(out)
	format := fs.String("format", cfg.Preset, "format preset name (see 'presets')")
	width := fs.Int("width", cfg.CustomWidth, "custom width, used for Custom Resolution or unknown presets")
	height := fs.Int("height", cfg.CustomHeight, "custom height, used for Custom Resolution or unknown presets")
	frames := fs.Int("frames", cfg.Frames, "frame count when no duration is given")
	dur := fs.String("duration", "", "duration preset label (see 'durations')")
	customFrames := fs.Int("custom-frames", cfg.CustomFrames, "frame count for 'Custom frames' or unknown durations")
	batch := fs.Int("batch", cfg.BatchSize, "batch size")
	asJSON := fs.Bool("json", false, "print the output record as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	l, err := selector.EmptyLatent(latentfmt.Request{
		Preset:       *format,
		CustomWidth:  *width,
		CustomHeight: *height,
		Frames:       *frames,
		Duration:     *dur,
		CustomFrames: *customFrames,
		BatchSize:    *batch,
	})
	if err != nil {
		return err
	}

	if *asJSON {
		b, err := node.EncodeOutput(l)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(b))
		return err
	}

	f := l.Format
	summary := tui.FormatSummary(f.Preset, f.Width, f.Height, f.Frames, f.BatchSize)
	if f.DimensionSource == latentfmt.SourceFallback && f.Preset != latentfmt.CustomResolution {
		summary += "\n" + tui.WarnStyle.Render("unknown preset, used custom dimensions")
	}
	_, err = fmt.Fprintln(out, tui.SummaryStyle.Render(summary))
	return err
}

func runPresets(cfg config.Config, out io.Writer) error {
	var b strings.Builder
	b.WriteString(tui.TitleStyle.Render("Format presets"))
	b.WriteString("\n")
	for _, p := range preset.All() {
		marker := "  "
		if p.Name == cfg.Preset {
			marker = "* "
		}
		fmt.Fprintf(&b, "%s%-26s %5dx%-5d %s\n", marker, p.Name, p.Width, p.Height,
			tui.HintStyle.Render(fmt.Sprintf("ratio %.2f, latent %dx%d", preset.AspectRatio(p.Dimensions), p.Width/preset.Alignment, p.Height/preset.Alignment)))
	}
	fmt.Fprintf(&b, "  %-26s %5dx%-5d %s\n", preset.Custom, cfg.CustomWidth, cfg.CustomHeight, tui.HintStyle.Render("from custom width/height"))
	_, err := io.WriteString(out, b.String())
	return err
}

func runDurations(out io.Writer) error {
	var b strings.Builder
	b.WriteString(tui.TitleStyle.Render(fmt.Sprintf("Duration presets (%d fps)", duration.FPS)))
	b.WriteString("\n")
	for _, d := range duration.All() {
		fmt.Fprintf(&b, "  %-36s %4d frames  %s\n", d.Label, d.Frames, tui.HintStyle.Render(duration.FormatSeconds(d.Frames)))
	}
	fmt.Fprintf(&b, "  %-36s %s\n", duration.Custom, tui.HintStyle.Render("from custom frames"))
	_, err := io.WriteString(out, b.String())
	return err
}

func runInfo(selector *latentfmt.Selector, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	fs.SetOutput(out)
	platform := fs.String("platform", info.DefaultPlatform, "platform: "+strings.Join(info.Platforms(), ", "))
	frames := fs.String("frames", "", "frame count, duration label or '"+info.ConversionTable+"'")
	if err := fs.Parse(args); err != nil {
		return err
	}

	text := selector.Info(*platform)
	if *frames != "" {
		text = selector.FrameInfo(*frames)
	}
	_, err := fmt.Fprintln(out, text)
	return err
}

func runPick(selector *latentfmt.Selector, cfg config.Config, out io.Writer) error {
	final, err := tea.NewProgram(tui.NewModel(selector, cfg)).Run()
	if err != nil {
		return fmt.Errorf("run picker: %w", err)
	}
	m, ok := final.(tui.Model)
	if !ok || m.Cancelled {
		return nil
	}
	if m.Err != nil {
		return m.Err
	}

	// the picker only resolves; allocation happens here
	l, err := selector.EmptyLatent(m.Request())
	if err != nil {
		return err
	}
	b, err := node.EncodeOutput(l)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(b))
	return err
}
