package latentfmt

import (
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/eleven-am/latentfmt/internal/duration"
	"github.com/eleven-am/latentfmt/internal/latent"
	"github.com/eleven-am/latentfmt/internal/logging"
	"github.com/eleven-am/latentfmt/internal/node"
	"github.com/eleven-am/latentfmt/internal/preset"
)

func newTestSelector(t *testing.T) (*Selector, *logging.Recorder) {
	t.Helper()
	log, rec := logging.NewRecorder()
	return NewSelector(Options{Logger: log}), rec
}

func shapeEquals(got []int, want ...int) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestEmptyLatent_Landscape720p(t *testing.T) {
	svc, _ := newTestSelector(t)

	l, err := svc.EmptyLatent(Request{Preset: "Landscape - 16:9 (720p)", Frames: 33, BatchSize: 1})
	if err != nil {
		t.Fatalf("empty latent: %v", err)
	}
	if l.Format.Width != 1280 || l.Format.Height != 720 {
		t.Fatalf("expected 1280x720, got %dx%d", l.Format.Width, l.Format.Height)
	}
	if !shapeEquals(l.Samples.Shape, 1, 4, 90, 160) {
		t.Fatalf("expected shape [1 4 90 160], got %v", l.Samples.Shape)
	}
	if !latent.AllZero(l.Samples) {
		t.Fatalf("expected zero-filled samples")
	}
	if l.Frames != 33 || l.Format.FrameSource != SourceDirect {
		t.Fatalf("expected direct frames 33, got %d (%s)", l.Frames, l.Format.FrameSource)
	}
}

func TestResolve_SquareWithShortDuration(t *testing.T) {
	svc, _ := newTestSelector(t)

	f, err := svc.Resolve(Request{
		Preset:       "Square - 1:1 (512px)",
		Duration:     "Short (3 seconds / 72 frames)",
		CustomFrames: 200,
		BatchSize:    1,
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if f.Width != 512 || f.Height != 512 || f.Frames != 72 {
		t.Fatalf("unexpected format %#v", f)
	}
	if f.DimensionSource != SourceTable || f.FrameSource != SourceTable {
		t.Fatalf("expected table sources, got %#v", f)
	}
}

func TestResolve_UnknownPresetFallsBackAndAligns(t *testing.T) {
	svc, _ := newTestSelector(t)

	f, err := svc.Resolve(Request{Preset: "Nonexistent", CustomWidth: 833, CustomHeight: 481, Frames: 33, BatchSize: 1})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if f.Width != 832 || f.Height != 480 {
		t.Fatalf("expected 832x480, got %dx%d", f.Width, f.Height)
	}
	if f.DimensionSource != SourceFallback {
		t.Fatalf("expected fallback source, got %s", f.DimensionSource)
	}
}

func TestResolve_CustomFrames(t *testing.T) {
	svc, _ := newTestSelector(t)

	f, err := svc.Resolve(Request{Preset: preset.Default, Duration: CustomFrames, CustomFrames: 200, BatchSize: 1})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if f.Frames != 200 || f.FrameSource != SourceFallback {
		t.Fatalf("expected custom 200 frames, got %d (%s)", f.Frames, f.FrameSource)
	}

	f, err = svc.Resolve(Request{Preset: preset.Default, Duration: "Forever", CustomFrames: 48, BatchSize: 1})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if f.Frames != 48 {
		t.Fatalf("unknown label should fall back to custom frames, got %d", f.Frames)
	}
}

func TestResolve_CustomResolutionSentinel(t *testing.T) {
	svc, _ := newTestSelector(t)

	f, err := svc.Resolve(Request{Preset: CustomResolution, CustomWidth: 1024, CustomHeight: 580, Frames: 1, BatchSize: 1})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if f.Width != 1024 || f.Height != 576 {
		t.Fatalf("expected 1024x576, got %dx%d", f.Width, f.Height)
	}
}

func TestResolve_EveryPresetAndDuration(t *testing.T) {
	svc, _ := newTestSelector(t)

	for _, p := range preset.All() {
		for _, d := range duration.All() {
			f, err := svc.Resolve(Request{Preset: p.Name, Duration: d.Label, CustomFrames: 1, BatchSize: 2})
			if err != nil {
				t.Fatalf("resolve %q/%q: %v", p.Name, d.Label, err)
			}
			if f.Width != p.Width-p.Width%8 || f.Height != p.Height-p.Height%8 {
				t.Fatalf("%q: got %dx%d", p.Name, f.Width, f.Height)
			}
			if f.Frames != d.Frames {
				t.Fatalf("%q: expected %d frames, got %d", d.Label, d.Frames, f.Frames)
			}
		}
	}
}

func TestResolve_RejectsUnusableValues(t *testing.T) {
	svc, _ := newTestSelector(t)

	tests := []struct {
		name string
		req  Request
		want error
	}{
		{"width rounds to zero", Request{Preset: CustomResolution, CustomWidth: 5, CustomHeight: 480, Frames: 1, BatchSize: 1}, ErrDimensionTooSmall},
		{"negative height", Request{Preset: CustomResolution, CustomWidth: 832, CustomHeight: -8, Frames: 1, BatchSize: 1}, ErrDimensionTooSmall},
		{"zero batch", Request{Preset: preset.Default, Frames: 1, BatchSize: 0}, ErrInvalidBatchSize},
		{"zero frames", Request{Preset: preset.Default, Frames: 0, BatchSize: 1}, ErrInvalidFrames},
		{"zero custom frames", Request{Preset: preset.Default, Duration: CustomFrames, BatchSize: 1}, ErrInvalidFrames},
		{"huge custom dimensions", Request{Preset: CustomResolution, CustomWidth: 1 << 40, CustomHeight: 1 << 40, Frames: 1, BatchSize: 1}, ErrLatentTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Resolve(tt.req); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestEmptyLatent_LogsOneDiagnosticLine(t *testing.T) {
	svc, rec := newTestSelector(t)

	l, err := svc.EmptyLatent(Request{Preset: "Square - 1:1 (512px)", Duration: "Short (3 seconds / 72 frames)", BatchSize: 2})
	if err != nil {
		t.Fatalf("empty latent: %v", err)
	}

	entries := rec.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected exactly one log entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Level != logging.LevelInfo || e.Message != "selected video format" {
		t.Fatalf("unexpected entry %#v", e)
	}
	if e.Attrs["dimensions"] != "512x512" || e.Attrs["frames"] != 72 || e.Attrs["batch_size"] != 2 {
		t.Fatalf("unexpected attrs %#v", e.Attrs)
	}
	if e.Attrs["duration"] != "3.00s" || e.Attrs["id"] != l.ID {
		t.Fatalf("unexpected attrs %#v", e.Attrs)
	}
}

func TestEmptyLatent_NoLogOnError(t *testing.T) {
	svc, rec := newTestSelector(t)

	if _, err := svc.EmptyLatent(Request{Preset: preset.Default, Frames: 1}); err == nil {
		t.Fatalf("expected error for zero batch")
	}
	if n := len(rec.Entries()); n != 0 {
		t.Fatalf("expected no log entries, got %d", n)
	}
}

func TestEmptyLatent_FreshBufferPerCall(t *testing.T) {
	svc, _ := newTestSelector(t)
	req := Request{Preset: "Square - 1:1 (512px)", Frames: 1, BatchSize: 1}

	a, _ := svc.EmptyLatent(req)
	b, _ := svc.EmptyLatent(req)
	a.Samples.Data[0] = 1
	if b.Samples.Data[0] != 0 {
		t.Fatalf("latents must not share buffers")
	}
	if a.ID == b.ID {
		t.Fatalf("expected distinct ids")
	}
}

func TestEmptyLatent_Concurrent(t *testing.T) {
	svc := NewSelector(Options{Logger: logging.Nop()})

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(batch int) {
			defer wg.Done()
			l, err := svc.EmptyLatent(Request{Preset: "Portrait - 9:16 (480p)", Frames: 33, BatchSize: batch})
			if err != nil {
				errs <- err
				return
			}
			if !shapeEquals(l.Samples.Shape, batch, 4, 104, 60) {
				errs <- errors.New("unexpected shape")
			}
		}(i%4 + 1)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}
}

func TestInfo(t *testing.T) {
	svc, _ := newTestSelector(t)

	if got := svc.Info("YouTube"); !strings.HasPrefix(got, "YouTube optimal formats:") {
		t.Fatalf("unexpected youtube info %q", got)
	}
	if got := svc.Info("MySpace"); got != "Format information not available." {
		t.Fatalf("unexpected fallback %q", got)
	}
	if got := svc.FrameInfo("120"); got != "120 frames = 5.00s at 24 fps" {
		t.Fatalf("unexpected frame info %q", got)
	}
	if got := svc.FrameInfo("lots"); got != "Format information not available." {
		t.Fatalf("unexpected frame fallback %q", got)
	}
}

func TestExecute_SelectorWithHostInputs(t *testing.T) {
	svc, _ := newTestSelector(t)

	var inputs Inputs
	raw := `{"format":"Nonexistent","frames":24,"batch_size":1,"custom_width":833,"custom_height":481}`
	if err := json.Unmarshal([]byte(raw), &inputs); err != nil {
		t.Fatalf("decode inputs: %v", err)
	}

	out, err := svc.Execute(node.ClassSelector, inputs)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if out.Latent == nil || !shapeEquals(out.Latent.Samples.Shape, 1, 4, 60, 104) {
		t.Fatalf("unexpected latent %#v", out.Latent)
	}
	if out.Latent.Frames != 24 {
		t.Fatalf("expected 24 frames, got %d", out.Latent.Frames)
	}
}

func TestExecute_DurationSelectorDefaults(t *testing.T) {
	svc, _ := newTestSelector(t)

	out, err := svc.Execute(node.ClassDurationSelector, Inputs{"format": "Square - 1:1 (512px)"})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if out.Latent.Frames != 72 || out.Latent.Format.Width != 512 {
		t.Fatalf("unexpected latent %#v", out.Latent.Format)
	}

	out, err = svc.Execute(node.ClassDurationSelector, Inputs{"duration": CustomFrames, "custom_frames": 200})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if out.Latent.Frames != 200 {
		t.Fatalf("expected custom frames 200, got %d", out.Latent.Frames)
	}
}

func TestExecute_InfoAndErrors(t *testing.T) {
	svc, _ := newTestSelector(t)

	out, err := svc.Execute(node.ClassInfo, Inputs{"platform": "TikTok"})
	if err != nil || !strings.Contains(out.Text, "9:16") {
		t.Fatalf("unexpected info output %q, %v", out.Text, err)
	}

	out, err = svc.Execute(node.ClassFrameInfo, nil)
	if err != nil || !strings.HasPrefix(out.Text, "Frame to seconds conversion") {
		t.Fatalf("unexpected frame info output %q, %v", out.Text, err)
	}

	if _, err := svc.Execute("Nope", nil); !errors.Is(err, ErrUnknownNode) {
		t.Fatalf("expected ErrUnknownNode, got %v", err)
	}
	if _, err := svc.Execute(node.ClassSelector, Inputs{"frames": "many"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestExecute_RejectsOversizedHostDimensions(t *testing.T) {
	svc, rec := newTestSelector(t)

	out, err := svc.Execute(node.ClassSelector, Inputs{
		"format":        CustomResolution,
		"custom_width":  float64(1 << 40),
		"custom_height": float64(1 << 40),
	})
	if !errors.Is(err, ErrLatentTooLarge) {
		t.Fatalf("expected ErrLatentTooLarge, got %v", err)
	}
	if out.Latent != nil {
		t.Fatalf("expected no latent, got shape %v", out.Latent.Samples.Shape)
	}
	if len(rec.Entries()) != 0 {
		t.Fatalf("expected no log line for a rejected request")
	}
}

func TestNodes_UseConfiguredDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Preset = "TikTok - 9:16 (1080px)"
	cfg.Frames = 48
	svc := NewSelector(Options{Logger: logging.Nop(), Defaults: &cfg})

	out, err := svc.Execute(node.ClassSelector, nil)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if out.Latent.Format.Width != 1080 || out.Latent.Format.Height != 1920 || out.Latent.Frames != 48 {
		t.Fatalf("defaults not applied: %#v", out.Latent.Format)
	}

	if len(svc.Nodes()) != 4 {
		t.Fatalf("expected 4 node classes, got %d", len(svc.Nodes()))
	}
	if svc.DisplayNames()[node.ClassSelector] != "📽️ Video Format Selector" {
		t.Fatalf("unexpected display names %v", svc.DisplayNames())
	}
	if _, err := svc.ObjectInfo(); err != nil {
		t.Fatalf("object info: %v", err)
	}
}
