// Package latentfmt provides video format nodes for node-graph generation hosts.
//
// A user picks a named format preset (aspect ratio and resolution tier) and
// optionally a duration preset. latentfmt resolves the choice into concrete
// dimensions and a frame count, then allocates the empty latent a video model
// starts sampling from.
//
// # Basic Usage
//
//	selector := latentfmt.NewSelector(latentfmt.Options{})
//
//	latent, err := selector.EmptyLatent(latentfmt.Request{
//	    Preset:    "Landscape - 16:9 (720p)",
//	    Duration:  "Short (3 seconds / 72 frames)",
//	    BatchSize: 1,
//	})
//	// latent.Samples.Shape == []int{1, 4, 90, 160}, latent.Frames == 72
//
// # Resolution Rules
//
//  1. The preset is looked up in the preset table. "Custom Resolution" and
//     unknown names fall back to CustomWidth x CustomHeight.
//  2. When Duration is set, it is looked up in the duration table. "Custom
//     frames" and unknown labels fall back to CustomFrames. When Duration is
//     empty, Frames is used as given.
//  3. Width and height are rounded down to a multiple of 8.
//  4. The latent has shape [batch, 4, height/8, width/8] and is zero filled.
//
// Unknown names are never errors. Which values came from a fallback is
// reported in Format.DimensionSource and Format.FrameSource.
//
// # Host Integration
//
// Execute runs a node class by name with the loosely typed inputs a graph
// host sends, and ObjectInfo describes every class with its widget types,
// defaults and bounds.
package latentfmt

import (
	"errors"
	"fmt"
	"os"

	"github.com/eleven-am/latentfmt/internal/config"
	"github.com/eleven-am/latentfmt/internal/domain"
	"github.com/eleven-am/latentfmt/internal/duration"
	"github.com/eleven-am/latentfmt/internal/info"
	"github.com/eleven-am/latentfmt/internal/latent"
	"github.com/eleven-am/latentfmt/internal/logging"
	"github.com/eleven-am/latentfmt/internal/node"
	"github.com/eleven-am/latentfmt/internal/preset"

	"github.com/google/uuid"
)

type (
	// Logger receives one diagnostic line per allocated latent. Arguments
	// after the message are slog-style key/value pairs.
	Logger = domain.Logger

	// Allocator creates the zero-filled sample buffer. Tests and hosts with
	// pooled memory may supply their own.
	Allocator = latent.Allocator

	// Config holds the widget defaults advertised by the node classes.
	Config = config.Config

	// Request is a format selection as entered by the user.
	Request = domain.Request

	// Format is a resolved selection with aligned dimensions.
	Format = domain.Format

	// Latent is the node output: sample buffer plus frame count.
	Latent = domain.Latent

	// Tensor is a dense float32 buffer with its shape.
	Tensor = domain.Tensor

	// Dimensions is a width/height pair in pixels.
	Dimensions = domain.Dimensions

	// Source tells whether a resolved value came from a table or a fallback.
	Source = domain.Source

	// Inputs are node inputs keyed by input name.
	Inputs = domain.Inputs

	// NodeOutput holds the result of Execute: a latent or a text.
	NodeOutput = domain.NodeOutput

	// NodeDefinition is the invocation contract of a node class.
	NodeDefinition = domain.NodeDefinition
)

const (
	// CustomResolution selects CustomWidth and CustomHeight.
	CustomResolution = preset.Custom

	// CustomFrames selects Request.CustomFrames.
	CustomFrames = duration.Custom

	SourceTable    = domain.SourceTable
	SourceFallback = domain.SourceFallback
	SourceDirect   = domain.SourceDirect
)

var (
	// ErrDimensionTooSmall is returned when width or height is below 8 after
	// rounding down.
	ErrDimensionTooSmall = preset.ErrDimensionTooSmall

	// ErrInvalidBatchSize is returned for a batch size below 1.
	ErrInvalidBatchSize = errors.New("batch size must be at least 1")

	// ErrInvalidFrames is returned when the resolved frame count is below 1.
	ErrInvalidFrames = errors.New("frame count must be at least 1")

	// ErrLatentTooLarge is returned when the sample buffer would exceed
	// latent.MaxElements floats.
	ErrLatentTooLarge = latent.ErrTooLarge

	// ErrUnknownNode is returned by Execute for an unregistered class.
	ErrUnknownNode = node.ErrUnknownNode

	// ErrInvalidInput is returned by Execute for inputs of the wrong type.
	ErrInvalidInput = node.ErrInvalidInput
)

// DefaultConfig returns the widget defaults of the original node set.
func DefaultConfig() Config {
	return config.Default()
}

// Options configures a Selector. The zero value is usable.
type Options struct {
	// Logger receives the per-call diagnostic line.
	// Default: development logger on stderr at info level.
	Logger Logger

	// Allocator creates sample buffers.
	// Default: plain zero-filled slices.
	Allocator Allocator

	// Defaults are the widget defaults advertised by Nodes and ObjectInfo
	// and used by Execute for missing inputs.
	// Default: DefaultConfig().
	Defaults *Config
}

func (o *Options) setDefaults() {
	if o.Logger == nil {
		o.Logger = logging.NewDevelopment(os.Stderr, logging.LevelInfo)
	}
	if o.Allocator == nil {
		o.Allocator = latent.ZeroAllocator{}
	}
	if o.Defaults == nil {
		def := config.Default()
		o.Defaults = &def
	}
}

// Selector resolves format selections and allocates empty latents.
//
// A Selector holds no per-call state and is safe for concurrent use as long
// as the injected Logger and Allocator are.
type Selector struct {
	opts     Options
	registry *node.Registry
}

// NewSelector creates a Selector and registers the node classes.
func NewSelector(opts Options) *Selector {
	opts.setDefaults()

	s := &Selector{
		opts:     opts,
		registry: node.NewRegistry(),
	}

	handlers := map[string]node.Handler{
		node.ClassSelector:         s.runSelector,
		node.ClassDurationSelector: s.runDurationSelector,
		node.ClassInfo:             s.runInfo,
		node.ClassFrameInfo:        s.runFrameInfo,
	}
	for _, def := range node.Definitions(*opts.Defaults) {
		s.registry.Register(def, handlers[def.Class])
	}

	return s
}

// Resolve turns a request into aligned dimensions and a frame count without
// allocating anything.
//
// Unknown presets and duration labels fall back to the custom values in the
// request. An error is returned only when the result cannot describe a
// latent: a dimension below 8 after rounding, a batch size below 1 or a
// frame count below 1.
func (s *Selector) Resolve(req Request) (Format, error) {
	dims, ok := preset.Lookup(req.Preset)
	dimSource := domain.SourceTable
	if !ok {
		dims = domain.Dimensions{Width: req.CustomWidth, Height: req.CustomHeight}
		dimSource = domain.SourceFallback
	}

	frames, frameSource := req.Frames, domain.SourceDirect
	if req.Duration != "" {
		if f, ok := duration.Lookup(req.Duration); ok {
			frames, frameSource = f, domain.SourceTable
		} else {
			frames, frameSource = req.CustomFrames, domain.SourceFallback
		}
	}

	aligned, err := preset.Normalize(dims)
	if err != nil {
		return Format{}, fmt.Errorf("resolve %q: %dx%d: %w", req.Preset, dims.Width, dims.Height, err)
	}
	if req.BatchSize < 1 {
		return Format{}, fmt.Errorf("resolve %q: batch size %d: %w", req.Preset, req.BatchSize, ErrInvalidBatchSize)
	}
	if frames < 1 {
		return Format{}, fmt.Errorf("resolve %q: frames %d: %w", req.Preset, frames, ErrInvalidFrames)
	}
	if _, err := latent.Elements(latent.Shape(req.BatchSize, aligned.Width, aligned.Height, preset.Alignment)...); err != nil {
		return Format{}, fmt.Errorf("resolve %q: %w", req.Preset, err)
	}

	return Format{
		Preset:          req.Preset,
		Width:           aligned.Width,
		Height:          aligned.Height,
		Frames:          frames,
		BatchSize:       req.BatchSize,
		DimensionSource: dimSource,
		FrameSource:     frameSource,
	}, nil
}

// EmptyLatent resolves the request and allocates a zero-filled latent of
// shape [batch, 4, height/8, width/8].
//
// Each call logs one line with the format, dimensions, frame count, batch
// size and duration in seconds at 24 fps. The latent gets a fresh ID that
// also appears in that line.
func (s *Selector) EmptyLatent(req Request) (*Latent, error) {
	f, err := s.Resolve(req)
	if err != nil {
		return nil, err
	}

	samples := latent.Empty(s.opts.Allocator, f.BatchSize, f.Width, f.Height, preset.Alignment)
	id := uuid.New().String()

	s.opts.Logger.Info("selected video format",
		"id", id,
		"format", f.Preset,
		"dimensions", fmt.Sprintf("%dx%d", f.Width, f.Height),
		"frames", f.Frames,
		"batch_size", f.BatchSize,
		"duration", duration.FormatSeconds(f.Frames),
	)

	return &Latent{
		ID:      id,
		Format:  f,
		Samples: samples,
		Frames:  f.Frames,
	}, nil
}

// Info returns aspect ratio and resolution guidance for a platform such as
// "YouTube" or "TikTok". Unknown platforms get a fixed "not available" text.
func (s *Selector) Info(platform string) string {
	if text, ok := info.Platform(platform); ok {
		return text
	}
	return info.NotAvailable
}

// FrameInfo converts a frame identifier to seconds at 24 fps. The key may be
// a frame count ("120"), a duration label, or "Conversion Table" for the full
// table. Unknown keys get the same "not available" text as Info.
func (s *Selector) FrameInfo(key string) string {
	if text, ok := info.Frames(key); ok {
		return text
	}
	return info.NotAvailable
}

// Nodes returns the invocation contracts of every node class.
func (s *Selector) Nodes() []NodeDefinition {
	return s.registry.Definitions()
}

// DisplayNames maps node class names to their display names.
func (s *Selector) DisplayNames() map[string]string {
	return s.registry.DisplayNames()
}

// ObjectInfo renders every node class as object-info JSON: input types,
// defaults, bounds, outputs and category.
func (s *Selector) ObjectInfo() ([]byte, error) {
	return s.registry.ObjectInfo()
}

// Execute runs a node class with host inputs. Missing inputs take their
// defaults and JSON numbers are accepted for integer inputs.
//
// Latent classes return NodeOutput.Latent; info classes return
// NodeOutput.Text.
func (s *Selector) Execute(class string, inputs Inputs) (NodeOutput, error) {
	return s.registry.Execute(class, inputs)
}

func (s *Selector) runSelector(in domain.Inputs) (domain.NodeOutput, error) {
	l, err := s.EmptyLatent(Request{
		Preset:       node.String(in, node.InputFormat),
		CustomWidth:  node.Int(in, node.InputCustomWidth),
		CustomHeight: node.Int(in, node.InputCustomHeight),
		Frames:       node.Int(in, node.InputFrames),
		BatchSize:    node.Int(in, node.InputBatchSize),
	})
	if err != nil {
		return domain.NodeOutput{}, err
	}
	return domain.NodeOutput{Latent: l}, nil
}

func (s *Selector) runDurationSelector(in domain.Inputs) (domain.NodeOutput, error) {
	label := node.String(in, node.InputDuration)
	if label == "" {
		label = duration.Custom
	}
	l, err := s.EmptyLatent(Request{
		Preset:       node.String(in, node.InputFormat),
		CustomWidth:  node.Int(in, node.InputCustomWidth),
		CustomHeight: node.Int(in, node.InputCustomHeight),
		Duration:     label,
		CustomFrames: node.Int(in, node.InputCustomFrames),
		BatchSize:    node.Int(in, node.InputBatchSize),
	})
	if err != nil {
		return domain.NodeOutput{}, err
	}
	return domain.NodeOutput{Latent: l}, nil
}

func (s *Selector) runInfo(in domain.Inputs) (domain.NodeOutput, error) {
	return domain.NodeOutput{Text: s.Info(node.String(in, node.InputPlatform))}, nil
}

func (s *Selector) runFrameInfo(in domain.Inputs) (domain.NodeOutput, error) {
	return domain.NodeOutput{Text: s.FrameInfo(node.String(in, node.InputFrameKey))}, nil
}
