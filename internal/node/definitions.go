package node

import (
	"github.com/eleven-am/latentfmt/internal/config"
	"github.com/eleven-am/latentfmt/internal/domain"
	"github.com/eleven-am/latentfmt/internal/duration"
	"github.com/eleven-am/latentfmt/internal/info"
	"github.com/eleven-am/latentfmt/internal/preset"
)

const (
	ClassSelector         = "VideoFormatSelector"
	ClassDurationSelector = "VideoFormatDurationSelector"
	ClassInfo             = "VideoFormatInfo"
	ClassFrameInfo        = "VideoFrameInfo"

	Category = "Video Generation"
)

// Input names shared with the host graph.
const (
	InputFormat       = "format"
	InputFrames       = "frames"
	InputBatchSize    = "batch_size"
	InputCustomWidth  = "custom_width"
	InputCustomHeight = "custom_height"
	InputDuration     = "duration"
	InputCustomFrames = "custom_frames"
	InputPlatform     = "platform"
	InputFrameKey     = "frame_key"
)

func formatInput(def string) domain.InputSpec {
	return domain.InputSpec{Name: InputFormat, Type: domain.InputCombo, Default: def, Options: preset.Names()}
}

func batchInput(def int) domain.InputSpec {
	return domain.InputSpec{Name: InputBatchSize, Type: domain.InputInt, Default: def, Min: config.MinBatch, Max: config.MaxBatch, Step: 1}
}

func dimensionInputs(width, height int) []domain.InputSpec {
	return []domain.InputSpec{
		{Name: InputCustomWidth, Type: domain.InputInt, Default: width, Min: config.MinDimension, Max: config.MaxDimension, Step: config.DimensionStep, Display: "custom"},
		{Name: InputCustomHeight, Type: domain.InputInt, Default: height, Min: config.MinDimension, Max: config.MaxDimension, Step: config.DimensionStep, Display: "custom"},
	}
}

// Definitions returns the node contracts with widget defaults taken from cfg.
func Definitions(cfg config.Config) []domain.NodeDefinition {
	selectorInputs := []domain.InputSpec{
		formatInput(cfg.Preset),
		{Name: InputFrames, Type: domain.InputInt, Default: cfg.Frames, Min: config.MinFrames, Max: config.MaxFrames, Step: 1},
		batchInput(cfg.BatchSize),
	}
	selectorInputs = append(selectorInputs, dimensionInputs(cfg.CustomWidth, cfg.CustomHeight)...)

	durationInputs := []domain.InputSpec{
		formatInput(cfg.Preset),
		{Name: InputDuration, Type: domain.InputCombo, Default: cfg.Duration, Options: duration.Labels()},
		{Name: InputCustomFrames, Type: domain.InputInt, Default: cfg.CustomFrames, Min: config.MinFrames, Max: config.MaxFrames, Step: 1, Display: "custom"},
		batchInput(cfg.BatchSize),
	}
	durationInputs = append(durationInputs, dimensionInputs(cfg.CustomWidth, cfg.CustomHeight)...)

	return []domain.NodeDefinition{
		{
			Class:       ClassSelector,
			DisplayName: "📽️ Video Format Selector",
			Category:    Category,
			Description: "Generates an empty video latent sized from a format preset.",
			Inputs:      selectorInputs,
			Outputs:     []domain.OutputType{domain.OutputLatent},
			OutputNames: []string{"LATENT"},
		},
		{
			Class:       ClassDurationSelector,
			DisplayName: "⏱️ Video Format + Duration",
			Category:    Category,
			Description: "Generates an empty video latent sized from a format preset and a duration preset.",
			Inputs:      durationInputs,
			Outputs:     []domain.OutputType{domain.OutputLatent},
			OutputNames: []string{"LATENT"},
		},
		{
			Class:       ClassInfo,
			DisplayName: "ℹ️ Video Format Info",
			Category:    Category,
			Description: "Platform aspect ratio and resolution guidance.",
			Inputs: []domain.InputSpec{
				{Name: InputPlatform, Type: domain.InputCombo, Default: info.DefaultPlatform, Options: info.Platforms()},
			},
			Outputs:     []domain.OutputType{domain.OutputString},
			OutputNames: []string{"STRING"},
		},
		{
			Class:       ClassFrameInfo,
			DisplayName: "🎞️ Video Frame Info",
			Category:    Category,
			Description: "Frame count to seconds conversion at 24 fps.",
			Inputs: []domain.InputSpec{
				{Name: InputFrameKey, Type: domain.InputCombo, Default: info.ConversionTable, Options: info.FrameKeys()},
			},
			Outputs:     []domain.OutputType{domain.OutputString},
			OutputNames: []string{"STRING"},
		},
	}
}
