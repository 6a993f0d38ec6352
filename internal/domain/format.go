package domain

type Dimensions struct {
	Width  int
	Height int
}

type Source string

const (
	SourceTable    Source = "table"
	SourceFallback Source = "fallback"
	SourceDirect   Source = "direct"
)

type Request struct {
	Preset       string
	CustomWidth  int
	CustomHeight int
	Duration     string
	CustomFrames int
	Frames       int
	BatchSize    int
}

type Format struct {
	Preset          string
	Width           int
	Height          int
	Frames          int
	BatchSize       int
	DimensionSource Source
	FrameSource     Source
}

type Tensor struct {
	Shape []int
	Data  []float32
}

type Latent struct {
	ID      string
	Format  Format
	Samples *Tensor
	Frames  int
}
