package preset

import (
	"errors"

	"github.com/eleven-am/latentfmt/internal/domain"
)

const (
	Custom  = "Custom Resolution"
	Default = "Landscape - 16:9 (720p)"

	// Alignment is the spatial downscale factor of the latent space.
	Alignment = 8
)

var ErrDimensionTooSmall = errors.New("dimension below alignment after rounding")

type entry struct {
	name   string
	width  int
	height int
}

var table = []entry{
	{"Landscape - 16:9 (480p)", 832, 480},
	{"Landscape - 16:9 (720p)", 1280, 720},
	{"Landscape - 16:9 (1080p)", 1920, 1080},
	{"Portrait - 9:16 (480p)", 480, 832},
	{"Portrait - 9:16 (720p)", 720, 1280},
	{"Portrait - 9:16 (1080p)", 1080, 1920},
	{"Square - 1:1 (512px)", 512, 512},
	{"Square - 1:1 (768px)", 768, 768},
	{"Square - 1:1 (1080px)", 1080, 1080},
	{"Cinematic - 21:9 (480p)", 1120, 480},
	{"Cinematic - 21:9 (1080p)", 2520, 1080},
	{"Instagram - 4:5 (1080px)", 1080, 1350},
	{"TikTok - 9:16 (1080px)", 1080, 1920},
	{"YouTube - 16:9 (1080p)", 1920, 1080},
}

var byName = func() map[string]domain.Dimensions {
	m := make(map[string]domain.Dimensions, len(table))
	for _, e := range table {
		m[e.name] = domain.Dimensions{Width: e.width, Height: e.height}
	}
	return m
}()

// Lookup returns the stored dimensions for name. The Custom sentinel is not
// a table key and reports false, like any unknown name.
func Lookup(name string) (domain.Dimensions, bool) {
	d, ok := byName[name]
	return d, ok
}

// Names returns the preset names in widget order, ending with Custom.
func Names() []string {
	names := make([]string, 0, len(table)+1)
	for _, e := range table {
		names = append(names, e.name)
	}
	return append(names, Custom)
}

// All returns the table entries in widget order, without Custom.
func All() []Named {
	out := make([]Named, len(table))
	for i, e := range table {
		out[i] = Named{Name: e.name, Dimensions: domain.Dimensions{Width: e.width, Height: e.height}}
	}
	return out
}

type Named struct {
	Name string
	domain.Dimensions
}

// AlignDown rounds v down to a multiple of Alignment. It never rounds up.
func AlignDown(v int) int {
	return v - v%Alignment
}

func Normalize(d domain.Dimensions) (domain.Dimensions, error) {
	out := domain.Dimensions{
		Width:  AlignDown(d.Width),
		Height: AlignDown(d.Height),
	}
	if out.Width < Alignment || out.Height < Alignment {
		return out, ErrDimensionTooSmall
	}
	return out, nil
}

func AspectRatio(d domain.Dimensions) float64 {
	if d.Height == 0 {
		return 0
	}
	return float64(d.Width) / float64(d.Height)
}
