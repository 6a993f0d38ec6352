package duration

import "fmt"

const (
	Custom  = "Custom frames"
	Default = "Short (3 seconds / 72 frames)"

	FPS = 24
)

type entry struct {
	label  string
	frames int
}

var table = []entry{
	{"Very Short (1 second / 24 frames)", 24},
	{"Short (3 seconds / 72 frames)", 72},
	{"Medium (5 seconds / 120 frames)", 120},
	{"Long (8 seconds / 192 frames)", 192},
	{"Extended (10 seconds / 240 frames)", 240},
}

var byLabel = func() map[string]int {
	m := make(map[string]int, len(table))
	for _, e := range table {
		m[e.label] = e.frames
	}
	return m
}()

// Lookup reports the frame count for label. Custom is reserved and always
// misses so the caller applies its own frame count.
func Lookup(label string) (int, bool) {
	frames, ok := byLabel[label]
	return frames, ok
}

func Labels() []string {
	labels := make([]string, 0, len(table)+1)
	for _, e := range table {
		labels = append(labels, e.label)
	}
	return append(labels, Custom)
}

type Named struct {
	Label  string
	Frames int
}

func All() []Named {
	out := make([]Named, len(table))
	for i, e := range table {
		out[i] = Named{Label: e.label, Frames: e.frames}
	}
	return out
}

func Seconds(frames int) float64 {
	return float64(frames) / FPS
}

func FormatSeconds(frames int) string {
	return fmt.Sprintf("%.2fs", Seconds(frames))
}
