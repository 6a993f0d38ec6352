package info

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/eleven-am/latentfmt/internal/duration"
)

const (
	DefaultPlatform = "General Info"
	ConversionTable = "Conversion Table"
	NotAvailable    = "Format information not available."
)

var platformOrder = []string{
	"YouTube",
	"TikTok",
	"Instagram",
	"Facebook",
	"Twitter/X",
	"Cinematic",
	DefaultPlatform,
}

var platforms = map[string]string{
	"YouTube": "YouTube optimal formats:\n" +
		"- 16:9 aspect ratio\n" +
		"- Recommended resolutions: 1920x1080 (1080p), 2560x1440 (1440p)\n" +
		"- Up to 60fps\n" +
		"- H.264 codec recommended",
	"TikTok": "TikTok optimal formats:\n" +
		"- 9:16 aspect ratio (vertical)\n" +
		"- Recommended resolution: 1080x1920\n" +
		"- 15-60fps\n" +
		"- Video length: 15 sec to 3 min\n" +
		"- Cover image at 1:1.91 ratio",
	"Instagram": "Instagram optimal formats:\n" +
		"- Feed posts: 1:1 (square) or 4:5 (portrait)\n" +
		"- Stories/Reels: 9:16 (1080x1920px)\n" +
		"- IGTV: 16:9 (landscape)\n" +
		"- Recommended resolution: at least 1080px width",
	"Facebook": "Facebook optimal formats:\n" +
		"- Feed: 16:9, 1:1, 4:5, 2:3 supported\n" +
		"- Stories: 9:16 (1080x1920px)\n" +
		"- Recommended resolutions: 1280x720 (min), 1920x1080 (optimal)\n" +
		"- 30fps recommended",
	"Twitter/X": "Twitter/X optimal formats:\n" +
		"- 16:9 aspect ratio preferred\n" +
		"- Maximum resolution: 1920x1200\n" +
		"- Max file size: 512MB\n" +
		"- Max length: 2 minutes 20 seconds",
	"Cinematic": "Cinematic formats:\n" +
		"- Standard: 2.39:1 or 21:9 aspect ratio\n" +
		"- Anamorphic: 2.40:1\n" +
		"- IMAX: 1.90:1\n" +
		"- 4K DCI: 4096x2160\n" +
		"- 4K UHD: 3840x2160\n" +
		"- 24fps standard",
	DefaultPlatform: "Common video formats:\n" +
		"- 16:9 (Landscape): Standard for most platforms\n" +
		"- 9:16 (Portrait): Mobile optimized for stories/reels\n" +
		"- 1:1 (Square): Universal compatibility\n" +
		"- 4:5 (Portrait): Instagram feed optimal\n" +
		"- 21:9 (Ultrawide): Cinematic look\n" +
		"\n" +
		"Resolution terminology:\n" +
		"- 480p: 832x480 (SD)\n" +
		"- 720p: 1280x720 (HD)\n" +
		"- 1080p: 1920x1080 (Full HD)\n" +
		"- 1440p: 2560x1440 (QHD)\n" +
		"- 2160p: 3840x2160 (4K UHD)",
}

func Platforms() []string {
	out := make([]string, len(platformOrder))
	copy(out, platformOrder)
	return out
}

func Platform(key string) (string, bool) {
	text, ok := platforms[key]
	return text, ok
}

// FrameKeys lists the frame identifiers Frames answers for: the conversion
// table, every duration label and every duration frame count.
func FrameKeys() []string {
	keys := []string{ConversionTable}
	for _, d := range duration.All() {
		keys = append(keys, d.Label)
	}
	for _, d := range duration.All() {
		keys = append(keys, strconv.Itoa(d.Frames))
	}
	return keys
}

// Frames answers a frame-count identifier: ConversionTable, a duration
// label, or a decimal frame count.
func Frames(key string) (string, bool) {
	if key == ConversionTable {
		return conversionTable(), true
	}
	if frames, ok := duration.Lookup(key); ok {
		return describeFrames(frames), true
	}
	frames, err := strconv.Atoi(strings.TrimSpace(key))
	if err != nil || frames < 1 {
		return "", false
	}
	return describeFrames(frames), true
}

func describeFrames(frames int) string {
	return fmt.Sprintf("%d frames = %s at %d fps", frames, duration.FormatSeconds(frames), duration.FPS)
}

func conversionTable() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Frame to seconds conversion (%d fps):\n", duration.FPS)
	for _, d := range duration.All() {
		fmt.Fprintf(&b, "- %d frames: %s\n", d.Frames, duration.FormatSeconds(d.Frames))
	}
	b.WriteString("- Custom: frames / 24 = seconds")
	return b.String()
}
