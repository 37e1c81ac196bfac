package valueobject

import "math"

const DefaultTargetWidth = 800

const minSourceWidth = 1e-6

var sizeTargets = map[string]int{
	"thumb":  150,
	"medium": 800,
	"large":  1600,
}

// TargetWidth returns the configured output width for a size name, falling
// back to DefaultTargetWidth for names not in the table.
func TargetWidth(size string) int {
	if w, ok := sizeTargets[size]; ok {
		return w
	}
	return DefaultTargetWidth
}

// TargetDims maps a size name and source dimensions to output dimensions.
// The scale is always taken from the width, portrait sources included.
func TargetDims(size string, srcWidth, srcHeight int) (int, int) {
	width := TargetWidth(size)
	scale := float64(width) / math.Max(float64(srcWidth), minSourceWidth)

	height := int(math.Round(float64(srcHeight) * scale))
	if height < 1 {
		height = 1
	}
	return width, height
}
