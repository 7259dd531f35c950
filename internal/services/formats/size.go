package formats

import (
	"fmt"
	"math"
)

const (
	SizeUnknown = "Unknown"
	SizeVaries  = "Varies"
)

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatBytes renders a byte count with 1024-based units. Values of ten or
// more drop the decimal place.
func FormatBytes(n int64) string {
	if n <= 0 {
		return SizeUnknown
	}

	v := float64(n)
	i := 0
	for v >= 1024 && i < len(sizeUnits)-1 {
		v /= 1024
		i++
	}

	if v >= 10 {
		return fmt.Sprintf("%.0f %s", v, sizeUnits[i])
	}
	return fmt.Sprintf("%.1f %s", v, sizeUnits[i])
}

// combineSizes adds two byte counts. Either side unknown makes the sum
// unknown. The sum saturates at math.MaxInt64.
func combineSizes(a, b int64) (int64, string) {
	if a <= 0 || b <= 0 {
		return 0, SizeVaries
	}
	sum := int64(math.MaxInt64)
	if a <= math.MaxInt64-b {
		sum = a + b
	}
	return sum, FormatBytes(sum)
}
