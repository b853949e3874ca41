package engine

import (
	"math"
	"strconv"
	"strings"
)

const progressMarker = "[download]"

// ParseProgress extracts the percentage from a yt-dlp progress line such as
// "[download]  42.0% of 10.00MiB at 1.2MiB/s". Only the first field carrying
// a '%' is considered; anything malformed is reported as no update.
func ParseProgress(line string) (float64, bool) {
	if !strings.Contains(line, progressMarker) || !strings.Contains(line, "%") {
		return 0, false
	}

	for _, field := range strings.Fields(line) {
		if !strings.Contains(field, "%") {
			continue
		}
		pct, err := strconv.ParseFloat(strings.ReplaceAll(field, "%", ""), 64)
		if err != nil || math.IsNaN(pct) || math.IsInf(pct, 0) || pct < 0 || pct > 100 {
			return 0, false
		}
		return pct, true
	}

	return 0, false
}
