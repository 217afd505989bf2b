package collector

import (
	"regexp"
	"strconv"
)

var durationRe = regexp.MustCompile(`^P(?:(\d+(?:\.\d+)?)W)?(?:(\d+(?:\.\d+)?)D)?(?:T(?:(\d+(?:\.\d+)?)H)?(?:(\d+(?:\.\d+)?)M)?(?:(\d+(?:\.\d+)?)S)?)?$`)

// Detik per komponen, sesuai urutan grup di durationRe.
var durationUnits = []float64{7 * 24 * 3600, 24 * 3600, 3600, 60, 1}

// ParseDuration mengubah durasi ISO 8601 (mis. "PT1M30S") menjadi detik.
// String kosong atau format yang tidak dikenali menghasilkan 0.
func ParseDuration(s string) int {
	if s == "" {
		return 0
	}
	m := durationRe.FindStringSubmatch(s)
	if m == nil {
		return 0
	}

	var total float64
	for i, unit := range durationUnits {
		part := m[i+1]
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return 0
		}
		total += v * unit
	}
	return int(total)
}
