package discovery

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseISODuration converts an ISO 8601 duration as returned by the
// metadata API (e.g. "PT15M33S", "P1DT2H") to whole seconds, truncating
// any fractional second. Calendar months and years are not supported.
func ParseISODuration(s string) (int, error) {
	orig := s
	if !strings.HasPrefix(s, "P") || len(s) < 2 {
		return 0, fmt.Errorf("invalid ISO 8601 duration %q", orig)
	}
	s = s[1:]

	var total float64
	inTime := false
	components := 0
	num := ""

	for _, r := range s {
		switch {
		case r == 'T':
			if inTime || num != "" {
				return 0, fmt.Errorf("invalid ISO 8601 duration %q", orig)
			}
			inTime = true
		case (r >= '0' && r <= '9') || r == '.':
			num += string(r)
		default:
			if num == "" {
				return 0, fmt.Errorf("invalid ISO 8601 duration %q", orig)
			}
			v, err := strconv.ParseFloat(num, 64)
			if err != nil {
				return 0, fmt.Errorf("invalid ISO 8601 duration %q: %w", orig, err)
			}
			num = ""
			components++

			switch r {
			case 'W':
				total += v * 7 * 86400
			case 'D':
				total += v * 86400
			case 'H':
				total += v * 3600
			case 'M':
				if !inTime {
					return 0, fmt.Errorf("calendar months not supported in duration %q", orig)
				}
				total += v * 60
			case 'S':
				total += v
			default:
				return 0, fmt.Errorf("invalid ISO 8601 duration %q", orig)
			}
		}
	}

	if num != "" || components == 0 {
		return 0, fmt.Errorf("invalid ISO 8601 duration %q", orig)
	}
	return int(total), nil
}
