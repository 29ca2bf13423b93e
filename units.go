package aieps

import (
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2"
)

// unitToPt holds the number of points per unit for the units with a fixed physical size.
var unitToPt = map[string]float64{
	"in": 72.0,
	"pt": 1.0,
	"mm": 2.8346456695,
	"cm": 28.346456695,
	"m":  2834.6456695,
	"pc": 12.0,
}

// units converts lengths between physical units and the two document relative units, pixels (px) and user units (uu).
type units struct {
	px float64 // points per pixel
	uu float64 // points per user unit
}

func newUnits(px float64) units {
	return units{px: px, uu: px}
}

// ratio returns the number of points per unit. Unknown units are user units.
func (u units) ratio(unit string) float64 {
	switch unit {
	case "px":
		return u.px
	case "uu":
		return u.uu
	}
	if r, ok := unitToPt[unit]; ok {
		return r
	}
	return u.uu
}

// convert converts a length such as 12.5mm into the unit to. An empty length is zero.
func (u units) convert(v, to string) (float64, error) {
	v = strings.TrimSpace(v)
	if len(v) == 0 {
		return 0.0, nil
	}

	nn, _ := parse.Dimension([]byte(v))
	num, err := strconv.ParseFloat(v[:nn], 64)
	if err != nil {
		return 0.0, &ParseError{Value: v, Reason: "bad length"}
	}
	unit := strings.ToLower(strings.TrimSpace(v[nn:]))
	if _, ok := unitToPt[unit]; !ok && unit != "px" {
		unit = "uu"
	}
	if unit == to {
		return num, nil
	}
	return num * u.ratio(unit) / u.ratio(to), nil
}

// pxRatio returns the number of points per pixel for a document written by the given authoring tool version. Versions older than modern used 90 instead of 96 pixels per inch.
func pxRatio(version, modern string, legacy float64) float64 {
	if len(versionNumbers(version)) != 0 && compareVersions(version, modern) < 0 {
		return legacy
	}
	return 1.0
}

// compareVersions compares the leading dotted numbers of two version strings, such as "0.92.3 (2405546, 2018-03-11)".
func compareVersions(a, b string) int {
	va, vb := versionNumbers(a), versionNumbers(b)
	for i := 0; i < len(va) || i < len(vb); i++ {
		var na, nb int
		if i < len(va) {
			na = va[i]
		}
		if i < len(vb) {
			nb = vb[i]
		}
		if na < nb {
			return -1
		} else if nb < na {
			return 1
		}
	}
	return 0
}

func versionNumbers(v string) []int {
	v = strings.TrimSpace(v)
	end := 0
	for end < len(v) && ('0' <= v[end] && v[end] <= '9' || v[end] == '.') {
		end++
	}
	nums := []int{}
	for _, s := range strings.Split(v[:end], ".") {
		if n, err := strconv.Atoi(s); err == nil {
			nums = append(nums, n)
		}
	}
	return nums
}
