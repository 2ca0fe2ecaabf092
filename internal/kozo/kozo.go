// Package kozo parses a building's freeform structure string
// (e.g. 木造スレート葺２階建) into floor labels and keeps the
// structure suffix and the floor-area rows mutually consistent as the
// user edits either side.
package kozo

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ssuzuki/toukidocs/internal/jptext"
)

var (
	groundRe   = regexp.MustCompile(`(\d+)階建`)
	basementRe = regexp.MustCompile(`地下(\d+)階付`)
	floorNumRe = regexp.MustCompile(`^(\d+)階$`)
	bsmtNumRe  = regexp.MustCompile(`^地下(\d+)階$`)
)

// FloorLabel renders the canonical full-width label for a ground floor.
func FloorLabel(n int) string {
	return jptext.ToFullWidthDigits(strconv.Itoa(n)) + "階"
}

// BasementLabel renders the canonical full-width label for a basement
// floor.
func BasementLabel(n int) string {
	return "地下" + jptext.ToFullWidthDigits(strconv.Itoa(n)) + "階"
}

// ParseFloors extracts the ordered floor labels from a structure
// string: ground floors 1..N ascending, then basement floors. A string
// with no recognizable floor-count suffix (including 平家建) counts as
// a single ground floor rather than a parse error.
func ParseFloors(structText string) []string {
	hw := jptext.ToHalfWidth(structText)
	ground := 1
	if m := groundRe.FindStringSubmatch(hw); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			ground = n
		}
	}
	basement := 0
	if m := basementRe.FindStringSubmatch(hw); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			basement = n
		}
	}
	labels := make([]string, 0, ground+basement)
	for i := 1; i <= ground; i++ {
		labels = append(labels, FloorLabel(i))
	}
	for i := 1; i <= basement; i++ {
		labels = append(labels, BasementLabel(i))
	}
	return labels
}

// ParseAnnexFloors is the annex variant of ParseFloors: annexes track
// their basement through a separate flag, never through the structure
// string, so only ground floors are produced.
func ParseAnnexFloors(structText string) []string {
	hw := jptext.ToHalfWidth(structText)
	ground := 1
	if m := groundRe.FindStringSubmatch(hw); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			ground = n
		}
	}
	labels := make([]string, 0, ground)
	for i := 1; i <= ground; i++ {
		labels = append(labels, FloorLabel(i))
	}
	return labels
}

// FloorArea is one floor-area row of a building or annex.
type FloorArea struct {
	ID    string `json:"id"`
	Floor string `json:"floor"`
	Area  string `json:"area"`
}

// floorNumber decodes a label into its ground or basement index.
func floorNumber(label string) (n int, basement, ok bool) {
	hw := jptext.ToHalfWidth(strings.TrimSpace(label))
	if m := bsmtNumRe.FindStringSubmatch(hw); m != nil {
		n, err := strconv.Atoi(m[1])
		return n, true, err == nil
	}
	if m := floorNumRe.FindStringSubmatch(hw); m != nil {
		n, err := strconv.Atoi(m[1])
		return n, false, err == nil
	}
	return 0, false, false
}

// ComputeStructFloor re-synthesizes the canonical floor-count suffix
// from the rows that actually carry an area. One ground floor renders
// as 平家建; basement floors prepend 地下Ｎ階付. The inverse of
// ParseFloors over filled rows.
func ComputeStructFloor(rows []FloorArea) string {
	maxGround, maxBasement := 0, 0
	for _, fa := range rows {
		if jptext.IsBlank(fa.Area) {
			continue
		}
		n, bsmt, ok := floorNumber(fa.Floor)
		if !ok {
			continue
		}
		if bsmt {
			if n > maxBasement {
				maxBasement = n
			}
		} else if n > maxGround {
			maxGround = n
		}
	}
	var suffix string
	if maxGround <= 1 {
		suffix = "平家建"
	} else {
		suffix = jptext.ToFullWidthDigits(strconv.Itoa(maxGround)) + "階建"
	}
	if maxBasement > 0 {
		return "地下" + jptext.ToFullWidthDigits(strconv.Itoa(maxBasement)) + "階付" + suffix
	}
	return suffix
}

// EnsureNextFloors appends a blank row above the highest filled ground
// floor (and basement floor, when hasBasement is set) so the user can
// keep typing upward. Rows already present are never removed or
// reordered.
func EnsureNextFloors(rows []FloorArea, hasBasement bool, newID func() string) []FloorArea {
	maxGround, maxBasement := 0, 0
	haveGround, haveBasement := map[int]bool{}, map[int]bool{}
	for _, fa := range rows {
		n, bsmt, ok := floorNumber(fa.Floor)
		if !ok {
			continue
		}
		filled := !jptext.IsBlank(fa.Area)
		if bsmt {
			haveBasement[n] = true
			if filled && n > maxBasement {
				maxBasement = n
			}
		} else {
			haveGround[n] = true
			if filled && n > maxGround {
				maxGround = n
			}
		}
	}
	out := make([]FloorArea, len(rows), len(rows)+2)
	copy(out, rows)
	if next := maxGround + 1; !haveGround[next] {
		out = append(out, FloorArea{ID: newID(), Floor: FloorLabel(next)})
	}
	if hasBasement {
		if next := maxBasement + 1; !haveBasement[next] {
			out = append(out, FloorArea{ID: newID(), Floor: BasementLabel(next)})
		}
	}
	return out
}

// RegenerateRows rebuilds the row set for the given labels, preserving
// area values (and row ids) by label. Used whenever the structure
// string changes so the rows and the suffix stay in sync.
func RegenerateRows(labels []string, prev []FloorArea, newID func() string) []FloorArea {
	byLabel := make(map[string]FloorArea, len(prev))
	for _, fa := range prev {
		key := jptext.ToHalfWidth(strings.TrimSpace(fa.Floor))
		if _, dup := byLabel[key]; !dup {
			byLabel[key] = fa
		}
	}
	out := make([]FloorArea, 0, len(labels))
	for _, label := range labels {
		key := jptext.ToHalfWidth(label)
		if ex, ok := byLabel[key]; ok {
			out = append(out, FloorArea{ID: ex.ID, Floor: label, Area: ex.Area})
			continue
		}
		out = append(out, FloorArea{ID: newID(), Floor: label})
	}
	return out
}
