package captions

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// element is a pattern hit found in the neighbourhood of a target line.
type element struct {
	// lineIndex is the 0-based index into the document's line slice.
	lineIndex int

	// content is the matched line, stripped of surrounding whitespace.
	content string

	// distance is the line distance from the target at which the hit was
	// found.
	distance int

	// charPos is the character offset of the match in the full document.
	charPos int
}

// findInRange searches lines at expanding distances around a 1-based target
// line. Distances grow one at a time while every distance keeps producing
// hits; the first empty distance ends the growth phase, and a single
// extended sweep from there closes the search. Each line is inspected at
// most once.
func findInRange(lines []string, targetLine int, pattern *regexp.Regexp, maxRange int) []element {
	targetIndex := targetLine - 1
	checked := make(map[int]bool)
	var found []element

	check := func(lineIndex, distance int) bool {
		if lineIndex < 0 || lineIndex >= len(lines) || checked[lineIndex] {
			return false
		}
		checked[lineIndex] = true

		stripped := strings.TrimSpace(lines[lineIndex])
		if stripped == "" || !pattern.MatchString(stripped) {
			return false
		}

		// Character offset of the match, counted from the start of the
		// document.
		pos := 0
		for i := 0; i < lineIndex; i++ {
			pos += len([]rune(lines[i])) + 1
		}
		if loc := pattern.FindStringIndex(lines[lineIndex]); loc != nil {
			pos += utf8.RuneCountInString(lines[lineIndex][:loc[0]])
		}

		found = append(found, element{
			lineIndex: lineIndex,
			content:   stripped,
			distance:  distance,
			charPos:   pos,
		})
		return true
	}

	// Growth phase: expand while hits keep coming.
	breakDistance := maxRange + 1
	for distance := 1; distance <= maxRange; distance++ {
		hitAbove := check(targetIndex-distance, distance)
		hitBelow := check(targetIndex+distance, distance)
		if !hitAbove && !hitBelow {
			breakDistance = distance
			break
		}
	}

	// Extended sweep past the first empty distance. Skipped when the growth
	// phase already covered the full base range.
	if breakDistance <= maxRange {
		end := breakDistance + maxRange
		if half := len(lines) / 2; end > half {
			end = half
		}
		if end < maxRange {
			end = maxRange
		}
		for distance := breakDistance; distance <= end; distance++ {
			check(targetIndex-distance, distance)
			check(targetIndex+distance, distance)
		}
	}

	return found
}
