package captions

import (
	"regexp"
	"testing"
)

func TestFindInRange_GrowthPhase(t *testing.T) {
	lines := []string{
		"图1 上面",
		"",
		"目标行",
		"图2 下面",
		"",
		"",
		"图3 远处",
	}
	pat := regexp.MustCompile(`图\d+`)

	got := findInRange(lines, 3, pat, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 hits, got %d: %+v", len(got), got)
	}

	if got[0].lineIndex != 3 || got[0].distance != 1 {
		t.Errorf("first hit = line %d distance %d; want line 3 distance 1", got[0].lineIndex, got[0].distance)
	}
	if got[0].content != "图2 下面" {
		t.Errorf("first hit content = %q", got[0].content)
	}
	if got[1].lineIndex != 0 || got[1].distance != 2 {
		t.Errorf("second hit = line %d distance %d; want line 0 distance 2", got[1].lineIndex, got[1].distance)
	}

	// Character offsets count runes from the document start, one separator
	// per line.
	if got[0].charPos != 11 {
		t.Errorf("hit on line 3 at charPos %d, want 11", got[0].charPos)
	}
	if got[1].charPos != 0 {
		t.Errorf("hit on line 0 at charPos %d, want 0", got[1].charPos)
	}
}

func TestFindInRange_ExtendedSweepAfterGap(t *testing.T) {
	// Nothing at distance 1, so growth stops immediately; the extended
	// sweep still reaches the hit at distance 2.
	lines := []string{
		"",
		"",
		"目标",
		"",
		"图9 引用",
		"",
		"",
		"",
		"",
	}
	pat := regexp.MustCompile(`图\d+`)

	got := findInRange(lines, 3, pat, 2)
	if len(got) != 1 {
		t.Fatalf("expected 1 hit, got %d: %+v", len(got), got)
	}
	if got[0].lineIndex != 4 || got[0].distance != 2 {
		t.Errorf("hit = line %d distance %d; want line 4 distance 2", got[0].lineIndex, got[0].distance)
	}
}

func TestFindInRange_EmptyLinesSkipped(t *testing.T) {
	lines := []string{
		"   ",
		"目标",
		"\t",
	}
	pat := regexp.MustCompile(`.`)

	got := findInRange(lines, 2, pat, 5)
	if len(got) != 0 {
		t.Errorf("whitespace-only lines should never match, got %+v", got)
	}
}

func TestFindInRange_OutOfBoundsTarget(t *testing.T) {
	lines := []string{"图1"}
	pat := regexp.MustCompile(`图\d+`)

	if got := findInRange(lines, 50, pat, 3); len(got) != 0 {
		t.Errorf("target far outside the document should find nothing, got %+v", got)
	}
}
