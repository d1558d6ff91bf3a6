package document

import (
	"strings"
	"testing"

	"github.com/tsawler/figref/model"
)

func TestSplitIntoParagraphs_LineRanges(t *testing.T) {
	content := "Para one\n\nline a\nline b\n\nPara three"
	got := SplitIntoParagraphs(content)

	want := []model.Paragraph{
		{Content: "Para one", StartLine: 1, EndLine: 1, Lines: []string{"Para one"}},
		{Content: "line a\nline b", StartLine: 3, EndLine: 4, Lines: []string{"line a", "line b"}},
		{Content: "Para three", StartLine: 6, EndLine: 6, Lines: []string{"Para three"}},
	}

	if len(got) != len(want) {
		t.Fatalf("got %d paragraphs, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Content != want[i].Content {
			t.Errorf("paragraph %d content = %q, want %q", i, got[i].Content, want[i].Content)
		}
		if got[i].StartLine != want[i].StartLine || got[i].EndLine != want[i].EndLine {
			t.Errorf("paragraph %d range = [%d,%d], want [%d,%d]",
				i, got[i].StartLine, got[i].EndLine, want[i].StartLine, want[i].EndLine)
		}
	}
}

func TestSplitIntoParagraphs_EmptyBlocksAdvanceLines(t *testing.T) {
	// The run of blank lines between the paragraphs yields empty blocks
	// that advance the counter without emitting paragraphs.
	content := "first\n\n\n\nsecond"
	got := SplitIntoParagraphs(content)

	if len(got) != 2 {
		t.Fatalf("got %d paragraphs, want 2", len(got))
	}
	if got[1].StartLine != 4 {
		t.Errorf("second paragraph StartLine = %d, want 4", got[1].StartLine)
	}
}

func TestSplitIntoParagraphs_Empty(t *testing.T) {
	if got := SplitIntoParagraphs(""); len(got) != 0 {
		t.Errorf("got %d paragraphs from empty content, want 0", len(got))
	}
	if got := SplitIntoParagraphs("\n\n\n\n"); len(got) != 0 {
		t.Errorf("got %d paragraphs from blank content, want 0", len(got))
	}
}

func TestEnsureMinimumContext_ExpandsBothSides(t *testing.T) {
	paras := []string{"AAAAAAAAAA", "BBBBBBBBBB", "CCCCCCCCCC", "DDDDDDDDDD", "EEEEEEEEEE"}
	content := strings.Join(paras, "\n\n")

	got := EnsureMinimumContext(content, 24, "CCCCCCCCCC")
	want := "BBBBBBBBBB\n\nCCCCCCCCCC\n\nDDDDDDDDDD"
	if got != want {
		t.Errorf("EnsureMinimumContext() = %q, want %q", got, want)
	}
}

func TestEnsureMinimumContext_ClampsAtDocumentEdges(t *testing.T) {
	content := "short\n\ntarget paragraph\n\ntail"

	got := EnsureMinimumContext(content, 1000, "target paragraph")
	if got != content {
		t.Errorf("EnsureMinimumContext() = %q, want full document", got)
	}
}

func TestEnsureMinimumContext_TextNotFound(t *testing.T) {
	content := "some\n\nparagraphs\n\nhere"

	got := EnsureMinimumContext(content, 100, "absent text")
	if got != "absent text" {
		t.Errorf("EnsureMinimumContext() = %q, want the input text back", got)
	}
}

func TestEnsureMinimumContext_EmptyDocument(t *testing.T) {
	if got := EnsureMinimumContext("", 100, "text"); got != "text" {
		t.Errorf("EnsureMinimumContext() = %q, want %q", got, "text")
	}
}

func TestEnsureMinimumContext_ZeroMinimum(t *testing.T) {
	content := "one\n\ntwo\n\nthree"
	if got := EnsureMinimumContext(content, 0, "two"); got != "two" {
		t.Errorf("EnsureMinimumContext() = %q, want %q", got, "two")
	}
}
