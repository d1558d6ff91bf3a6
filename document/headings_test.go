package document

import (
	"strings"
	"testing"
)

func TestRemoveFigureDirectory_CJK(t *testing.T) {
	input := "# 报告\n\n正文开始\n\n# 图目录\n\n图1 增长\n图2 下降\n\n# 第一章\n\n内容"
	got := RemoveFigureDirectory(input)

	if strings.Contains(got, "图1 增长") {
		t.Errorf("directory entries survived: %q", got)
	}
	if !strings.Contains(got, "正文开始") || !strings.Contains(got, "# 第一章") {
		t.Errorf("surrounding content damaged: %q", got)
	}
}

func TestRemoveFigureDirectory_English(t *testing.T) {
	input := "# Intro\n\nbody\n\n## Table of Figures\n\nFigure 1 Revenue\nFigure 2 Costs\n\n## Results\n\nfindings"
	got := RemoveFigureDirectory(input)

	if strings.Contains(got, "Figure 1 Revenue") {
		t.Errorf("directory entries survived: %q", got)
	}
	if !strings.Contains(got, "## Results") || !strings.Contains(got, "findings") {
		t.Errorf("following section damaged: %q", got)
	}
}

func TestRemoveFigureDirectory_AtEndOfDocument(t *testing.T) {
	input := "# Intro\n\nbody\n\n# List of Figures\n\nFigure 1 Revenue"
	got := RemoveFigureDirectory(input)

	if strings.Contains(got, "Figure 1 Revenue") {
		t.Errorf("trailing directory survived: %q", got)
	}
	if !strings.Contains(got, "body") {
		t.Errorf("body lost: %q", got)
	}
}

func TestRemoveFigureDirectory_NoDirectory(t *testing.T) {
	input := "# Intro\n\nbody text\n\n# Chapter 1\n\nmore text"
	if got := RemoveFigureDirectory(input); got != input {
		t.Errorf("content without a directory changed:\n%q", got)
	}
}

func TestRemoveFigureDirectory_OnlyFirstMatchRemoved(t *testing.T) {
	input := "# 图目录\n\n图1 a\n\n# 正文\n\ntext\n\n# 图索引\n\n图2 b"
	got := RemoveFigureDirectory(input)

	if strings.Contains(got, "图1 a") {
		t.Errorf("first directory survived: %q", got)
	}
	// Only the first matching section is removed.
	if !strings.Contains(got, "图2 b") {
		t.Errorf("second directory should survive a single pass: %q", got)
	}
}
