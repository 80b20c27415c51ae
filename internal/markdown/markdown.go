// Package markdown holds the small amount of markdown awareness the section
// splicer needs: byte-range edits, ATX heading recognition, and the spans of
// code blocks in which heading-like lines must be ignored.
package markdown

import (
	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Range is a half-open byte range [Start, End) into a source document.
type Range struct {
	Start int
	End   int
}

// Contains reports whether offset lies inside r.
func (r Range) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}

// CodeRanges returns the spans of fenced and indented code block content in
// source, in document order. Each span starts at the beginning of the block's
// first content line.
func CodeRanges(source string) []Range {
	src := []byte(source)
	root := goldmark.New().Parser().Parse(text.NewReader(src))

	var ranges []Range
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch n.Kind() {
		case gmast.KindFencedCodeBlock, gmast.KindCodeBlock:
			lines := n.Lines()
			if lines.Len() == 0 {
				return gmast.WalkSkipChildren, nil
			}
			first := lines.At(0)
			last := lines.At(lines.Len() - 1)
			ranges = append(ranges, Range{Start: lineStart(source, first.Start), End: last.Stop})
			return gmast.WalkSkipChildren, nil
		}
		return gmast.WalkContinue, nil
	})
	return ranges
}

// InRanges reports whether offset falls inside any of ranges.
func InRanges(ranges []Range, offset int) bool {
	for _, r := range ranges {
		if r.Contains(offset) {
			return true
		}
	}
	return false
}

// HeadingLevel returns the ATX heading level (1-6) of line, or 0 when line is
// not an ATX heading. Up to three spaces of indentation are allowed.
func HeadingLevel(line string) int {
	i := 0
	for i < len(line) && i < 3 && line[i] == ' ' {
		i++
	}
	level := 0
	for i < len(line) && line[i] == '#' {
		level++
		i++
	}
	if level == 0 || level > 6 {
		return 0
	}
	if i < len(line) && line[i] != ' ' && line[i] != '\t' && line[i] != '\r' {
		return 0
	}
	return level
}

func lineStart(source string, offset int) int {
	for offset > 0 && source[offset-1] != '\n' {
		offset--
	}
	return offset
}
