package splice

import (
	"strings"

	"git.home.luguber.info/inful/profilekit/internal/markdown"
)

// DefaultTerminators are the lines that end a heading-bounded section when no
// heading of equal or higher level comes first.
var DefaultTerminators = []string{"---"}

// Locator finds a section in a document. It is a closed set: Heading and
// Sentinel are the only implementations.
type Locator interface {
	// Find returns the byte range of the section in doc.
	Find(doc string) (markdown.Range, bool)
	// String describes the locator for logs and error context.
	String() string

	// wrap turns section content into the exact text stored in the document.
	wrap(content string) string
}

// Heading locates a section that starts at a heading line and runs until the
// next heading of equal or higher level, a terminator line, or the end of the
// document. Blank lines trailing the section stay outside it.
//
// Only the first occurrence of Text that begins a line outside a code block is
// considered; later identical headings are left alone. Text is matched as a
// prefix of that line when the rest of the line is blank or starts with "(",
// so a heading carrying a timestamp suffix still matches while a longer
// heading that merely starts with Text does not.
type Heading struct {
	Text string
	// Terminators are compared against whole lines with surrounding space
	// removed. Nil means DefaultTerminators; an empty non-nil slice disables them.
	Terminators []string
}

// Find implements Locator.
func (h Heading) Find(doc string) (markdown.Range, bool) {
	if h.Text == "" {
		return markdown.Range{}, false
	}
	code := markdown.CodeRanges(doc)

	start := -1
	for from := 0; from < len(doc); {
		idx := strings.Index(doc[from:], h.Text)
		if idx < 0 {
			break
		}
		idx += from
		if (idx == 0 || doc[idx-1] == '\n') && headingBoundary(doc, idx+len(h.Text)) && !markdown.InRanges(code, idx) {
			start = idx
			break
		}
		from = idx + 1
	}
	if start < 0 {
		return markdown.Range{}, false
	}

	level := markdown.HeadingLevel(h.Text)
	if level == 0 {
		level = 6
	}
	terminators := h.Terminators
	if terminators == nil {
		terminators = DefaultTerminators
	}

	end := len(doc)
	nl := strings.IndexByte(doc[start:], '\n')
	if nl >= 0 {
		for lineStart := start + nl + 1; lineStart < len(doc); {
			lineEnd := strings.IndexByte(doc[lineStart:], '\n')
			if lineEnd < 0 {
				lineEnd = len(doc)
			} else {
				lineEnd += lineStart
			}
			line := doc[lineStart:lineEnd]
			if !markdown.InRanges(code, lineStart) && endsSection(line, level, terminators) {
				end = lineStart
				break
			}
			lineStart = lineEnd + 1
		}
	}

	// Trailing blank lines belong to the surrounding document.
	floor := start + len(h.Text)
	for end > floor && isSpace(doc[end-1]) {
		end--
	}
	return markdown.Range{Start: start, End: end}, true
}

// headingBoundary reports whether the rest of the line from i is blank or a
// parenthesized suffix.
func headingBoundary(doc string, i int) bool {
	rest := doc[i:]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[:nl]
	}
	rest = strings.TrimLeft(rest, " \t\r")
	return rest == "" || rest[0] == '('
}

func endsSection(line string, level int, terminators []string) bool {
	if l := markdown.HeadingLevel(line); l > 0 && l <= level {
		return true
	}
	trimmed := strings.TrimSpace(line)
	for _, t := range terminators {
		if trimmed == t {
			return true
		}
	}
	return false
}

func (h Heading) String() string { return "heading " + h.Text }

func (h Heading) wrap(content string) string { return content }

// Sentinel locates a section delimited by explicit start and end markers, such
// as HTML comments. The section includes both markers.
type Sentinel struct {
	Start string
	End   string
}

// Find implements Locator.
func (s Sentinel) Find(doc string) (markdown.Range, bool) {
	if s.Start == "" || s.End == "" {
		return markdown.Range{}, false
	}
	start := strings.Index(doc, s.Start)
	if start < 0 {
		return markdown.Range{}, false
	}
	after := start + len(s.Start)
	end := strings.Index(doc[after:], s.End)
	if end < 0 {
		return markdown.Range{}, false
	}
	return markdown.Range{Start: start, End: after + end + len(s.End)}, true
}

func (s Sentinel) String() string { return "sentinel " + s.Start + "..." + s.End }

func (s Sentinel) wrap(content string) string {
	return s.Start + "\n" + content + "\n" + s.End
}

// CommentSentinel returns the <!--START_SECTION:name--> / <!--END_SECTION:name-->
// marker pair used by profile README tooling.
func CommentSentinel(name string) Sentinel {
	return Sentinel{
		Start: "<!--START_SECTION:" + name + "-->",
		End:   "<!--END_SECTION:" + name + "-->",
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
