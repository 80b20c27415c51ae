// Package splice replaces or inserts a generated section inside a markdown
// document. It is pure text in, text out: reading and writing the document is
// the caller's job.
package splice

import (
	"strings"

	ferrors "git.home.luguber.info/inful/profilekit/internal/foundation/errors"
	"git.home.luguber.info/inful/profilekit/internal/markdown"
)

// Sentinel errors; match with errors.Is. Returned errors carry extra context.
var (
	ErrSectionNotFound = ferrors.SectionError("section not found").Build()
	ErrAnchorNotFound  = ferrors.AnchorError("insertion anchor not found").Build()
	ErrEmptyContent    = ferrors.ValidationError("section content is empty").Build()
	// ErrContentMismatch means the locator would not find the spliced content
	// as one whole section, so a second run could not replace it.
	ErrContentMismatch = ferrors.ValidationError("section content does not match its locator").Build()
)

// Position says on which side of its anchor a new section is inserted.
type Position string

const (
	Before Position = "before"
	After  Position = "after"
)

// Anchor positions a section that does not exist yet.
type Anchor struct {
	Text     string
	Position Position
	// Scope, when set, restricts the search for Text to the part of the
	// document after the first occurrence of Scope.
	Scope string
}

// Action records what Splice did.
type Action string

const (
	Replaced Action = "replaced"
	Inserted Action = "inserted"
)

// Options controls a single Splice call.
type Options struct {
	// Anchor is required for the insertion path only.
	Anchor *Anchor
	// AllowEmpty permits blank content, which blanks the section out. Only a
	// Sentinel can hold an empty section; a Heading needs its heading line.
	AllowEmpty bool
}

// Result is the outcome of a successful Splice.
type Result struct {
	Text   string
	Action Action
	// Range is where the section now lives in Text.
	Range markdown.Range
}

// Splice replaces the section found by loc with content, or inserts it at the
// anchor when the section is absent. doc is never modified; on error the
// caller keeps using doc as it was.
//
// Content is normalized by dropping leading blank lines and trailing
// whitespace, so repeated runs do not accumulate blank lines. With the same
// content, splicing an already spliced document returns it unchanged.
//
// The stored block must be exactly what loc finds when searching the block
// alone: heading content starts with the heading text and holds no line that
// would end the section, sentinel content holds no end marker. Anything else
// is rejected with ErrContentMismatch.
func Splice(doc string, loc Locator, content string, opts Options) (Result, error) {
	content = normalize(content)
	if content == "" && !opts.AllowEmpty {
		return Result{}, ErrEmptyContent.WithContext("locator", loc.String())
	}
	block := loc.wrap(content)
	if r, ok := loc.Find(block); !ok || r.Start != 0 || r.End != len(block) {
		return Result{}, ErrContentMismatch.WithContext("locator", loc.String())
	}

	if r, ok := loc.Find(doc); ok {
		text, err := markdown.ApplyEdits(doc, markdown.Edit{Start: r.Start, End: r.End, Replacement: block})
		if err != nil {
			return Result{}, ferrors.WrapError(err, ferrors.CategoryInternal, "apply section edit").Build()
		}
		return Result{
			Text:   text,
			Action: Replaced,
			Range:  markdown.Range{Start: r.Start, End: r.Start + len(block)},
		}, nil
	}

	if opts.Anchor == nil {
		return Result{}, ErrSectionNotFound.WithContext("locator", loc.String())
	}
	return insert(doc, loc, block, *opts.Anchor)
}

func insert(doc string, loc Locator, block string, anchor Anchor) (Result, error) {
	idx := findAnchor(doc, anchor)
	if idx < 0 {
		return Result{}, ErrAnchorNotFound.
			WithContext("locator", loc.String()).
			WithContext("anchor", anchor.Text)
	}

	var at int
	var insertion string
	var offset int
	switch anchor.Position {
	case After:
		at = idx + len(anchor.Text)
		insertion = "\n\n" + block
		offset = 2
		if at < len(doc) && doc[at] != '\n' {
			insertion += "\n"
		}
	default:
		at = idx
		insertion = block + "\n\n"
		if at > 0 && doc[at-1] != '\n' {
			insertion = "\n" + insertion
			offset = 1
		}
	}

	text, err := markdown.ApplyEdits(doc, markdown.Edit{Start: at, End: at, Replacement: insertion})
	if err != nil {
		return Result{}, ferrors.WrapError(err, ferrors.CategoryInternal, "apply section insertion").Build()
	}
	start := at + offset
	return Result{
		Text:   text,
		Action: Inserted,
		Range:  markdown.Range{Start: start, End: start + len(block)},
	}, nil
}

func findAnchor(doc string, anchor Anchor) int {
	if anchor.Text == "" {
		return -1
	}
	from := 0
	if anchor.Scope != "" {
		s := strings.Index(doc, anchor.Scope)
		if s < 0 {
			return -1
		}
		from = s + len(anchor.Scope)
	}
	idx := strings.Index(doc[from:], anchor.Text)
	if idx < 0 {
		return -1
	}
	return from + idx
}

// normalize drops leading blank lines and all trailing whitespace.
func normalize(content string) string {
	content = strings.TrimRight(content, " \t\r\n")
	for {
		nl := strings.IndexByte(content, '\n')
		if nl < 0 || strings.TrimSpace(content[:nl]) != "" {
			return content
		}
		content = content[nl+1:]
	}
}
