// Package toc builds a Markdown table of contents from the headings that
// follow a /toc trigger line.
package toc

import (
	"regexp"
	"strings"
)

// Triggers are the lines that open the TOC section, compared after trimming
// and lower-casing.
var Triggers = []string{"/toc", "/contents"}

var (
	headingRe    = regexp.MustCompile(`^(#{1,6}) +(.+)$`)
	inlineCodeRe = regexp.MustCompile("`([^`]*)`")
	nonSlugRe    = regexp.MustCompile(`[^\w\s-]`)
	spaceRunRe   = regexp.MustCompile(`\s+`)
)

const fence = "```"

// Entry is one heading that made it into the table of contents.
type Entry struct {
	Level int
	Title string
	Slug  string
}

// Line renders the entry as a nested Markdown list item.
func (e Entry) Line() string {
	return strings.Repeat("  ", e.Level-1) + "- [" + e.Title + "](#" + e.Slug + ")"
}

// Generate returns the table of contents for content, one line per heading,
// or "" when no heading qualifies.
func Generate(content string) string {
	entries := Entries(content)
	if len(entries) == 0 {
		return ""
	}
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.Line()
	}
	return strings.Join(lines, "\n")
}

// Entries scans content line by line. Headings count only after a trigger
// line and outside fenced code. Every fence line flips the code state, so an
// unbalanced fence leaves the rest of the document inside code.
func Entries(content string) []Entry {
	var entries []Entry
	inCode := false
	triggered := false

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, fence) {
			inCode = !inCode
			continue
		}
		if inCode {
			continue
		}
		if IsTrigger(trimmed) {
			triggered = true
			continue
		}
		if !triggered {
			continue
		}

		m := headingRe.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if m == nil {
			continue
		}
		title := strings.TrimRight(m[2], " \t")
		entries = append(entries, Entry{
			Level: len(m[1]),
			Title: title,
			Slug:  Slug(title),
		})
	}
	return entries
}

// IsTrigger reports whether a line opens the TOC section.
func IsTrigger(line string) bool {
	line = strings.ToLower(strings.TrimSpace(line))
	for _, t := range Triggers {
		if line == t {
			return true
		}
	}
	return false
}

// Slug turns a heading title into its anchor: inline code markers are
// dropped, the text is lower-cased and trimmed, anything but word
// characters, spaces and hyphens is removed, and whitespace runs become
// single hyphens.
func Slug(title string) string {
	s := inlineCodeRe.ReplaceAllString(title, "$1")
	s = strings.TrimSpace(strings.ToLower(s))
	s = nonSlugRe.ReplaceAllString(s, "")
	return spaceRunRe.ReplaceAllString(s, "-")
}
