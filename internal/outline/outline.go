// Package outline recovers the numbered section outline of a contract from
// its plain text.
//
// Headings are found lexically. A numeric heading ("4.", "4.2.") opens a new
// numeric context; a lettered heading ("A.") is qualified by the most recent
// numeric heading, so "A." after "4." becomes section "4.A". Everything
// between two headings is the body of the first.
package outline

import (
	"regexp"
	"strings"

	"github.com/dgallion1/yellowpad/internal/document"
)

var (
	// numericHeading matches "4. Title", "4.2. Title" and "4.2.Title".
	numericHeading = regexp.MustCompile(`^(\d+(?:\.\d+)*)\.\s*(.+)`)

	// letteredHeading matches "A. Title".
	letteredHeading = regexp.MustCompile(`^([A-Z])\.\s+(.+)`)

	// Heading-like tokens that may appear mid-line in extracted text. The
	// trailing gap is horizontal only so a token ending a line ("term of
	// 12.") never pulls the next line up into it.
	inlineNumeric  = regexp.MustCompile(`\b(\d+(?:\.\d+)*)\.[ \t]+`)
	inlineLettered = regexp.MustCompile(`\b([A-Z])\.[ \t]+`)

	titleBrackets = regexp.MustCompile(`[\[\]{}]`)
)

// ParseSections splits text into its ordered section list. Text without any
// heading yields an empty list. Duplicate section numbers are kept as-is.
func ParseSections(text string) []document.Section {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	normalized = breakBefore(normalized, inlineNumeric)
	normalized = breakBefore(normalized, inlineLettered)

	var sc scan
	for _, raw := range strings.Split(normalized, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		sc = sc.line(line)
	}
	return sc.finish()
}

// breakBefore moves every match of pattern that is not already at the start
// of a line onto a line of its own. The matched whitespace after the token
// collapses to a single space.
func breakBefore(text string, pattern *regexp.Regexp) string {
	matches := pattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text) + len(matches)*2)
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		if start == 0 || text[start-1] == '\n' {
			continue
		}
		b.WriteString(text[last:start])
		b.WriteByte('\n')
		b.WriteString(text[m[2]:m[3]])
		b.WriteString(". ")
		last = end
	}
	b.WriteString(text[last:])
	return b.String()
}

// scan is the line-scan accumulator. numeric is the number of the most
// recent numeric heading; open is the section still collecting body lines.
type scan struct {
	sections []document.Section
	numeric  string
	open     *document.Section
	body     []string
}

func (s scan) line(line string) scan {
	if m := numericHeading.FindStringSubmatch(line); m != nil {
		s = s.close()
		s.numeric = m[1]
		s.open = newSection(m[1], m[2], len(s.sections))
		return s
	}
	if m := letteredHeading.FindStringSubmatch(line); m != nil {
		s = s.close()
		number := m[1]
		if s.numeric != "" {
			number = s.numeric + "." + m[1]
		}
		s.open = newSection(number, m[2], len(s.sections))
		return s
	}
	if s.open != nil {
		s.body = append(s.body, line)
	}
	return s
}

func (s scan) close() scan {
	if s.open == nil {
		return s
	}
	sec := *s.open
	sec.Content = strings.TrimSpace(strings.Join(s.body, "\n"))
	s.sections = append(s.sections, sec)
	s.open = nil
	s.body = nil
	return s
}

func (s scan) finish() []document.Section {
	s = s.close()
	if s.sections == nil {
		return []document.Section{}
	}
	return s.sections
}

func newSection(number, title string, position int) *document.Section {
	return &document.Section{
		Number:   number,
		Title:    strings.TrimSpace(titleBrackets.ReplaceAllString(title, "")),
		Level:    len(strings.Split(number, ".")),
		Position: position,
	}
}
