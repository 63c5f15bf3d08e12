// Package instruction maps free-text placement directives such as
// "after section 4.1" or "before section 5" onto an insertion point in a
// section list, and picks the number the inserted clause will carry.
//
// Matching is lexical and ordered: an exact component-wise match is tried
// first, then the top-level group of the target. The first match in
// document order wins. "after" is the default direction.
package instruction

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dgallion1/yellowpad/internal/document"
)

var (
	// sectionRef matches "section 4.1", "section 4-A", "section 4(a)".
	sectionRef = regexp.MustCompile(`(?i)section\s+(\d+\s*\([a-z]\)|[\da-z]+(?:[.\-][\da-z]+)*)`)

	// explicitNumber matches "as section 4.2". It is not word-anchored, so
	// "has section 7" also counts.
	explicitNumber = regexp.MustCompile(`(?i)as section\s+([\da-z]+(?:\.[\da-z]+)*)`)

	partSeparator = regexp.MustCompile(`[.\-]`)
	openParen     = regexp.MustCompile(`\s*\(`)
	whitespace    = regexp.MustCompile(`\s+`)
)

// Remediation is the message attached to jobs whose instruction could not
// be resolved.
const Remediation = `Could not determine insertion point from instruction. Try being more specific (e.g., "after section 4.1" or "before section 5").`

var (
	ErrNoReference    = errors.New("no section reference")
	ErrTargetNotFound = errors.New("referenced section not found")
)

// UnresolvedError reports an instruction that names no section, or names a
// section (or group) absent from the document.
type UnresolvedError struct {
	Instruction string
	Target      string
	Err         error
}

func (e *UnresolvedError) Error() string {
	if e.Target == "" {
		return fmt.Sprintf("unresolved instruction %q: %v", e.Instruction, e.Err)
	}
	return fmt.Sprintf("unresolved instruction %q: %v: %s", e.Instruction, e.Err, e.Target)
}

func (e *UnresolvedError) Unwrap() error { return e.Err }

// Resolution is where a clause goes and the number it is given.
type Resolution struct {
	InsertionPoint int
	SectionNumber  string
}

// Resolve resolves one instruction against sections. sections is not
// modified. On failure the error is an *UnresolvedError.
func Resolve(sections []document.Section, instruction string) (Resolution, error) {
	point, err := InsertionPoint(sections, instruction)
	if err != nil {
		return Resolution{InsertionPoint: -1}, err
	}
	return Resolution{
		InsertionPoint: point,
		SectionNumber:  SectionNumber(sections, point, instruction),
	}, nil
}

// InsertionPoint returns the index, 0..len(sections), before which a clause
// placed by instruction goes.
func InsertionPoint(sections []document.Section, instruction string) (int, error) {
	target, ok := targetReference(instruction)
	if !ok {
		return -1, &UnresolvedError{Instruction: instruction, Err: ErrNoReference}
	}
	parts := targetParts(target)
	lower := strings.ToLower(instruction)

	if i := exactMatch(sections, parts); i >= 0 {
		switch {
		case strings.Contains(lower, "after"):
			return i + 1, nil
		case strings.Contains(lower, "before"):
			return i, nil
		}
		return i + 1, nil
	}

	start, end := group(sections, parts[0])
	if start < 0 {
		return -1, &UnresolvedError{Instruction: instruction, Target: target, Err: ErrTargetNotFound}
	}
	if strings.Contains(lower, "before") {
		return start, nil
	}
	return end + 1, nil
}

// SectionNumber picks the number for a clause inserted at point. An explicit
// "as section <id>" in the instruction wins. Otherwise the clause takes the
// top-level number of the section before it, or len(sections)+1 at the
// start of the document. Later sections are not renumbered.
func SectionNumber(sections []document.Section, point int, instruction string) string {
	if n, ok := ExplicitNumber(instruction); ok {
		return n
	}
	if point > 0 && point <= len(sections) {
		return topLevel(sections[point-1].Number)
	}
	return strconv.Itoa(len(sections) + 1)
}

// ExplicitNumber returns the literal id of an "as section <id>" token.
func ExplicitNumber(instruction string) (string, bool) {
	m := explicitNumber.FindStringSubmatch(instruction)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// targetReference returns the id of the first section reference in the
// instruction. That includes an "as section <id>" reference, so
// "as section 4.2 after section 4.1" is placed relative to 4.2.
func targetReference(instruction string) (string, bool) {
	m := sectionRef.FindStringSubmatch(instruction)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// targetParts normalizes "4(a)" to "4.A" and splits on "." and "-".
func targetParts(target string) []string {
	t := openParen.ReplaceAllString(target, ".")
	t = strings.ReplaceAll(t, ")", "")
	t = whitespace.ReplaceAllString(t, "")

	parts := partSeparator.Split(t, -1)
	for i, p := range parts {
		parts[i] = strings.ToUpper(p)
	}
	return parts
}

// exactMatch returns the index of the first section whose leading number
// components equal parts, or -1.
func exactMatch(sections []document.Section, parts []string) int {
	for i, s := range sections {
		if hasPrefix(numberParts(s.Number), parts) {
			return i
		}
	}
	return -1
}

func hasPrefix(sectionParts, target []string) bool {
	if len(sectionParts) < len(target) {
		return false
	}
	for j, p := range target {
		if p == "" || sectionParts[j] != p {
			return false
		}
	}
	return true
}

// group returns the first contiguous run of sections whose top-level
// component equals key, or -1, -1.
func group(sections []document.Section, key string) (start, end int) {
	start = -1
	for i, s := range sections {
		if strings.ToUpper(topLevel(s.Number)) == key {
			start = i
			break
		}
	}
	if start < 0 || key == "" {
		return -1, -1
	}
	end = start
	for i := start + 1; i < len(sections); i++ {
		if strings.ToUpper(topLevel(sections[i].Number)) != key {
			break
		}
		end = i
	}
	return start, end
}

func numberParts(number string) []string {
	parts := strings.Split(number, ".")
	for i, p := range parts {
		parts[i] = strings.ToUpper(p)
	}
	return parts
}

func topLevel(number string) string {
	top, _, _ := strings.Cut(number, ".")
	return top
}
