package markdown

import (
	"regexp"
	"strings"
)

var (
	// titleHeading matches a level-1 ATX heading.
	titleHeading = regexp.MustCompile(`^ {0,3}#[ \t]+(.+?)(?:[ \t]+#+)?[ \t]*$`)

	// descriptionLine matches "Purpose: ..." style lines, tolerating
	// blockquote, list and emphasis decoration around the label.
	descriptionLine = regexp.MustCompile(`(?i)^\s*(?:>\s*)?(?:[-*+]\s+)?[*_]{0,2}(purpose|tl;dr)[*_]{0,2}\s*:[*_]{0,2}\s*(.+?)\s*$`)

	// anchorOverride matches a trailing {#custom-id}.
	anchorOverride = regexp.MustCompile(`\s*\{#[^}]*\}\s*$`)

	inlineLink  = regexp.MustCompile(`!?\[([^\]]*)\]\([^)]*\)`)
	inlineCode  = regexp.MustCompile("`([^`]*)`")
	emphasis    = regexp.MustCompile(`(^|\W)(\*\*|__|\*|_)([^*_]+?)(\*\*|__|\*|_)(\W|$)`)
	htmlTag     = regexp.MustCompile(`<[^>]+>`)
)

// fenceTracker reports whether a line sits inside a fenced code block.
type fenceTracker struct {
	marker string
}

// inside advances the tracker by one line and reports whether the line
// belongs to a code block (fence lines included).
func (f *fenceTracker) inside(line string) bool {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 {
		return f.marker != ""
	}
	for _, m := range []string{"```", "~~~"} {
		if !strings.HasPrefix(trimmed, m) {
			continue
		}
		switch {
		case f.marker == "":
			f.marker = m
			return true
		case f.marker == m:
			f.marker = ""
			return true
		}
	}
	return f.marker != ""
}

// firstHeading returns the text of the first level-1 heading outside code blocks.
func firstHeading(body string) string {
	var fences fenceTracker
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimRight(line, "\r")
		if fences.inside(line) {
			continue
		}
		if m := titleHeading.FindStringSubmatch(line); m != nil {
			if text := cleanInline(m[1]); text != "" {
				return text
			}
		}
	}
	return ""
}

// labelledDescription returns the value of the first "Purpose:" or "TL;DR:" line.
func labelledDescription(body string) string {
	var fences fenceTracker
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimRight(line, "\r")
		if fences.inside(line) {
			continue
		}
		if m := descriptionLine.FindStringSubmatch(line); m != nil {
			if text := cleanInline(m[2]); text != "" {
				return text
			}
		}
	}
	return ""
}

// cleanInline removes anchor overrides and inline markup from heading text.
func cleanInline(text string) string {
	text = anchorOverride.ReplaceAllString(text, "")
	text = inlineLink.ReplaceAllString(text, "$1")
	text = inlineCode.ReplaceAllString(text, "$1")
	// Adjacent spans share a boundary character, so a second pass is needed.
	for i := 0; i < 2; i++ {
		text = emphasis.ReplaceAllString(text, "${1}${3}${5}")
	}
	text = htmlTag.ReplaceAllString(text, "")
	text = strings.Trim(text, "*_ \t")
	return strings.Join(strings.Fields(text), " ")
}
