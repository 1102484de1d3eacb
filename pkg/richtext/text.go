package richtext

import (
	"html"
	"strings"
	"unicode"
	"unicode/utf8"
)

// PlainText converts raw editor markup to the text a reader would see:
// tags stripped, entities decoded, whitespace runs collapsed to a single
// space, surrounding whitespace trimmed. This mirrors how the rendered
// surface reports its text content, which is what counting operates on.
func PlainText(markup string) string {
	var sb strings.Builder
	inTag := false
	for _, r := range markup {
		switch {
		case r == '<':
			inTag = true
			// Tag boundaries separate words the way block rendering does.
			sb.WriteRune(' ')
		case r == '>':
			inTag = false
		case !inTag:
			sb.WriteRune(r)
		}
	}
	return collapseWhitespace(html.UnescapeString(sb.String()))
}

func collapseWhitespace(s string) string {
	var sb strings.Builder
	pendingSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			pendingSpace = sb.Len() > 0
			continue
		}
		if pendingSpace {
			sb.WriteRune(' ')
			pendingSpace = false
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Stats is the status line payload for one note.
type Stats struct {
	Words int `json:"words"`
	Chars int `json:"chars"`
}

// Count derives word and character counts from markup. Words are whitespace
// separated runs of the trimmed text; the empty string yields zero words.
func Count(markup string) Stats {
	text := PlainText(markup)
	return Stats{
		Words: len(strings.Fields(text)),
		Chars: utf8.RuneCountInString(text),
	}
}
