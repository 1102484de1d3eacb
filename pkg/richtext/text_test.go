package richtext

import "testing"

func TestPlainText(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   string
	}{
		{"plain text passthrough", "hello world", "hello world"},
		{"strips tags", "<p>hello <b>world</b></p>", "hello world"},
		{"block tags become separators", "<div>one</div><div>two</div>", "one two"},
		{"decodes entities", "ham &amp; eggs", "ham & eggs"},
		{"nbsp collapses like space", "a&nbsp;&nbsp;b", "a b"},
		{"collapses runs and trims", "  hello   world  ", "hello world"},
		{"empty markup", "", ""},
		{"tags only", "<p><br></p>", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlainText(tt.markup); got != tt.want {
				t.Errorf("PlainText(%q) = %q, want %q", tt.markup, got, tt.want)
			}
		})
	}
}

func TestCount(t *testing.T) {
	tests := []struct {
		name      string
		markup    string
		wantWords int
		wantChars int
	}{
		{"empty", "", 0, 0},
		{"single word", "hello", 1, 5},
		{"two words", "hello world", 2, 11},
		{"whitespace runs collapse", "  hello   world  ", 2, 11},
		{"markup stripped before counting", "<p>hello <b>world</b></p>", 2, 11},
		{"multibyte runes counted once", "héllo wörld", 2, 11},
		{"newlines count as separators", "one\ntwo\nthree", 3, 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Count(tt.markup)
			if got.Words != tt.wantWords {
				t.Errorf("Words = %d, want %d", got.Words, tt.wantWords)
			}
			if got.Chars != tt.wantChars {
				t.Errorf("Chars = %d, want %d", got.Chars, tt.wantChars)
			}
		})
	}
}
