package commands

import (
	"strings"
	"time"
)

// Action is a formatting operation resolved from a keyboard chord.
type Action string

const (
	ActionBold            Action = "bold"
	ActionItalic          Action = "italic"
	ActionUnderline       Action = "underline"
	ActionStrikethrough   Action = "strikeThrough"
	ActionBlockquote      Action = "blockquote"
	ActionCodeBlock       Action = "codeBlock"
	ActionOrderedList     Action = "insertOrderedList"
	ActionUnorderedList   Action = "insertUnorderedList"
	ActionHeading1        Action = "heading1"
	ActionHeading2        Action = "heading2"
	ActionUndo            Action = "undo"
	ActionRedo            Action = "redo"
	ActionClearFormatting Action = "removeFormat"
	ActionInsertText      Action = "insertText"
)

// Chord is one modifier-plus-key combination. Key is the lowercased key
// value ("b", "7", "\\").
type Chord struct {
	Key   string `json:"key"`
	Ctrl  bool   `json:"ctrl"`
	Shift bool   `json:"shift"`
	Alt   bool   `json:"alt"`
}

// Result is the single action resolved for a chord. Text is populated only
// for custom template shortcuts.
type Result struct {
	Action Action `json:"action"`
	Text   string `json:"text,omitempty"`
}

type builtin struct {
	shift bool
	alt   bool
	act   Action
}

// The fixed table. Every entry requires Ctrl (or Cmd, normalized by the
// client before dispatch); shift/alt must match exactly so heading chords
// do not shadow digit typing.
var builtins = map[string][]builtin{
	"b":  {{shift: false, act: ActionBold}, {shift: true, act: ActionBlockquote}},
	"i":  {{act: ActionItalic}},
	"u":  {{act: ActionUnderline}},
	"s":  {{shift: true, act: ActionStrikethrough}},
	"c":  {{shift: true, act: ActionCodeBlock}},
	"z":  {{act: ActionUndo}, {shift: true, act: ActionRedo}},
	"7":  {{shift: true, act: ActionOrderedList}},
	"8":  {{shift: true, act: ActionUnorderedList}},
	"1":  {{alt: true, act: ActionHeading1}},
	"2":  {{alt: true, act: ActionHeading2}},
	"\\": {{act: ActionClearFormatting}},
}

// Dispatcher resolves chords against the fixed formatting table and a
// user-extensible template table. Built-ins win; custom shortcuts live on
// Ctrl+Alt so the two tables cannot collide; at most one action fires.
type Dispatcher struct {
	custom map[string]Shortcut
	now    func() time.Time
}

func NewDispatcher(custom map[string]Shortcut) *Dispatcher {
	if custom == nil {
		custom = map[string]Shortcut{}
	}
	return &Dispatcher{custom: custom, now: time.Now}
}

// Dispatch evaluates a chord. The second return is false when no entry in
// either table matches.
func (d *Dispatcher) Dispatch(ch Chord) (Result, bool) {
	if !ch.Ctrl {
		return Result{}, false
	}
	key := strings.ToLower(ch.Key)

	for _, b := range builtins[key] {
		if b.shift == ch.Shift && b.alt == ch.Alt {
			return Result{Action: b.act}, true
		}
	}

	// Custom shortcuts require Ctrl+Alt and a single character key.
	if ch.Alt && len([]rune(key)) == 1 {
		if sc, ok := d.custom[key]; ok {
			return Result{Action: ActionInsertText, Text: sc.Render(d.now())}, true
		}
	}
	return Result{}, false
}
