package collection

import (
	"errors"
	"sort"
	"time"
)

// DefaultNoteName seeds every fresh collection and every remote record that
// comes back without notes.
const DefaultNoteName = "Note 1"

// TimestampNameLayout is the generated name for a note created without an
// explicit name (matches the tab label format users already have saved).
const TimestampNameLayout = "02-01-2006 15:04:05"

var (
	ErrLastNote  = errors.New("you can't close the last note")
	ErrDuplicate = errors.New("duplicate note name")
	ErrNotFound  = errors.New("note not found")
)

// Tombstone records deletion intent for the remote store. Append-only from
// the client's perspective; never read back to resurrect a note.
type Tombstone struct {
	Deleted   bool      `json:"deleted"`
	DeletedAt time.Time `json:"deletedAt"`
}

// ActivePolicy decides which note becomes active after adopting a remote
// record. The stored map carries no order, so adoption sorts names first.
type ActivePolicy string

const (
	// PolicyInsertionFirst activates the first name in adoption order.
	PolicyInsertionFirst ActivePolicy = "insertion-first"
	// PolicyLexicographicLast activates the lexicographically last name.
	PolicyLexicographicLast ActivePolicy = "lexicographic-last"
)

// Collection is the in-memory note set of one editing session: name -> raw
// markup, insertion order as display order, exactly one active name.
//
// Invariants: the collection is never empty, and the active pointer always
// references a present key. Callers serialize access; Collection itself is
// not safe for concurrent use.
type Collection struct {
	order      []string
	notes      map[string]string
	tombstones map[string]Tombstone
	active     string
}

// New returns a collection seeded with a single empty default note.
func New() *Collection {
	c := &Collection{
		notes:      map[string]string{},
		tombstones: map[string]Tombstone{},
	}
	c.insert(DefaultNoteName, "")
	c.active = DefaultNoteName
	return c
}

func (c *Collection) insert(name, markup string) {
	if _, ok := c.notes[name]; !ok {
		c.order = append(c.order, name)
	}
	c.notes[name] = markup
}

// Names returns the note names in display order.
func (c *Collection) Names() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Active returns the name of the currently displayed note.
func (c *Collection) Active() string {
	return c.active
}

// Content returns the stored markup for name.
func (c *Collection) Content(name string) (string, bool) {
	markup, ok := c.notes[name]
	return markup, ok
}

// Len reports the number of notes.
func (c *Collection) Len() int {
	return len(c.order)
}

// SetActiveContent stores markup under the active name. Called on every
// surface mutation before any persistence.
func (c *Collection) SetActiveContent(markup string) {
	c.notes[c.active] = markup
}

// SwitchTo reassigns the active pointer. The caller flushes the surface into
// the previously active note first; open/create paths validate existence.
func (c *Collection) SwitchTo(name string) error {
	if _, ok := c.notes[name]; !ok {
		return ErrNotFound
	}
	c.active = name
	return nil
}

// Create inserts an empty note and switches to it. An empty suggestedName
// yields a timestamp-based name. Returns the inserted name.
func (c *Collection) Create(suggestedName string, now time.Time) (string, error) {
	name := suggestedName
	if name == "" {
		name = now.Format(TimestampNameLayout)
	}
	if _, exists := c.notes[name]; exists {
		return "", ErrDuplicate
	}
	c.insert(name, "")
	c.active = name
	return name, nil
}

// Close removes the note, records a tombstone and, when the removed note was
// active, reassigns the active pointer to the first remaining name. Closing
// the last note is rejected.
func (c *Collection) Close(name string, now time.Time) error {
	if _, ok := c.notes[name]; !ok {
		return ErrNotFound
	}
	if len(c.order) == 1 {
		return ErrLastNote
	}

	delete(c.notes, name)
	for i, n := range c.order {
		if n == name {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.tombstones[name] = Tombstone{Deleted: true, DeletedAt: now}

	if c.active == name {
		c.active = c.order[0]
	}
	return nil
}

// Snapshot returns a copy of the full name -> markup map.
func (c *Collection) Snapshot() map[string]string {
	out := make(map[string]string, len(c.notes))
	for name, markup := range c.notes {
		out[name] = markup
	}
	return out
}

// Tombstones returns a copy of the deletion markers recorded so far.
func (c *Collection) Tombstones() map[string]Tombstone {
	out := make(map[string]Tombstone, len(c.tombstones))
	for name, t := range c.tombstones {
		out[name] = t
	}
	return out
}

// Adopt replaces the collection with a remote record's notes and tombstones.
// The stored map has no order, so names are adopted sorted; the active note
// is then chosen by policy. An empty notes map falls back to the default
// seed (the caller persists the seeded state).
func (c *Collection) Adopt(notes map[string]string, tombstones map[string]Tombstone, policy ActivePolicy) {
	c.Reset()
	if len(notes) == 0 {
		return
	}

	names := make([]string, 0, len(notes))
	for name := range notes {
		names = append(names, name)
	}
	sort.Strings(names)

	c.order = nil
	c.notes = map[string]string{}
	for _, name := range names {
		c.insert(name, notes[name])
	}
	for name, t := range tombstones {
		c.tombstones[name] = t
	}

	switch policy {
	case PolicyLexicographicLast:
		c.active = names[len(names)-1]
	default:
		c.active = names[0]
	}
}

// Reset discards everything and reinitializes to a single empty default
// note. Invoked on session end.
func (c *Collection) Reset() {
	c.order = nil
	c.notes = map[string]string{}
	c.tombstones = map[string]Tombstone{}
	c.insert(DefaultNoteName, "")
	c.active = DefaultNoteName
}
