package collection

import (
	"testing"
	"time"
)

var testNow = time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)

func TestNewSeedsDefaultNote(t *testing.T) {
	c := New()

	if c.Len() != 1 {
		t.Fatalf("Len = %d, want 1", c.Len())
	}
	if c.Active() != DefaultNoteName {
		t.Errorf("Active = %q, want %q", c.Active(), DefaultNoteName)
	}
	markup, ok := c.Content(DefaultNoteName)
	if !ok || markup != "" {
		t.Errorf("Content = %q, %v; want empty, true", markup, ok)
	}
}

func TestCreate(t *testing.T) {
	tests := []struct {
		name          string
		suggestedName string
		wantName      string
		wantErr       error
	}{
		{
			name:          "explicit name",
			suggestedName: "Shopping list",
			wantName:      "Shopping list",
		},
		{
			name:          "empty name gets timestamp",
			suggestedName: "",
			wantName:      "14-03-2025 15:09:26",
		},
		{
			name:          "duplicate of the default note",
			suggestedName: DefaultNoteName,
			wantErr:       ErrDuplicate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			got, err := c.Create(tt.suggestedName, testNow)

			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				if c.Len() != 1 {
					t.Errorf("Len after failed create = %d, want 1", c.Len())
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if got != tt.wantName {
				t.Errorf("name = %q, want %q", got, tt.wantName)
			}
			if c.Active() != tt.wantName {
				t.Errorf("Active = %q, want %q", c.Active(), tt.wantName)
			}
		})
	}
}

func TestCreatePreservesInsertionOrder(t *testing.T) {
	c := New()
	c.Create("b", testNow)
	c.Create("a", testNow)

	names := c.Names()
	want := []string{DefaultNoteName, "b", "a"}
	if len(names) != len(want) {
		t.Fatalf("Names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestCloseLastNoteRejected(t *testing.T) {
	c := New()
	if err := c.Close(DefaultNoteName, testNow); err != ErrLastNote {
		t.Fatalf("err = %v, want %v", err, ErrLastNote)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}

func TestCloseRecordsTombstoneAndMovesActive(t *testing.T) {
	c := New()
	c.Create("second", testNow)

	if err := c.Close("second", testNow); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if c.Active() != DefaultNoteName {
		t.Errorf("Active = %q, want %q", c.Active(), DefaultNoteName)
	}
	if _, ok := c.Content("second"); ok {
		t.Error("closed note still present")
	}

	tomb, ok := c.Tombstones()["second"]
	if !ok {
		t.Fatal("missing tombstone for closed note")
	}
	if !tomb.Deleted {
		t.Error("tombstone Deleted = false, want true")
	}
	if !tomb.DeletedAt.Equal(testNow) {
		t.Errorf("tombstone DeletedAt = %v, want %v", tomb.DeletedAt, testNow)
	}
}

func TestCloseInactiveNoteKeepsActive(t *testing.T) {
	c := New()
	c.Create("second", testNow)
	c.Create("third", testNow)

	if err := c.Close("second", testNow); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if c.Active() != "third" {
		t.Errorf("Active = %q, want %q", c.Active(), "third")
	}
}

func TestCloseUnknownNote(t *testing.T) {
	c := New()
	if err := c.Close("ghost", testNow); err != ErrNotFound {
		t.Fatalf("err = %v, want %v", err, ErrNotFound)
	}
}

func TestSwitchTo(t *testing.T) {
	c := New()
	c.Create("second", testNow)

	if err := c.SwitchTo(DefaultNoteName); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if c.Active() != DefaultNoteName {
		t.Errorf("Active = %q, want %q", c.Active(), DefaultNoteName)
	}

	if err := c.SwitchTo("ghost"); err != ErrNotFound {
		t.Errorf("err = %v, want %v", err, ErrNotFound)
	}
}

func TestAdopt(t *testing.T) {
	notes := map[string]string{
		"zebra": "<p>z</p>",
		"apple": "<p>a</p>",
		"mango": "<p>m</p>",
	}
	tombstones := map[string]Tombstone{
		"old": {Deleted: true, DeletedAt: testNow},
	}

	tests := []struct {
		name       string
		policy     ActivePolicy
		wantActive string
	}{
		{"insertion first", PolicyInsertionFirst, "apple"},
		{"lexicographic last", PolicyLexicographicLast, "zebra"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			c.SetActiveContent("<p>stale local state</p>")
			c.Adopt(notes, tombstones, tt.policy)

			if c.Len() != 3 {
				t.Fatalf("Len = %d, want 3", c.Len())
			}
			if c.Active() != tt.wantActive {
				t.Errorf("Active = %q, want %q", c.Active(), tt.wantActive)
			}
			names := c.Names()
			want := []string{"apple", "mango", "zebra"}
			for i := range want {
				if names[i] != want[i] {
					t.Errorf("Names[%d] = %q, want %q", i, names[i], want[i])
				}
			}
			if _, ok := c.Tombstones()["old"]; !ok {
				t.Error("adopted tombstones lost")
			}
		})
	}
}

func TestAdoptEmptyFallsBackToDefault(t *testing.T) {
	c := New()
	c.Create("extra", testNow)

	c.Adopt(nil, nil, PolicyInsertionFirst)

	if c.Len() != 1 {
		t.Fatalf("Len = %d, want 1", c.Len())
	}
	if c.Active() != DefaultNoteName {
		t.Errorf("Active = %q, want %q", c.Active(), DefaultNoteName)
	}
}

func TestResetDropsEverything(t *testing.T) {
	c := New()
	c.Create("second", testNow)
	c.SetActiveContent("<p>hello</p>")
	c.Close("second", testNow)

	c.Reset()

	if c.Len() != 1 || c.Active() != DefaultNoteName {
		t.Fatalf("after reset: Len = %d, Active = %q", c.Len(), c.Active())
	}
	if len(c.Tombstones()) != 0 {
		t.Error("tombstones survived reset")
	}
}
