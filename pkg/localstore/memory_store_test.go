package localstore

import (
	"context"
	"testing"
)

func TestMemoryStoreMissingKey(t *testing.T) {
	s := NewMemoryStore()

	value, ok, err := s.Get(context.Background(), "device-a", "darkMode")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if ok || value != "" {
		t.Errorf("Get = (%q, %v), want (\"\", false)", value, ok)
	}
}

func TestMemoryStoreSetGetDelete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Set(ctx, "device-a", "editorFontSizePx", "18"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	value, ok, err := s.Get(ctx, "device-a", "editorFontSizePx")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if !ok || value != "18" {
		t.Errorf("Get = (%q, %v), want (\"18\", true)", value, ok)
	}

	if err := s.Delete(ctx, "device-a", "editorFontSizePx"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "device-a", "editorFontSizePx"); ok {
		t.Error("key still present after Delete")
	}
}

func TestMemoryStoreScopesByDevice(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Set(ctx, "device-a", "darkMode", "true"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "device-b", "darkMode"); ok {
		t.Error("value written for device-a is visible to device-b")
	}
}
