package richtext

import "testing"

func TestClampFontSize(t *testing.T) {
	tests := []struct {
		px   int
		want int
	}{
		{0, MinFontPx},
		{11, MinFontPx},
		{12, 12},
		{16, 16},
		{48, 48},
		{49, MaxFontPx},
		{100, MaxFontPx},
	}

	for _, tt := range tests {
		if got := ClampFontSize(tt.px); got != tt.want {
			t.Errorf("ClampFontSize(%d) = %d, want %d", tt.px, got, tt.want)
		}
	}
}

func TestStepFontSize(t *testing.T) {
	tests := []struct {
		px   int
		up   bool
		want int
	}{
		{16, true, 18},
		{16, false, 14},
		{MaxFontPx, true, MaxFontPx},
		{MinFontPx, false, MinFontPx},
		{47, true, MaxFontPx},
		{13, false, MinFontPx},
	}

	for _, tt := range tests {
		if got := StepFontSize(tt.px, tt.up); got != tt.want {
			t.Errorf("StepFontSize(%d, %v) = %d, want %d", tt.px, tt.up, got, tt.want)
		}
	}
}

func TestSurfaceNotifiesOnEveryMutation(t *testing.T) {
	s := NewSurface()

	var fired []Stats
	s.OnChange(func(st Stats) {
		fired = append(fired, st)
	})

	s.SetMarkup("<p>hello world</p>")
	s.SetMarkup("")

	if len(fired) != 2 {
		t.Fatalf("listener fired %d times, want 2", len(fired))
	}
	if fired[0].Words != 2 || fired[0].Chars != 11 {
		t.Errorf("first notification = %+v, want {Words:2 Chars:11}", fired[0])
	}
	if fired[1].Words != 0 || fired[1].Chars != 0 {
		t.Errorf("second notification = %+v, want zero stats", fired[1])
	}
}

func TestSurfaceStats(t *testing.T) {
	s := NewSurface()
	s.SetMarkup("<p>one two three</p>")

	st := s.Stats()
	if st.Words != 3 {
		t.Errorf("Words = %d, want 3", st.Words)
	}
	if s.PlainText() != "one two three" {
		t.Errorf("PlainText = %q", s.PlainText())
	}
	if s.Markup() != "<p>one two three</p>" {
		t.Errorf("Markup = %q", s.Markup())
	}
}
