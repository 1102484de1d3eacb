package richtext

import "sync"

// Editor font size bounds in pixels. Persisted per device, adjusted in fixed
// steps from the toolbar or shift+wheel.
const (
	MinFontPx     = 12
	MaxFontPx     = 48
	FontStepPx    = 2
	DefaultFontPx = 16
)

// ClampFontSize forces px into the allowed range.
func ClampFontSize(px int) int {
	if px < MinFontPx {
		return MinFontPx
	}
	if px > MaxFontPx {
		return MaxFontPx
	}
	return px
}

// StepFontSize moves px one step up or down, staying clamped.
func StepFontSize(px int, up bool) int {
	if up {
		return ClampFontSize(px + FontStepPx)
	}
	return ClampFontSize(px - FontStepPx)
}

// Surface wraps the editable content region of one session. It holds the raw
// markup and notifies listeners on every mutation, including programmatic
// ones (formatting commands), not just direct typing.
type Surface struct {
	mu        sync.Mutex
	markup    string
	listeners []func(Stats)
}

func NewSurface() *Surface {
	return &Surface{}
}

// OnChange registers a listener fired after every content mutation.
func (s *Surface) OnChange(fn func(Stats)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// SetMarkup replaces the surface content and fires change listeners.
func (s *Surface) SetMarkup(markup string) {
	s.mu.Lock()
	s.markup = markup
	listeners := make([]func(Stats), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	stats := Count(markup)
	for _, fn := range listeners {
		fn(stats)
	}
}

// Markup returns the current raw markup snapshot.
func (s *Surface) Markup() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.markup
}

// PlainText returns the rendered-text snapshot of the surface.
func (s *Surface) PlainText() string {
	return PlainText(s.Markup())
}

// Stats returns the current word/character counts.
func (s *Surface) Stats() Stats {
	return Count(s.Markup())
}
