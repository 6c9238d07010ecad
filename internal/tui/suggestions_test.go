package tui

import "testing"

func TestSuggestionsPrefixMatch(t *testing.T) {
	tests := []struct {
		input   string
		visible bool
		first   string
	}{
		{"", false, ""},
		{"s", true, "save"},
		{"re", true, "recommend"},
		{"r", true, "rm"},
		{"zz", false, ""},
		{"done 2", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			s := NewSuggestions()
			s.Update(tt.input)
			if s.IsVisible() != tt.visible {
				t.Fatalf("IsVisible() = %v, want %v", s.IsVisible(), tt.visible)
			}
			if !tt.visible {
				return
			}
			if got := s.Selected().Text; got != tt.first {
				t.Errorf("Selected() = %q, want %q", got, tt.first)
			}
		})
	}
}

func TestSuggestionsCycle(t *testing.T) {
	s := NewSuggestions()
	s.Update("r")

	first := s.Selected().Text
	s.Next()
	if s.Selected().Text == first {
		t.Error("Next should move selection")
	}
	s.Prev()
	if s.Selected().Text != first {
		t.Error("Prev should return to first")
	}
	s.Prev()
	if s.Selected().Text == first {
		t.Error("Prev should wrap around")
	}
}
