package feedback

import (
	"image/color"
	"testing"
)

func TestFromPresenceIsTotal(t *testing.T) {
	cases := []struct {
		in   [3]bool
		want Color
	}{
		{[3]bool{false, false, false}, Black},
		{[3]bool{true, false, false}, Red},
		{[3]bool{false, true, false}, Green},
		{[3]bool{false, false, true}, Blue},
		{[3]bool{true, true, false}, Orange},
		{[3]bool{true, false, true}, Violet},
		{[3]bool{false, true, true}, Teal},
		{[3]bool{true, true, true}, White},
	}
	seen := make(map[Color]bool)
	for _, c := range cases {
		got := FromPresence(c.in)
		if got != c.want {
			t.Errorf("FromPresence(%v) = %+v, want %+v", c.in, got, c.want)
		}
		seen[got] = true
	}
	if len(seen) != len(cases) {
		t.Fatalf("palette should be injective, got %d distinct colors", len(seen))
	}
}

func TestChannel(t *testing.T) {
	cases := []struct {
		index int
		want  Color
	}{
		{0, Color{R: Dim}},
		{1, Color{G: Dim}},
		{2, Color{B: Dim}},
		{3, Black},
		{-1, Black},
	}
	for _, c := range cases {
		if got := Channel(c.index, Dim); got != c.want {
			t.Errorf("Channel(%d) = %+v, want %+v", c.index, got, c.want)
		}
	}
}

func TestRGBAClamps(t *testing.T) {
	got := Color{R: 2, G: -1, B: 0.5}.RGBA()
	want := color.RGBA{R: 255, G: 0, B: 128, A: 255}
	if got != want {
		t.Fatalf("got %v want %v", got, want)
	}
}
