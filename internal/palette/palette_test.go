package palette

import (
	"slices"
	"testing"
)

func TestRandomIsFromPalette(t *testing.T) {
	colours := Colours()
	for i := 0; i < 100; i++ {
		if c := Random(); !slices.Contains(colours, c) {
			t.Fatalf("colour %q not in palette", c)
		}
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("#abc"); got != "#AABBCC" {
		t.Errorf("expected #AABBCC, got %s", got)
	}
	if got := Normalize("#1abc9c"); got != "#1ABC9C" {
		t.Errorf("expected #1ABC9C, got %s", got)
	}
}
