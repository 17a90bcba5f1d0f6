package core

import (
	"strings"
	"testing"
)

func TestNewScreenStartsBlank(t *testing.T) {
	s := NewScreen(40, 12)

	if s.Width() != 40 || s.Height() != 12 {
		t.Errorf("size = %dx%d, expected 40x12", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("new screen not blank at (%d, %d): %q", x, y, s.Get(x, y))
			}
		}
	}
}

func TestScreenSetGetBounds(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(3, 4, '@', ColorGreen)
	cell := s.GetCell(3, 4)
	if cell.Rune != '@' || cell.Color != ColorGreen {
		t.Errorf("GetCell(3, 4) = %+v", cell)
	}

	// Out of bounds writes are ignored, reads return a blank cell.
	s.Set(-1, 0, 'A')
	s.Set(10, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 10, 'A')
	if s.Get(-1, 0) != ' ' || s.Get(10, 0) != ' ' {
		t.Error("out of bounds Get should return space")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(5, 5)
	s.DrawText(0, 2, "#####")

	s.Clear()
	if s.Get(2, 2) != ' ' {
		t.Error("Clear() did not blank the buffer")
	}
}

func TestScreenResizePreservesContent(t *testing.T) {
	s := NewScreen(10, 5)
	s.Set(2, 2, 'X')

	s.Resize(20, 10)
	if s.Width() != 20 || s.Height() != 10 {
		t.Fatalf("size = %dx%d after grow, expected 20x10", s.Width(), s.Height())
	}
	if s.Get(2, 2) != 'X' {
		t.Error("grow lost existing content")
	}

	s.Resize(3, 3)
	if s.Get(2, 2) != 'X' {
		t.Error("shrink lost content inside the new bounds")
	}
}

func TestScreenDrawTextClips(t *testing.T) {
	s := NewScreen(5, 1)
	s.DrawText(3, 0, "hello")

	if s.Get(3, 0) != 'h' || s.Get(4, 0) != 'e' {
		t.Errorf("row = %q", s.String())
	}
	// The rest is clipped without panicking.
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.DrawText(0, 0, "abc")
	s.DrawText(0, 1, "def")

	want := "abc\ndef"
	if got := s.String(); got != want {
		t.Errorf("String() = %q, expected %q", got, want)
	}
	if strings.Count(s.String(), "\n") != 1 {
		t.Error("String() should join rows with single newlines")
	}
}

func TestScreenDrawBoxOutline(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawBoxOutline(0, 0, 4, 3)

	corners := []struct {
		x, y int
		want rune
	}{
		{0, 0, '┌'},
		{3, 0, '┐'},
		{0, 2, '└'},
		{3, 2, '┘'},
	}
	for _, c := range corners {
		if got := s.Get(c.x, c.y); got != c.want {
			t.Errorf("corner (%d, %d) = %q, expected %q", c.x, c.y, got, c.want)
		}
	}
	if s.Get(1, 0) != '─' || s.Get(0, 1) != '│' {
		t.Error("box edges not drawn")
	}
}
