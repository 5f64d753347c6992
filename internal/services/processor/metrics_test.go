package processor

import (
	"testing"

	"golang.org/x/image/math/fixed"
)

func TestMeasureIsDeterministic(t *testing.T) {
	face := testFace(t, 24)
	first := Measure(face, "© Copyright 2024")
	for i := 0; i < 5; i++ {
		if got := Measure(face, "© Copyright 2024"); got != first {
			t.Fatalf("call %d: Measure = %+v, want %+v", i, got, first)
		}
	}

	other := testFace(t, 24)
	if got := Measure(other, "© Copyright 2024"); got != first {
		t.Errorf("fresh face: Measure = %+v, want %+v", got, first)
	}
}

func TestMeasureScalesWithFontSize(t *testing.T) {
	small := Measure(testFace(t, 12), "Copyright")
	large := Measure(testFace(t, 48), "Copyright")
	if small.Width <= 0 || small.Height <= 0 {
		t.Fatalf("small metrics not positive: %+v", small)
	}
	if large.Width <= small.Width || large.Height <= small.Height {
		t.Errorf("48px %+v not larger than 12px %+v", large, small)
	}
}

func TestMeasureNonASCIIAdvancesPerRune(t *testing.T) {
	face := testFace(t, 32)
	texts := []string{"A", "Aé", "Aé©", "Aé©ü"}
	prev := 0
	for _, text := range texts {
		m := Measure(face, text)
		if m.Width <= prev {
			t.Errorf("Measure(%q).Width = %d, want > %d", text, m.Width, prev)
		}
		prev = m.Width
	}

	// A width based on byte length would make the two-byte runes twice as wide.
	ascii := Measure(face, "e")
	accented := Measure(face, "é")
	if diff := accented.Width - ascii.Width; diff < -1 || diff > 1 {
		t.Errorf("é width %d differs from e width %d", accented.Width, ascii.Width)
	}
}

func TestMeasureHeightIncludesAscent(t *testing.T) {
	face := testFace(t, 40)
	m := Measure(face, "x")
	ascent := face.Metrics().Ascent.Ceil()
	if m.Height < ascent-1 {
		t.Errorf("height %d too small for ascent %d", m.Height, ascent)
	}
	withDescender := Measure(face, "xg")
	if withDescender.Height <= m.Height {
		t.Errorf("descender did not grow height: %d <= %d", withDescender.Height, m.Height)
	}
}

func TestMeasureStartsAtPenPosition(t *testing.T) {
	face := testFace(t, 20)
	m := Measure(face, "jot")
	ink := inkBounds(face, "jot", fixed.Point26_6{})

	if ink.Min.X >= 0 {
		t.Fatalf("leading j inks from %v, want left of the pen", ink.Min.X)
	}
	if left := -ink.Min.X.Floor(); left > 3 {
		t.Errorf("leading j overhangs %dpx", left)
	}
	if m.Width != ink.Max.X.Ceil() {
		t.Errorf("Width = %d, want ink right edge %d", m.Width, ink.Max.X.Ceil())
	}
}
