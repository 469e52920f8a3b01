package app

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"diffraction-viewer/pkg/geometry"
)

func newTestState() *State {
	return NewState(zerolog.Nop())
}

// writeGradientPNG writes a 4x4 grayscale image with values 0,16,32,...
func writeGradientPNG(t *testing.T) string {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8((y*4 + x) * 16)})
		}
	}
	path := filepath.Join(t.TempDir(), "gradient.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return path
}

func TestProjection_NoOpWithoutFrame(t *testing.T) {
	s := newTestState()
	s.CommitSelection(geometry.NewRect(0, 0, 2, 2))

	if s.CanProject() {
		t.Fatal("projection enabled without a frame")
	}
	if sums, ok := s.Projection(); ok || sums != nil {
		t.Fatalf("projection without frame returned %v, %v", sums, ok)
	}
}

func TestProjection_NoOpWithoutSelection(t *testing.T) {
	s := newTestState()
	if err := s.LoadFrame(writeGradientPNG(t)); err != nil {
		t.Fatalf("LoadFrame: %v", err)
	}

	if s.CanProject() {
		t.Fatal("projection enabled without a committed selection")
	}
	if _, ok := s.Projection(); ok {
		t.Fatal("projection without selection should be a no-op")
	}
}

func TestProjection_EnabledWithBoth(t *testing.T) {
	s := newTestState()
	if err := s.LoadFrame(writeGradientPNG(t)); err != nil {
		t.Fatalf("LoadFrame: %v", err)
	}
	s.CommitSelection(geometry.NewRect(0, 1, 4, 2))

	if !s.CanProject() {
		t.Fatal("projection should be enabled")
	}
	sums, ok := s.Projection()
	if !ok {
		t.Fatal("projection should run")
	}
	// Rows 1 and 2 of the gradient: (4+5+6+7)*16 and (8+9+10+11)*16.
	want := []float64{352, 608}
	if len(sums) != 2 || sums[0] != want[0] || sums[1] != want[1] {
		t.Fatalf("got %v, want %v", sums, want)
	}
}

func TestLoadFrame_ClearsSelection(t *testing.T) {
	s := newTestState()
	path := writeGradientPNG(t)
	if err := s.LoadFrame(path); err != nil {
		t.Fatalf("LoadFrame: %v", err)
	}
	s.CommitSelection(geometry.NewRect(0, 0, 2, 2))
	if !s.CanProject() {
		t.Fatal("projection should be enabled before reload")
	}

	cleared := false
	s.On(EventSelectionCleared, func(interface{}) { cleared = true })

	if err := s.LoadFrame(path); err != nil {
		t.Fatalf("LoadFrame: %v", err)
	}
	if _, ok := s.Selection(); ok {
		t.Fatal("loading a frame must discard the committed selection")
	}
	if s.CanProject() {
		t.Fatal("projection must be disabled after a fresh load")
	}
	if !cleared {
		t.Fatal("selection-cleared event not emitted on load")
	}
}

func TestLoadFrame_BadFileKeepsState(t *testing.T) {
	s := newTestState()
	if err := s.LoadFrame(writeGradientPNG(t)); err != nil {
		t.Fatalf("LoadFrame: %v", err)
	}
	s.CommitSelection(geometry.NewRect(0, 0, 2, 2))

	bad := filepath.Join(t.TempDir(), "bad.png")
	if err := os.WriteFile(bad, []byte("junk"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := s.LoadFrame(bad); err == nil {
		t.Fatal("expected decode error")
	}
	if !s.CanProject() {
		t.Fatal("failed load must leave prior frame and selection intact")
	}
}

func TestEvents_CommitAndClear(t *testing.T) {
	s := newTestState()

	var committed []geometry.Rect
	s.On(EventSelectionCommitted, func(data interface{}) {
		committed = append(committed, data.(geometry.Rect))
	})

	r := geometry.NewRect(1, 2, 3, 4)
	s.CommitSelection(r)
	if len(committed) != 1 || committed[0] != r {
		t.Fatalf("commit event carried %v, want %v", committed, r)
	}

	s.ClearSelection()
	if _, ok := s.Selection(); ok {
		t.Fatal("selection not cleared")
	}
	// Clearing an already-empty selection emits nothing.
	fired := false
	s.On(EventSelectionCleared, func(interface{}) { fired = true })
	s.ClearSelection()
	if fired {
		t.Fatal("clearing an empty selection should not emit")
	}
}
