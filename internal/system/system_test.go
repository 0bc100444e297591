package system

import (
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFindLatest(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "old.png")
	fresh := filepath.Join(dir, "fresh.PNG")
	other := filepath.Join(dir, "notes.txt")
	for _, p := range []string{old, fresh, other} {
		if err := os.WriteFile(p, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	now := time.Now()
	os.Chtimes(old, now.Add(-time.Hour), now.Add(-time.Hour))
	os.Chtimes(fresh, now, now)
	os.Chtimes(other, now.Add(time.Hour), now.Add(time.Hour))

	got, err := FindLatest(dir, ".png", ".pdf")
	if err != nil {
		t.Fatalf("FindLatest failed: %v", err)
	}
	if got != fresh {
		t.Errorf("got %s, want %s", got, fresh)
	}

	if _, err := FindLatest(dir, ".pdf"); err == nil {
		t.Error("expected an error when nothing matches")
	}
}

func TestDefaultQuality(t *testing.T) {
	tests := map[string]int{
		"h264_videotoolbox": 75,
		"h264_nvenc":        28,
		"libx264":           23,
		"":                  23,
	}
	for enc, want := range tests {
		if got := DefaultQuality(enc); got != want {
			t.Errorf("DefaultQuality(%q) = %d, want %d", enc, got, want)
		}
	}
}

func TestWorkerBudget(t *testing.T) {
	if n := DefaultWorkers(); n < 1 {
		t.Errorf("DefaultWorkers = %d", n)
	}
	n := MaxInFlightFrames(1920, 1080)
	if n < 2 || n > 256 {
		t.Errorf("MaxInFlightFrames = %d, want within [2, 256]", n)
	}
	if MaxInFlightFrames(0, 0) != 2 {
		t.Error("empty frames should fall back to the minimum")
	}
}

func TestImagePool(t *testing.T) {
	p := NewImagePool()
	r := image.Rect(0, 0, 16, 9)
	img := p.Get(r)
	if img.Bounds() != r {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	p.Put(img)
	p.Put(image.NewRGBA(image.Rect(0, 0, 3, 3))) // unknown size is dropped
	if got := p.Get(r); got.Bounds() != r {
		t.Errorf("bounds after reuse = %v", got.Bounds())
	}
	p.Put(nil)
	if n := p.Allocated(); n < 1 || n > 2 {
		t.Errorf("Allocated = %d, want 1 or 2", n)
	}
}
