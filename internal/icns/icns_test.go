package icns

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/pain-lang/painicons/internal/iconset"
)

func pngBytes(t *testing.T, size int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.Set(x, y, color.NRGBA{R: 40, G: uint8(x), B: uint8(y), A: 255})
		}
	}
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func testSet(t *testing.T, sizes ...int) *iconset.Set {
	t.Helper()
	set := &iconset.Set{Identity: "lsp"}
	for _, size := range sizes {
		set.Entries = append(set.Entries, iconset.Entry{Size: size, Data: pngBytes(t, size)})
	}
	return set
}

func TestStageWritesEverySlot(t *testing.T) {
	set := testSet(t, 16, 32, 64, 128, 256, 512)
	dir := t.TempDir()

	staging, err := Stage(dir, set)
	if err != nil {
		t.Fatalf("Stage returned error: %v", err)
	}
	if staging != filepath.Join(dir, "lsp.iconset") {
		t.Errorf("staging path = %q", staging)
	}

	want := map[string]int{
		"icon_16x16.png":      16,
		"icon_16x16@2x.png":   32,
		"icon_32x32.png":      32,
		"icon_32x32@2x.png":   64,
		"icon_128x128.png":    128,
		"icon_128x128@2x.png": 256,
		"icon_256x256.png":    256,
		"icon_256x256@2x.png": 512,
		"icon_512x512.png":    512,
	}
	listing, err := os.ReadDir(staging)
	if err != nil {
		t.Fatalf("read staging dir: %v", err)
	}
	if len(listing) != len(want) {
		t.Fatalf("staged %d files, want %d", len(listing), len(want))
	}
	for name, size := range want {
		data, err := os.ReadFile(filepath.Join(staging, name))
		if err != nil {
			t.Fatalf("missing staged file %s: %v", name, err)
		}
		src, _ := set.Lookup(size)
		if !bytes.Equal(data, src) {
			t.Errorf("%s bytes differ from the %dpx source", name, size)
		}
	}
}

func TestStagePartialSet(t *testing.T) {
	set := testSet(t, 16, 512)
	staging, err := Stage(t.TempDir(), set)
	if err != nil {
		t.Fatalf("Stage returned error: %v", err)
	}

	want := []string{"icon_16x16.png", "icon_256x256@2x.png", "icon_512x512.png"}
	for _, name := range want {
		if _, err := os.Stat(filepath.Join(staging, name)); err != nil {
			t.Errorf("expected staged file %s: %v", name, err)
		}
	}
	listing, err := os.ReadDir(staging)
	if err != nil {
		t.Fatalf("read staging dir: %v", err)
	}
	if len(listing) != len(want) {
		t.Errorf("staged %d files, want %d", len(listing), len(want))
	}
}

func TestStageReplacesPreviousTree(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "lsp.iconset")
	if err := os.MkdirAll(stale, 0o755); err != nil {
		t.Fatalf("seed staging dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(stale, "icon_1024x1024.png"), []byte("old"), 0o644); err != nil {
		t.Fatalf("seed stale file: %v", err)
	}

	if _, err := Stage(dir, testSet(t, 16)); err != nil {
		t.Fatalf("Stage returned error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(stale, "icon_1024x1024.png")); !os.IsNotExist(err) {
		t.Error("stale file survived restaging")
	}
}

func TestSlotNamesDoubleDuty(t *testing.T) {
	// 32px fills both its base slot and the 16px @2x slot
	slots := SlotNames(testSet(t, 32))
	if len(slots) != 2 {
		t.Fatalf("got %d slots, want 2: %v", len(slots), slots)
	}
	if slots["icon_32x32.png"] != 32 || slots["icon_16x16@2x.png"] != 32 {
		t.Errorf("slots = %v", slots)
	}
}
