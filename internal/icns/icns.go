// Package icns stages Apple iconset directories and drives iconutil, the
// native macOS tool that packs a staged iconset into an .icns container.
// Staging works on any host; the final packing step is skipped when iconutil
// is absent and can be finished later on a mac.
package icns

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/pain-lang/painicons/internal/iconset"
)

// Tool is the external packer iconutil ships with macOS.
const Tool = "iconutil"

// baseSizes are the point sizes Apple's iconset convention names; each also
// has an @2x slot filled by the raster at twice the size.
var baseSizes = []int{16, 32, 128, 256, 512}

// SlotNames returns the iconset file names the set can fill, keyed by name,
// with the resolution each slot takes its bytes from. A raster may fill both
// a base slot and the @2x slot of the size below it.
func SlotNames(set *iconset.Set) map[string]int {
	slots := make(map[string]int)
	for _, base := range baseSizes {
		if _, ok := set.Lookup(base); ok {
			slots[fmt.Sprintf("icon_%dx%d.png", base, base)] = base
		}
		if _, ok := set.Lookup(base * 2); ok {
			slots[fmt.Sprintf("icon_%dx%d@2x.png", base, base)] = base * 2
		}
	}
	return slots
}

// Stage materializes <identity>.iconset under dir, one file per fillable
// slot, copying source bytes verbatim. Any previous staging tree at the same
// path is replaced. Returns the staging path.
func Stage(dir string, set *iconset.Set) (string, error) {
	staging := filepath.Join(dir, set.Identity+".iconset")
	if err := os.RemoveAll(staging); err != nil {
		return "", fmt.Errorf("clear staging dir: %w", err)
	}
	if err := os.MkdirAll(staging, 0o755); err != nil {
		return "", fmt.Errorf("create staging dir: %w", err)
	}
	for name, size := range SlotNames(set) {
		data, _ := set.Lookup(size)
		if err := os.WriteFile(filepath.Join(staging, name), data, 0o644); err != nil {
			return "", fmt.Errorf("stage %s: %w", name, err)
		}
	}
	return staging, nil
}

// ToolAvailable reports whether iconutil can be run on this host.
func ToolAvailable() bool {
	_, err := exec.LookPath(Tool)
	return err == nil
}

// Pack invokes iconutil on a staged iconset to produce the final container.
func Pack(staging, out string) error {
	cmd := exec.Command(Tool, "-c", "icns", staging, "-o", out)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", Tool, err, output)
	}
	return nil
}
